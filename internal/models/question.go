package models

// QuizQuestion is a single multiple-choice question filed under a paper
// (the exam key in random mode).
type QuizQuestion struct {
	ID          string   `json:"id"`
	Paper       string   `json:"paper"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

func (q QuizQuestion) GetID() string { return q.ID }

// HasValidAnswer reports whether AnswerIndex points at one of the options.
func (q QuizQuestion) HasValidAnswer() bool {
	return q.AnswerIndex >= 0 && q.AnswerIndex < len(q.Options)
}

// IsCorrect compares a selected option index with the stored answer.
func (q QuizQuestion) IsCorrect(selected int) bool {
	return selected == q.AnswerIndex
}

// QuestionForStudent is what a student sees while answering: no answer index.
type QuestionForStudent struct {
	ID       string   `json:"id"`
	Paper    string   `json:"paper"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Position int      `json:"position"`
	Total    int      `json:"total"`
}
