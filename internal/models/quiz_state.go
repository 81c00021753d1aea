package models

type QuizMode string

const (
	QuizSequential QuizMode = "sequential"
	QuizRandom     QuizMode = "random"
)

func (m QuizMode) Valid() bool {
	return m == QuizSequential || m == QuizRandom
}

// QuizState is the position of one quiz session. Key is the paper in
// sequential mode and the exam key in random mode. An empty QuestionID means
// nothing is answerable.
type QuizState struct {
	Mode       QuizMode `json:"mode"`
	Key        string   `json:"key"`
	Index      int      `json:"index"`
	QuestionID string   `json:"questionId,omitempty"`
}

// Answerable reports whether a question is currently shown.
func (s QuizState) Answerable() bool {
	return s.QuestionID != ""
}
