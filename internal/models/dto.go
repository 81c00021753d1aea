package models

// DashboardOverview is the admin analytics summary. Every figure is a plain
// count over the persisted collections.
type DashboardOverview struct {
	Students              int            `json:"students"`
	Admins                int            `json:"admins"`
	Notes                 int            `json:"notes"`
	Quizzes               int            `json:"quizzes"`
	Assignments           int            `json:"assignments"`
	QuizSubmissions       int            `json:"quiz_submissions"`
	CorrectAnswers        int            `json:"correct_answers"`
	AssignmentSubmissions int            `json:"assignment_submissions"`
	Accuracy              float64        `json:"accuracy"` // percentage, 0 when nothing answered
	Papers                []PaperStats   `json:"papers"`
	StudentActivity       []StudentStats `json:"student_activity"`
}

type PaperStats struct {
	Paper     string `json:"paper"`
	Notes     int    `json:"notes"`
	Questions int    `json:"questions"`
	Answers   int    `json:"answers"`
	Correct   int    `json:"correct"`
}

type StudentStats struct {
	Email                 string `json:"email"`
	QuizAttempts          int    `json:"quiz_attempts"`
	CorrectAnswers        int    `json:"correct_answers"`
	AssignmentSubmissions int    `json:"assignment_submissions"`
}
