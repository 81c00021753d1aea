package models

import "time"

type SubmissionKind string

const (
	SubmissionQuiz       SubmissionKind = "quiz"
	SubmissionAssignment SubmissionKind = "assignment"
)

// Submission is either a quiz answer (QuizID set) or an assignment hand-in
// (AssignmentID set). The referenced record is not required to still exist.
type Submission struct {
	ID           string    `json:"id"`
	QuizID       string    `json:"quizId,omitempty"`
	Paper        string    `json:"paper,omitempty"`
	AssignmentID string    `json:"assignmentId,omitempty"`
	StudentEmail string    `json:"studentEmail"`
	Correct      *bool     `json:"correct,omitempty"`
	Time         time.Time `json:"time"`
}

func (s Submission) GetID() string { return s.ID }

// Kind derives the union tag from whichever foreign key is present.
func (s Submission) Kind() SubmissionKind {
	if s.QuizID != "" {
		return SubmissionQuiz
	}
	return SubmissionAssignment
}

// IsCorrect is false for assignment submissions.
func (s Submission) IsCorrect() bool {
	return s.Correct != nil && *s.Correct
}

func NewQuizSubmission(id string, q *QuizQuestion, studentEmail string, correct bool, at time.Time) Submission {
	return Submission{
		ID:           id,
		QuizID:       q.ID,
		Paper:        q.Paper,
		StudentEmail: studentEmail,
		Correct:      &correct,
		Time:         at,
	}
}

func NewAssignmentSubmission(id, assignmentID, studentEmail string, at time.Time) Submission {
	return Submission{
		ID:           id,
		AssignmentID: assignmentID,
		StudentEmail: studentEmail,
		Time:         at,
	}
}
