// Package events publishes portal activity (logins, answered questions,
// handed-in assignments) to a message bus.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	Source  = "study-portal"
	Version = "1.0"
)

// Event types
const (
	TypeUserLoggedIn        = "auth.logged_in"
	TypeUserLoggedOut       = "auth.logged_out"
	TypeQuizAnswerChecked   = "quiz.answer_checked"
	TypeAssignmentSubmitted = "assignment.submitted"
)

type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events; implementations must be safe for
// concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Payloads

type LoginData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AnswerCheckedData struct {
	QuestionID   string `json:"question_id"`
	Paper        string `json:"paper"`
	StudentEmail string `json:"student_email"`
	Correct      bool   `json:"correct"`
	Recorded     bool   `json:"recorded"`
}

type AssignmentSubmittedData struct {
	SubmissionID string `json:"submission_id"`
	AssignmentID string `json:"assignment_id"`
	StudentEmail string `json:"student_email"`
}
