package repositories

import "context"

// Repository groups every persisted collection of the portal
type Repository interface {
	User() UserRepository
	Note() NoteRepository
	Quiz() QuizRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository

	// Per-client state
	Session() SessionRepository
	QuizState() QuizStateRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
