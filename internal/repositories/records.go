package repositories

import (
	"context"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/storage"
)

// Records is the common read-modify-write surface of every collection.
type Records[T storage.Record] interface {
	All(ctx context.Context) []T
	Filter(ctx context.Context, keep func(T) bool) []T
	Find(ctx context.Context, match func(T) bool) (T, bool)
	Get(ctx context.Context, id string) (T, bool)
	Replace(ctx context.Context, items []T) error
	Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error
	Append(ctx context.Context, rec T) error
	Upsert(ctx context.Context, id string, create func() (T, error), update func(*T) error) (T, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	Records[models.User]
	List(ctx context.Context, filters UserFilters) []models.User
	GetByEmail(ctx context.Context, email string) (models.User, bool)
}

type NoteRepository interface {
	Records[models.Note]
	List(ctx context.Context, filters PaperFilters) []models.Note
}

type QuizRepository interface {
	Records[models.QuizQuestion]
	List(ctx context.Context, filters PaperFilters) []models.QuizQuestion
}

type AssignmentRepository interface {
	Records[models.Assignment]
}

type SubmissionRepository interface {
	Records[models.Submission]
	List(ctx context.Context, filters SubmissionFilters) []models.Submission
}

// SessionRepository holds the single session of the scope carried by ctx.
type SessionRepository interface {
	Get(ctx context.Context) (*models.Session, bool)
	Save(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
}

// QuizStateRepository holds the quiz position of the scope carried by ctx.
type QuizStateRepository interface {
	Get(ctx context.Context) models.QuizState
	Save(ctx context.Context, state models.QuizState) error
	Clear(ctx context.Context) error
}
