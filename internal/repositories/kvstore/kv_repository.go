package kvstore

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/storage"
)

// KVRepository implements repositories.Repository on top of a storage.Store
type KVRepository struct {
	store *storage.Store

	user       repositories.UserRepository
	note       repositories.NoteRepository
	quiz       repositories.QuizRepository
	assignment repositories.AssignmentRepository
	submission repositories.SubmissionRepository
	session    repositories.SessionRepository
	quizState  repositories.QuizStateRepository
}

// NewKVRepository creates the repository set sharing one store and its lock
func NewKVRepository(store *storage.Store) *KVRepository {
	return &KVRepository{
		store:      store,
		user:       &userRepository{storage.NewCollection[models.User](store, storage.KeyUsers)},
		note:       &noteRepository{storage.NewCollection[models.Note](store, storage.KeyNotes)},
		quiz:       &quizRepository{storage.NewCollection[models.QuizQuestion](store, storage.KeyQuizzes)},
		assignment: &assignmentRepository{storage.NewCollection[models.Assignment](store, storage.KeyAssignments)},
		submission: &submissionRepository{storage.NewCollection[models.Submission](store, storage.KeySubmissions)},
		session:    &sessionRepository{store: store},
		quizState:  &quizStateRepository{store: store},
	}
}

func (r *KVRepository) User() repositories.UserRepository             { return r.user }
func (r *KVRepository) Note() repositories.NoteRepository             { return r.note }
func (r *KVRepository) Quiz() repositories.QuizRepository             { return r.quiz }
func (r *KVRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *KVRepository) Submission() repositories.SubmissionRepository { return r.submission }
func (r *KVRepository) Session() repositories.SessionRepository       { return r.session }
func (r *KVRepository) QuizState() repositories.QuizStateRepository   { return r.quizState }

// Ping checks the health of the backing store
func (r *KVRepository) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}
	return nil
}

// Close closes the backing store
func (r *KVRepository) Close() error {
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
