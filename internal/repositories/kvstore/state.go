package kvstore

import (
	"context"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/storage"
)

// sessionRepository keeps the session under the scope of the request profile.
type sessionRepository struct {
	store *storage.Store
}

func (r *sessionRepository) Get(ctx context.Context) (*models.Session, bool) {
	session := storage.Load[*models.Session](ctx, r.store.ForContext(ctx), storage.KeySession, nil)
	if session == nil || session.Email == "" {
		return nil, false
	}
	return session, true
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	return r.store.ForContext(ctx).Save(ctx, storage.KeySession, session)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.ForContext(ctx).Remove(ctx, storage.KeySession)
}

type quizStateRepository struct {
	store *storage.Store
}

func (r *quizStateRepository) Get(ctx context.Context) models.QuizState {
	return storage.Load(ctx, r.store.ForContext(ctx), storage.KeyQuizState, models.QuizState{})
}

func (r *quizStateRepository) Save(ctx context.Context, state models.QuizState) error {
	return r.store.ForContext(ctx).Save(ctx, storage.KeyQuizState, state)
}

func (r *quizStateRepository) Clear(ctx context.Context) error {
	return r.store.ForContext(ctx).Remove(ctx, storage.KeyQuizState)
}
