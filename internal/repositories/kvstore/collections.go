package kvstore

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/storage"
)

type userRepository struct {
	*storage.Collection[models.User]
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) []models.User {
	return r.Filter(ctx, filters.Match)
}

// GetByEmail matches emails case-insensitively, ignoring surrounding blanks.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, bool) {
	email = strings.TrimSpace(email)
	return r.Find(ctx, func(u models.User) bool {
		return strings.EqualFold(strings.TrimSpace(u.Email), email)
	})
}

type noteRepository struct {
	*storage.Collection[models.Note]
}

func (r *noteRepository) List(ctx context.Context, filters repositories.PaperFilters) []models.Note {
	return r.Filter(ctx, func(n models.Note) bool { return filters.MatchPaper(n.Paper) })
}

type quizRepository struct {
	*storage.Collection[models.QuizQuestion]
}

func (r *quizRepository) List(ctx context.Context, filters repositories.PaperFilters) []models.QuizQuestion {
	return r.Filter(ctx, func(q models.QuizQuestion) bool { return filters.MatchPaper(q.Paper) })
}

type assignmentRepository struct {
	*storage.Collection[models.Assignment]
}

type submissionRepository struct {
	*storage.Collection[models.Submission]
}

func (r *submissionRepository) List(ctx context.Context, filters repositories.SubmissionFilters) []models.Submission {
	return r.Filter(ctx, filters.Match)
}
