package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) List(ctx context.Context, filters repositories.PaperFilters) []models.QuizQuestion {
	return s.repo.Quiz().List(ctx, filters)
}

func (s *quizService) Get(ctx context.Context, id string) (*models.QuizQuestion, error) {
	q, ok := s.repo.Quiz().Get(ctx, id)
	if !ok {
		return nil, fmt.Errorf("quiz question %s: %w", id, ErrNotFound)
	}
	return &q, nil
}

// Upsert validates the form, including that answerIndex names one of the
// options, before anything is written.
func (s *quizService) Upsert(ctx context.Context, id string, req *QuizUpsertRequest) (*models.QuizQuestion, error) {
	draft := req.Draft()
	if errs := s.validator.GetBusinessValidator().ValidateQuizDraft(draft); len(errs) > 0 {
		return nil, errs
	}

	q, created, err := s.repo.Quiz().Upsert(ctx, id,
		func() (models.QuizQuestion, error) {
			return models.QuizQuestion{
				ID:          ids.New(ids.PrefixQuiz),
				Paper:       draft.Paper,
				Question:    draft.Question,
				Options:     draft.Options,
				AnswerIndex: draft.AnswerIndex,
			}, nil
		},
		func(q *models.QuizQuestion) error {
			q.Paper = draft.Paper
			q.Question = draft.Question
			q.Options = draft.Options
			q.AnswerIndex = draft.AnswerIndex
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz question: %w", err)
	}

	s.logger.InfoContext(ctx, "Quiz question saved", "quiz_id", q.ID, "paper", q.Paper, "created", created)
	return &q, nil
}

func (s *quizService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Quiz().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz question: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "Quiz question deleted", "quiz_id", id)
	}
	return removed, nil
}

// Papers lists the distinct papers that have at least one question.
func (s *quizService) Papers(ctx context.Context) []string {
	seen := make(map[string]bool)
	papers := []string{}
	for _, q := range s.repo.Quiz().All(ctx) {
		if q.Paper == "" || seen[q.Paper] {
			continue
		}
		seen[q.Paper] = true
		papers = append(papers, q.Paper)
	}
	sort.Strings(papers)
	return papers
}
