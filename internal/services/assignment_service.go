package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type assignmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *assignmentService) List(ctx context.Context) []models.Assignment {
	return s.repo.Assignment().All(ctx)
}

func (s *assignmentService) Get(ctx context.Context, id string) (*models.Assignment, error) {
	a, ok := s.repo.Assignment().Get(ctx, id)
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return &a, nil
}

func (s *assignmentService) Upsert(ctx context.Context, id string, req *AssignmentUpsertRequest) (*models.Assignment, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	a, created, err := s.repo.Assignment().Upsert(ctx, id,
		func() (models.Assignment, error) {
			return models.Assignment{
				ID:          ids.New(ids.PrefixAssignment),
				Title:       req.Title,
				Description: req.Description,
				DueDate:     req.DueDate,
			}, nil
		},
		func(a *models.Assignment) error {
			a.Title = req.Title
			a.Description = req.Description
			a.DueDate = req.DueDate
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "Assignment saved", "assignment_id", a.ID, "created", created)
	return &a, nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Assignment().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "Assignment deleted", "assignment_id", id)
	}
	return removed, nil
}
