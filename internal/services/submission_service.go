package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
)

type submissionService struct {
	repo      repositories.Repository
	sessions  SessionManager
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewSubmissionService(repo repositories.Repository, sessions SessionManager, logger *slog.Logger, publisher events.EventPublisher) SubmissionService {
	return &submissionService{
		repo:      repo,
		sessions:  sessions,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *submissionService) List(ctx context.Context, filters repositories.SubmissionFilters) []models.Submission {
	return s.repo.Submission().List(ctx, filters)
}

// SubmitAssignment records a hand-in of an existing assignment by the
// signed-in user.
func (s *submissionService) SubmitAssignment(ctx context.Context, assignmentID string) (*models.Submission, error) {
	session, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if _, ok := s.repo.Assignment().Get(ctx, assignmentID); !ok {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	sub := models.NewAssignmentSubmission(ids.New(ids.PrefixSubmission), assignmentID, session.Email, timeNow().UTC())
	if err := s.repo.Submission().Append(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	s.logger.InfoContext(ctx, "Assignment submitted", "submission_id", sub.ID, "assignment_id", assignmentID)
	publishEvent(ctx, s.publisher, s.logger, events.TypeAssignmentSubmitted, events.AssignmentSubmittedData{
		SubmissionID: sub.ID,
		AssignmentID: assignmentID,
		StudentEmail: session.Email,
	})

	return &sub, nil
}

func (s *submissionService) Mine(ctx context.Context) ([]models.Submission, error) {
	session, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.Submission().List(ctx, repositories.SubmissionFilters{StudentEmail: session.Email}), nil
}
