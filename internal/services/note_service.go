package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// noteRenderer keeps line breaks and escapes raw HTML in note content.
var noteRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type noteService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNoteService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) NoteService {
	return &noteService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *noteService) List(ctx context.Context, filters repositories.PaperFilters) []models.Note {
	return s.repo.Note().List(ctx, filters)
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Note, error) {
	note, ok := s.repo.Note().Get(ctx, id)
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return &note, nil
}

func (s *noteService) Upsert(ctx context.Context, id string, req *NoteUpsertRequest) (*models.Note, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	note, created, err := s.repo.Note().Upsert(ctx, id,
		func() (models.Note, error) {
			return models.Note{
				ID:      ids.New(ids.PrefixNote),
				Paper:   req.Paper,
				Title:   req.Title,
				Content: req.Content,
			}, nil
		},
		func(n *models.Note) error {
			n.Paper = req.Paper
			n.Title = req.Title
			n.Content = req.Content
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	s.logger.InfoContext(ctx, "Note saved", "note_id", note.ID, "created", created)
	return &note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Note().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "Note deleted", "note_id", id)
	}
	return removed, nil
}

// Render converts the note content to HTML, one line per line break.
func (s *noteService) Render(ctx context.Context, id string) (string, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := noteRenderer.Convert([]byte(note.Content), &buf); err != nil {
		s.logger.WarnContext(ctx, "Note markdown conversion failed", "note_id", id, "error", err)
		return "<p>" + html.EscapeString(note.Content) + "</p>", nil
	}
	return buf.String(), nil
}
