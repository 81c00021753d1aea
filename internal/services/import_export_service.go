package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

const (
	sheetSubmissions = "Submissions"
	sheetSummary     = "Summary"
)

var submissionHeader = []interface{}{"ID", "Kind", "Student", "Quiz", "Paper", "Assignment", "Correct", "Time"}

// quizImportHeader is the expected first row of a question workbook. Options
// go one per line inside their cell.
var quizImportHeader = []string{"paper", "question", "options", "answerindex"}

type importExportService struct {
	repo      repositories.Repository
	dashboard DashboardService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportExportService(repo repositories.Repository, dashboard DashboardService, logger *slog.Logger, validator *validator.Validator) ImportExportService {
	return &importExportService{
		repo:      repo,
		dashboard: dashboard,
		logger:    logger,
		validator: validator,
	}
}

// ExportSubmissions writes an XLSX workbook with every submission and the
// dashboard summary.
func (s *importExportService) ExportSubmissions(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSubmissions); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetSubmissions, "A1", &submissionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	submissions := s.repo.Submission().All(ctx)
	for i, sub := range submissions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			sub.ID,
			string(sub.Kind()),
			sub.StudentEmail,
			sub.QuizID,
			sub.Paper,
			sub.AssignmentID,
			correctCell(sub),
			sub.Time.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(sheetSubmissions, cell, &row); err != nil {
			return fmt.Errorf("failed to write submission row: %w", err)
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	overview := s.dashboard.Overview(ctx)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Students", overview.Students},
		{"Admins", overview.Admins},
		{"Notes", overview.Notes},
		{"Quiz questions", overview.Quizzes},
		{"Assignments", overview.Assignments},
		{"Quiz submissions", overview.QuizSubmissions},
		{"Correct answers", overview.CorrectAnswers},
		{"Assignment submissions", overview.AssignmentSubmissions},
		{"Accuracy %", overview.Accuracy},
	}
	for i := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &summary[i]); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "Submissions exported", "rows", len(submissions))
	return nil
}

// ImportQuizzes appends every valid question row of the first sheet. Invalid
// rows are reported and skipped; valid ones are written together.
func (s *importExportService) ImportQuizzes(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a workbook: %v", ErrValidationFailed, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 || !isQuizHeader(rows[0]) {
		return nil, fmt.Errorf("%w: first row must be %s", ErrValidationFailed, strings.Join(quizImportHeader, ", "))
	}

	result := &ImportResult{}
	var questions []models.QuizQuestion
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		req := &QuizUpsertRequest{
			Paper:       cellAt(row, 0),
			Question:    cellAt(row, 1),
			Options:     cellAt(row, 2),
			AnswerIndex: validator.RawIndex(cellAt(row, 3)),
		}
		draft := req.Draft()
		if errs := s.validator.GetBusinessValidator().ValidateQuizDraft(draft); len(errs) > 0 {
			result.Skipped = append(result.Skipped, ImportRowError{Row: i + 2, Errors: errs})
			continue
		}

		questions = append(questions, models.QuizQuestion{
			ID:          ids.New(ids.PrefixQuiz),
			Paper:       draft.Paper,
			Question:    draft.Question,
			Options:     draft.Options,
			AnswerIndex: draft.AnswerIndex,
		})
	}

	if len(questions) > 0 {
		err := s.repo.Quiz().Mutate(ctx, func(items []models.QuizQuestion) ([]models.QuizQuestion, error) {
			return append(items, questions...), nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save imported questions: %w", err)
		}
	}
	result.Imported = len(questions)

	s.logger.InfoContext(ctx, "Quiz questions imported", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

func correctCell(sub models.Submission) string {
	if sub.Kind() != models.SubmissionQuiz {
		return ""
	}
	if sub.IsCorrect() {
		return "yes"
	}
	return "no"
}

func isQuizHeader(row []string) bool {
	if len(row) < len(quizImportHeader) {
		return false
	}
	for i, name := range quizImportHeader {
		if strings.ToLower(strings.TrimSpace(row[i])) != name {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
