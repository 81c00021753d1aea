package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
)

// QuizEngineConfig selects the presentation policy. Intn draws the random
// question; nil uses math/rand.
type QuizEngineConfig struct {
	Mode              models.QuizMode
	RecordSubmissions bool
	Intn              func(n int) int
}

type quizEngine struct {
	repo      repositories.Repository
	sessions  SessionManager
	logger    *slog.Logger
	publisher events.EventPublisher
	mode      models.QuizMode
	record    bool
	intn      func(n int) int
}

func NewQuizEngine(repo repositories.Repository, sessions SessionManager, logger *slog.Logger, publisher events.EventPublisher, config QuizEngineConfig) QuizEngine {
	mode := config.Mode
	if !mode.Valid() {
		mode = models.QuizSequential
	}
	intn := config.Intn
	if intn == nil {
		intn = rand.Intn
	}

	return &quizEngine{
		repo:      repo,
		sessions:  sessions,
		logger:    logger,
		publisher: publisher,
		mode:      mode,
		record:    config.RecordSubmissions,
		intn:      intn,
	}
}

func (e *quizEngine) Mode() models.QuizMode {
	return e.mode
}

// Start begins a quiz over the questions filed under key: the first one in
// sequential mode, a random one otherwise.
func (e *quizEngine) Start(ctx context.Context, key string) (*models.QuestionForStudent, error) {
	return e.show(ctx, strings.TrimSpace(key), 0)
}

// Next moves to the following question, wrapping past the end in sequential
// mode, or draws again in random mode.
func (e *quizEngine) Next(ctx context.Context) (*models.QuestionForStudent, error) {
	state, err := e.state(ctx)
	if err != nil {
		return nil, err
	}
	return e.show(ctx, state.Key, state.Index+1)
}

func (e *quizEngine) Current(ctx context.Context) (*models.QuestionForStudent, error) {
	state, err := e.state(ctx)
	if err != nil {
		return nil, err
	}

	questions := e.repo.Quiz().List(ctx, repositories.PaperFilters{Paper: state.Key})
	for i, q := range questions {
		if q.ID == state.QuestionID {
			return forStudent(q, i, len(questions)), nil
		}
	}

	// The question was deleted under us.
	e.clear(ctx)
	return nil, ErrNotAnswerable
}

// CheckAnswer compares selected with the current question's answer. A nil
// selection is refused before anything else is looked at.
func (e *quizEngine) CheckAnswer(ctx context.Context, selected *int) (*AnswerOutcome, error) {
	if selected == nil {
		return nil, ErrNoSelection
	}

	state, err := e.state(ctx)
	if err != nil {
		return nil, err
	}
	q, ok := e.repo.Quiz().Get(ctx, state.QuestionID)
	if !ok {
		e.clear(ctx)
		return nil, ErrNotAnswerable
	}

	outcome := &AnswerOutcome{
		QuestionID:   q.ID,
		Paper:        q.Paper,
		Selected:     *selected,
		Correct:      q.IsCorrect(*selected),
		CorrectIndex: q.AnswerIndex,
	}
	if q.HasValidAnswer() {
		outcome.CorrectOption = q.Options[q.AnswerIndex]
	}

	var studentEmail string
	if session, ok := e.sessions.Current(ctx); ok {
		studentEmail = session.Email
	}

	if e.record {
		if studentEmail == "" {
			return nil, ErrUnauthorized
		}
		sub := models.NewQuizSubmission(ids.New(ids.PrefixSubmission), &q, studentEmail, outcome.Correct, timeNow().UTC())
		if err := e.repo.Submission().Append(ctx, sub); err != nil {
			return nil, fmt.Errorf("failed to record submission: %w", err)
		}
		outcome.Submission = &sub
	}

	e.logger.InfoContext(ctx, "Answer checked",
		"quiz_id", q.ID,
		"paper", q.Paper,
		"correct", outcome.Correct,
		"recorded", outcome.Submission != nil)
	publishEvent(ctx, e.publisher, e.logger, events.TypeQuizAnswerChecked, events.AnswerCheckedData{
		QuestionID:   q.ID,
		Paper:        q.Paper,
		StudentEmail: studentEmail,
		Correct:      outcome.Correct,
		Recorded:     outcome.Submission != nil,
	})

	return outcome, nil
}

// ===== HELPERS =====

// show selects a question under key and persists it as the current one. An
// empty selection clears the state so nothing is answerable.
func (e *quizEngine) show(ctx context.Context, key string, index int) (*models.QuestionForStudent, error) {
	questions := e.repo.Quiz().List(ctx, repositories.PaperFilters{Paper: key})
	if len(questions) == 0 {
		e.clear(ctx)
		return nil, fmt.Errorf("%w for %q", ErrNoQuestions, key)
	}

	switch e.mode {
	case models.QuizRandom:
		index = e.intn(len(questions))
	default:
		if index >= len(questions) || index < 0 {
			index = 0
		}
	}

	q := questions[index]
	state := models.QuizState{Mode: e.mode, Key: key, Index: index, QuestionID: q.ID}
	if err := e.repo.QuizState().Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save quiz state: %w", err)
	}

	return forStudent(q, index, len(questions)), nil
}

// state returns the current answerable state of this engine's mode.
func (e *quizEngine) state(ctx context.Context) (models.QuizState, error) {
	state := e.repo.QuizState().Get(ctx)
	if !state.Answerable() || state.Mode != e.mode {
		return models.QuizState{}, ErrNotAnswerable
	}
	return state, nil
}

func (e *quizEngine) clear(ctx context.Context) {
	if err := e.repo.QuizState().Clear(ctx); err != nil {
		e.logger.WarnContext(ctx, "Failed to clear quiz state", "error", err)
	}
}

func forStudent(q models.QuizQuestion, index, total int) *models.QuestionForStudent {
	return &models.QuestionForStudent{
		ID:       q.ID,
		Paper:    q.Paper,
		Question: q.Question,
		Options:  q.Options,
		Position: index + 1,
		Total:    total,
	}
}
