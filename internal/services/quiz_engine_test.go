package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/storage"
)

func intPtr(i int) *int { return &i }

func seedQuestions(t *testing.T, ctx context.Context, env *testEnv, questions ...models.QuizQuestion) {
	t.Helper()
	if err := env.repo.Quiz().Replace(ctx, questions); err != nil {
		t.Fatalf("failed to seed questions: %v", err)
	}
}

func TestQuizEngine_CheckAnswerScenario(t *testing.T) {
	env := newTestEnv(t, sequentialConfig())
	ctx := context.Background()
	seedQuestions(t, ctx, env, models.QuizQuestion{ID: "q1", Paper: "p1", Question: "Which?", Options: []string{"A", "B", "C"}, AnswerIndex: 2})
	env.signIn(t, ctx, "kid@school.com")

	frozen := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return frozen }
	t.Cleanup(func() { timeNow = time.Now })

	engine := env.manager.QuizEngine()
	q, err := engine.Start(ctx, "p1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if q.ID != "q1" || q.Position != 1 || q.Total != 1 {
		t.Fatalf("unexpected question %+v", q)
	}

	tests := []struct {
		name     string
		selected int
		correct  bool
	}{
		{name: "correct", selected: 2, correct: true},
		{name: "incorrect", selected: 0, correct: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(env.repo.Submission().All(ctx))

			outcome, err := engine.CheckAnswer(ctx, intPtr(tt.selected))
			if err != nil {
				t.Fatalf("CheckAnswer failed: %v", err)
			}
			if outcome.Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", outcome.Correct, tt.correct)
			}
			if outcome.CorrectOption != "C" {
				t.Errorf("CorrectOption = %q", outcome.CorrectOption)
			}

			subs := env.repo.Submission().All(ctx)
			if len(subs) != before+1 {
				t.Fatalf("expected exactly one new submission, got %d", len(subs)-before)
			}
			last := subs[len(subs)-1]
			if last.QuizID != "q1" || last.Paper != "p1" || last.StudentEmail != "kid@school.com" {
				t.Errorf("unexpected submission %+v", last)
			}
			if last.Correct == nil || *last.Correct != tt.correct {
				t.Errorf("submission correct = %v, want %v", last.Correct, tt.correct)
			}
			if !last.Time.Equal(frozen) {
				t.Errorf("submission time = %v", last.Time)
			}
		})
	}

	if got := len(env.publisher.EventsOfType(events.TypeQuizAnswerChecked)); got != 2 {
		t.Errorf("expected 2 answer events, got %d", got)
	}
}

func TestQuizEngine_Guards(t *testing.T) {
	env := newTestEnv(t, sequentialConfig())
	ctx := context.Background()
	seedQuestions(t, ctx, env, models.QuizQuestion{ID: "q1", Paper: "p1", Question: "Which?", Options: []string{"A"}, AnswerIndex: 0})
	engine := env.manager.QuizEngine()

	if _, err := engine.CheckAnswer(ctx, intPtr(0)); !errors.Is(err, ErrNotAnswerable) {
		t.Errorf("expected ErrNotAnswerable before start, got %v", err)
	}

	if _, err := engine.Start(ctx, "p1"); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.CheckAnswer(ctx, nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
	if _, err := engine.CheckAnswer(ctx, intPtr(0)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("recording without a session should fail, got %v", err)
	}
	if got := len(env.repo.Submission().All(ctx)); got != 0 {
		t.Errorf("guards must not record submissions, got %d", got)
	}

	if _, err := env.manager.Quiz().Delete(ctx, "q1"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Current(ctx); !errors.Is(err, ErrNotAnswerable) {
		t.Errorf("deleted question should not be answerable, got %v", err)
	}
}

func TestQuizEngine_SequentialWraps(t *testing.T) {
	env := newTestEnv(t, sequentialConfig())
	ctx := context.Background()
	seedQuestions(t, ctx, env,
		models.QuizQuestion{ID: "q1", Paper: "p1", Question: "1", Options: []string{"A"}},
		models.QuizQuestion{ID: "x1", Paper: "p2", Question: "x", Options: []string{"A"}},
		models.QuizQuestion{ID: "q2", Paper: "p1", Question: "2", Options: []string{"A"}},
		models.QuizQuestion{ID: "q3", Paper: "p1", Question: "3", Options: []string{"A"}},
	)
	engine := env.manager.QuizEngine()

	q, err := engine.Start(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	got := []string{q.ID}
	for i := 0; i < 4; i++ {
		q, err := engine.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, q.ID)
	}

	want := []string{"q1", "q2", "q3", "q1", "q2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", got, want)
		}
	}

	current, err := engine.Current(ctx)
	if err != nil || current.ID != "q2" || current.Position != 2 || current.Total != 3 {
		t.Errorf("Current() = %+v, %v", current, err)
	}
}

func TestQuizEngine_RandomMode(t *testing.T) {
	draws := []int{1, 0}
	env := newTestEnv(t, QuizEngineConfig{
		Mode: models.QuizRandom,
		Intn: func(n int) int {
			d := draws[0] % n
			draws = append(draws[1:], draws[0])
			return d
		},
	})
	ctx := context.Background()
	seedQuestions(t, ctx, env,
		models.QuizQuestion{ID: "e1", Paper: "exam-a", Question: "1", Options: []string{"A", "B"}, AnswerIndex: 1},
		models.QuizQuestion{ID: "e2", Paper: "exam-a", Question: "2", Options: []string{"A", "B"}, AnswerIndex: 0},
	)
	engine := env.manager.QuizEngine()

	t.Run("empty exam key is not answerable", func(t *testing.T) {
		if _, err := engine.Start(ctx, "exam-b"); !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions, got %v", err)
		}
		if _, err := engine.Current(ctx); !errors.Is(err, ErrNotAnswerable) {
			t.Errorf("expected no answerable state, got %v", err)
		}
		if _, err := engine.CheckAnswer(ctx, intPtr(0)); !errors.Is(err, ErrNotAnswerable) {
			t.Errorf("expected ErrNotAnswerable, got %v", err)
		}
	})

	t.Run("draws from the exam", func(t *testing.T) {
		q, err := engine.Start(ctx, "exam-a")
		if err != nil {
			t.Fatal(err)
		}
		if q.ID != "e2" {
			t.Errorf("expected the second question, got %s", q.ID)
		}

		outcome, err := engine.CheckAnswer(ctx, intPtr(0))
		if err != nil {
			t.Fatalf("CheckAnswer failed: %v", err)
		}
		if !outcome.Correct || outcome.Submission != nil {
			t.Errorf("unexpected outcome %+v", outcome)
		}
		if got := len(env.repo.Submission().All(ctx)); got != 0 {
			t.Errorf("random mode without recording stored %d submissions", got)
		}

		next, err := engine.Next(ctx)
		if err != nil || next.ID != "e1" {
			t.Errorf("Next() = %+v, %v", next, err)
		}
	})

	t.Run("emptied exam clears state", func(t *testing.T) {
		if err := env.repo.Quiz().Replace(ctx, nil); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.Next(ctx); !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions, got %v", err)
		}
		if _, err := engine.Current(ctx); !errors.Is(err, ErrNotAnswerable) {
			t.Errorf("expected cleared state, got %v", err)
		}
	})
}

func TestQuizEngine_StateIsPerProfile(t *testing.T) {
	env := newTestEnv(t, sequentialConfig())
	base := context.Background()
	seedQuestions(t, base, env, models.QuizQuestion{ID: "q1", Paper: "p1", Question: "1", Options: []string{"A"}})
	engine := env.manager.QuizEngine()

	one := storage.WithProfile(base, "one")
	two := storage.WithProfile(base, "two")

	if _, err := engine.Start(one, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Current(two); !errors.Is(err, ErrNotAnswerable) {
		t.Errorf("quiz state leaked across profiles: %v", err)
	}
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	env := newTestEnv(t, sequentialConfig())
	ctx := context.Background()
	env.publisher.FailWith(errors.New("broker down"))

	if _, err := env.manager.Auth().Login(ctx, &LoginRequest{Email: "admin@bank.com", Password: "admin123"}); err != nil {
		t.Fatalf("Login should succeed when publishing fails: %v", err)
	}
}
