package validator

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestQuizUpsertRequest_Draft(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOptions []string
		wantIndex   int
	}{
		{
			name:        "numeric_index",
			body:        `{"question":" Q ","options":"A\n  B \n\n C\n","answerIndex":2}`,
			wantOptions: []string{"A", "B", "C"},
			wantIndex:   2,
		},
		{
			name:        "string_index",
			body:        `{"question":"Q","options":"A\r\nB","answerIndex":" 1 "}`,
			wantOptions: []string{"A", "B"},
			wantIndex:   1,
		},
		{
			name:        "unparsable_index_defaults_to_zero",
			body:        `{"question":"Q","options":"A","answerIndex":"first"}`,
			wantOptions: []string{"A"},
			wantIndex:   0,
		},
		{
			name:        "missing_index",
			body:        `{"question":"Q","options":"A"}`,
			wantOptions: []string{"A"},
			wantIndex:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req QuizUpsertRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			draft := req.Draft()
			if !reflect.DeepEqual(draft.Options, tt.wantOptions) {
				t.Errorf("Options = %q, want %q", draft.Options, tt.wantOptions)
			}
			if draft.AnswerIndex != tt.wantIndex {
				t.Errorf("AnswerIndex = %d, want %d", draft.AnswerIndex, tt.wantIndex)
			}
		})
	}
}

func TestValidator_Rules(t *testing.T) {
	v := New()

	t.Run("blank_title_rejected", func(t *testing.T) {
		req := &NoteUpsertRequest{Title: "   "}
		errs := v.Validate(req)
		if !errs.Has("title") {
			t.Errorf("expected title error, got %v", errs)
		}
	})

	t.Run("user_requires_email_and_password", func(t *testing.T) {
		req := &UserUpsertRequest{Email: " ", Password: ""}
		req.Normalize()
		errs := v.Validate(req)
		if !errs.Has("email") || !errs.Has("password") {
			t.Errorf("expected email and password errors, got %v", errs)
		}
	})

	t.Run("due_date_format", func(t *testing.T) {
		if errs := v.Validate(&AssignmentUpsertRequest{Title: "T", DueDate: "2024-13-40"}); !errs.Has("dueDate") {
			t.Errorf("expected dueDate error, got %v", errs)
		}
		if errs := v.Validate(&AssignmentUpsertRequest{Title: "T", DueDate: "2024-05-01"}); errs != nil {
			t.Errorf("expected valid, got %v", errs)
		}
		if errs := v.Validate(&AssignmentUpsertRequest{Title: "T"}); errs != nil {
			t.Errorf("due date is optional, got %v", errs)
		}
	})

	t.Run("quiz_draft", func(t *testing.T) {
		bv := v.GetBusinessValidator()
		if errs := bv.ValidateQuizDraft(&QuizDraft{Question: "Q", Options: []string{"A", "B"}, AnswerIndex: 1}); errs != nil {
			t.Errorf("expected valid draft, got %v", errs)
		}
		if errs := bv.ValidateQuizDraft(&QuizDraft{Question: "Q", Options: []string{}}); !errs.Has("options") {
			t.Errorf("expected options error, got %v", errs)
		}
		if errs := bv.ValidateQuizDraft(&QuizDraft{Question: "", Options: []string{"A"}}); !errs.Has("question") {
			t.Errorf("expected question error, got %v", errs)
		}
		if errs := bv.ValidateQuizDraft(&QuizDraft{Question: "Q", Options: []string{"A", "B"}, AnswerIndex: 2}); !errs.Has("answerIndex") {
			t.Errorf("expected answerIndex error, got %v", errs)
		}
	})
}
