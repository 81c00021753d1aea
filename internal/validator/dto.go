package validator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Requests carry raw form values. Normalize trims them the same way the
// portal forms always have before any rule is checked.

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
}

// UserUpsertRequest represents the admin user form
type UserUpsertRequest struct {
	Email    string `json:"email" validate:"notblank,max=255"`
	Password string `json:"password" validate:"notblank,max=255"`
}

func (r *UserUpsertRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
}

// NoteUpsertRequest represents the admin note form
type NoteUpsertRequest struct {
	Paper   string `json:"paper" validate:"max=100"`
	Title   string `json:"title" validate:"notblank,max=200"`
	Content string `json:"content"`
}

func (r *NoteUpsertRequest) Normalize() {
	r.Paper = strings.TrimSpace(r.Paper)
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

// QuizUpsertRequest represents the admin quiz form. Options is the multi-line
// textarea, one option per line.
type QuizUpsertRequest struct {
	Paper       string   `json:"paper"`
	Question    string   `json:"question"`
	Options     string   `json:"options"`
	AnswerIndex RawIndex `json:"answerIndex"`
}

// Draft turns the raw form into the question fields that get validated and
// stored: blank option lines are dropped and an unparsable answer index
// becomes 0.
func (r *QuizUpsertRequest) Draft() *QuizDraft {
	return &QuizDraft{
		Paper:       strings.TrimSpace(r.Paper),
		Question:    strings.TrimSpace(r.Question),
		Options:     SplitOptions(r.Options),
		AnswerIndex: r.AnswerIndex.Int(),
	}
}

// QuizDraft is a normalized quiz question awaiting validation
type QuizDraft struct {
	Paper       string   `json:"paper" validate:"max=100"`
	Question    string   `json:"question" validate:"notblank,max=2000"`
	Options     []string `json:"options" validate:"min=1,dive,notblank"`
	AnswerIndex int      `json:"answerIndex" validate:"min=0"`
}

// AssignmentUpsertRequest represents the admin assignment form
type AssignmentUpsertRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *AssignmentUpsertRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

// QuizStartRequest selects the paper (sequential) or exam key (random)
type QuizStartRequest struct {
	Key string `json:"key"`
}

// AnswerRequest carries the selected option; nil means nothing was picked
type AnswerRequest struct {
	Selected *int `json:"selected"`
}

// SplitOptions splits multi-line input into trimmed, non-empty options.
func SplitOptions(text string) []string {
	options := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			options = append(options, line)
		}
	}
	return options
}

// RawIndex accepts an answer index sent either as a JSON number or as the
// string value of a form field.
type RawIndex string

func (r *RawIndex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawIndex(s)
		return nil
	}
	*r = RawIndex(data)
	return nil
}

// Int parses the index, defaulting to 0 when it is not an integer.
func (r RawIndex) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(r)))
	if err != nil {
		return 0
	}
	return n
}
