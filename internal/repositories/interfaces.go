package repositories

import (
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role        *models.UserRole `json:"role"`
	ExcludeRole *models.UserRole `json:"exclude_role"`
}

func (f UserFilters) Match(u models.User) bool {
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	if f.ExcludeRole != nil && u.Role == *f.ExcludeRole {
		return false
	}
	return true
}

// PaperFilters selects notes or questions by paper. An empty paper matches
// everything.
type PaperFilters struct {
	Paper string `json:"paper"`
}

func (f PaperFilters) MatchPaper(paper string) bool {
	return f.Paper == "" || paper == f.Paper
}

type SubmissionFilters struct {
	StudentEmail string                 `json:"student_email"`
	QuizID       string                 `json:"quiz_id"`
	AssignmentID string                 `json:"assignment_id"`
	Kind         *models.SubmissionKind `json:"kind"`
}

func (f SubmissionFilters) Match(s models.Submission) bool {
	if f.StudentEmail != "" && !strings.EqualFold(s.StudentEmail, f.StudentEmail) {
		return false
	}
	if f.QuizID != "" && s.QuizID != f.QuizID {
		return false
	}
	if f.AssignmentID != "" && s.AssignmentID != f.AssignmentID {
		return false
	}
	if f.Kind != nil && s.Kind() != *f.Kind {
		return false
	}
	return true
}
