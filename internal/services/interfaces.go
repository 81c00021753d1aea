package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type LoginRequest = validator.LoginRequest
type UserUpsertRequest = validator.UserUpsertRequest
type NoteUpsertRequest = validator.NoteUpsertRequest
type QuizUpsertRequest = validator.QuizUpsertRequest
type AssignmentUpsertRequest = validator.AssignmentUpsertRequest

// Decision is the outcome of an authorization check. A denied decision always
// names the view to redirect to.
type Decision struct {
	Allowed  bool            `json:"allowed"`
	Redirect string          `json:"redirect,omitempty"`
	Session  *models.Session `json:"session,omitempty"`
}

type LoginResult struct {
	Session models.Session `json:"session"`
	Landing string         `json:"landing"`
}

// AnswerOutcome reports a checked answer. Submission is set when the answer
// was recorded.
type AnswerOutcome struct {
	QuestionID    string             `json:"question_id"`
	Paper         string             `json:"paper"`
	Selected      int                `json:"selected"`
	Correct       bool               `json:"correct"`
	CorrectIndex  int                `json:"correct_index"`
	CorrectOption string             `json:"correct_option"`
	Submission    *models.Submission `json:"submission,omitempty"`
}

type ImportRowError struct {
	Row    int                        `json:"row"`
	Errors validator.ValidationErrors `json:"errors"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped,omitempty"`
}

// ===== SERVICE INTERFACES =====

type SessionManager interface {
	Login(ctx context.Context, user *models.User) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, bool)
}

type AuthService interface {
	EnsureBootstrapAdmin(ctx context.Context) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context) error
	Authorize(ctx context.Context, required models.UserRole) Decision
	AuthorizeView(ctx context.Context, view string) (Decision, error)
}

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) []models.User
	Get(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, id string, req *UserUpsertRequest) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type NoteService interface {
	List(ctx context.Context, filters repositories.PaperFilters) []models.Note
	Get(ctx context.Context, id string) (*models.Note, error)
	Upsert(ctx context.Context, id string, req *NoteUpsertRequest) (*models.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
	Render(ctx context.Context, id string) (string, error)
}

type QuizService interface {
	List(ctx context.Context, filters repositories.PaperFilters) []models.QuizQuestion
	Get(ctx context.Context, id string) (*models.QuizQuestion, error)
	Upsert(ctx context.Context, id string, req *QuizUpsertRequest) (*models.QuizQuestion, error)
	Delete(ctx context.Context, id string) (bool, error)
	Papers(ctx context.Context) []string
}

type AssignmentService interface {
	List(ctx context.Context) []models.Assignment
	Get(ctx context.Context, id string) (*models.Assignment, error)
	Upsert(ctx context.Context, id string, req *AssignmentUpsertRequest) (*models.Assignment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type QuizEngine interface {
	Mode() models.QuizMode
	Start(ctx context.Context, key string) (*models.QuestionForStudent, error)
	Next(ctx context.Context) (*models.QuestionForStudent, error)
	Current(ctx context.Context) (*models.QuestionForStudent, error)
	CheckAnswer(ctx context.Context, selected *int) (*AnswerOutcome, error)
}

type SubmissionService interface {
	List(ctx context.Context, filters repositories.SubmissionFilters) []models.Submission
	SubmitAssignment(ctx context.Context, assignmentID string) (*models.Submission, error)
	Mine(ctx context.Context) ([]models.Submission, error)
}

type DashboardService interface {
	Overview(ctx context.Context) *models.DashboardOverview
}

type ImportExportService interface {
	ExportSubmissions(ctx context.Context, w io.Writer) error
	ImportQuizzes(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// ServiceManager wires and owns every service
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Sessions() SessionManager
	Auth() AuthService
	User() UserService
	Note() NoteService
	Quiz() QuizService
	Assignment() AssignmentService
	QuizEngine() QuizEngine
	Submission() SubmissionService
	Dashboard() DashboardService
	ImportExport() ImportExportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
