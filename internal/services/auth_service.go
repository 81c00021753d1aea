package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// View names. The index view is the public entry point every denial
// redirects to.
const (
	ViewIndex   = "index"
	ViewAdmin   = "admin"
	ViewStudent = "student"
)

// views maps each view to the role it requires. An empty role means public.
var views = map[string]models.UserRole{
	ViewIndex:   "",
	ViewAdmin:   models.RoleAdmin,
	ViewStudent: models.RoleStudent,
}

// LandingView is the view a freshly signed-in user is sent to.
func LandingView(role models.UserRole) string {
	if role == models.RoleAdmin {
		return ViewAdmin
	}
	return ViewStudent
}

// BootstrapAdmin is the administrator guaranteed to exist after startup
type BootstrapAdmin struct {
	Email    string
	Password string
}

var errAdminPresent = errors.New("admin present")

// ===== SESSION MANAGER =====

type sessionManager struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewSessionManager(repo repositories.Repository, logger *slog.Logger) SessionManager {
	return &sessionManager{repo: repo, logger: logger}
}

// Login replaces any existing session with one for user.
func (m *sessionManager) Login(ctx context.Context, user *models.User) error {
	if err := m.repo.Session().Save(ctx, models.NewSession(user)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *sessionManager) Logout(ctx context.Context) error {
	if err := m.repo.Session().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (m *sessionManager) Current(ctx context.Context) (*models.Session, bool) {
	return m.repo.Session().Get(ctx)
}

// ===== AUTH SERVICE =====

type authService struct {
	repo      repositories.Repository
	sessions  SessionManager
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	bootstrap BootstrapAdmin
}

func NewAuthService(repo repositories.Repository, sessions SessionManager, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, bootstrap BootstrapAdmin) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		bootstrap: bootstrap,
	}
}

// EnsureBootstrapAdmin materialises the configured administrator when the
// user collection holds no admin. An account already using the bootstrap
// email is promoted and takes the bootstrap password, so only the configured
// credentials open the admin view.
func (s *authService) EnsureBootstrapAdmin(ctx context.Context) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(s.bootstrap.Email))
	password := strings.TrimSpace(s.bootstrap.Password)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: bootstrap admin needs an email and a password", ErrValidationFailed)
	}

	var admin models.User
	err := s.repo.User().Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.IsAdmin() {
				admin = u
				return nil, errAdminPresent
			}
		}

		for i := range users {
			if strings.EqualFold(users[i].Email, email) {
				s.logger.WarnContext(ctx, "Promoting existing account to bootstrap admin", "user_id", users[i].ID)
				users[i].Role = models.RoleAdmin
				users[i].Password = password
				admin = users[i]
				return users, nil
			}
		}

		admin = models.User{
			ID:       ids.New(ids.PrefixUser),
			Email:    email,
			Password: password,
			Role:     models.RoleAdmin,
		}
		return append(users, admin), nil
	})
	if errors.Is(err, errAdminPresent) {
		return &admin, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	s.logger.InfoContext(ctx, "Bootstrap admin created", "user_id", admin.ID, "email", admin.Email)
	return &admin, nil
}

// Authenticate matches the email case-insensitively and the password exactly.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	req := &LoginRequest{Email: email, Password: password}
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, ErrInvalidCredentials
	}

	user, ok := s.repo.User().GetByEmail(ctx, req.Email)
	if !ok || user.Password != req.Password {
		s.logger.InfoContext(ctx, "Authentication failed", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Login(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "role", user.Role)
	publishEvent(ctx, s.publisher, s.logger, events.TypeUserLoggedIn, events.LoginData{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})

	return &LoginResult{
		Session: models.NewSession(user),
		Landing: LandingView(user.Role),
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	session, ok := s.sessions.Current(ctx)
	if err := s.sessions.Logout(ctx); err != nil {
		return err
	}

	if ok {
		s.logger.InfoContext(ctx, "User logged out", "user_id", session.UserID)
		publishEvent(ctx, s.publisher, s.logger, events.TypeUserLoggedOut, events.LoginData{
			UserID: session.UserID,
			Email:  session.Email,
			Role:   string(session.Role),
		})
	}
	return nil
}

// Authorize allows an empty role unconditionally; any other role requires a
// session holding exactly that role.
func (s *authService) Authorize(ctx context.Context, required models.UserRole) Decision {
	session, ok := s.sessions.Current(ctx)
	if required == "" {
		return Decision{Allowed: true, Session: session}
	}
	if !ok || session.Role != required {
		return Decision{Allowed: false, Redirect: ViewIndex, Session: session}
	}
	return Decision{Allowed: true, Session: session}
}

func (s *authService) AuthorizeView(ctx context.Context, view string) (Decision, error) {
	required, ok := views[view]
	if !ok {
		return Decision{}, fmt.Errorf("view %q: %w", view, ErrNotFound)
	}
	return s.Authorize(ctx, required), nil
}
