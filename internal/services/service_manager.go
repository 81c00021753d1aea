package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Quiz      QuizEngineConfig
	Bootstrap BootstrapAdmin
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	config    ServiceManagerConfig

	// Service instances
	sessions            SessionManager
	authService         AuthService
	userService         UserService
	noteService         NoteService
	quizService         QuizService
	assignmentService   AssignmentService
	quizEngine          QuizEngine
	submissionService   SubmissionService
	dashboardService    DashboardService
	importExportService ImportExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		config:    config,
	}
}

// NewDefaultServiceManager uses sequential quizzes that record every answer
// and the stock bootstrap administrator.
func NewDefaultServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) ServiceManager {
	config := ServiceManagerConfig{
		Quiz: QuizEngineConfig{
			Mode:              models.QuizSequential,
			RecordSubmissions: true,
		},
		Bootstrap: BootstrapAdmin{
			Email:    "admin@bank.com",
			Password: "admin123",
		},
	}

	return NewServiceManager(repo, logger, validator, publisher, config)
}

// Initialize sets up all services and guarantees the bootstrap admin exists
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.initializeServices()

	if _, err := sm.authService.EnsureBootstrapAdmin(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully", "quiz_mode", sm.quizEngine.Mode())

	return nil
}

func (sm *serviceManager) initializeServices() {
	sm.sessions = NewSessionManager(sm.repo, sm.logger)
	sm.authService = NewAuthService(sm.repo, sm.sessions, sm.logger, sm.validator, sm.publisher, sm.config.Bootstrap)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator)
	sm.noteService = NewNoteService(sm.repo, sm.logger, sm.validator)
	sm.quizService = NewQuizService(sm.repo, sm.logger, sm.validator)
	sm.assignmentService = NewAssignmentService(sm.repo, sm.logger, sm.validator)
	sm.quizEngine = NewQuizEngine(sm.repo, sm.sessions, sm.logger, sm.publisher, sm.config.Quiz)
	sm.submissionService = NewSubmissionService(sm.repo, sm.sessions, sm.logger, sm.publisher)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.importExportService = NewImportExportService(sm.repo, sm.dashboardService, sm.logger, sm.validator)
}

// Service getters

func (sm *serviceManager) ready() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Sessions() SessionManager {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.sessions
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.userService
}

func (sm *serviceManager) Note() NoteService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.noteService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.quizService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.assignmentService
}

func (sm *serviceManager) QuizEngine() QuizEngine {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.quizEngine
}

func (sm *serviceManager) Submission() SubmissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.submissionService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.dashboardService
}

func (sm *serviceManager) ImportExport() ImportExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.ready()
	return sm.importExportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
