package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories/kvstore"
	"github.com/SAP-F-2025/study-portal/internal/storage"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type testEnv struct {
	repo      *kvstore.KVRepository
	backend   *storage.MemoryBackend
	publisher *events.MockEventPublisher
	manager   ServiceManager
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestEnv starts an embedded store and an initialized service manager.
func newTestEnv(t *testing.T, quiz QuizEngineConfig) *testEnv {
	t.Helper()

	backend, err := storage.NewMemoryBackend()
	if err != nil {
		t.Fatalf("Failed to start memory backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	logger := testLogger()
	repo := kvstore.NewKVRepository(storage.NewStore(backend, storage.DefaultNamespace, logger))
	publisher := events.NewMockEventPublisher(logger)

	manager := NewServiceManager(repo, logger, validator.New(), publisher, ServiceManagerConfig{
		Quiz:      quiz,
		Bootstrap: BootstrapAdmin{Email: "admin@bank.com", Password: "admin123"},
	})
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	return &testEnv{repo: repo, backend: backend, publisher: publisher, manager: manager}
}

func sequentialConfig() QuizEngineConfig {
	return QuizEngineConfig{Mode: models.QuizSequential, RecordSubmissions: true}
}

// signIn creates a student and logs them in on ctx.
func (env *testEnv) signIn(t *testing.T, ctx context.Context, email string) *models.User {
	t.Helper()
	user, err := env.manager.User().Upsert(ctx, "", &UserUpsertRequest{Email: email, Password: "pw"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if _, err := env.manager.Auth().Login(ctx, &LoginRequest{Email: email, Password: "pw"}); err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	return user
}
