package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/events"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories/kvstore"
	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/storage"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	backend, err := storage.NewMemoryBackend()
	if err != nil {
		t.Fatalf("Failed to start memory backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := kvstore.NewKVRepository(storage.NewStore(backend, storage.DefaultNamespace, slogger))
	manager := services.NewDefaultServiceManager(repo, slogger, validator.New(), events.NewMockEventPublisher(slogger))
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	logger := utils.NewSlogLogger(slogger)
	router := gin.New()
	SetupMiddleware(router, logger, false)
	NewHandlerManager(manager, logger).SetupRoutes(router)
	return router
}

// client keeps one profile cookie across requests, like a browser tab.
type client struct {
	t       *testing.T
	router  *gin.Engine
	profile string
}

func newClient(t *testing.T, router *gin.Engine) *client {
	return &client{t: t, router: router}
}

func (cl *client) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	cl.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if cl.profile != "" {
		req.AddCookie(&http.Cookie{Name: ProfileCookie, Value: cl.profile})
	}

	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == ProfileCookie {
			cl.profile = cookie.Value
		}
	}
	return w
}

func (cl *client) login(email, password string) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": password})
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	w := newClient(t, router).do(http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginAndViews(t *testing.T) {
	router := newTestRouter(t)
	admin := newClient(t, router)

	w := admin.login("Admin@Bank.com", "admin123")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var login LoginResponse
	decode(t, w, &login)
	if login.Landing != services.ViewAdmin || login.Redirect != "/admin.html" {
		t.Errorf("unexpected login response %+v", login)
	}
	if admin.profile == "" {
		t.Fatal("no profile cookie issued")
	}

	if w := admin.do(http.MethodGet, "/api/v1/auth/session", nil); w.Code != http.StatusOK {
		t.Errorf("session lookup failed: %d", w.Code)
	}

	tests := []struct {
		view    string
		allowed bool
		status  int
	}{
		{view: "index", allowed: true, status: http.StatusOK},
		{view: "admin", allowed: true, status: http.StatusOK},
		{view: "student", allowed: false, status: http.StatusOK},
		{view: "reports", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			w := admin.do(http.MethodGet, "/api/v1/views/"+tt.view, nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if tt.status != http.StatusOK {
				return
			}
			var d services.Decision
			decode(t, w, &d)
			if d.Allowed != tt.allowed {
				t.Errorf("Allowed = %v, want %v", d.Allowed, tt.allowed)
			}
			if !d.Allowed && d.Redirect != "/" {
				t.Errorf("denied view should redirect to /, got %q", d.Redirect)
			}
		})
	}

	stranger := newClient(t, router)
	if w := stranger.login("admin@bank.com", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", w.Code)
	}
	if w := stranger.do(http.MethodGet, "/api/v1/auth/session", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("failed login must leave no session, got %d", w.Code)
	}

	if w := admin.do(http.MethodPost, "/api/v1/auth/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", w.Code)
	}
	if w := admin.do(http.MethodGet, "/api/v1/admin/analytics", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	router := newTestRouter(t)
	admin := newClient(t, router)
	admin.login("admin@bank.com", "admin123")

	if w := admin.do(http.MethodPost, "/api/v1/admin/users", map[string]string{"email": "kid@school.com", "password": "pw"}); w.Code != http.StatusCreated {
		t.Fatalf("create student failed: %d %s", w.Code, w.Body.String())
	}

	student := newClient(t, router)
	student.login("kid@school.com", "pw")
	anonymous := newClient(t, router)

	tests := []struct {
		name   string
		client *client
		path   string
		accept string
		status int
	}{
		{name: "anonymous api", client: anonymous, path: "/api/v1/admin/users", status: http.StatusUnauthorized},
		{name: "anonymous browser", client: anonymous, path: "/api/v1/student/notes", accept: "text/html", status: http.StatusSeeOther},
		{name: "student on admin", client: student, path: "/api/v1/admin/users", status: http.StatusForbidden},
		{name: "student on student", client: student, path: "/api/v1/student/notes", status: http.StatusOK},
		{name: "admin on student", client: admin, path: "/api/v1/student/notes", status: http.StatusForbidden},
		{name: "admin on admin", client: admin, path: "/api/v1/admin/users", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tt.accept != "" {
				w = tt.client.do(http.MethodGet, tt.path, nil, "Accept", tt.accept)
			} else {
				w = tt.client.do(http.MethodGet, tt.path, nil)
			}
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if w.Code == http.StatusSeeOther && w.Header().Get("Location") != "/" {
				t.Errorf("redirected to %q", w.Header().Get("Location"))
			}
			if w.Code == http.StatusForbidden {
				var resp ErrorResponse
				decode(t, w, &resp)
				if resp.Redirect != "/" {
					t.Errorf("denial should carry redirect /, got %q", resp.Redirect)
				}
			}
		})
	}
}

func TestAdminCRUDAndQuizFlow(t *testing.T) {
	router := newTestRouter(t)
	admin := newClient(t, router)
	admin.login("admin@bank.com", "admin123")

	if w := admin.do(http.MethodPost, "/api/v1/admin/quizzes", map[string]interface{}{
		"paper": "p1", "question": "Pick C", "options": "A\nB\nC", "answerIndex": 9,
	}); w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range answer: expected 400, got %d", w.Code)
	}

	w := admin.do(http.MethodPost, "/api/v1/admin/quizzes", map[string]interface{}{
		"paper": "p1", "question": "Pick C", "options": "A\nB\nC", "answerIndex": "2",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz failed: %d %s", w.Code, w.Body.String())
	}
	var q models.QuizQuestion
	decode(t, w, &q)

	if w := admin.do(http.MethodPut, "/api/v1/admin/quizzes/"+q.ID, map[string]interface{}{
		"paper": "p1", "question": "Pick C", "options": "A\nB\nC", "answerIndex": 2,
	}); w.Code != http.StatusOK {
		t.Fatalf("update quiz: expected 200, got %d", w.Code)
	}

	if w := admin.do(http.MethodPost, "/api/v1/admin/users", map[string]string{"email": "kid@school.com", "password": "pw"}); w.Code != http.StatusCreated {
		t.Fatalf("create student failed: %d", w.Code)
	}
	if w := admin.do(http.MethodPost, "/api/v1/admin/users", map[string]string{"email": "KID@school.com", "password": "pw"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", w.Code)
	}

	student := newClient(t, router)
	student.login("kid@school.com", "pw")

	if w := student.do(http.MethodPost, "/api/v1/student/quiz/answer", map[string]interface{}{"selected": 2}); w.Code != http.StatusConflict {
		t.Errorf("answer before start: expected 409, got %d", w.Code)
	}
	if w := student.do(http.MethodPost, "/api/v1/student/quiz/start", map[string]string{"key": "p1"}); w.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", w.Code, w.Body.String())
	}
	if w := student.do(http.MethodPost, "/api/v1/student/quiz/answer", map[string]interface{}{}); w.Code != http.StatusConflict {
		t.Errorf("missing selection: expected 409, got %d", w.Code)
	}

	w = student.do(http.MethodPost, "/api/v1/student/quiz/answer", map[string]interface{}{"selected": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("answer failed: %d %s", w.Code, w.Body.String())
	}
	var outcome services.AnswerOutcome
	decode(t, w, &outcome)
	if !outcome.Correct || outcome.Submission == nil {
		t.Errorf("unexpected outcome %+v", outcome)
	}

	w = admin.do(http.MethodGet, "/api/v1/admin/analytics", nil)
	var overview models.DashboardOverview
	decode(t, w, &overview)
	if overview.QuizSubmissions != 1 || overview.CorrectAnswers != 1 || overview.Students != 1 {
		t.Errorf("unexpected overview %+v", overview)
	}

	w = admin.do(http.MethodGet, "/api/v1/admin/export/submissions.xlsx", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType {
		t.Errorf("export failed: %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	if w := admin.do(http.MethodDelete, "/api/v1/admin/quizzes/"+q.ID, nil); w.Code != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", w.Code)
	}
	if w := admin.do(http.MethodDelete, "/api/v1/admin/quizzes/"+q.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}
