package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	auth     services.AuthService
	sessions services.SessionManager
}

func NewAuthHandler(auth services.AuthService, sessions services.SessionManager, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
		sessions:    sessions,
	}
}

type LoginResponse struct {
	Session  interface{} `json:"session"`
	Landing  string      `json:"landing"`
	Redirect string      `json:"redirect"`
}

// Login signs a user in
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Session:  result.Session,
		Landing:  result.Landing,
		Redirect: viewPath(result.Landing),
	})
}

// Logout clears the session of this browser profile
// @Summary Sign out
// @Tags auth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")

	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Signed out", gin.H{"redirect": viewPath(services.ViewIndex)})
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	session, ok := h.sessions.Current(c.Request.Context())
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "unauthorized", "Not signed in", nil)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AuthorizeView reports whether the current session may enter a view
// @Summary Check view access
// @Tags auth
// @Param view path string true "index, admin or student"
// @Success 200 {object} services.Decision
// @Failure 404 {object} ErrorResponse "Unknown view"
// @Router /views/{view} [get]
func (h *AuthHandler) AuthorizeView(c *gin.Context) {
	decision, err := h.auth.AuthorizeView(c.Request.Context(), c.Param("view"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !decision.Allowed {
		decision.Redirect = viewPath(decision.Redirect)
	}
	c.JSON(http.StatusOK, decision)
}
