package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Redirect  string      `json:"redirect,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// BaseHandler carries the logging and error mapping shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.LoggerFromContext(c.Request.Context(), h.logger)
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.log(c).Debug(msg, append(args, "path", c.FullPath())...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.log(c).Error(msg, "error", err, "path", c.Request.URL.Path)
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

func (h *BaseHandler) respondBindError(c *gin.Context, err error) {
	h.respondError(c, http.StatusBadRequest, "bad_request", "Invalid request body", err.Error())
}

func (h *BaseHandler) respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// ===== ERROR HANDLING =====

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors

	// Map service errors to HTTP status codes
	switch {
	case errors.As(err, &verrs):
		h.respondError(c, http.StatusBadRequest, "validation_failed", "Validation failed", verrs)
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "validation_failed", "Validation failed", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
	case errors.Is(err, services.ErrUnauthorized):
		h.respondError(c, http.StatusUnauthorized, "unauthorized", "Sign in required", nil)
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrProtectedUser):
		h.respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		h.respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		h.respondError(c, http.StatusConflict, "email_taken", err.Error(), nil)
	case errors.Is(err, services.ErrNoSelection):
		h.respondError(c, http.StatusConflict, "no_selection", "Please select an option", nil)
	case errors.Is(err, services.ErrNoQuestions):
		h.respondError(c, http.StatusConflict, "no_questions", "No questions available", nil)
	case errors.Is(err, services.ErrNotAnswerable):
		h.respondError(c, http.StatusConflict, "not_answerable", "No question is being answered", nil)
	default:
		h.LogError(c, err, "Unhandled service error")
		h.respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}
