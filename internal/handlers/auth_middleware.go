package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/services"
)

// viewPaths maps view names to the pages the browser navigates to.
var viewPaths = map[string]string{
	services.ViewIndex:   "/",
	services.ViewAdmin:   "/admin.html",
	services.ViewStudent: "/student.html",
}

func viewPath(view string) string {
	if path, ok := viewPaths[view]; ok {
		return path
	}
	return "/"
}

// AuthMiddleware guards route groups with the authentication gate
type AuthMiddleware struct {
	auth services.AuthService
}

func NewAuthMiddleware(auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireRole lets the request through only for a session holding role.
// Browsers are redirected to the entry page; API clients get 401 without a
// session and 403 with the wrong role.
func (m *AuthMiddleware) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := m.auth.Authorize(c.Request.Context(), role)
		if decision.Allowed {
			if decision.Session != nil {
				c.Set("user_id", decision.Session.UserID)
				c.Set("user_email", decision.Session.Email)
				c.Set("user_role", decision.Session.Role)
			}
			c.Next()
			return
		}

		redirect := viewPath(decision.Redirect)
		if wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}

		status, code := http.StatusUnauthorized, "unauthorized"
		if decision.Session != nil {
			status, code = http.StatusForbidden, "forbidden"
		}
		c.AbortWithStatusJSON(status, ErrorResponse{
			Error:     code,
			Message:   "required role: " + string(role),
			Redirect:  redirect,
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
