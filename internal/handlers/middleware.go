package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	uuid2 "github.com/google/uuid"

	"github.com/SAP-F-2025/study-portal/internal/storage"
	"github.com/SAP-F-2025/study-portal/internal/utils"
)

// ProfileCookie identifies one browser profile. Session and quiz state are
// kept per profile while the collections are shared.
const ProfileCookie = "bp_profile"

const profileCookieMaxAge = 365 * 24 * 60 * 60

// SetupMiddleware sets up common middleware for the Gin router
func SetupMiddleware(router *gin.Engine, logger utils.Logger, secureCookies bool) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(gin.Recovery())

	// Context logger middleware (adds logger with request_id to context)
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))

	router.Use(SecurityMiddleware())
	router.Use(ProfileMiddleware(secureCookies))
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// RequestIDMiddleware generates a unique request ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid2.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// CORSMiddleware provides CORS support
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Disposition")
		c.Header("Access-Control-Max-Age", "43200")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ProfileMiddleware reads or issues the profile cookie and scopes the request
// context to it.
func ProfileMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, err := c.Cookie(ProfileCookie)
		if _, perr := uuid2.Parse(profileID); err != nil || perr != nil {
			profileID = uuid2.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ProfileCookie, profileID, profileCookieMaxAge, "/", "", secure, true)
		}

		c.Set("profile_id", profileID)
		c.Request = c.Request.WithContext(storage.WithProfile(c.Request.Context(), profileID))
		c.Next()
	}
}
