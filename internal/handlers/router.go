package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	userHandler      *UserHandler
	contentHandler   *ContentHandler
	studentHandler   *StudentHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *AuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), serviceManager.Sessions(), logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		contentHandler: NewContentHandler(serviceManager.Note(), serviceManager.Quiz(), serviceManager.Assignment(), logger),
		studentHandler: NewStudentHandler(
			serviceManager.Note(),
			serviceManager.Assignment(),
			serviceManager.Submission(),
			serviceManager.QuizEngine(),
			logger,
		),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Submission(), serviceManager.ImportExport(), logger),
		authMiddleware:   NewAuthMiddleware(serviceManager.Auth()),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/session", hm.authHandler.GetSession)
		}

		v1.GET("/views/:view", hm.authHandler.AuthorizeView)

		// Admin view
		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			users := admin.Group("/users")
			{
				users.GET("", hm.userHandler.ListUsers)
				users.POST("", hm.userHandler.SaveUser)
				users.GET("/:id", hm.userHandler.GetUser)
				users.PUT("/:id", hm.userHandler.SaveUser)
				users.DELETE("/:id", hm.userHandler.DeleteUser)
			}

			notes := admin.Group("/notes")
			{
				notes.GET("", hm.contentHandler.ListNotes)
				notes.POST("", hm.contentHandler.SaveNote)
				notes.GET("/:id", hm.contentHandler.GetNote)
				notes.PUT("/:id", hm.contentHandler.SaveNote)
				notes.DELETE("/:id", hm.contentHandler.DeleteNote)
			}

			quizzes := admin.Group("/quizzes")
			{
				quizzes.GET("", hm.contentHandler.ListQuizzes)
				quizzes.POST("", hm.contentHandler.SaveQuiz)
				quizzes.GET("/papers", hm.contentHandler.ListPapers)
				quizzes.POST("/import", hm.dashboardHandler.ImportQuizzes)
				quizzes.GET("/:id", hm.contentHandler.GetQuiz)
				quizzes.PUT("/:id", hm.contentHandler.SaveQuiz)
				quizzes.DELETE("/:id", hm.contentHandler.DeleteQuiz)
			}

			assignments := admin.Group("/assignments")
			{
				assignments.GET("", hm.contentHandler.ListAssignments)
				assignments.POST("", hm.contentHandler.SaveAssignment)
				assignments.GET("/:id", hm.contentHandler.GetAssignment)
				assignments.PUT("/:id", hm.contentHandler.SaveAssignment)
				assignments.DELETE("/:id", hm.contentHandler.DeleteAssignment)
			}

			admin.GET("/analytics", hm.dashboardHandler.GetAnalytics)
			admin.GET("/submissions", hm.dashboardHandler.ListSubmissions)
			admin.GET("/export/submissions.xlsx", hm.dashboardHandler.ExportSubmissions)
		}

		// Student view
		student := v1.Group("/student")
		student.Use(hm.authMiddleware.RequireRole(models.RoleStudent))
		{
			student.GET("/notes", hm.studentHandler.ListNotes)
			student.GET("/notes/:id/html", hm.studentHandler.GetNoteHTML)
			student.GET("/papers", hm.contentHandler.ListPapers)
			student.GET("/assignments", hm.studentHandler.ListAssignments)
			student.POST("/assignments/:id/submit", hm.studentHandler.SubmitAssignment)
			student.GET("/submissions", hm.studentHandler.MySubmissions)

			quiz := student.Group("/quiz")
			{
				quiz.POST("/start", hm.studentHandler.StartQuiz)
				quiz.GET("/current", hm.studentHandler.CurrentQuestion)
				quiz.POST("/next", hm.studentHandler.NextQuestion)
				quiz.POST("/answer", hm.studentHandler.CheckAnswer)
			}
		}
	}
}

// HealthCheck pings the store
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "study-portal",
	})
}
