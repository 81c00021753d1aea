package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxImportSize bounds uploaded question workbooks.
const maxImportSize = 8 << 20

type DashboardHandler struct {
	BaseHandler
	dashboard    services.DashboardService
	submissions  services.SubmissionService
	importExport services.ImportExportService
}

func NewDashboardHandler(dashboard services.DashboardService, submissions services.SubmissionService, importExport services.ImportExportService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:  NewBaseHandler(logger),
		dashboard:    dashboard,
		submissions:  submissions,
		importExport: importExport,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetAnalytics returns the admin overview counts
// @Summary Get analytics
// @Description Counts of users, content and submissions, with per-paper and per-student breakdowns
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardOverview
// @Router /admin/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	h.LogRequest(c, "Getting analytics")

	c.JSON(http.StatusOK, h.dashboard.Overview(c.Request.Context()))
}

// ListSubmissions filters by student, quiz, assignment or kind
func (h *DashboardHandler) ListSubmissions(c *gin.Context) {
	filters := repositories.SubmissionFilters{
		StudentEmail: strings.TrimSpace(c.Query("student")),
		QuizID:       c.Query("quiz_id"),
		AssignmentID: c.Query("assignment_id"),
	}
	switch kind := models.SubmissionKind(c.Query("kind")); kind {
	case models.SubmissionQuiz, models.SubmissionAssignment:
		filters.Kind = &kind
	case "":
	default:
		h.respondError(c, http.StatusBadRequest, "bad_request", "Invalid kind parameter", "kind must be 'quiz' or 'assignment'")
		return
	}

	c.JSON(http.StatusOK, h.submissions.List(c.Request.Context(), filters))
}

// ExportSubmissions downloads every submission as a workbook
// @Summary Export submissions
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /admin/export/submissions.xlsx [get]
func (h *DashboardHandler) ExportSubmissions(c *gin.Context) {
	h.LogRequest(c, "Exporting submissions")

	var buf bytes.Buffer
	if err := h.importExport.ExportSubmissions(c.Request.Context(), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="submissions.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportQuizzes appends questions from an uploaded workbook (form field "file")
// @Summary Import quiz questions
// @Tags quizzes
// @Accept multipart/form-data
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} ErrorResponse "Not a question workbook"
// @Router /admin/quizzes/import [post]
func (h *DashboardHandler) ImportQuizzes(c *gin.Context) {
	h.LogRequest(c, "Importing quiz questions")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	header, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "bad_request", "A workbook is required in the file field", err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondBindError(c, err)
		return
	}
	defer file.Close()

	result, err := h.importExport.ImportQuizzes(c.Request.Context(), file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
