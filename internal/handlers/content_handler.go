package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// ContentHandler serves admin CRUD over notes, quiz questions and
// assignments.
type ContentHandler struct {
	BaseHandler
	notes       services.NoteService
	quizzes     services.QuizService
	assignments services.AssignmentService
}

func NewContentHandler(notes services.NoteService, quizzes services.QuizService, assignments services.AssignmentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: NewBaseHandler(logger),
		notes:       notes,
		quizzes:     quizzes,
		assignments: assignments,
	}
}

func paperFilters(c *gin.Context) repositories.PaperFilters {
	return repositories.PaperFilters{Paper: strings.TrimSpace(c.Query("paper"))}
}

// ===== NOTES =====

// ListNotes lists notes, optionally for one paper
// @Summary List notes
// @Tags notes
// @Param paper query string false "Paper filter"
// @Success 200 {array} models.Note
// @Router /admin/notes [get]
func (h *ContentHandler) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.notes.List(c.Request.Context(), paperFilters(c)))
}

func (h *ContentHandler) GetNote(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *ContentHandler) SaveNote(c *gin.Context) {
	h.LogRequest(c, "Saving note", "note_id", c.Param("id"))

	var req validator.NoteUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	note, err := h.notes.Upsert(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(upsertStatus(c, note.ID), note)
}

func (h *ContentHandler) DeleteNote(c *gin.Context) {
	h.LogRequest(c, "Deleting note", "note_id", c.Param("id"))

	removed, err := h.notes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDeleted(c, removed)
}

// ===== QUIZ QUESTIONS =====

func (h *ContentHandler) ListQuizzes(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizzes.List(c.Request.Context(), paperFilters(c)))
}

func (h *ContentHandler) ListPapers(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizzes.Papers(c.Request.Context()))
}

func (h *ContentHandler) GetQuiz(c *gin.Context) {
	q, err := h.quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// SaveQuiz stores a question. options is the multi-line form value and
// answerIndex may be a number or a string.
// @Summary Save a quiz question
// @Tags quizzes
// @Accept json
// @Param request body validator.QuizUpsertRequest true "Question form"
// @Success 200 {object} models.QuizQuestion
// @Success 201 {object} models.QuizQuestion
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /admin/quizzes/{id} [put]
func (h *ContentHandler) SaveQuiz(c *gin.Context) {
	h.LogRequest(c, "Saving quiz question", "quiz_id", c.Param("id"))

	var req validator.QuizUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	q, err := h.quizzes.Upsert(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(upsertStatus(c, q.ID), q)
}

func (h *ContentHandler) DeleteQuiz(c *gin.Context) {
	h.LogRequest(c, "Deleting quiz question", "quiz_id", c.Param("id"))

	removed, err := h.quizzes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDeleted(c, removed)
}

// ===== ASSIGNMENTS =====

func (h *ContentHandler) ListAssignments(c *gin.Context) {
	c.JSON(http.StatusOK, h.assignments.List(c.Request.Context()))
}

func (h *ContentHandler) GetAssignment(c *gin.Context) {
	a, err := h.assignments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ContentHandler) SaveAssignment(c *gin.Context) {
	h.LogRequest(c, "Saving assignment", "assignment_id", c.Param("id"))

	var req validator.AssignmentUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	a, err := h.assignments.Upsert(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(upsertStatus(c, a.ID), a)
}

func (h *ContentHandler) DeleteAssignment(c *gin.Context) {
	h.LogRequest(c, "Deleting assignment", "assignment_id", c.Param("id"))

	removed, err := h.assignments.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDeleted(c, removed)
}
