package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

// StudentHandler serves the student view: materials, assignments and the
// quiz.
type StudentHandler struct {
	BaseHandler
	notes       services.NoteService
	assignments services.AssignmentService
	submissions services.SubmissionService
	engine      services.QuizEngine
}

func NewStudentHandler(notes services.NoteService, assignments services.AssignmentService, submissions services.SubmissionService, engine services.QuizEngine, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		notes:       notes,
		assignments: assignments,
		submissions: submissions,
		engine:      engine,
	}
}

func (h *StudentHandler) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.notes.List(c.Request.Context(), paperFilters(c)))
}

// GetNoteHTML renders a note's content as an HTML fragment
// @Summary Render note
// @Tags student
// @Produce html
// @Param id path string true "Note ID"
// @Router /student/notes/{id}/html [get]
func (h *StudentHandler) GetNoteHTML(c *gin.Context) {
	html, err := h.notes.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *StudentHandler) ListAssignments(c *gin.Context) {
	c.JSON(http.StatusOK, h.assignments.List(c.Request.Context()))
}

func (h *StudentHandler) SubmitAssignment(c *gin.Context) {
	h.LogRequest(c, "Submitting assignment", "assignment_id", c.Param("id"))

	sub, err := h.submissions.SubmitAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *StudentHandler) MySubmissions(c *gin.Context) {
	subs, err := h.submissions.Mine(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// ===== QUIZ =====

// StartQuiz begins a quiz over a paper (sequential) or exam key (random)
// @Summary Start quiz
// @Tags student
// @Accept json
// @Param request body validator.QuizStartRequest true "Paper or exam key"
// @Success 200 {object} models.QuestionForStudent
// @Failure 409 {object} ErrorResponse "No questions available"
// @Router /student/quiz/start [post]
func (h *StudentHandler) StartQuiz(c *gin.Context) {
	h.LogRequest(c, "Starting quiz")

	var req validator.QuizStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	q, err := h.engine.Start(c.Request.Context(), req.Key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": h.engine.Mode(), "question": q})
}

func (h *StudentHandler) CurrentQuestion(c *gin.Context) {
	q, err := h.engine.Current(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": h.engine.Mode(), "question": q})
}

func (h *StudentHandler) NextQuestion(c *gin.Context) {
	q, err := h.engine.Next(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": h.engine.Mode(), "question": q})
}

// CheckAnswer evaluates the selected option of the current question
// @Summary Check answer
// @Tags student
// @Accept json
// @Param request body validator.AnswerRequest true "Selected option index"
// @Success 200 {object} services.AnswerOutcome
// @Failure 409 {object} ErrorResponse "No option selected or nothing to answer"
// @Router /student/quiz/answer [post]
func (h *StudentHandler) CheckAnswer(c *gin.Context) {
	h.LogRequest(c, "Checking answer")

	var req validator.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	outcome, err := h.engine.CheckAnswer(c.Request.Context(), req.Selected)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
