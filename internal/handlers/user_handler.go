package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/services"
	"github.com/SAP-F-2025/study-portal/internal/utils"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListUsers lists accounts. Administrators are hidden unless
// include_admins=true.
// @Summary List users
// @Tags users
// @Produce json
// @Param include_admins query bool false "Also list administrators"
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	c.JSON(http.StatusOK, h.service.List(c.Request.Context(), h.parseUserFilters(c)))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SaveUser creates a user (POST) or updates the one named in the path (PUT)
func (h *UserHandler) SaveUser(c *gin.Context) {
	h.LogRequest(c, "Saving user", "user_id", c.Param("id"))

	var req validator.UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	user, err := h.service.Upsert(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(upsertStatus(c, user.ID), user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	h.LogRequest(c, "Deleting user", "user_id", c.Param("id"))

	removed, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDeleted(c, removed)
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	if c.Query("include_admins") == "true" {
		return repositories.UserFilters{}
	}
	admin := models.RoleAdmin
	return repositories.UserFilters{ExcludeRole: &admin}
}

// upsertStatus is 201 when the saved record is not the one named in the path.
func upsertStatus(c *gin.Context, savedID string) int {
	if c.Param("id") != savedID {
		return http.StatusCreated
	}
	return http.StatusOK
}

func respondDeleted(c *gin.Context, removed bool) {
	if !removed {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"deleted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
