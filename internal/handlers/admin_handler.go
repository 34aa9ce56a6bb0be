package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/pagination"
	"itemvault/internal/services"
)

// adminActor is recorded as the user of audit entries made with the admin key.
const adminActor = "admin"

// AdminHandler handles user administration behind the admin API key
type AdminHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService services.UserServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

// ListUsers returns a page of users
// @Summary     List users
// @Description List every registered user ordered by email
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[UserResponse] "Users"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users := make([]UserResponse, 0, len(result.Data))
	for i := range result.Data {
		users = append(users, toUserResponse(&result.Data[i]))
	}
	c.JSON(http.StatusOK, pagination.NewPageResponse(users, result.Page, result.PageSize, result.TotalItems))
}

// DeleteUser removes a user account
// @Summary     Delete user
// @Description Permanently delete a user so the email can be registered again
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "User ID"
// @Success     200 {object} map[string]string "User deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminActor, services.AuditActionDelete, "user", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
