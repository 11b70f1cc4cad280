package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/esantostaype/task-automation-sub001/internal/dto"
	apierrors "github.com/esantostaype/task-automation-sub001/internal/errors"
	"github.com/esantostaype/task-automation-sub001/internal/services"
)

// RoleHandler coordinates designer role HTTP handlers.
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// GrantRole attaches a role to a designer
func (h *RoleHandler) GrantRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type GrantRoleRequest struct {
		TypeID  uint64  `json:"type_id" binding:"required"`
		BrandID *uint64 `json:"brand_id"`
	}

	var req GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.Grant(userID, req.TypeID, req.BrandID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerNotFound),
			errors.Is(err, services.ErrTypeNotFound),
			errors.Is(err, services.ErrBrandNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrRoleExists):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to grant role")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role))
}

// RevokeRole removes a role from a designer
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	roleID, err := strconv.ParseUint(c.Param("role_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.roleService.Revoke(roleID); err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to revoke role")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role revoked successfully",
	})
}
