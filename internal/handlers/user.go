package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/dto"
	apierrors "github.com/esantostaype/task-automation-sub001/internal/errors"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
)

// UserHandler exposes designer listings and workloads.
type UserHandler struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// ListUsers returns every designer with roles
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	items := make([]dto.DesignerDTO, len(users))
	for i, u := range users {
		items[i] = dto.ToDesignerDTO(u)
	}
	c.JSON(http.StatusOK, gin.H{"users": items})
}

// GetUser returns one designer with roles and vacations
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userRepo.FindByID(userID, "Roles", "Roles.Type", "Roles.Brand", "Vacations")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToDesignerDTO(*user))
}

// GetUserQueue returns a designer's active queue ordered by start date
func (h *UserHandler) GetUserQueue(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if _, err := h.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	var filter repository.QueueFilter
	if v, ok := parseOptionalID(c, "type_id"); ok {
		filter.TypeID = v
	} else if c.IsAborted() {
		return
	}
	if v, ok := parseOptionalID(c, "brand_id"); ok {
		filter.BrandID = v
	} else if c.IsAborted() {
		return
	}

	tasks, err := h.taskRepo.ActiveQueue(userID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch queue")
		return
	}

	items := make([]dto.TaskListItemDTO, len(tasks))
	for i, t := range tasks {
		items[i] = dto.ToTaskListItemDTO(t)
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}
