package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/esantostaype/task-automation-sub001/internal/dto"
	apierrors "github.com/esantostaype/task-automation-sub001/internal/errors"
	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/services"
	"github.com/esantostaype/task-automation-sub001/internal/utils"
)

type TaskHandler struct {
	taskService       *services.TaskService
	assignmentService *services.AssignmentService
}

func NewTaskHandler(taskService *services.TaskService, assignmentService *services.AssignmentService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		assignmentService: assignmentService,
	}
}

// ListTasks returns tasks with optional status, priority, type, brand and
// assignee filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !models.ValidStatus(status) {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !models.ValidPriority(priority) {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		filter.Priority = &priority
	}
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
	if v, ok := parseOptionalID(c, "user_id"); ok {
		filter.AssignedUserID = v
	} else if c.IsAborted() {
		return
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
// Task is already loaded with relations by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a task and assigns it to the best available designer
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name           string   `json:"name" binding:"required"`
		TypeID         uint64   `json:"type_id" binding:"required"`
		CategoryID     uint64   `json:"category_id" binding:"required"`
		BrandID        uint64   `json:"brand_id" binding:"required"`
		Priority       string   `json:"priority"`
		CustomDuration *float64 `json:"custom_duration"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, best, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:           req.Name,
		TypeID:         req.TypeID,
		CategoryID:     req.CategoryID,
		BrandID:        req.BrandID,
		Priority:       models.TaskPriority(req.Priority),
		CustomDuration: req.CustomDuration,
	})
	if err != nil {
		var noDesigner *services.NoDesignerError
		switch {
		case errors.As(err, &noDesigner):
			apierrors.UnprocessableWithDetails(c, apierrors.ErrCodeNoCandidate,
				"No designer available for this task", noDesigner.Diagnostics)
		case errors.Is(err, services.ErrNameRequired),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidDuration),
			errors.Is(err, services.ErrInvalidTypeID),
			errors.Is(err, services.ErrInvalidBrandID):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCategoryNotFound),
			errors.Is(err, services.ErrTypeNotFound),
			errors.Is(err, services.ErrBrandNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task": dto.ToTaskDTO(*task),
		"slot": dto.ToSlotDTO(*best.Slot, best.BrandID),
	})
}

// UpdateTaskStatus changes the status of a task
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateStatus(task.ID, models.TaskStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			apierrors.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		default:
			apierrors.InternalError(c, "Failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestDesigner previews the best designer for a prospective task without
// creating anything
func (h *TaskHandler) SuggestDesigner(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Query("type_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid type_id")
		return
	}
	brandID, err := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid brand_id")
		return
	}
	duration, err := strconv.ParseFloat(c.DefaultQuery("duration", "1"), 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid duration")
		return
	}
	priority := models.TaskPriority(c.DefaultQuery("priority", string(models.PriorityNormal)))

	best, err := h.assignmentService.GetBestUserWithCache(typeID, brandID, priority, duration)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTypeID),
			errors.Is(err, services.ErrInvalidBrandID),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidDuration):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrTypeNotFound),
			errors.Is(err, services.ErrBrandNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to compute suggestion")
		}
		return
	}

	resp := dto.SuggestionResponse{Diagnostics: best.Diagnostics}
	if best.Slot != nil {
		slot := dto.ToSlotDTO(*best.Slot, best.BrandID)
		resp.Slot = &slot
	}
	c.JSON(http.StatusOK, resp)
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, false
	}
	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}
	return task, true
}

func parseOptionalID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		c.Abort()
		return nil, false
	}
	return &v, true
}
