package dto

import (
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	User UserDTO `json:"user"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Name           string              `json:"name"`
	ExternalID     *string             `json:"external_id,omitempty"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	TypeID         uint64              `json:"type_id"`
	CategoryID     uint64              `json:"category_id"`
	BrandID        uint64              `json:"brand_id"`
	Type           string              `json:"type,omitempty"`
	Category       string              `json:"category,omitempty"`
	Brand          string              `json:"brand,omitempty"`
	DurationDays   float64             `json:"duration_days"`
	StartDate      time.Time           `json:"start_date"`
	Deadline       time.Time           `json:"deadline"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Assignments    []TaskAssignmentDTO `json:"assignments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        uint64              `json:"id"`
	Name      string              `json:"name"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	StartDate time.Time           `json:"start_date"`
	Deadline  time.Time           `json:"deadline"`
	CreatedAt time.Time           `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Name:         task.Name,
		ExternalID:   task.ExternalID,
		Status:       task.Status,
		Priority:     task.Priority,
		TypeID:       task.TypeID,
		CategoryID:   task.CategoryID,
		BrandID:      task.BrandID,
		DurationDays: task.DurationDays(),
		StartDate:    task.StartDate,
		Deadline:     task.Deadline,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include catalog names if preloaded
	if task.Type.ID != 0 {
		dto.Type = task.Type.Name
	}
	if task.Category.ID != 0 {
		dto.Category = task.Category.Name
	}
	if task.Brand.ID != 0 {
		dto.Brand = task.Brand.Name
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]TaskAssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = TaskAssignmentDTO{
				User: ToUserDTO(assignment.User),
			}
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:        task.ID,
		Name:      task.Name,
		Status:    task.Status,
		Priority:  task.Priority,
		StartDate: task.StartDate,
		Deadline:  task.Deadline,
		CreatedAt: task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
