package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/scheduling"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrCategoryNotFound = errors.New("task category not found")
)

// NoDesignerError reports that no compatible designer could take the task,
// with the diagnostic counts callers surface instead of silently assigning an
// incompatible designer.
type NoDesignerError struct {
	Diagnostics scheduling.Diagnostics
}

func (e *NoDesignerError) Error() string {
	return fmt.Sprintf("no designer available (compatible=%d available=%d allOnVacation=%t)",
		e.Diagnostics.Compatible, e.Diagnostics.Available, e.Diagnostics.AllOnVacation)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	catalogRepo repository.CatalogRepository
	assignment  *AssignmentService
	notifier    *Notifier
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, catalogRepo repository.CatalogRepository, assignment *AssignmentService, notifier *Notifier) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		catalogRepo: catalogRepo,
		assignment:  assignment,
		notifier:    notifier,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name           string
	TypeID         uint64
	CategoryID     uint64
	BrandID        uint64
	Priority       models.TaskPriority
	CustomDuration *float64
	ExternalID     *string
}

// CreateTask assigns the task to the best available designer, places it in
// that designer's queue by priority and persists the task, its assignment and
// the pushed tasks' new windows in one serializable transaction.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, *BestUserResult, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, ErrNameRequired
	}
	if input.Priority == "" {
		input.Priority = models.PriorityNormal
	}
	if !models.ValidPriority(input.Priority) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPriority, input.Priority)
	}

	category, err := s.catalogRepo.FindCategory(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, fmt.Errorf("failed to find category: %w", err)
	}

	duration := category.Tier.DurationDays
	if input.CustomDuration != nil {
		duration = *input.CustomDuration
	}
	if duration <= 0 {
		return nil, nil, ErrInvalidDuration
	}

	best, err := s.assignment.GetBestUserWithCache(input.TypeID, input.BrandID, input.Priority, duration)
	if err != nil {
		return nil, nil, err
	}
	if best.Slot == nil {
		return nil, nil, &NoDesignerError{Diagnostics: best.Diagnostics}
	}

	// The queue read, the insertion plan and the writes share one serializable
	// transaction: two concurrent creates for the same designer cannot both
	// plan against the same queue snapshot and stamp overlapping windows. The
	// plan reads the queue through the transaction-bound repository, never the
	// memoized slots.
	var (
		task *models.Task
		plan *scheduling.InsertionPlan
	)
	txErr := s.taskRepo.Serializable(func(txRepo repository.TaskRepository) error {
		var err error
		plan, err = s.assignment.planInsertion(txRepo, best.Slot.UserID, input.Priority, duration, best.Slot.AvailableDate)
		if err != nil {
			return err
		}

		task = &models.Task{
			Name:           input.Name,
			ExternalID:     input.ExternalID,
			TypeID:         input.TypeID,
			CategoryID:     input.CategoryID,
			BrandID:        best.BrandID,
			Priority:       input.Priority,
			Status:         models.TaskStatusToDo,
			StartDate:      plan.StartDate,
			Deadline:       plan.Deadline,
			CustomDuration: input.CustomDuration,
		}

		windows := make([]repository.TaskWindow, len(plan.Affected))
		for i, shifted := range plan.Affected {
			windows[i] = repository.TaskWindow{
				TaskID:    shifted.Task.ID,
				StartDate: shifted.NewStart,
				Deadline:  shifted.NewDeadline,
			}
		}

		return txRepo.CreateWithAssignment(task, best.Slot.UserID, windows)
	})
	if txErr != nil {
		return nil, nil, fmt.Errorf("failed to create task: %w", txErr)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventTaskCreated, task.ID, best.Slot.UserID)
	for _, shifted := range plan.Affected {
		s.notifier.Publish(EventTaskRescheduled, shifted.Task.ID, best.Slot.UserID)
	}

	created, err := s.taskRepo.FindByID(task.ID, "Type", "Brand", "Category", "Category.Tier", "Assignments", "Assignments.User")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return created, best, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Type", "Brand", "Category", "Category.Tier", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves tasks with filtering and pagination
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// DeleteTask removes a task and its assignments, freeing the designer's queue.
func (s *TaskService) DeleteTask(taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventTaskDeleted, task.ID, 0)
	return nil
}

// UpdateStatus changes a task's status. Moving a task to COMPLETE removes it
// from scheduling, so the memoized slots are dropped.
func (s *TaskService) UpdateStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(task.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.assignment.InvalidateSchedulingCache()
	s.notifier.Publish(EventStatusChanged, task.ID, 0)

	task.Status = status
	return task, nil
}
