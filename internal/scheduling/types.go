// Package scheduling contains the pure assignment computations: vacation-aware
// slot calculation, best-designer selection and priority insertion. Nothing in
// this package touches the database; callers feed it snapshots and persist the
// results.
package scheduling

import (
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// QueuedTask is one entry of a designer's active queue, ordered by StartDate.
type QueuedTask struct {
	ID           uint64
	Name         string
	Priority     models.TaskPriority
	DurationDays float64
	StartDate    time.Time
	Deadline     time.Time
}

// VacationInterval is an absence window of a designer.
type VacationInterval struct {
	Start time.Time
	End   time.Time
}

// DesignerSnapshot is the workload view of one compatible designer: their
// active queue for the requested (type, brand) and their upcoming vacations.
type DesignerSnapshot struct {
	UserID     uint64
	UserName   string
	Specialist bool
	Queue      []QueuedTask
	Vacations  []VacationInterval
}

// UserSlot is the computed availability of one designer for a candidate task.
type UserSlot struct {
	UserID            uint64    `json:"user_id"`
	UserName          string    `json:"user_name"`
	Specialist        bool      `json:"is_specialist"`
	LastTaskDeadline  time.Time `json:"last_task_deadline"`
	TotalDurationDays float64   `json:"total_duration_days"`
	AvailableDate     time.Time `json:"available_date"`
	PotentialEnd      time.Time `json:"potential_end"`
	VacationsSkipped  int       `json:"vacations_skipped"`
	OnVacationNow     bool      `json:"on_vacation_now"`
}
