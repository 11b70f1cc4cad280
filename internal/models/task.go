package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusOnApproval TaskStatus = "ON_APPROVAL"
	TaskStatusComplete   TaskStatus = "COMPLETE"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusOnApproval, TaskStatusComplete:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityNormal TaskPriority = "NORMAL"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	ExternalID *string      `gorm:"type:varchar(64);uniqueIndex" json:"external_id,omitempty"`
	TypeID     uint64       `gorm:"not null" json:"type_id"`
	CategoryID uint64       `gorm:"not null" json:"category_id"`
	BrandID    uint64       `gorm:"not null" json:"brand_id"`
	Priority   TaskPriority `gorm:"type:varchar(10);not null;default:'NORMAL'" json:"priority"`
	Status     TaskStatus   `gorm:"type:varchar(20);not null;default:'TO_DO'" json:"status"`
	StartDate  time.Time    `gorm:"not null" json:"start_date"`
	Deadline   time.Time    `gorm:"not null" json:"deadline"`
	// CustomDuration overrides the tier duration, in days.
	CustomDuration *float64       `json:"custom_duration,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Type        TaskType         `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Category    TaskCategory     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand       Brand            `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// DurationDays returns the working duration of the task in days: the custom
// override when present, otherwise the canonical duration of the category's
// tier. Requires Category.Tier to be preloaded.
func (t *Task) DurationDays() float64 {
	if t.CustomDuration != nil {
		return *t.CustomDuration
	}
	return t.Category.Tier.DurationDays
}
