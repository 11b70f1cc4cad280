package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a designer that tasks can be assigned to.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Roles       []Role           `gorm:"foreignKey:UserID" json:"roles,omitempty"`
	Vacations   []Vacation       `gorm:"foreignKey:UserID" json:"vacations,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}

// IsSpecialistFor reports whether the user is a specialist for the given task
// type: exactly one role, and that role targets the type. Any additional role
// makes the user a generalist. Requires Roles to be preloaded.
func (u *User) IsSpecialistFor(typeID uint64) bool {
	return len(u.Roles) == 1 && u.Roles[0].TypeID == typeID
}

// Role grants a user compatibility with a task type, optionally scoped to a
// single brand. A nil BrandID means the role covers every brand of the type.
type Role struct {
	ID      uint64  `gorm:"primarykey" json:"id"`
	UserID  uint64  `gorm:"not null;index" json:"user_id"`
	TypeID  uint64  `gorm:"not null;index" json:"type_id"`
	BrandID *uint64 `gorm:"index" json:"brand_id,omitempty"`

	// Relations
	Type  TaskType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Brand *Brand   `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}
