package models

import "time"

// TaskType is a kind of creative work (e.g. web design, branding).
type TaskType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

// Brand is a client brand tasks are produced for. Creation order matters: the
// multi-brand assignment fallback walks brands in the order they were created.
type Brand struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Tier is a named size bucket carrying a canonical task duration in days.
type Tier struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	Name         string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"name"`
	DurationDays float64 `gorm:"not null" json:"duration_days"`
}

// TaskCategory maps a concrete deliverable to a type and a tier; tasks without
// a custom duration inherit the tier's duration.
type TaskCategory struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	TypeID uint64 `gorm:"not null;index" json:"type_id"`
	TierID uint64 `gorm:"not null" json:"tier_id"`

	// Relations
	Type TaskType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Tier Tier     `gorm:"foreignKey:TierID" json:"tier,omitempty"`
}

// Setting is a key/value override for scheduler constants.
type Setting struct {
	Key       string    `gorm:"primarykey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
