package models

import "time"

// Vacation is an absence interval for a user. Intervals of the same user must
// not overlap; this is enforced at creation time. A vacation is immutable once
// created except by deletion.
type Vacation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Overlaps reports whether the vacation intersects [start, end].
func (v *Vacation) Overlaps(start, end time.Time) bool {
	return !start.After(v.EndDate) && !end.Before(v.StartDate)
}
