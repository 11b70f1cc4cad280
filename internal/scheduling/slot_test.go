package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/esantostaype/task-automation-sub001/internal/calendar"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeSlotEmptyQueue(t *testing.T) {
	cal := calendar.DefaultConfig()
	now := ts("2025-07-01T15:00:00Z") // Tuesday, work start

	slot := ComputeSlot(cal, now, DesignerSnapshot{UserID: 1, UserName: "Ana"}, 1)

	assert.Equal(t, ts("2025-07-01T15:00:00Z"), slot.AvailableDate)
	assert.Equal(t, ts("2025-07-02T00:00:00Z"), slot.PotentialEnd) // one 8h day
	assert.True(t, slot.LastTaskDeadline.IsZero())
	assert.Zero(t, slot.VacationsSkipped)
	assert.Zero(t, slot.TotalDurationDays)
}

func TestComputeSlotStartsAfterLastDeadline(t *testing.T) {
	cal := calendar.DefaultConfig()
	now := ts("2025-07-01T15:00:00Z")

	d := DesignerSnapshot{
		UserID: 1,
		Queue: []QueuedTask{
			{ID: 10, DurationDays: 1, StartDate: ts("2025-07-01T15:00:00Z"), Deadline: ts("2025-07-02T00:00:00Z")},
		},
	}

	slot := ComputeSlot(cal, now, d, 2)

	// The previous task ends at work end on Tuesday; the new window opens at
	// work start the next day.
	assert.Equal(t, ts("2025-07-02T15:00:00Z"), slot.AvailableDate)
	assert.Equal(t, ts("2025-07-02T00:00:00Z"), slot.LastTaskDeadline)
	assert.Equal(t, 1.0, slot.TotalDurationDays)
}

func TestComputeSlotSkipsConflictingVacation(t *testing.T) {
	cal := calendar.DefaultConfig()
	now := ts("2025-07-01T15:00:00Z")

	d := DesignerSnapshot{
		UserID: 2,
		Vacations: []VacationInterval{
			{Start: ts("2025-07-03T00:00:00Z"), End: ts("2025-07-10T00:00:00Z")},
		},
	}

	slot := ComputeSlot(cal, now, d, 2)

	// The provisional window collides with the vacation; the start moves to
	// the vacation end date's next available instant.
	assert.Equal(t, ts("2025-07-10T15:00:00Z"), slot.AvailableDate)
	assert.Equal(t, ts("2025-07-12T00:00:00Z"), slot.PotentialEnd)
	assert.Equal(t, 1, slot.VacationsSkipped)
}

func TestComputeSlotNeverOverlapsAnyVacation(t *testing.T) {
	cal := calendar.DefaultConfig()
	now := ts("2025-07-01T15:00:00Z")

	vacations := []VacationInterval{
		{Start: ts("2025-07-02T00:00:00Z"), End: ts("2025-07-04T00:00:00Z")},
		{Start: ts("2025-07-07T00:00:00Z"), End: ts("2025-07-09T00:00:00Z")},
		{Start: ts("2025-07-10T00:00:00Z"), End: ts("2025-07-18T00:00:00Z")},
	}

	for _, days := range []float64{0.5, 1, 2, 5} {
		slot := ComputeSlot(cal, now, DesignerSnapshot{UserID: 3, Vacations: vacations}, days)
		for _, v := range vacations {
			overlap := !slot.AvailableDate.After(v.End) && !slot.PotentialEnd.Before(v.Start)
			assert.False(t, overlap, "duration %v overlaps vacation %v-%v (window %v-%v)",
				days, v.Start, v.End, slot.AvailableDate, slot.PotentialEnd)
		}
	}
}

func TestComputeSlotOnVacationNow(t *testing.T) {
	cal := calendar.DefaultConfig()
	now := ts("2025-07-03T16:00:00Z")

	d := DesignerSnapshot{
		UserID: 4,
		Vacations: []VacationInterval{
			{Start: ts("2025-07-03T00:00:00Z"), End: ts("2025-07-10T00:00:00Z")},
		},
	}

	slot := ComputeSlot(cal, now, d, 1)
	assert.True(t, slot.OnVacationNow)
}
