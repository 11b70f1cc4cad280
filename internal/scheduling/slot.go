package scheduling

import (
	"sort"
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/calendar"
)

// ComputeSlot derives the earliest conflict-free working window in which the
// designer could take on a task of durationDays. The base start is the next
// available instant after the last queued deadline (or now for an empty
// queue); while the provisional window overlaps a vacation, the start advances
// past the vacation's end and the window is recomputed. Terminates because the
// vacation list is finite and every iteration strictly advances past the
// conflicting interval.
func ComputeSlot(cal calendar.Config, now time.Time, d DesignerSnapshot, durationDays float64) UserSlot {
	base := now
	var lastDeadline time.Time
	if n := len(d.Queue); n > 0 {
		lastDeadline = d.Queue[n-1].Deadline
		base = lastDeadline
	}

	vacations := make([]VacationInterval, len(d.Vacations))
	copy(vacations, d.Vacations)
	sort.Slice(vacations, func(i, j int) bool {
		return vacations[i].Start.Before(vacations[j].Start)
	})

	hours := cal.Hours(durationDays)
	start := cal.NextAvailableStart(base)
	end := cal.WorkingDeadline(start, hours)

	skipped := 0
	for {
		conflict, ok := firstConflict(start, end, vacations)
		if !ok {
			break
		}
		start = cal.NextAvailableStart(conflict.End.Add(time.Second))
		end = cal.WorkingDeadline(start, hours)
		skipped++
	}

	total := 0.0
	for _, q := range d.Queue {
		total += q.DurationDays
	}

	return UserSlot{
		UserID:            d.UserID,
		UserName:          d.UserName,
		Specialist:        d.Specialist,
		LastTaskDeadline:  lastDeadline,
		TotalDurationDays: total,
		AvailableDate:     start,
		PotentialEnd:      end,
		VacationsSkipped:  skipped,
		OnVacationNow:     onVacation(now, vacations),
	}
}

// firstConflict returns the earliest vacation overlapping [start, end].
func firstConflict(start, end time.Time, vacations []VacationInterval) (VacationInterval, bool) {
	for _, v := range vacations {
		if !start.After(v.End) && !end.Before(v.Start) {
			return v, true
		}
	}
	return VacationInterval{}, false
}

func onVacation(now time.Time, vacations []VacationInterval) bool {
	for _, v := range vacations {
		if !now.Before(v.Start) && !now.After(v.End) {
			return true
		}
	}
	return false
}
