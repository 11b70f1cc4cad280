package scheduling

import (
	"fmt"
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/calendar"
	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// InsertionConfig tunes the queue insertion policies.
type InsertionConfig struct {
	// NormalBeforeLowThreshold caps how many NORMAL tasks may precede a LOW
	// task before a new NORMAL no longer jumps ahead of it.
	NormalBeforeLowThreshold int
	// ConsecutiveLowThreshold is the trailing LOW run length at which a new
	// LOW task is inserted before the run instead of appended after it.
	ConsecutiveLowThreshold int
}

// ShiftedTask is one pushed task with its recomputed working window.
type ShiftedTask struct {
	Task        QueuedTask
	NewStart    time.Time
	NewDeadline time.Time
}

// InsertionPlan is the computed placement of a new task in a designer's queue,
// produced entirely before any persistence write.
type InsertionPlan struct {
	// Index is the position in the queue the new task takes.
	Index     int
	StartDate time.Time
	Deadline  time.Time
	// Affected holds every pushed task in chain order with its new window.
	Affected []ShiftedTask
	Reason   string
}

// PlanInsertion determines where a task of the given priority and duration
// lands in the queue (ordered by start date ascending) and re-stamps every
// task it pushes later. Ordering is purely chronological: pushing a task means
// recomputing its start and deadline, chained from the new task's deadline.
// An unknown priority is a programmer error and is rejected, never defaulted.
func PlanInsertion(cal calendar.Config, cfg InsertionConfig, now time.Time, queue []QueuedTask, priority models.TaskPriority, durationDays float64) (*InsertionPlan, error) {
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q", priority)
	}

	idx, reason := insertionIndex(cfg, queue, priority)

	base := now
	if idx > 0 {
		base = queue[idx-1].Deadline
	}
	start := cal.NextAvailableStart(base)
	deadline := cal.WorkingDeadline(start, cal.Hours(durationDays))

	plan := &InsertionPlan{
		Index:     idx,
		StartDate: start,
		Deadline:  deadline,
		Reason:    reason,
	}

	prev := deadline
	for _, t := range queue[idx:] {
		s := cal.NextAvailableStart(prev)
		d := cal.WorkingDeadline(s, cal.Hours(t.DurationDays))
		plan.Affected = append(plan.Affected, ShiftedTask{Task: t, NewStart: s, NewDeadline: d})
		prev = d
	}

	return plan, nil
}

func insertionIndex(cfg InsertionConfig, queue []QueuedTask, priority models.TaskPriority) (int, string) {
	if len(queue) == 0 {
		return 0, "queue empty, scheduled immediately"
	}

	switch priority {
	case models.PriorityUrgent:
		return 0, "urgent task takes the head of the queue"

	case models.PriorityHigh:
		return 1, "high priority scheduled after the task in progress"

	case models.PriorityNormal:
		// Walk from the tail looking for a LOW task that has not already been
		// jumped by too many NORMAL tasks.
		for i := len(queue) - 1; i >= 0; i-- {
			if queue[i].Priority != models.PriorityLow {
				continue
			}
			normals := 0
			for _, t := range queue[:i] {
				if t.Priority == models.PriorityNormal {
					normals++
				}
			}
			if normals < cfg.NormalBeforeLowThreshold {
				return i, "normal priority scheduled ahead of a low priority task"
			}
		}
		return len(queue), "normal priority appended to the queue"

	case models.PriorityLow:
		run := 0
		for i := len(queue) - 1; i >= 0 && queue[i].Priority == models.PriorityLow; i-- {
			run++
		}
		if run >= cfg.ConsecutiveLowThreshold {
			return len(queue) - run, "low priority inserted before the trailing low run"
		}
		return len(queue), "low priority appended to the queue"
	}

	// Unreachable: priority validated by the caller.
	return len(queue), "appended to the queue"
}
