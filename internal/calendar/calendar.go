// Package calendar implements the working-hours calendar used to place task
// start and deadline timestamps. All computations are pure functions of the
// input instant and the configuration; results are reported in UTC.
package calendar

import "time"

// Config describes the organization's working day. Hours are wall-clock hours
// at the fixed UTC offset of the organization's home time zone; the calendar
// is not per-user time-zone aware. A working day consists of two blocks,
// WorkStartHour→LunchStartHour and LunchEndHour→WorkEndHour, on weekdays only.
type Config struct {
	UTCOffsetHours int
	WorkStartHour  int
	LunchStartHour int
	LunchEndHour   int
	WorkEndHour    int
	// HoursPerDay converts tier durations (days) into working hours.
	HoursPerDay float64
}

// DefaultConfig returns the studio defaults: 10:00-19:00 with lunch 14:00-15:00
// at UTC-5, eight working hours per day.
func DefaultConfig() Config {
	return Config{
		UTCOffsetHours: -5,
		WorkStartHour:  10,
		LunchStartHour: 14,
		LunchEndHour:   15,
		WorkEndHour:    19,
		HoursPerDay:    8,
	}
}

func (c Config) location() *time.Location {
	return time.FixedZone("org", c.UTCOffsetHours*3600)
}

// Hours converts a duration in working days into working hours.
func (c Config) Hours(days float64) float64 {
	return days * c.HoursPerDay
}

// NextAvailableStart rolls t forward to the nearest valid working instant:
// a weekday, inside a work block, at or after the work-start hour, outside the
// lunch window, aligned to a half-hour boundary. Idempotent.
func (c Config) NextAvailableStart(t time.Time) time.Time {
	lt := t.In(c.location())
	for {
		n := c.normalize(lt)
		r := roundUpHalfHour(n)
		if r.Equal(n) {
			return r.UTC()
		}
		// Rounding may have crossed a block boundary; re-apply the rules.
		lt = r
	}
}

// WorkingDeadline consumes hours of working time starting from start, walking
// the two daily work blocks and skipping weekends and the lunch window. The
// returned instant may sit exactly on a block end (a task may finish at
// lunch-start or work-end). Zero hours returns the rolled-forward start.
func (c Config) WorkingDeadline(start time.Time, hours float64) time.Time {
	cur := c.NextAvailableStart(start).In(c.location())
	remaining := time.Duration(hours * float64(time.Hour))

	for remaining > 0 {
		clock := cur.Hour()*60 + cur.Minute()
		blockEnd := c.WorkEndHour * 60
		if clock < c.LunchStartHour*60 {
			blockEnd = c.LunchStartHour * 60
		}
		avail := time.Duration(blockEnd-clock) * time.Minute
		if avail >= remaining {
			cur = cur.Add(remaining)
			remaining = 0
			break
		}
		remaining -= avail
		// Block exhausted: roll past lunch or to the next working day.
		cur = c.normalize(cur.Add(avail))
	}

	return cur.UTC()
}

// normalize applies the ordered rules of the calendar until none fires:
// weekend → next Monday work-start; before work-start → work-start; inside
// lunch → lunch-end; at/after work-end → next day work-start.
func (c Config) normalize(lt time.Time) time.Time {
	for {
		switch lt.Weekday() {
		case time.Saturday:
			lt = c.at(lt.AddDate(0, 0, 2), c.WorkStartHour)
			continue
		case time.Sunday:
			lt = c.at(lt.AddDate(0, 0, 1), c.WorkStartHour)
			continue
		}

		clock := lt.Hour()*60 + lt.Minute()
		switch {
		case clock < c.WorkStartHour*60:
			lt = c.at(lt, c.WorkStartHour)
		case clock >= c.LunchStartHour*60 && clock < c.LunchEndHour*60:
			lt = c.at(lt, c.LunchEndHour)
		case clock >= c.WorkEndHour*60:
			lt = c.at(lt.AddDate(0, 0, 1), c.WorkStartHour)
		default:
			return lt
		}
	}
}

func (c Config) at(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// roundUpHalfHour aligns t to the next half-hour boundary (minutes 0 or 30).
// Instants already on a boundary are returned unchanged.
func roundUpHalfHour(t time.Time) time.Time {
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), (t.Minute()/30)*30, 0, 0, t.Location())
	if base.Before(t) {
		base = base.Add(30 * time.Minute)
	}
	return base
}
