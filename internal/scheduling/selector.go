package scheduling

// SelectorConfig tunes the specialist-vs-generalist trade-off.
type SelectorConfig struct {
	// SpecialistThresholdDays is how many days later than the best generalist
	// the best specialist may start before the generalist is preferred.
	SpecialistThresholdDays int
}

// Diagnostics describes why a selection returned what it did. Callers report
// these counts instead of silently picking an incompatible designer.
type Diagnostics struct {
	Compatible    int  `json:"compatible"`
	Available     int  `json:"available"`
	AllOnVacation bool `json:"all_on_vacation"`
}

// SelectBestSlot ranks the computed slots and returns the winner, or nil when
// no compatible designer exists. Specialists win by default; when the best
// specialist's start is more than the configured threshold of days later than
// the best generalist's, the generalist pool is used instead. Within a pool,
// slots rank by ascending available date, tie-broken by ascending total
// assigned workload.
func SelectBestSlot(cfg SelectorConfig, slots []UserSlot) (*UserSlot, Diagnostics) {
	diag := Diagnostics{Compatible: len(slots)}
	for _, s := range slots {
		if !s.OnVacationNow {
			diag.Available++
		}
	}
	diag.AllOnVacation = len(slots) > 0 && diag.Available == 0

	if len(slots) == 0 {
		return nil, diag
	}

	var specialists, generalists []UserSlot
	for _, s := range slots {
		if s.Specialist {
			specialists = append(specialists, s)
		} else {
			generalists = append(generalists, s)
		}
	}

	bestSpec := bestOf(specialists)
	bestGen := bestOf(generalists)

	switch {
	case bestSpec == nil:
		return bestGen, diag
	case bestGen == nil:
		return bestSpec, diag
	}

	// A specialist blocked by vacations or backlog should not stall the
	// pipeline when a generalist is free soon enough.
	cutoff := bestGen.AvailableDate.AddDate(0, 0, cfg.SpecialistThresholdDays)
	if bestSpec.AvailableDate.After(cutoff) {
		return bestGen, diag
	}
	return bestSpec, diag
}

func bestOf(slots []UserSlot) *UserSlot {
	if len(slots) == 0 {
		return nil
	}
	best := slots[0]
	for _, s := range slots[1:] {
		if slotLess(s, best) {
			best = s
		}
	}
	return &best
}

func slotLess(a, b UserSlot) bool {
	if !a.AvailableDate.Equal(b.AvailableDate) {
		return a.AvailableDate.Before(b.AvailableDate)
	}
	if a.TotalDurationDays != b.TotalDurationDays {
		return a.TotalDurationDays < b.TotalDurationDays
	}
	return a.UserID < b.UserID
}
