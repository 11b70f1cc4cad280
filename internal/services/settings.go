package services

import (
	"log"
	"strconv"
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/calendar"
	"github.com/esantostaype/task-automation-sub001/internal/constants"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/scheduling"
)

// SchedulerSettings bundles every tunable the assignment engine consumes.
type SchedulerSettings struct {
	Calendar  calendar.Config
	Selector  scheduling.SelectorConfig
	Insertion scheduling.InsertionConfig
	CacheTTL  time.Duration
}

// DefaultSchedulerSettings returns the built-in defaults.
func DefaultSchedulerSettings() SchedulerSettings {
	return SchedulerSettings{
		Calendar: calendar.Config{
			UTCOffsetHours: constants.DefaultUTCOffsetHours,
			WorkStartHour:  constants.DefaultWorkStartHour,
			LunchStartHour: constants.DefaultLunchStartHour,
			LunchEndHour:   constants.DefaultLunchEndHour,
			WorkEndHour:    constants.DefaultWorkEndHour,
			HoursPerDay:    constants.DefaultHoursPerDay,
		},
		Selector: scheduling.SelectorConfig{
			SpecialistThresholdDays: constants.DefaultSpecialistThresholdDays,
		},
		Insertion: scheduling.InsertionConfig{
			NormalBeforeLowThreshold: constants.DefaultNormalBeforeLowThreshold,
			ConsecutiveLowThreshold:  constants.DefaultConsecutiveLowThreshold,
		},
		CacheTTL: constants.DefaultCacheTTL,
	}
}

// LoadSchedulerSettings overlays the settings table onto the defaults.
// Unparseable values are logged and ignored.
func LoadSchedulerSettings(catalogRepo repository.CatalogRepository) SchedulerSettings {
	settings := DefaultSchedulerSettings()

	values, err := catalogRepo.Settings()
	if err != nil {
		log.Printf("Failed to load scheduler settings, using defaults: %v", err)
		return settings
	}

	applyInt(values, constants.SettingUTCOffsetHours, &settings.Calendar.UTCOffsetHours)
	applyInt(values, constants.SettingWorkStartHour, &settings.Calendar.WorkStartHour)
	applyInt(values, constants.SettingLunchStartHour, &settings.Calendar.LunchStartHour)
	applyInt(values, constants.SettingLunchEndHour, &settings.Calendar.LunchEndHour)
	applyInt(values, constants.SettingWorkEndHour, &settings.Calendar.WorkEndHour)
	applyInt(values, constants.SettingNormalBeforeLowThreshold, &settings.Insertion.NormalBeforeLowThreshold)
	applyInt(values, constants.SettingConsecutiveLowThreshold, &settings.Insertion.ConsecutiveLowThreshold)
	applyInt(values, constants.SettingSpecialistThresholdDays, &settings.Selector.SpecialistThresholdDays)

	if raw, ok := values[constants.SettingCacheTTLSeconds]; ok {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			settings.CacheTTL = time.Duration(seconds) * time.Second
		} else {
			log.Printf("Ignoring invalid setting %s=%q", constants.SettingCacheTTLSeconds, raw)
		}
	}

	return settings
}

func applyInt(values map[string]string, key string, dst *int) {
	raw, ok := values[key]
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring invalid setting %s=%q", key, raw)
		return
	}
	*dst = parsed
}
