package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Scheduling defaults. Each value can be overridden by a row in the
// settings table (see services.LoadSchedulerSettings).
const (
	DefaultUTCOffsetHours = -5
	DefaultWorkStartHour  = 10
	DefaultLunchStartHour = 14
	DefaultLunchEndHour   = 15
	DefaultWorkEndHour    = 19
	DefaultHoursPerDay    = 8.0

	DefaultNormalBeforeLowThreshold = 2
	DefaultConsecutiveLowThreshold  = 4
	DefaultSpecialistThresholdDays  = 2

	DefaultCacheTTL = 5 * time.Minute
)

// Setting keys recognized by the settings table.
const (
	SettingUTCOffsetHours           = "calendar.utc_offset_hours"
	SettingWorkStartHour            = "calendar.work_start_hour"
	SettingLunchStartHour           = "calendar.lunch_start_hour"
	SettingLunchEndHour             = "calendar.lunch_end_hour"
	SettingWorkEndHour              = "calendar.work_end_hour"
	SettingNormalBeforeLowThreshold = "scheduling.normal_before_low_threshold"
	SettingConsecutiveLowThreshold  = "scheduling.consecutive_low_threshold"
	SettingSpecialistThresholdDays  = "scheduling.specialist_threshold_days"
	SettingCacheTTLSeconds          = "cache.ttl_seconds"
)
