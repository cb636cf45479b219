// Package domain holds reminder configuration, the task read model, and the
// geofence state the tracker persists between observations.
package domain

import (
	"errors"
	"time"

	"github.com/nexttoyou/nexttoyou/internal/geo"
)

var (
	ErrInvalidTimeOfDay = errors.New("time of day must be HH:MM")
	ErrNoWeekdays       = errors.New("time reminder needs at least one weekday or everyday")
)

// DefaultLeavingRadiusMeters is the leaving-radius applied when a location
// reminder does not specify one.
const DefaultLeavingRadiusMeters = 150

// ReminderKind tags the reminder variant attached to a task.
type ReminderKind string

const (
	ReminderNone           ReminderKind = "none"
	ReminderLeavingHome    ReminderKind = "leaving_home"
	ReminderLeavingWork    ReminderKind = "leaving_work"
	ReminderCustomLocation ReminderKind = "custom_location"
	ReminderSpecificTime   ReminderKind = "specific_time"
)

// IsLocation reports whether the kind is one of the geofence variants.
func (k ReminderKind) IsLocation() bool {
	switch k {
	case ReminderLeavingHome, ReminderLeavingWork, ReminderCustomLocation:
		return true
	default:
		return false
	}
}

// ReminderConfig is the tagged reminder variant carried by a task. Location
// variants hold a leaving-radius and, for custom locations, an inline
// target; the time variant holds an HH:MM time of day and a weekday set.
type ReminderConfig struct {
	kind                ReminderKind
	target              *geo.Coordinate
	leavingRadiusMeters float64
	timeOfDay           string
	minuteOfDay         int
	weekdays            []time.Weekday
	everyday            bool
}

// NewLeavingHomeReminder creates a reminder that fires when the user leaves
// home. A non-positive radius falls back to DefaultLeavingRadiusMeters.
func NewLeavingHomeReminder(radiusMeters float64) *ReminderConfig {
	return &ReminderConfig{
		kind:                ReminderLeavingHome,
		leavingRadiusMeters: normalizeRadius(radiusMeters),
	}
}

// NewLeavingWorkReminder creates a reminder that fires when the user leaves
// work.
func NewLeavingWorkReminder(radiusMeters float64) *ReminderConfig {
	return &ReminderConfig{
		kind:                ReminderLeavingWork,
		leavingRadiusMeters: normalizeRadius(radiusMeters),
	}
}

// NewCustomLocationReminder creates a reminder anchored at an inline target
// coordinate.
func NewCustomLocationReminder(target geo.Coordinate, radiusMeters float64) *ReminderConfig {
	return &ReminderConfig{
		kind:                ReminderCustomLocation,
		target:              &target,
		leavingRadiusMeters: normalizeRadius(radiusMeters),
	}
}

// NewSpecificTimeReminder creates a reminder due at an HH:MM time of day on
// the given weekdays.
func NewSpecificTimeReminder(timeOfDay string, weekdays []time.Weekday) (*ReminderConfig, error) {
	minute, err := parseMinuteOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}
	if len(weekdays) == 0 {
		return nil, ErrNoWeekdays
	}
	return &ReminderConfig{
		kind:        ReminderSpecificTime,
		timeOfDay:   timeOfDay,
		minuteOfDay: minute,
		weekdays:    weekdays,
	}, nil
}

// NewEverydayTimeReminder creates a reminder due at an HH:MM time of day on
// every weekday.
func NewEverydayTimeReminder(timeOfDay string) (*ReminderConfig, error) {
	minute, err := parseMinuteOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}
	return &ReminderConfig{
		kind:        ReminderSpecificTime,
		timeOfDay:   timeOfDay,
		minuteOfDay: minute,
		everyday:    true,
	}, nil
}

// RehydrateReminderConfig reconstructs a reminder from persistence without
// validation. Stored rows are trusted; radius and time fields were validated
// on the write path.
func RehydrateReminderConfig(
	kind ReminderKind,
	target *geo.Coordinate,
	leavingRadiusMeters float64,
	timeOfDay string,
	weekdays []time.Weekday,
	everyday bool,
) *ReminderConfig {
	minute := 0
	if timeOfDay != "" {
		if parsed, err := parseMinuteOfDay(timeOfDay); err == nil {
			minute = parsed
		}
	}
	return &ReminderConfig{
		kind:                kind,
		target:              target,
		leavingRadiusMeters: leavingRadiusMeters,
		timeOfDay:           timeOfDay,
		minuteOfDay:         minute,
		weekdays:            weekdays,
		everyday:            everyday,
	}
}

// Getters
func (c *ReminderConfig) Kind() ReminderKind          { return c.kind }
func (c *ReminderConfig) TimeOfDay() string           { return c.timeOfDay }
func (c *ReminderConfig) MinuteOfDay() int            { return c.minuteOfDay }
func (c *ReminderConfig) Everyday() bool              { return c.everyday }
func (c *ReminderConfig) LeavingRadiusMeters() float64 { return c.leavingRadiusMeters }

// Target returns a copy of the inline target coordinate, or nil when the
// reminder has none.
func (c *ReminderConfig) Target() *geo.Coordinate {
	if c.target == nil {
		return nil
	}
	t := *c.target
	return &t
}

// Weekdays returns a copy of the configured weekday set.
func (c *ReminderConfig) Weekdays() []time.Weekday {
	out := make([]time.Weekday, len(c.weekdays))
	copy(out, c.weekdays)
	return out
}

// OnDay reports whether the reminder is due on the given weekday.
func (c *ReminderConfig) OnDay(day time.Weekday) bool {
	if c.everyday {
		return true
	}
	for _, d := range c.weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ResolveTarget resolves the geofence anchor for a location reminder.
// Home and work come from the user profile; custom reminders carry their
// target inline. It returns false when the required anchor is unset — such
// tasks are skipped, not errored.
func (c *ReminderConfig) ResolveTarget(home, work *geo.Coordinate) (geo.Coordinate, string, bool) {
	switch c.kind {
	case ReminderLeavingHome:
		if home == nil {
			return geo.Coordinate{}, "", false
		}
		return *home, "home", true
	case ReminderLeavingWork:
		if work == nil {
			return geo.Coordinate{}, "", false
		}
		return *work, "work", true
	case ReminderCustomLocation:
		if c.target == nil {
			return geo.Coordinate{}, "", false
		}
		return *c.target, "custom location", true
	default:
		return geo.Coordinate{}, "", false
	}
}

func normalizeRadius(radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return DefaultLeavingRadiusMeters
	}
	return radiusMeters
}

func parseMinuteOfDay(timeOfDay string) (int, error) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
