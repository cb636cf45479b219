package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexttoyou/nexttoyou/internal/geo"
)

func TestReminderKind_IsLocation(t *testing.T) {
	assert.True(t, ReminderLeavingHome.IsLocation())
	assert.True(t, ReminderLeavingWork.IsLocation())
	assert.True(t, ReminderCustomLocation.IsLocation())
	assert.False(t, ReminderSpecificTime.IsLocation())
	assert.False(t, ReminderNone.IsLocation())
}

func TestNewLocationReminders_RadiusNormalization(t *testing.T) {
	assert.Equal(t, 250.0, NewLeavingHomeReminder(250).LeavingRadiusMeters())
	assert.Equal(t, float64(DefaultLeavingRadiusMeters), NewLeavingHomeReminder(0).LeavingRadiusMeters())
	assert.Equal(t, float64(DefaultLeavingRadiusMeters), NewLeavingWorkReminder(-5).LeavingRadiusMeters())
}

func TestNewSpecificTimeReminder(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := NewSpecificTimeReminder("09:30", []time.Weekday{time.Monday, time.Friday})
		require.NoError(t, err)
		assert.Equal(t, ReminderSpecificTime, r.Kind())
		assert.Equal(t, 9*60+30, r.MinuteOfDay())
		assert.False(t, r.Everyday())
		assert.True(t, r.OnDay(time.Monday))
		assert.True(t, r.OnDay(time.Friday))
		assert.False(t, r.OnDay(time.Sunday))
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, err := NewSpecificTimeReminder("25:99", []time.Weekday{time.Monday})
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

		_, err = NewSpecificTimeReminder("9am", []time.Weekday{time.Monday})
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	})

	t.Run("rejects empty weekday set", func(t *testing.T) {
		_, err := NewSpecificTimeReminder("09:30", nil)
		assert.ErrorIs(t, err, ErrNoWeekdays)
	})

	t.Run("everyday reminder is due every day", func(t *testing.T) {
		r, err := NewEverydayTimeReminder("07:00")
		require.NoError(t, err)
		assert.True(t, r.Everyday())
		for d := time.Sunday; d <= time.Saturday; d++ {
			assert.True(t, r.OnDay(d))
		}
	})
}

func TestReminderConfig_ResolveTarget(t *testing.T) {
	home := geo.Coordinate{Latitude: 32.0853, Longitude: 34.7818}
	work := geo.Coordinate{Latitude: 32.0700, Longitude: 34.7900}
	custom := geo.Coordinate{Latitude: 32.0800, Longitude: 34.7700}

	t.Run("leaving home", func(t *testing.T) {
		target, label, ok := NewLeavingHomeReminder(150).ResolveTarget(&home, &work)
		require.True(t, ok)
		assert.Equal(t, home, target)
		assert.Equal(t, "home", label)
	})

	t.Run("leaving work", func(t *testing.T) {
		target, label, ok := NewLeavingWorkReminder(150).ResolveTarget(&home, &work)
		require.True(t, ok)
		assert.Equal(t, work, target)
		assert.Equal(t, "work", label)
	})

	t.Run("custom location ignores the profile", func(t *testing.T) {
		target, label, ok := NewCustomLocationReminder(custom, 150).ResolveTarget(nil, nil)
		require.True(t, ok)
		assert.Equal(t, custom, target)
		assert.Equal(t, "custom location", label)
	})

	t.Run("unset anchors resolve to false", func(t *testing.T) {
		_, _, ok := NewLeavingHomeReminder(150).ResolveTarget(nil, &work)
		assert.False(t, ok)

		_, _, ok = NewLeavingWorkReminder(150).ResolveTarget(&home, nil)
		assert.False(t, ok)
	})

	t.Run("time reminders have no target", func(t *testing.T) {
		r, err := NewEverydayTimeReminder("07:00")
		require.NoError(t, err)
		_, _, ok := r.ResolveTarget(&home, &work)
		assert.False(t, ok)
	})
}

func TestRehydrateReminderConfig(t *testing.T) {
	target := geo.Coordinate{Latitude: 32.08, Longitude: 34.77}
	r := RehydrateReminderConfig(ReminderCustomLocation, &target, 120, "", nil, false)
	assert.Equal(t, ReminderCustomLocation, r.Kind())
	assert.Equal(t, 120.0, r.LeavingRadiusMeters())
	require.NotNil(t, r.Target())
	assert.Equal(t, target, *r.Target())

	r = RehydrateReminderConfig(ReminderSpecificTime, nil, 0, "18:45", []time.Weekday{time.Wednesday}, false)
	assert.Equal(t, 18*60+45, r.MinuteOfDay())
	assert.True(t, r.OnDay(time.Wednesday))
}

func TestTask_ReminderPredicates(t *testing.T) {
	timeReminder, err := NewEverydayTimeReminder("08:00")
	require.NoError(t, err)

	locationTask := Task{Reminder: NewLeavingHomeReminder(150)}
	timeTask := Task{Reminder: timeReminder}
	bareTask := Task{}

	assert.True(t, locationTask.HasLocationReminder())
	assert.False(t, locationTask.HasTimeReminder())
	assert.True(t, timeTask.HasTimeReminder())
	assert.False(t, timeTask.HasLocationReminder())
	assert.False(t, bareTask.HasLocationReminder())
	assert.False(t, bareTask.HasTimeReminder())
}
