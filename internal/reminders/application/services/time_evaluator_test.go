package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

func timeTask(t *testing.T, title, timeOfDay string, weekdays ...time.Weekday) domain.Task {
	t.Helper()
	reminder, err := domain.NewSpecificTimeReminder(timeOfDay, weekdays)
	require.NoError(t, err)
	return domain.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    title,
		Reminder: reminder,
	}
}

func TestTimeReminderEvaluator_DueReminders(t *testing.T) {
	evaluator := NewTimeReminderEvaluator()

	// Monday 2026-08-31.
	monday := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	tasks := []domain.Task{timeTask(t, "Call the dentist", "09:00", time.Monday)}

	t.Run("fires at the configured minute", func(t *testing.T) {
		events := evaluator.DueReminders(tasks, monday)
		require.Len(t, events, 1)
		assert.Equal(t, "Call the dentist", events[0].Title)
		assert.Equal(t, domain.ReminderSpecificTime, events[0].Kind)
	})

	t.Run("fires one minute either side", func(t *testing.T) {
		assert.Len(t, evaluator.DueReminders(tasks, monday.Add(-time.Minute)), 1)
		assert.Len(t, evaluator.DueReminders(tasks, monday.Add(time.Minute)), 1)
	})

	t.Run("silent two minutes out", func(t *testing.T) {
		assert.Empty(t, evaluator.DueReminders(tasks, monday.Add(2*time.Minute)))
		assert.Empty(t, evaluator.DueReminders(tasks, monday.Add(-2*time.Minute)))
	})

	t.Run("silent on the wrong weekday", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		assert.Empty(t, evaluator.DueReminders(tasks, tuesday))
	})

	t.Run("repeated polls fire again", func(t *testing.T) {
		assert.Len(t, evaluator.DueReminders(tasks, monday), 1)
		assert.Len(t, evaluator.DueReminders(tasks, monday.Add(30*time.Second)), 1)
	})
}

func TestTimeReminderEvaluator_Everyday(t *testing.T) {
	evaluator := NewTimeReminderEvaluator()

	reminder, err := domain.NewEverydayTimeReminder("21:30")
	require.NoError(t, err)
	tasks := []domain.Task{{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Evening walk",
		Reminder: reminder,
	}}

	for day := 0; day < 7; day++ {
		now := time.Date(2026, 8, 31, 21, 30, 0, 0, time.UTC).AddDate(0, 0, day)
		assert.Len(t, evaluator.DueReminders(tasks, now), 1, "day %d", day)
	}
}

func TestTimeReminderEvaluator_MidnightWrap(t *testing.T) {
	evaluator := NewTimeReminderEvaluator()

	// Tuesday 2026-09-01 00:00; the 23:59 reminder set for Tuesday is one
	// minute away across midnight.
	tasks := []domain.Task{timeTask(t, "Backup the server", "23:59", time.Tuesday)}
	justPastMidnight := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, justPastMidnight.Weekday())

	assert.Len(t, evaluator.DueReminders(tasks, justPastMidnight), 1)
}

func TestTimeReminderEvaluator_SkipsCompletedAndLocationTasks(t *testing.T) {
	evaluator := NewTimeReminderEvaluator()
	monday := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	completed := timeTask(t, "Done already", "09:00", time.Monday)
	completed.Completed = true

	location := domain.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Buy milk",
		Reminder: domain.NewLeavingHomeReminder(150),
	}
	bare := domain.Task{ID: uuid.New(), UserID: uuid.New(), Title: "No reminder"}

	events := evaluator.DueReminders([]domain.Task{completed, location, bare}, monday)
	assert.Empty(t, events)
}
