package services

import (
	"time"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// ToleranceMinutes is the half-width of the due window around a configured
// time of day. It absorbs polling jitter: a poll landing within one minute
// of the configured HH:MM still fires.
const ToleranceMinutes = 1

// TimeReminderEvaluator compares task schedules against wall-clock time.
// It is pure and stateless: every poll inside the tolerance window reports
// the task as due again. De-duplication across polls belongs to the caller.
type TimeReminderEvaluator struct{}

// NewTimeReminderEvaluator creates a new TimeReminderEvaluator.
func NewTimeReminderEvaluator() *TimeReminderEvaluator {
	return &TimeReminderEvaluator{}
}

// DueReminders returns a ReminderEvent for every task whose specific-time
// reminder is due at the given instant: the configured weekday set contains
// now's weekday (or the reminder is everyday) and now's HH:MM lies within
// ±ToleranceMinutes of the configured time.
func (e *TimeReminderEvaluator) DueReminders(tasks []domain.Task, now time.Time) []domain.ReminderEvent {
	nowMinute := now.Hour()*60 + now.Minute()

	var events []domain.ReminderEvent
	for _, task := range tasks {
		if task.Completed || !task.HasTimeReminder() {
			continue
		}
		if !task.Reminder.OnDay(now.Weekday()) {
			continue
		}
		if !withinTolerance(nowMinute, task.Reminder.MinuteOfDay()) {
			continue
		}

		events = append(events, domain.ReminderEvent{
			TaskID:     task.ID,
			UserID:     task.UserID,
			Title:      task.Title,
			Kind:       domain.ReminderSpecificTime,
			OccurredAt: now,
		})
	}

	return events
}

// withinTolerance compares two minutes-of-day with wrap-around at midnight,
// so 23:59 and 00:00 are one minute apart.
func withinTolerance(a, b int) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if wrapped := 24*60 - diff; wrapped < diff {
		diff = wrapped
	}
	return diff <= ToleranceMinutes
}
