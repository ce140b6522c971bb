package backup

import (
	"context"
	"time"

	"payrollpro/internal/domain/settings"
)

const dismissalWindow = 24 * time.Hour

// ReminderStatus reports whether the user should be nudged to back up.
type ReminderStatus struct {
	Due             bool       `json:"due"`
	LastBackupAt    *time.Time `json:"lastBackupAt,omitempty"`
	DaysSinceBackup int        `json:"daysSinceBackup"`
	FrequencyDays   int        `json:"frequencyDays"`
	DismissedUntil  *time.Time `json:"dismissedUntil,omitempty"`
}

// Reminder computes reminder due-ness from the settings stamps.
type Reminder struct {
	Settings      *settings.Service
	FrequencyDays int
}

func NewReminder(settingsService *settings.Service, frequencyDays int) *Reminder {
	if frequencyDays < 1 {
		frequencyDays = 7
	}
	return &Reminder{Settings: settingsService, FrequencyDays: frequencyDays}
}

// Status evaluates the reminder at the given time. A backup is due once
// the configured number of days has elapsed since the last one, or
// immediately when no backup was ever made. A dismissal suppresses the
// reminder for 24 hours.
func (r *Reminder) Status(now time.Time) ReminderStatus {
	current := r.Settings.Get()
	status := ReminderStatus{
		LastBackupAt:  current.LastBackupAt,
		FrequencyDays: r.FrequencyDays,
	}

	if current.LastBackupAt == nil {
		status.Due = true
		status.DaysSinceBackup = -1
	} else {
		elapsed := now.Sub(*current.LastBackupAt)
		status.DaysSinceBackup = int(elapsed.Hours() / 24)
		status.Due = status.DaysSinceBackup >= r.FrequencyDays
	}

	if current.LastDismissedAt != nil {
		until := current.LastDismissedAt.Add(dismissalWindow)
		if now.Before(until) {
			status.Due = false
			status.DismissedUntil = &until
		}
	}
	return status
}

// Dismiss records a dismissal effective for 24 hours.
func (r *Reminder) Dismiss(ctx context.Context, now time.Time) error {
	return r.Settings.DismissReminder(ctx, now)
}
