package backup

import (
	"context"
	"testing"
	"time"
)

func TestReminderDueWhenNeverBackedUp(t *testing.T) {
	svc, _, _ := newTestBackup(t)

	reminder := NewReminder(svc.Settings, 7)
	status := reminder.Status(time.Now().UTC())
	if !status.Due {
		t.Fatalf("expected reminder due with no backup on record")
	}
	if status.DaysSinceBackup != -1 {
		t.Fatalf("expected sentinel days value, got %d", status.DaysSinceBackup)
	}
}

func TestReminderRespectsFrequency(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestBackup(t)
	reminder := NewReminder(svc.Settings, 7)

	now := time.Now().UTC()
	if err := svc.Settings.RecordBackup(ctx, now.Add(-3*24*time.Hour)); err != nil {
		t.Fatalf("record backup: %v", err)
	}
	if status := reminder.Status(now); status.Due {
		t.Fatalf("expected no reminder 3 days after a backup")
	}

	if err := svc.Settings.RecordBackup(ctx, now.Add(-8*24*time.Hour)); err != nil {
		t.Fatalf("record backup: %v", err)
	}
	status := reminder.Status(now)
	if !status.Due {
		t.Fatalf("expected reminder 8 days after a backup")
	}
	if status.DaysSinceBackup != 8 {
		t.Fatalf("expected 8 days since backup, got %d", status.DaysSinceBackup)
	}
}

func TestDismissSuppressesFor24Hours(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestBackup(t)
	reminder := NewReminder(svc.Settings, 7)

	now := time.Now().UTC()
	if err := svc.Settings.RecordBackup(ctx, now.Add(-10*24*time.Hour)); err != nil {
		t.Fatalf("record backup: %v", err)
	}
	if err := reminder.Dismiss(ctx, now); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	if status := reminder.Status(now.Add(time.Hour)); status.Due {
		t.Fatalf("expected reminder suppressed within 24h of dismissal")
	}
	if status := reminder.Status(now.Add(25 * time.Hour)); !status.Due {
		t.Fatalf("expected reminder back after the dismissal window")
	}
}

func TestNewBackupClearsDismissal(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestBackup(t)
	reminder := NewReminder(svc.Settings, 7)

	now := time.Now().UTC()
	if err := reminder.Dismiss(ctx, now); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if err := svc.Settings.RecordBackup(ctx, now); err != nil {
		t.Fatalf("record backup: %v", err)
	}

	current := svc.Settings.Get()
	if current.LastDismissedAt != nil {
		t.Fatalf("expected dismissal cleared by a fresh backup")
	}
	if status := reminder.Status(now.Add(time.Hour)); status.Due {
		t.Fatalf("expected no reminder right after a backup")
	}
}
