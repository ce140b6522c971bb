package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

const blobID = "app"

// Service owns the settings blob and a subscriber registry. Every update is
// persisted and then broadcast synchronously, replacing the original's
// window-event dispatch with an explicit observable.
type Service struct {
	DB *gorm.DB

	mu          sync.RWMutex
	current     Settings
	subscribers []func(Settings)
}

func NewService(db *gorm.DB) (*Service, error) {
	s := &Service{DB: db}

	var stored Settings
	err := db.First(&stored, "id = ?", blobID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stored = Defaults()
		stored.UpdatedAt = time.Now().UTC()
		if err := db.Create(&stored).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	s.current = stored
	return s, nil
}

func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a callback invoked on every settings change. The
// callback runs synchronously under the update path, so it must be cheap.
func (s *Service) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Apply merges a partial update, persists the blob and notifies
// subscribers.
func (s *Service) Apply(ctx context.Context, update Update) (Settings, error) {
	s.mu.Lock()
	merged := s.current
	if update.CompanyName != nil {
		merged.CompanyName = *update.CompanyName
	}
	if update.CompanyAddress != nil {
		merged.CompanyAddress = *update.CompanyAddress
	}
	if update.CompanyPhone != nil {
		merged.CompanyPhone = *update.CompanyPhone
	}
	if update.CompanyLogo != nil {
		merged.CompanyLogo = *update.CompanyLogo
	}
	if update.Currency != nil {
		merged.Currency = *update.Currency
	}
	if update.CurrencySymbol != nil {
		merged.CurrencySymbol = *update.CurrencySymbol
	}
	if update.Locale != nil {
		merged.Locale = *update.Locale
	}
	if update.Departments != nil {
		merged.Departments = append([]string(nil), (*update.Departments)...)
	}
	if update.Positions != nil {
		merged.Positions = append([]string(nil), (*update.Positions)...)
	}
	merged.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(&merged).Error; err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}
	s.current = merged
	subscribers := append([](func(Settings))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(merged)
	}
	return merged, nil
}

// RecordBackup stamps the last successful backup time and clears any
// standing reminder dismissal.
func (s *Service) RecordBackup(ctx context.Context, at time.Time) error {
	return s.stamp(ctx, func(merged *Settings) {
		merged.LastBackupAt = &at
		merged.LastDismissedAt = nil
	})
}

// DismissReminder suppresses the backup reminder for 24 hours.
func (s *Service) DismissReminder(ctx context.Context, at time.Time) error {
	return s.stamp(ctx, func(merged *Settings) {
		merged.LastDismissedAt = &at
	})
}

// Restore swaps in a blob from a backup bundle. Backup bookkeeping stamps
// are kept from the live blob so restoring never hides a due reminder.
func (s *Service) Restore(ctx context.Context, restored Settings) error {
	return s.stamp(ctx, func(merged *Settings) {
		restored.ID = blobID
		restored.LastBackupAt = merged.LastBackupAt
		restored.LastDismissedAt = merged.LastDismissedAt
		*merged = restored
	})
}

func (s *Service) stamp(ctx context.Context, apply func(*Settings)) error {
	s.mu.Lock()
	merged := s.current
	apply(&merged)
	merged.UpdatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Save(&merged).Error; err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = merged
	subscribers := append([](func(Settings))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(merged)
	}
	return nil
}

// FormatCurrency renders an amount with the configured locale and symbol,
// no decimal places, as on the original receipts.
func (s *Service) FormatCurrency(amount float64) string {
	current := s.Get()
	tag, err := language.Parse(current.Locale)
	if err != nil {
		tag = language.French
	}
	printer := message.NewPrinter(tag)
	return fmt.Sprintf("%s %s", printer.Sprintf("%.0f", amount), current.CurrencySymbol)
}
