package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"payrollpro/internal/platform/crypto"
)

const indexFilename = "index.json"

// Scheduler maintains a bounded ring of backup files on disk and runs
// periodic snapshots. Concurrent runs are coalesced: whichever caller
// arrives while a backup is being written gets ErrBackupInFlight.
type Scheduler struct {
	service *Service
	crypto  *crypto.Service
	log     *slog.Logger

	dir      string
	maxSlots int
	interval time.Duration

	inFlight atomic.Bool

	mu    sync.Mutex
	slots []Slot
}

func NewScheduler(service *Service, cryptoService *crypto.Service, log *slog.Logger, dir string, maxSlots int, interval time.Duration) (*Scheduler, error) {
	if maxSlots < 1 {
		maxSlots = 5
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	s := &Scheduler{
		service:  service,
		crypto:   cryptoService,
		log:      log,
		dir:      dir,
		maxSlots: maxSlots,
		interval: interval,
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs periodic backups until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("backup scheduler started", "interval", s.interval.String(), "maxSlots", s.maxSlots)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("backup scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunNow(ctx); err != nil {
				s.log.Error("scheduled backup failed", "error", err)
			}
		}
	}
}

// RunNow writes one backup slot and evicts the oldest slots beyond the
// ring capacity.
func (s *Scheduler) RunNow(ctx context.Context) (*Slot, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBackupInFlight
	}
	defer s.inFlight.Store(false)

	bundle, err := s.service.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, err
	}

	encrypted := s.crypto != nil && s.crypto.Configured()
	if encrypted {
		data, err = s.crypto.Encrypt(data)
		if err != nil {
			return nil, fmt.Errorf("encrypt backup: %w", err)
		}
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	slot := Slot{
		ID:        id,
		Filename:  fmt.Sprintf("backup-%s-%s.json", now.Format("20060102-150405"), id[:8]),
		CreatedAt: now,
		SizeBytes: int64(len(data)),
		Encrypted: encrypted,
		Counts:    bundle.Counts(),
	}
	if err := os.WriteFile(filepath.Join(s.dir, slot.Filename), data, 0o600); err != nil {
		return nil, fmt.Errorf("write backup: %w", err)
	}

	s.mu.Lock()
	s.slots = append(s.slots, slot)
	evicted := s.evictLocked()
	err = s.saveIndexLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, old := range evicted {
		if err := os.Remove(filepath.Join(s.dir, old.Filename)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("could not remove evicted backup", "file", old.Filename, "error", err)
		}
	}

	if err := s.service.Settings.RecordBackup(ctx, now); err != nil {
		s.log.Warn("could not stamp backup time", "error", err)
	}
	s.log.Info("backup written", "file", slot.Filename, "bytes", slot.SizeBytes, "encrypted", encrypted)
	return &slot, nil
}

// Slots lists stored backups, newest first.
func (s *Scheduler) Slots() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]Slot(nil), s.slots...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ReadSlot returns the decrypted bundle JSON of a stored backup.
func (s *Scheduler) ReadSlot(id string) ([]byte, *Slot, error) {
	slot, ok := s.findSlot(id)
	if !ok {
		return nil, nil, ErrSlotNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, slot.Filename))
	if err != nil {
		return nil, nil, fmt.Errorf("read backup: %w", err)
	}
	if slot.Encrypted {
		if s.crypto == nil || !s.crypto.Configured() {
			return nil, nil, fmt.Errorf("backup %s is encrypted and no key is configured", slot.Filename)
		}
		data, err = s.crypto.Decrypt(data)
		if err != nil {
			return nil, nil, fmt.Errorf("decrypt backup: %w", err)
		}
	}
	return data, &slot, nil
}

// RestoreSlot upserts the bundle stored in a slot into the live dataset.
func (s *Scheduler) RestoreSlot(ctx context.Context, id string) (*Bundle, error) {
	data, _, err := s.ReadSlot(id)
	if err != nil {
		return nil, err
	}
	return s.service.ImportJSON(ctx, data)
}

// DeleteSlot removes a stored backup and its file.
func (s *Scheduler) DeleteSlot(id string) error {
	s.mu.Lock()
	idx := -1
	for i, slot := range s.slots {
		if slot.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrSlotNotFound
	}
	removed := s.slots[idx]
	s.slots = append(s.slots[:idx], s.slots[idx+1:]...)
	err := s.saveIndexLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, removed.Filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove backup: %w", err)
	}
	return nil
}

func (s *Scheduler) findSlot(id string) (Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return Slot{}, false
}

// evictLocked drops the oldest slots beyond capacity and returns them so
// the caller can remove the files outside the lock.
func (s *Scheduler) evictLocked() []Slot {
	if len(s.slots) <= s.maxSlots {
		return nil
	}
	sort.Slice(s.slots, func(i, j int) bool { return s.slots[i].CreatedAt.Before(s.slots[j].CreatedAt) })
	cut := len(s.slots) - s.maxSlots
	evicted := append([]Slot(nil), s.slots[:cut]...)
	s.slots = append([]Slot(nil), s.slots[cut:]...)
	return evicted
}

func (s *Scheduler) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFilename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read backup index: %w", err)
	}
	var slots []Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		s.log.Warn("backup index unreadable, starting empty", "error", err)
		return nil
	}
	s.slots = slots
	return nil
}

func (s *Scheduler) saveIndexLocked() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFilename), data, 0o600); err != nil {
		return fmt.Errorf("write backup index: %w", err)
	}
	return nil
}
