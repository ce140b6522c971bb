package advances

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, advance *Advance) error {
	return s.DB.WithContext(ctx).Create(advance).Error
}

func (s *Store) Get(ctx context.Context, id string) (*Advance, error) {
	var advance Advance
	err := s.DB.WithContext(ctx).First(&advance, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &advance, nil
}

func (s *Store) List(ctx context.Context) ([]Advance, error) {
	out := make([]Advance, 0)
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error) {
	out := make([]Advance, 0)
	err := s.DB.WithContext(ctx).Where("employee_id = ?", employeeID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByPeriod(ctx context.Context, month, year int) ([]Advance, error) {
	out := make([]Advance, 0)
	err := s.DB.WithContext(ctx).Where("month = ? AND year = ?", month, year).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Advance, error) {
	out := make([]Advance, 0)
	err := s.DB.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ApprovedForPeriod returns every approved advance counted against one
// employee's salary for the given month and year.
func (s *Store) ApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]Advance, error) {
	out := make([]Advance, 0)
	err := s.DB.WithContext(ctx).
		Where("employee_id = ? AND month = ? AND year = ? AND status = ?", employeeID, month, year, StatusApproved).
		Find(&out).Error
	return out, err
}

func (s *Store) Update(ctx context.Context, advance *Advance) error {
	result := s.DB.WithContext(ctx).Model(&Advance{}).Where("id = ?", advance.ID).Select("*").Omit("id", "created_at").Updates(advance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete is unconditional: it ignores status and never adjusts payment
// snapshots that already counted this advance.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&Advance{}, "id = ?", id).Error
}
