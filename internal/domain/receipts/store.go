package receipts

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("receipt not found")
	ErrDuplicateNumber = errors.New("receipt number already in use")
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, receipt *Receipt) error {
	err := s.DB.WithContext(ctx).Create(receipt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateNumber
	}
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Receipt, error) {
	var receipt Receipt
	err := s.DB.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (s *Store) List(ctx context.Context) ([]Receipt, error) {
	out := make([]Receipt, 0)
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Receipt, error) {
	out := make([]Receipt, 0)
	err := s.DB.WithContext(ctx).Where("employee_id = ?", employeeID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByType(ctx context.Context, receiptType string) ([]Receipt, error) {
	out := make([]Receipt, 0)
	err := s.DB.WithContext(ctx).Where("type = ?", receiptType).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&Receipt{}, "id = ?", id).Error
}
