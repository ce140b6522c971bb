package payroll

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

func (s *Store) Create(ctx context.Context, payment *SalaryPayment) error {
	return s.DB.WithContext(ctx).Create(payment).Error
}

func (s *Store) Get(ctx context.Context, id string) (*SalaryPayment, error) {
	var payment SalaryPayment
	err := s.DB.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetForPeriod returns the single payment for (employee, month, year), or
// ErrPaymentNotFound. The unique index guarantees at most one row.
func (s *Store) GetForPeriod(ctx context.Context, employeeID string, month, year int) (*SalaryPayment, error) {
	var payment SalaryPayment
	err := s.DB.WithContext(ctx).
		First(&payment, "employee_id = ? AND month = ? AND year = ?", employeeID, month, year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Store) List(ctx context.Context) ([]SalaryPayment, error) {
	out := make([]SalaryPayment, 0)
	err := s.DB.WithContext(ctx).Order("year DESC, month DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]SalaryPayment, error) {
	out := make([]SalaryPayment, 0)
	err := s.DB.WithContext(ctx).Where("employee_id = ?", employeeID).Order("year DESC, month DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListByPeriod(ctx context.Context, month, year int) ([]SalaryPayment, error) {
	out := make([]SalaryPayment, 0)
	err := s.DB.WithContext(ctx).Where("month = ? AND year = ?", month, year).Find(&out).Error
	return out, err
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]SalaryPayment, error) {
	out := make([]SalaryPayment, 0)
	err := s.DB.WithContext(ctx).Where("status = ?", status).Order("year DESC, month DESC").Find(&out).Error
	return out, err
}

func (s *Store) Update(ctx context.Context, payment *SalaryPayment) error {
	result := s.DB.WithContext(ctx).Model(&SalaryPayment{}).Where("id = ?", payment.ID).Select("*").Omit("id", "created_at").Updates(payment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&SalaryPayment{}, "id = ?", id).Error
}
