package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
)

type Service struct {
	Store     *Store
	Employees *employees.Store
	Advances  *advances.Store
}

func NewService(store *Store, employeeStore *employees.Store, advanceStore *advances.Store) *Service {
	return &Service{Store: store, Employees: employeeStore, Advances: advanceStore}
}

// ComputeMonthlySalary creates the salary payment for one employee and
// period. It is idempotent: an existing payment for the period is returned
// unchanged, never overwritten.
func (s *Service) ComputeMonthlySalary(ctx context.Context, employeeID string, month, year int) (*SalaryPayment, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, ErrInvalidPeriod
	}

	emp, err := s.Employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.computeFor(ctx, emp, month, year)
}

func (s *Service) computeFor(ctx context.Context, emp *employees.Employee, month, year int) (*SalaryPayment, error) {
	existing, err := s.Store.GetForPeriod(ctx, emp.ID, month, year)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrPaymentNotFound) {
		return nil, err
	}

	totalAdvances, err := s.totalApprovedAdvances(ctx, emp.ID, month, year)
	if err != nil {
		return nil, err
	}
	calc := Compute(emp.BaseSalary, emp.Bonus, emp.Deductions, totalAdvances)

	now := time.Now().UTC()
	payment := &SalaryPayment{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		Month:           month,
		Year:            year,
		BaseSalary:      emp.BaseSalary,
		Bonus:           emp.Bonus,
		Deductions:      emp.Deductions,
		TotalAdvances:   calc.TotalAdvances,
		NetSalary:       calc.NetSalary,
		AmountPaid:      0,
		RemainingAmount: calc.NetSalary,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GenerateMonthlySalaries computes payments for every active employee,
// best effort: inactive and suspended employees are skipped, already
// computed periods are returned as-is, and per-employee failures become
// warnings without rolling back prior successes.
func (s *Service) GenerateMonthlySalaries(ctx context.Context, month, year int) (BatchResult, error) {
	if month < 1 || month > 12 || year <= 0 {
		return BatchResult{}, ErrInvalidPeriod
	}

	emps, err := s.Employees.ListEmployees(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Payments: make([]SalaryPayment, 0, len(emps)), Warnings: []string{}}
	for i := range emps {
		emp := &emps[i]
		if emp.Status != employees.StatusActive {
			continue
		}
		payment, err := s.computeFor(ctx, emp, month, year)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %s: %v", emp.FirstName, emp.LastName, err))
			continue
		}
		result.Payments = append(result.Payments, *payment)
	}
	return result, nil
}

// RecordPayment adds amount to the cumulative amount paid and re-derives
// remaining and status. The UI clamps amounts to the remaining balance;
// here only negative amounts are rejected.
func (s *Service) RecordPayment(ctx context.Context, paymentID string, amount float64, notes string) (*SalaryPayment, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	existing, err := s.Store.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *existing
	updated.AmountPaid = existing.AmountPaid + amount
	updated.RemainingAmount = Remaining(updated.NetSalary, updated.AmountPaid)
	updated.Status = DeriveStatus(updated.NetSalary, updated.AmountPaid)
	updated.PaymentDate = &now
	if strings.TrimSpace(notes) != "" {
		updated.Notes = notes
	}
	updated.UpdatedAt = now

	if err := s.Store.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a payment row. This is the explicit recalculation path:
// snapshots are never refreshed in place, the row is deleted and computed
// again.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*SalaryPayment, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]SalaryPayment, error) {
	return s.Store.List(ctx)
}

func (s *Service) totalApprovedAdvances(ctx context.Context, employeeID string, month, year int) (float64, error) {
	approved, err := s.Advances.ApprovedForPeriod(ctx, employeeID, month, year)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, advance := range approved {
		total += advance.Amount
	}
	return total, nil
}
