// Package reports aggregates dashboard figures over the live dataset.
package reports

import (
	"context"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
)

// Stats is the dashboard summary for one pay period.
type Stats struct {
	Month              int     `json:"month"`
	Year               int     `json:"year"`
	TotalEmployees     int64   `json:"totalEmployees"`
	ActiveEmployees    int     `json:"activeEmployees"`
	TotalMonthlySalary float64 `json:"totalMonthlySalary"`
	PendingAdvances    int     `json:"pendingAdvances"`
	PendingAmount      float64 `json:"pendingAdvancesAmount"`
	ComputedPayments   int     `json:"computedPayments"`
	PaidThisMonth      float64 `json:"paidThisMonth"`
	RemainingToPay     float64 `json:"remainingToPay"`
}

type Service struct {
	Employees *employees.Store
	Advances  *advances.Store
	Payments  *payroll.Store
}

func NewService(employeeStore *employees.Store, advanceStore *advances.Store, paymentStore *payroll.Store) *Service {
	return &Service{Employees: employeeStore, Advances: advanceStore, Payments: paymentStore}
}

// Stats computes the dashboard for the given period. The projected monthly
// total covers active employees only; paid and remaining figures come from
// the stored payment snapshots of the period.
func (s *Service) Stats(ctx context.Context, month, year int) (*Stats, error) {
	stats := &Stats{Month: month, Year: year}

	total, err := s.Employees.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalEmployees = total

	active, err := s.Employees.ListEmployeesByStatus(ctx, employees.StatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveEmployees = len(active)
	for _, emp := range active {
		stats.TotalMonthlySalary += emp.BaseSalary + emp.Bonus - emp.Deductions
	}

	pending, err := s.Advances.ListByStatus(ctx, advances.StatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingAdvances = len(pending)
	for _, adv := range pending {
		stats.PendingAmount += adv.Amount
	}

	payments, err := s.Payments.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	stats.ComputedPayments = len(payments)
	for _, payment := range payments {
		stats.PaidThisMonth += payment.AmountPaid
		stats.RemainingToPay += payment.RemainingAmount
	}
	return stats, nil
}
