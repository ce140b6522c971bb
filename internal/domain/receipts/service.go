package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/settings"
)

// Service issues and renders receipts. Receipts snapshot the employee name
// and matricule so they stay printable after later edits.
type Service struct {
	Store     *Store
	Employees *employees.Store
	Settings  *settings.Service
}

func NewService(store *Store, employeeStore *employees.Store, settingsService *settings.Service) *Service {
	return &Service{Store: store, Employees: employeeStore, Settings: settingsService}
}

// IssueForPayment records a salary receipt for a computed payment.
func (s *Service) IssueForPayment(ctx context.Context, payment *payroll.SalaryPayment, signature string) (*Receipt, error) {
	emp, err := s.Employees.GetEmployee(ctx, payment.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receipt := &Receipt{
		ID:                uuid.NewString(),
		ReceiptNumber:     SalaryReceiptNumber(payment.Year, payment.Month, emp.Matricule),
		Type:              TypeSalary,
		EmployeeID:        emp.ID,
		EmployeeName:      emp.FullName(),
		EmployeeMatricule: emp.Matricule,
		Amount:            payment.NetSalary,
		Month:             payment.Month,
		Year:              payment.Year,
		Description:       fmt.Sprintf("Bulletin de paie %02d/%d", payment.Month, payment.Year),
		Signature:         signature,
		CreatedAt:         now,
	}
	if signature != "" {
		receipt.SignatureDate = &now
	}
	if err := s.Store.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// IssueForAdvance records an advance receipt.
func (s *Service) IssueForAdvance(ctx context.Context, advance *advances.Advance, signature string) (*Receipt, error) {
	emp, err := s.Employees.GetEmployee(ctx, advance.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receipt := &Receipt{
		ID:                uuid.NewString(),
		ReceiptNumber:     AdvanceReceiptNumber(now),
		Type:              TypeAdvance,
		EmployeeID:        emp.ID,
		EmployeeName:      emp.FullName(),
		EmployeeMatricule: emp.Matricule,
		Amount:            advance.Amount,
		Month:             advance.Month,
		Year:              advance.Year,
		Description:       fmt.Sprintf("Avance sur salaire %02d/%d", advance.Month, advance.Year),
		Signature:         signature,
		CreatedAt:         now,
	}
	if signature != "" {
		receipt.SignatureDate = &now
	}
	if err := s.Store.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Receipt, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	return s.Store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
