package payroll

import (
	"context"
	"testing"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/platform/db"
)

func newTestService(t *testing.T) (*Service, *employees.Service, *advances.Service) {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.Migrate(database,
		&employees.Employee{},
		&employees.Department{},
		&employees.Position{},
		&advances.Advance{},
		&SalaryPayment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	employeeStore := employees.NewStore(database)
	advanceStore := advances.NewStore(database)
	return NewService(NewStore(database), employeeStore, advanceStore),
		employees.NewService(employeeStore),
		advances.NewService(advanceStore, employeeStore)
}

func createEmployee(t *testing.T, svc *employees.Service, status string) *employees.Employee {
	t.Helper()
	emp, err := svc.Create(context.Background(), employees.Input{
		FirstName:  "Hery",
		LastName:   "Rakoto",
		BaseSalary: 250000,
		Bonus:      50000,
		Deductions: 25000,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return emp
}

func TestComputeMonthlySalaryIncludesApprovedAdvancesOnly(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, advanceService := newTestService(t)
	emp := createEmployee(t, employeeService, employees.StatusActive)

	approved, err := advanceService.Create(ctx, advances.Input{EmployeeID: emp.ID, Amount: 50000, Month: 3, Year: 2025})
	if err != nil {
		t.Fatalf("create advance: %v", err)
	}
	if _, err := advanceService.Approve(ctx, approved.ID); err != nil {
		t.Fatalf("approve advance: %v", err)
	}
	if _, err := advanceService.Create(ctx, advances.Input{EmployeeID: emp.ID, Amount: 30000, Month: 3, Year: 2025}); err != nil {
		t.Fatalf("create pending advance: %v", err)
	}

	payment, err := svc.ComputeMonthlySalary(ctx, emp.ID, 3, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if payment.TotalAdvances != 50000 {
		t.Fatalf("expected only the approved advance counted, got %v", payment.TotalAdvances)
	}
	if payment.NetSalary != 225000 {
		t.Fatalf("expected net 225000, got %v", payment.NetSalary)
	}
	if payment.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", payment.Status)
	}
}

func TestComputeMonthlySalaryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, _ := newTestService(t)
	emp := createEmployee(t, employeeService, employees.StatusActive)

	first, err := svc.ComputeMonthlySalary(ctx, emp.ID, 3, 2025)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, first.ID, 100000, ""); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	second, err := svc.ComputeMonthlySalary(ctx, emp.ID, 3, 2025)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the stored payment back, got a new row")
	}
	if second.AmountPaid != 100000 {
		t.Fatalf("expected recompute to keep amount paid, got %v", second.AmountPaid)
	}
}

func TestComputeMonthlySalaryRejectsBadPeriod(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, _ := newTestService(t)
	emp := createEmployee(t, employeeService, employees.StatusActive)

	if _, err := svc.ComputeMonthlySalary(ctx, emp.ID, 13, 2025); err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := svc.ComputeMonthlySalary(ctx, emp.ID, 1, 0); err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod for year 0, got %v", err)
	}
}

func TestGenerateMonthlySalariesSkipsInactive(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, _ := newTestService(t)
	createEmployee(t, employeeService, employees.StatusActive)

	if _, err := employeeService.Create(ctx, employees.Input{
		FirstName:  "Lova",
		LastName:   "Andri",
		BaseSalary: 180000,
		Status:     employees.StatusInactive,
	}); err != nil {
		t.Fatalf("create inactive employee: %v", err)
	}

	result, err := svc.GenerateMonthlySalaries(ctx, 3, 2025)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Payments) != 1 {
		t.Fatalf("expected 1 payment for the active employee, got %d", len(result.Payments))
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestRecordPaymentAccumulates(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, _ := newTestService(t)
	emp := createEmployee(t, employeeService, employees.StatusActive)

	payment, err := svc.ComputeMonthlySalary(ctx, emp.ID, 4, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	partial, err := svc.RecordPayment(ctx, payment.ID, 100000, "premier versement")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if partial.Status != StatusPartial || partial.RemainingAmount != 175000 {
		t.Fatalf("expected partial/175000, got %q/%v", partial.Status, partial.RemainingAmount)
	}
	if partial.PaymentDate == nil {
		t.Fatalf("expected payment date to be set")
	}

	paid, err := svc.RecordPayment(ctx, payment.ID, 175000, "")
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if paid.Status != StatusPaid || paid.RemainingAmount != 0 {
		t.Fatalf("expected paid/0, got %q/%v", paid.Status, paid.RemainingAmount)
	}
	if paid.Notes != "premier versement" {
		t.Fatalf("expected earlier notes kept, got %q", paid.Notes)
	}

	if _, err := svc.RecordPayment(ctx, payment.ID, -1, ""); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestDeleteThenRecomputePicksUpNewAdvances(t *testing.T) {
	ctx := context.Background()
	svc, employeeService, advanceService := newTestService(t)
	emp := createEmployee(t, employeeService, employees.StatusActive)

	payment, err := svc.ComputeMonthlySalary(ctx, emp.ID, 5, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if payment.TotalAdvances != 0 {
		t.Fatalf("expected no advances in first snapshot, got %v", payment.TotalAdvances)
	}

	advance, err := advanceService.Create(ctx, advances.Input{EmployeeID: emp.ID, Amount: 40000, Month: 5, Year: 2025})
	if err != nil {
		t.Fatalf("create advance: %v", err)
	}
	if _, err := advanceService.Approve(ctx, advance.ID); err != nil {
		t.Fatalf("approve advance: %v", err)
	}

	unchanged, err := svc.ComputeMonthlySalary(ctx, emp.ID, 5, 2025)
	if err != nil {
		t.Fatalf("recompute without delete: %v", err)
	}
	if unchanged.TotalAdvances != 0 {
		t.Fatalf("snapshot should not refresh in place, got advances %v", unchanged.TotalAdvances)
	}

	if err := svc.Delete(ctx, payment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	fresh, err := svc.ComputeMonthlySalary(ctx, emp.ID, 5, 2025)
	if err != nil {
		t.Fatalf("fresh compute: %v", err)
	}
	if fresh.TotalAdvances != 40000 {
		t.Fatalf("expected fresh snapshot to include the advance, got %v", fresh.TotalAdvances)
	}
}
