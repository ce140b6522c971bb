package receipts

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/settings"
	"payrollpro/internal/platform/db"
)

func newTestService(t *testing.T) (*Service, *employees.Service) {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.Migrate(database,
		&employees.Employee{},
		&advances.Advance{},
		&payroll.SalaryPayment{},
		&Receipt{},
		&settings.Settings{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	settingsService, err := settings.NewService(database)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	employeeStore := employees.NewStore(database)
	return NewService(NewStore(database), employeeStore, settingsService), employees.NewService(employeeStore)
}

func seedEmployee(t *testing.T, svc *employees.Service) *employees.Employee {
	t.Helper()
	emp, err := svc.Create(context.Background(), employees.Input{
		Matricule:  "EMP00007",
		FirstName:  "Hery",
		LastName:   "Rakoto",
		BaseSalary: 250000,
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return emp
}

func TestSalaryReceiptNumberIsDeterministic(t *testing.T) {
	got := SalaryReceiptNumber(2025, 3, "EMP00007")
	if got != "SAL-202503-EMP00007" {
		t.Fatalf("unexpected number %q", got)
	}
}

func TestAdvanceReceiptNumberShape(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	got := AdvanceReceiptNumber(at)
	if !strings.HasPrefix(got, "REC-202503-") || len(got) != len("REC-202503-0000") {
		t.Fatalf("unexpected number %q", got)
	}
}

func TestIssueForPaymentSnapshotsEmployee(t *testing.T) {
	ctx := context.Background()
	svc, employeeService := newTestService(t)
	emp := seedEmployee(t, employeeService)

	payment := &payroll.SalaryPayment{
		ID:         "pay-1",
		EmployeeID: emp.ID,
		Month:      3,
		Year:       2025,
		NetSalary:  225000,
	}

	receipt, err := svc.IssueForPayment(ctx, payment, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if receipt.ReceiptNumber != "SAL-202503-EMP00007" {
		t.Fatalf("unexpected receipt number %q", receipt.ReceiptNumber)
	}
	if receipt.EmployeeName != "Hery Rakoto" || receipt.EmployeeMatricule != "EMP00007" {
		t.Fatalf("employee snapshot missing: %q / %q", receipt.EmployeeName, receipt.EmployeeMatricule)
	}
	if receipt.Amount != 225000 || receipt.Type != TypeSalary {
		t.Fatalf("unexpected receipt payload: %+v", receipt)
	}
	if receipt.SignatureDate != nil {
		t.Fatalf("no signature date expected without signature")
	}

	if _, err := svc.IssueForPayment(ctx, payment, ""); err == nil {
		t.Fatalf("expected duplicate receipt number to be rejected")
	}
}

func TestIssueForAdvanceStampsSignature(t *testing.T) {
	ctx := context.Background()
	svc, employeeService := newTestService(t)
	emp := seedEmployee(t, employeeService)

	advance := &advances.Advance{
		ID:         "adv-1",
		EmployeeID: emp.ID,
		Amount:     50000,
		Month:      3,
		Year:       2025,
	}

	receipt, err := svc.IssueForAdvance(ctx, advance, "data:image/png;base64,abc")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if receipt.Type != TypeAdvance || receipt.Amount != 50000 {
		t.Fatalf("unexpected receipt payload: %+v", receipt)
	}
	if receipt.SignatureDate == nil {
		t.Fatalf("expected signature date with a signature")
	}
}

func TestRenderSalaryPDF(t *testing.T) {
	ctx := context.Background()
	svc, employeeService := newTestService(t)
	emp := seedEmployee(t, employeeService)

	payment := &payroll.SalaryPayment{
		ID:              "pay-1",
		EmployeeID:      emp.ID,
		Month:           3,
		Year:            2025,
		BaseSalary:      250000,
		Bonus:           50000,
		Deductions:      25000,
		TotalAdvances:   50000,
		NetSalary:       225000,
		RemainingAmount: 225000,
	}

	data, err := svc.RenderSalaryPDF(ctx, payment)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", data[:min(8, len(data))])
	}
}

func TestRenderAdvancePDF(t *testing.T) {
	ctx := context.Background()
	svc, employeeService := newTestService(t)
	emp := seedEmployee(t, employeeService)

	now := time.Now().UTC()
	advance := &advances.Advance{
		ID:           "adv-1",
		EmployeeID:   emp.ID,
		Amount:       50000,
		Month:        3,
		Year:         2025,
		Reason:       "frais scolaires",
		ApprovalDate: &now,
	}

	data, err := svc.RenderAdvancePDF(ctx, advance)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document")
	}
}
