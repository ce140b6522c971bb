package backup

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/receipts"
	"payrollpro/internal/domain/settings"
	"payrollpro/internal/platform/db"
)

func newTestBackup(t *testing.T) (*Service, *gorm.DB, *employees.Service) {
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
		&payroll.SalaryPayment{},
		&receipts.Receipt{},
		&settings.Settings{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	settingsService, err := settings.NewService(database)
	if err != nil {
		t.Fatalf("settings service: %v", err)
	}
	employeeService := employees.NewService(employees.NewStore(database))
	return NewService(database, settingsService), database, employeeService
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, employeeService := newTestBackup(t)

	emp, err := employeeService.Create(ctx, employees.Input{FirstName: "Hery", LastName: "Rakoto", BaseSalary: 250000})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	data, err := svc.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	remaining, err := employeeService.List(ctx)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(remaining))
	}

	bundle, err := svc.ImportJSON(ctx, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if bundle.Counts().Employees != 1 {
		t.Fatalf("expected 1 employee in bundle, got %d", bundle.Counts().Employees)
	}

	restored, err := employeeService.Get(ctx, emp.ID)
	if err != nil {
		t.Fatalf("get restored employee: %v", err)
	}
	if restored.Matricule != emp.Matricule {
		t.Fatalf("restored matricule mismatch: %q vs %q", restored.Matricule, emp.Matricule)
	}
}

func TestImportUpsertsWithoutDeleting(t *testing.T) {
	ctx := context.Background()
	svc, _, employeeService := newTestBackup(t)

	first, err := employeeService.Create(ctx, employees.Input{FirstName: "Hery", LastName: "Rakoto", BaseSalary: 250000})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	snapshot, err := svc.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	input := employees.Input{Matricule: first.Matricule, FirstName: "Herizo", LastName: "Rakoto", BaseSalary: 260000}
	if _, err := employeeService.Update(ctx, first.ID, input); err != nil {
		t.Fatalf("rename employee: %v", err)
	}
	second, err := employeeService.Create(ctx, employees.Input{FirstName: "Lova", LastName: "Andri", BaseSalary: 180000})
	if err != nil {
		t.Fatalf("create second employee: %v", err)
	}

	if _, err := svc.ImportJSON(ctx, snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}

	list, err := employeeService.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("import must merge, not replace: got %d employees", len(list))
	}

	restored, err := employeeService.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get snapshot employee: %v", err)
	}
	if restored.FirstName != "Hery" || restored.BaseSalary != 250000 {
		t.Fatalf("bundle row must overwrite by id: got %q / %v", restored.FirstName, restored.BaseSalary)
	}
	if _, err := employeeService.Get(ctx, second.ID); err != nil {
		t.Fatalf("record outside the bundle must survive import: %v", err)
	}
}

func TestImportKeepsCollectionsAbsentFromBundle(t *testing.T) {
	ctx := context.Background()
	svc, _, employeeService := newTestBackup(t)

	if _, err := employeeService.EnsureDepartment(ctx, "Informatique"); err != nil {
		t.Fatalf("ensure department: %v", err)
	}

	// Older exports carry only the four data collections.
	legacy := []byte(`{"version":1,"employees":[],"advances":[],"salaryPayments":[],"receipts":[]}`)
	if _, err := svc.ImportJSON(ctx, legacy); err != nil {
		t.Fatalf("import legacy bundle: %v", err)
	}

	departments, err := employeeService.Store.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	if len(departments) != 1 {
		t.Fatalf("departments must survive a bundle without them, got %d", len(departments))
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestBackup(t)
	if _, err := svc.ImportJSON(context.Background(), []byte("not json")); err == nil {
		t.Fatalf("expected error for unparsable bundle")
	}
}

func TestImportRejectsNewerBundleVersion(t *testing.T) {
	svc, _, _ := newTestBackup(t)
	err := svc.ImportAll(context.Background(), &Bundle{Version: BundleVersion + 1})
	if err == nil {
		t.Fatalf("expected error for newer bundle version")
	}
}
