package employees

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"payrollpro/internal/platform/db"
)

func newCSVTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.Migrate(database, &Employee{}, &Department{}, &Position{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewStore(database))
}

func TestExportCSVStartsWithBOMAndFrenchHeader(t *testing.T) {
	emps := []Employee{{
		Matricule:  "EMP00001",
		FirstName:  "Hery",
		LastName:   "Rakoto",
		BaseSalary: 250000,
		Status:     StatusActive,
	}}

	data := ExportCSV(emps, nil, nil)
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("expected UTF-8 BOM prefix")
	}

	text := string(bytes.TrimPrefix(data, utf8BOM))
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	for _, label := range []string{"Matricule", "Prénom", "Nom", "Salaire de base", "Statut"} {
		if !strings.Contains(lines[0], label) {
			t.Fatalf("header missing label %q: %s", label, lines[0])
		}
	}
	if !strings.Contains(lines[1], "250000") {
		t.Fatalf("row missing base salary: %s", lines[1])
	}
}

func TestParseCSVRoundTrip(t *testing.T) {
	emps := []Employee{{
		Matricule:  "EMP00001",
		FirstName:  "Hery",
		LastName:   "Rakoto",
		Email:      "hery@example.mg",
		BaseSalary: 250000,
		Bonus:      50000,
		Deductions: 25000,
		Status:     StatusActive,
	}}

	rows, warnings, err := ParseCSV(ExportCSV(emps, nil, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Matricule != "EMP00001" || row.FirstName != "Hery" || row.BaseSalary != 250000 {
		t.Fatalf("round trip mismatch: %+v", row)
	}
}

func TestParseCSVAcceptsFrenchStatusAliases(t *testing.T) {
	content := "Prénom,Nom,Salaire de base,Statut\n" +
		"Hery,Rakoto,250000,actif\n" +
		"Lova,Andri,180000,suspendu\n"

	rows, _, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0].Status != StatusActive {
		t.Fatalf("expected actif mapped to active, got %q", rows[0].Status)
	}
	if rows[1].Status != StatusSuspended {
		t.Fatalf("expected suspendu mapped to suspended, got %q", rows[1].Status)
	}
}

func TestParseCSVLenientAmounts(t *testing.T) {
	content := "Prénom,Nom,Salaire de base\n" +
		"Hery,Rakoto,\"250 000 Ar\"\n"

	rows, _, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0].BaseSalary != 250000 {
		t.Fatalf("expected lenient parse of formatted amount, got %v", rows[0].BaseSalary)
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	content := "Prénom,Nom\nHery,Rakoto\n"
	if _, _, err := ParseCSV([]byte(content)); err == nil {
		t.Fatalf("expected error for missing salary column")
	}
}

func TestParseCSVInvalidRowsBecomeWarnings(t *testing.T) {
	content := "Prénom,Nom,Salaire de base\n" +
		"Hery,Rakoto,250000\n" +
		",Seul,180000\n" +
		"Lova,Andri,0\n"

	rows, warnings, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the valid row, got %d", len(rows))
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
}

func TestImportCSVResolvesDepartmentsAndPositions(t *testing.T) {
	ctx := context.Background()
	svc := newCSVTestService(t)

	content := "Prénom,Nom,Salaire de base,Département,Poste\n" +
		"Hery,Rakoto,250000,Informatique,Technicien\n" +
		"Lova,Andri,180000,Informatique,Agent\n"

	result, err := svc.ImportCSV(ctx, []byte(content))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected 2 created, got %d (%v)", result.Created, result.Warnings)
	}

	departments, err := svc.Store.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	if len(departments) != 1 || departments[0].Name != "Informatique" {
		t.Fatalf("expected one shared department, got %+v", departments)
	}

	positions, err := svc.Store.ListPositions(ctx)
	if err != nil {
		t.Fatalf("list positions: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
}
