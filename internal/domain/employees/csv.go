package employees

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column order matches the original export format; the header row carries
// the French labels expected by spreadsheet users.
var csvFields = []string{
	"matricule", "firstName", "lastName", "email", "phone", "address",
	"dateOfBirth", "hireDate", "position", "department",
	"baseSalary", "bonus", "deductions", "status",
}

var csvLabels = map[string]string{
	"matricule":   "Matricule",
	"firstName":   "Prénom",
	"lastName":    "Nom",
	"email":       "Email",
	"phone":       "Téléphone",
	"address":     "Adresse",
	"dateOfBirth": "Date de naissance",
	"hireDate":    "Date d'embauche",
	"position":    "Poste",
	"department":  "Département",
	"baseSalary":  "Salaire de base",
	"bonus":       "Prime",
	"deductions":  "Déductions",
	"status":      "Statut",
}

var csvStatusAliases = map[string]string{
	"active":    StatusActive,
	"actif":     StatusActive,
	"inactive":  StatusInactive,
	"inactif":   StatusInactive,
	"suspended": StatusSuspended,
	"suspendu":  StatusSuspended,
}

var ErrImportParse = errors.New("could not parse import file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders employees as UTF-8 CSV with a BOM for spreadsheet
// compatibility. Department and position ids are resolved to names via the
// supplied lookup maps.
func ExportCSV(emps []Employee, departmentNames, positionNames map[string]string) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	header := make([]string, len(csvFields))
	for i, field := range csvFields {
		header[i] = csvLabels[field]
	}
	_ = writer.Write(header)

	for _, emp := range emps {
		record := []string{
			emp.Matricule,
			emp.FirstName,
			emp.LastName,
			emp.Email,
			emp.Phone,
			emp.Address,
			emp.DateOfBirth,
			emp.HireDate,
			positionNames[emp.PositionID],
			departmentNames[emp.DepartmentID],
			formatAmount(emp.BaseSalary),
			formatAmount(emp.Bonus),
			formatAmount(emp.Deductions),
			emp.Status,
		}
		_ = writer.Write(record)
	}
	writer.Flush()
	return buf.Bytes()
}

// CSVRow is one parsed import line. Department and position travel as
// names; the import resolves them to ids.
type CSVRow struct {
	Input
	Department string
	Position   string
}

// ParseCSV reads an employee import file. Rows that fail validation are
// reported as warnings and skipped; only a structurally unusable file is an
// error.
func ParseCSV(content []byte) ([]CSVRow, []string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing header row", ErrImportParse)
	}

	fields := mapHeader(header)
	for _, required := range []string{"firstName", "lastName", "baseSalary"} {
		if _, ok := fields[required]; !ok {
			return nil, nil, fmt.Errorf("%w: missing required column %q", ErrImportParse, csvLabels[required])
		}
	}

	var rows []CSVRow
	var warnings []string
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		row := CSVRow{Input: Input{Status: StatusActive}}
		for field, index := range fields {
			if index >= len(record) {
				continue
			}
			value := strings.TrimSpace(record[index])
			switch field {
			case "matricule":
				row.Matricule = value
			case "firstName":
				row.FirstName = value
			case "lastName":
				row.LastName = value
			case "email":
				row.Email = value
			case "phone":
				row.Phone = value
			case "address":
				row.Address = value
			case "dateOfBirth":
				row.DateOfBirth = value
			case "hireDate":
				row.HireDate = value
			case "position":
				row.Position = value
			case "department":
				row.Department = value
			case "baseSalary":
				row.BaseSalary = parseAmount(value)
			case "bonus":
				row.Bonus = parseAmount(value)
			case "deductions":
				row.Deductions = parseAmount(value)
			case "status":
				if mapped, ok := csvStatusAliases[strings.ToLower(value)]; ok {
					row.Status = mapped
				}
			}
		}

		if row.FirstName == "" || row.LastName == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: first and last name are required", line))
			continue
		}
		if row.BaseSalary <= 0 {
			warnings = append(warnings, fmt.Sprintf("line %d: base salary must be positive", line))
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 && len(warnings) == 0 {
		return nil, nil, fmt.Errorf("%w: no data rows", ErrImportParse)
	}
	return rows, warnings, nil
}

type ImportResult struct {
	Created  int      `json:"created"`
	Warnings []string `json:"warnings"`
}

// ImportCSV creates employees from an import file, best effort: each row is
// attempted independently and failures become warnings. Prior successes are
// never rolled back.
func (s *Service) ImportCSV(ctx context.Context, content []byte) (ImportResult, error) {
	rows, warnings, err := ParseCSV(content)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Warnings: warnings}
	for _, row := range rows {
		input := row.Input
		if row.Department != "" {
			dept, err := s.EnsureDepartment(ctx, row.Department)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s %s: department %q: %v", row.FirstName, row.LastName, row.Department, err))
			} else {
				input.DepartmentID = dept.ID
			}
		}
		if row.Position != "" {
			pos, err := s.EnsurePosition(ctx, row.Position)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s %s: position %q: %v", row.FirstName, row.LastName, row.Position, err))
			} else {
				input.PositionID = pos.ID
			}
		}
		if _, err := s.Create(ctx, input); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %s: %v", row.FirstName, row.LastName, err))
			continue
		}
		result.Created++
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	return result, nil
}

func mapHeader(header []string) map[string]int {
	byLabel := make(map[string]string, len(csvLabels)*2)
	for field, label := range csvLabels {
		byLabel[strings.ToLower(label)] = field
		byLabel[strings.ToLower(field)] = field
	}
	fields := make(map[string]int)
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, string(utf8BOM))))
		if field, ok := byLabel[normalized]; ok {
			fields[field] = i
		}
	}
	return fields
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseAmount strips everything but digits, separators and sign before
// parsing; anything unparsable becomes 0.
func parseAmount(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
