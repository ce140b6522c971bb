package employees

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the same employee table as ExportCSV, as a workbook
// for spreadsheet users who skip the CSV path.
func ExportXLSX(emps []Employee, departmentNames, positionNames map[string]string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Employés"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]any, len(csvFields))
	for i, field := range csvFields {
		header[i] = csvLabels[field]
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, emp := range emps {
		row := []any{
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
			emp.BaseSalary,
			emp.Bonus,
			emp.Deductions,
			emp.Status,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
