package backup

import (
	"time"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/receipts"
	"payrollpro/internal/domain/settings"
)

// Bundle is the full exportable state of the application.
type Bundle struct {
	Version     int                     `json:"version"`
	ExportedAt  time.Time               `json:"exportedAt"`
	Employees   []employees.Employee    `json:"employees"`
	Departments []employees.Department  `json:"departments"`
	Positions   []employees.Position    `json:"positions"`
	Advances    []advances.Advance      `json:"advances"`
	Payments    []payroll.SalaryPayment `json:"salaryPayments"`
	Receipts    []receipts.Receipt      `json:"receipts"`
	Settings    *settings.Settings      `json:"settings,omitempty"`
}

// BundleVersion is bumped when the bundle layout changes incompatibly.
const BundleVersion = 1

// RecordCounts summarizes a bundle for slot listings.
type RecordCounts struct {
	Employees   int `json:"employees"`
	Departments int `json:"departments"`
	Positions   int `json:"positions"`
	Advances    int `json:"advances"`
	Payments    int `json:"salaryPayments"`
	Receipts    int `json:"receipts"`
}

func (b *Bundle) Counts() RecordCounts {
	return RecordCounts{
		Employees:   len(b.Employees),
		Departments: len(b.Departments),
		Positions:   len(b.Positions),
		Advances:    len(b.Advances),
		Payments:    len(b.Payments),
		Receipts:    len(b.Receipts),
	}
}

// Slot describes one stored backup in the ring.
type Slot struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	CreatedAt time.Time    `json:"createdAt"`
	SizeBytes int64        `json:"sizeBytes"`
	Encrypted bool         `json:"encrypted"`
	Counts    RecordCounts `json:"recordCounts"`
}
