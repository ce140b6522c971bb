package payroll

import "time"

const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// SalaryPayment is a point-in-time snapshot: the salary components and
// advance total are frozen at computation time and never recomputed when
// the employee or their advances change afterwards.
type SalaryPayment struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	EmployeeID      string     `gorm:"index;uniqueIndex:idx_payment_period;not null" json:"employeeId"`
	Month           int        `gorm:"uniqueIndex:idx_payment_period;index:idx_payment_month_year" json:"month"`
	Year            int        `gorm:"uniqueIndex:idx_payment_period;index:idx_payment_month_year" json:"year"`
	BaseSalary      float64    `json:"baseSalary"`
	Bonus           float64    `json:"bonus"`
	Deductions      float64    `json:"deductions"`
	TotalAdvances   float64    `json:"totalAdvances"`
	NetSalary       float64    `json:"netSalary"`
	AmountPaid      float64    `json:"amountPaid"`
	RemainingAmount float64    `json:"remainingAmount"`
	Status          string     `gorm:"index;not null" json:"status"`
	PaymentDate     *time.Time `json:"paymentDate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BatchResult reports a best-effort monthly generation run.
type BatchResult struct {
	Payments []SalaryPayment `json:"payments"`
	Warnings []string        `json:"warnings"`
}
