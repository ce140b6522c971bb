package advances

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusRepaid   = "repaid"
)

type Advance struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	EmployeeID   string     `gorm:"index;not null" json:"employeeId"`
	Amount       float64    `gorm:"not null" json:"amount"`
	Reason       string     `json:"reason"`
	RequestDate  string     `json:"requestDate"`
	ApprovalDate *time.Time `json:"approvalDate,omitempty"`
	Status       string     `gorm:"index;not null" json:"status"`
	Month        int        `gorm:"index:idx_advance_period" json:"month"`
	Year         int        `gorm:"index:idx_advance_period" json:"year"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Input struct {
	EmployeeID  string  `json:"employeeId"`
	Amount      float64 `json:"amount"`
	Reason      string  `json:"reason"`
	RequestDate string  `json:"requestDate"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Notes       string  `json:"notes"`
}
