package receipts

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	TypeSalary  = "salary"
	TypeAdvance = "advance"
)

type Receipt struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	ReceiptNumber     string     `gorm:"uniqueIndex;not null" json:"receiptNumber"`
	Type              string     `gorm:"index;not null" json:"type"`
	EmployeeID        string     `gorm:"index;not null" json:"employeeId"`
	EmployeeName      string     `json:"employeeName"`
	EmployeeMatricule string     `json:"employeeMatricule"`
	Amount            float64    `json:"amount"`
	Month             int        `json:"month,omitempty"`
	Year              int        `json:"year,omitempty"`
	Description       string     `json:"description"`
	Signature         string     `json:"signature,omitempty"`
	SignatureDate     *time.Time `json:"signatureDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// SalaryReceiptNumber is deterministic per employee and period, matching
// the original numbering.
func SalaryReceiptNumber(year, month int, matricule string) string {
	return fmt.Sprintf("SAL-%d%02d-%s", year, month, matricule)
}

// AdvanceReceiptNumber carries a random suffix; collisions are caught by
// the unique index.
func AdvanceReceiptNumber(at time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(0)
	}
	return fmt.Sprintf("REC-%d%02d-%04d", at.Year(), int(at.Month()), n.Int64())
}
