package employees

import "time"

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var Statuses = []string{StatusActive, StatusInactive, StatusSuspended}

type Employee struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Matricule    string    `gorm:"uniqueIndex;not null" json:"matricule"`
	FirstName    string    `gorm:"not null" json:"firstName"`
	LastName     string    `gorm:"not null" json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	DateOfBirth  string    `json:"dateOfBirth"`
	HireDate     string    `json:"hireDate"`
	PositionID   string    `gorm:"index" json:"positionId"`
	DepartmentID string    `gorm:"index" json:"departmentId"`
	BaseSalary   float64   `gorm:"not null" json:"baseSalary"`
	Bonus        float64   `json:"bonus"`
	Deductions   float64   `json:"deductions"`
	Status       string    `gorm:"index;not null" json:"status"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Department struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Position is optionally scoped to a department; an empty DepartmentID
// means the position is available everywhere.
type Position struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex:idx_position_name_dept;not null" json:"name"`
	DepartmentID string    `gorm:"uniqueIndex:idx_position_name_dept" json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Input struct {
	Matricule    string  `json:"matricule"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	DateOfBirth  string  `json:"dateOfBirth"`
	HireDate     string  `json:"hireDate"`
	PositionID   string  `json:"positionId"`
	DepartmentID string  `json:"departmentId"`
	BaseSalary   float64 `json:"baseSalary"`
	Bonus        float64 `json:"bonus"`
	Deductions   float64 `json:"deductions"`
	Status       string  `json:"status"`
	Photo        string  `json:"photo"`
}
