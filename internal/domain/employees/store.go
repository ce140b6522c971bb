package employees

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateEmployee(ctx context.Context, emp *Employee) error {
	err := s.DB.WithContext(ctx).Create(emp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMatricule
	}
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := s.DB.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetEmployeeByMatricule(ctx context.Context, matricule string) (*Employee, error) {
	var emp Employee
	err := s.DB.WithContext(ctx).First(&emp, "matricule = ?", matricule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	out := make([]Employee, 0)
	err := s.DB.WithContext(ctx).Order("last_name, first_name").Find(&out).Error
	return out, err
}

func (s *Store) ListEmployeesByDepartment(ctx context.Context, departmentID string) ([]Employee, error) {
	out := make([]Employee, 0)
	err := s.DB.WithContext(ctx).Where("department_id = ?", departmentID).Order("last_name, first_name").Find(&out).Error
	return out, err
}

func (s *Store) ListEmployeesByStatus(ctx context.Context, status string) ([]Employee, error) {
	out := make([]Employee, 0)
	err := s.DB.WithContext(ctx).Where("status = ?", status).Order("last_name, first_name").Find(&out).Error
	return out, err
}

// UpdateEmployee replaces the whole record. Callers merge fields first.
func (s *Store) UpdateEmployee(ctx context.Context, emp *Employee) error {
	result := s.DB.WithContext(ctx).Model(&Employee{}).Where("id = ?", emp.ID).Select("*").Omit("id", "created_at").Updates(emp)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMatricule
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee removes the employee and every dependent record in one
// transaction. Missing ids are a no-op.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"advances", "salary_payments", "receipts"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE employee_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Employee{}, "id = ?", id).Error
	})
}

func (s *Store) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

func (s *Store) CreateDepartment(ctx context.Context, dept *Department) error {
	err := s.DB.WithContext(ctx).Create(dept).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

func (s *Store) GetDepartment(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := s.DB.WithContext(ctx).First(&dept, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Store) GetDepartmentByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	err := s.DB.WithContext(ctx).First(&dept, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	out := make([]Department, 0)
	err := s.DB.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (s *Store) UpdateDepartment(ctx context.Context, dept *Department) error {
	result := s.DB.WithContext(ctx).Model(&Department{}).Where("id = ?", dept.ID).Select("*").Omit("id", "created_at").Updates(dept)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (s *Store) CreatePosition(ctx context.Context, pos *Position) error {
	err := s.DB.WithContext(ctx).Create(pos).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

func (s *Store) GetPosition(ctx context.Context, id string) (*Position, error) {
	var pos Position
	err := s.DB.WithContext(ctx).First(&pos, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (s *Store) GetPositionByName(ctx context.Context, name string) (*Position, error) {
	var pos Position
	err := s.DB.WithContext(ctx).First(&pos, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (s *Store) ListPositions(ctx context.Context) ([]Position, error) {
	out := make([]Position, 0)
	err := s.DB.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (s *Store) ListPositionsByDepartment(ctx context.Context, departmentID string) ([]Position, error) {
	out := make([]Position, 0)
	err := s.DB.WithContext(ctx).Where("department_id = ? OR department_id = ''", departmentID).Order("name").Find(&out).Error
	return out, err
}

func (s *Store) UpdatePosition(ctx context.Context, pos *Position) error {
	result := s.DB.WithContext(ctx).Model(&Position{}).Where("id = ?", pos.ID).Select("*").Omit("id", "created_at").Updates(pos)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (s *Store) DeletePosition(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&Position{}, "id = ?", id).Error
}
