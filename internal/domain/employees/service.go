package employees

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Create inserts a new employee. A blank matricule is generated; a supplied
// one must be unused.
func (s *Service) Create(ctx context.Context, input Input) (*Employee, error) {
	matricule := strings.TrimSpace(input.Matricule)
	if matricule == "" {
		generated, err := s.freeMatricule(ctx)
		if err != nil {
			return nil, err
		}
		matricule = generated
	} else if _, err := s.Store.GetEmployeeByMatricule(ctx, matricule); err == nil {
		return nil, ErrDuplicateMatricule
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = StatusActive
	}

	now := time.Now().UTC()
	emp := &Employee{
		ID:           uuid.NewString(),
		Matricule:    matricule,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		DateOfBirth:  input.DateOfBirth,
		HireDate:     input.HireDate,
		PositionID:   input.PositionID,
		DepartmentID: input.DepartmentID,
		BaseSalary:   input.BaseSalary,
		Bonus:        input.Bonus,
		Deductions:   input.Deductions,
		Status:       status,
		Photo:        input.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.CreateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Update merges the input over the stored record and replaces it whole.
func (s *Service) Update(ctx context.Context, id string, input Input) (*Employee, error) {
	existing, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	matricule := strings.TrimSpace(input.Matricule)
	if matricule == "" {
		matricule = existing.Matricule
	}
	if matricule != existing.Matricule {
		if other, err := s.Store.GetEmployeeByMatricule(ctx, matricule); err == nil && other.ID != id {
			return nil, ErrDuplicateMatricule
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = existing.Status
	}

	updated := *existing
	updated.Matricule = matricule
	updated.FirstName = strings.TrimSpace(input.FirstName)
	updated.LastName = strings.TrimSpace(input.LastName)
	updated.Email = strings.TrimSpace(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.Address = strings.TrimSpace(input.Address)
	updated.DateOfBirth = input.DateOfBirth
	updated.HireDate = input.HireDate
	updated.PositionID = input.PositionID
	updated.DepartmentID = input.DepartmentID
	updated.BaseSalary = input.BaseSalary
	updated.Bonus = input.Bonus
	updated.Deductions = input.Deductions
	updated.Status = status
	updated.Photo = input.Photo
	updated.UpdatedAt = time.Now().UTC()

	if err := s.Store.UpdateEmployee(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteEmployee(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, name string) (*Department, error) {
	now := time.Now().UTC()
	dept := &Department{ID: uuid.NewString(), Name: strings.TrimSpace(name), CreatedAt: now, UpdatedAt: now}
	if err := s.Store.CreateDepartment(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *Service) CreatePosition(ctx context.Context, name, departmentID string) (*Position, error) {
	now := time.Now().UTC()
	pos := &Position{ID: uuid.NewString(), Name: strings.TrimSpace(name), DepartmentID: departmentID, CreatedAt: now, UpdatedAt: now}
	if err := s.Store.CreatePosition(ctx, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// EnsureDepartment returns the department with the given name, creating it
// when missing. Used by CSV import and settings seeding.
func (s *Service) EnsureDepartment(ctx context.Context, name string) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDepartmentNotFound
	}
	dept, err := s.Store.GetDepartmentByName(ctx, name)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, ErrDepartmentNotFound) {
		return nil, err
	}
	return s.CreateDepartment(ctx, name)
}

// EnsurePosition mirrors EnsureDepartment for positions.
func (s *Service) EnsurePosition(ctx context.Context, name string) (*Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPositionNotFound
	}
	pos, err := s.Store.GetPositionByName(ctx, name)
	if err == nil {
		return pos, nil
	}
	if !errors.Is(err, ErrPositionNotFound) {
		return nil, err
	}
	return s.CreatePosition(ctx, name, "")
}

func (s *Service) freeMatricule(ctx context.Context) (string, error) {
	for i := 0; i < 20; i++ {
		candidate := GenerateMatricule()
		_, err := s.Store.GetEmployeeByMatricule(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a free matricule")
}
