package advances

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"payrollpro/internal/domain/employees"
)

type Service struct {
	Store     *Store
	Employees *employees.Store
}

func NewService(store *Store, employeeStore *employees.Store) *Service {
	return &Service{Store: store, Employees: employeeStore}
}

// Create registers a new request. Status is forced to pending regardless of
// input.
func (s *Service) Create(ctx context.Context, input Input) (*Advance, error) {
	if _, err := s.Employees.GetEmployee(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	advance := &Advance{
		ID:          uuid.NewString(),
		EmployeeID:  input.EmployeeID,
		Amount:      input.Amount,
		Reason:      strings.TrimSpace(input.Reason),
		RequestDate: input.RequestDate,
		Status:      StatusPending,
		Month:       input.Month,
		Year:        input.Year,
		Notes:       strings.TrimSpace(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Create(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// Update edits the request fields of an existing advance. Status and
// approval date are lifecycle-owned and not touched here.
func (s *Service) Update(ctx context.Context, id string, input Input) (*Advance, error) {
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.EmployeeID != existing.EmployeeID {
		if _, err := s.Employees.GetEmployee(ctx, input.EmployeeID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.EmployeeID = input.EmployeeID
	updated.Amount = input.Amount
	updated.Reason = strings.TrimSpace(input.Reason)
	updated.RequestDate = input.RequestDate
	updated.Month = input.Month
	updated.Year = input.Year
	updated.Notes = strings.TrimSpace(input.Notes)
	updated.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Approve moves pending → approved and stamps the approval date. Any other
// starting state fails with ErrInvalidState.
func (s *Service) Approve(ctx context.Context, id string) (*Advance, error) {
	return s.transition(ctx, id, StatusPending, func(advance *Advance, now time.Time) {
		advance.Status = StatusApproved
		advance.ApprovalDate = &now
	})
}

// Reject moves pending → rejected.
func (s *Service) Reject(ctx context.Context, id string) (*Advance, error) {
	return s.transition(ctx, id, StatusPending, func(advance *Advance, now time.Time) {
		advance.Status = StatusRejected
	})
}

// MarkRepaid moves approved → repaid. Nothing transitions to repaid
// automatically.
func (s *Service) MarkRepaid(ctx context.Context, id string) (*Advance, error) {
	return s.transition(ctx, id, StatusApproved, func(advance *Advance, now time.Time) {
		advance.Status = StatusRepaid
	})
}

func (s *Service) transition(ctx context.Context, id, from string, apply func(*Advance, time.Time)) (*Advance, error) {
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != from {
		return nil, ErrInvalidState
	}

	now := time.Now().UTC()
	updated := *existing
	apply(&updated, now)
	updated.UpdatedAt = now

	if err := s.Store.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*Advance, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Advance, error) {
	return s.Store.List(ctx)
}
