package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/receipts"
	"payrollpro/internal/domain/settings"
)

// Service snapshots and restores the full dataset.
type Service struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewService(db *gorm.DB, settingsService *settings.Service) *Service {
	return &Service{DB: db, Settings: settingsService}
}

// ExportAll collects every record into a single bundle.
func (s *Service) ExportAll(ctx context.Context) (*Bundle, error) {
	bundle := &Bundle{
		Version:    BundleVersion,
		ExportedAt: time.Now().UTC(),
	}

	steps := []struct {
		name string
		dest any
	}{
		{"employees", &bundle.Employees},
		{"departments", &bundle.Departments},
		{"positions", &bundle.Positions},
		{"advances", &bundle.Advances},
		{"salary payments", &bundle.Payments},
		{"receipts", &bundle.Receipts},
	}
	for _, step := range steps {
		if err := s.DB.WithContext(ctx).Find(step.dest).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", step.name, err)
		}
	}

	current := s.Settings.Get()
	bundle.Settings = &current
	return bundle, nil
}

// ExportJSON renders the bundle as indented JSON, the on-disk and download
// format.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	bundle, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// ImportAll upserts the bundle contents in a single transaction. Records
// already in the store keep living; bundle rows overwrite by id. A clean
// restore is ClearAll followed by an import.
func (s *Service) ImportAll(ctx context.Context, bundle *Bundle) error {
	if bundle.Version > BundleVersion {
		return fmt.Errorf("%w: bundle version %d", ErrUnsupportedBundle, bundle.Version)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := []struct {
			name string
			rows any
			size int
		}{
			{"departments", bundle.Departments, len(bundle.Departments)},
			{"positions", bundle.Positions, len(bundle.Positions)},
			{"employees", bundle.Employees, len(bundle.Employees)},
			{"advances", bundle.Advances, len(bundle.Advances)},
			{"salary payments", bundle.Payments, len(bundle.Payments)},
			{"receipts", bundle.Receipts, len(bundle.Receipts)},
		}
		for _, batch := range batches {
			if batch.size == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				CreateInBatches(batch.rows, 200).Error; err != nil {
				return fmt.Errorf("import %s: %w", batch.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if bundle.Settings != nil {
		if err := s.Settings.Restore(ctx, *bundle.Settings); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
	}
	return nil
}

// ImportJSON decodes and restores a bundle produced by ExportJSON.
func (s *Service) ImportJSON(ctx context.Context, data []byte) (*Bundle, error) {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if err := s.ImportAll(ctx, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// ClearAll wipes every record except settings.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.DB.WithContext(ctx).Transaction(clearAll)
}

func clearAll(tx *gorm.DB) error {
	models := []any{
		&receipts.Receipt{},
		&payroll.SalaryPayment{},
		&advances.Advance{},
		&employees.Employee{},
		&employees.Position{},
		&employees.Department{},
	}
	for _, model := range models {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}
