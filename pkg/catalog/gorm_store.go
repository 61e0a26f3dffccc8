package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantops/accessd/pkg/model"
)

// Ensure GormStore implements Catalog
var _ Catalog = (*GormStore)(nil)

// GormStore reads the plant-unit catalog from the plant_units table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Units returns every catalog unit ordered by category then unit.
func (s *GormStore) Units(ctx context.Context) ([]Unit, error) {
	var rows []model.PlantUnit
	err := s.db.WithContext(ctx).
		Raw(`SELECT id, category, unit FROM plant_units ORDER BY category, unit`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plant units: %w", err)
	}

	units := make([]Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, Unit{ID: row.ID, Category: row.Category, Unit: row.Unit})
	}
	return units, nil
}

// CreateUnit registers a plant unit, ignoring duplicates so the catalog
// can be re-seeded idempotently.
func (s *GormStore) CreateUnit(ctx context.Context, category, unit string) (Unit, error) {
	if category == "" || unit == "" {
		return Unit{}, fmt.Errorf("category and unit are required")
	}

	row := model.PlantUnit{ID: uuid.NewString(), Category: category, Unit: unit}
	err := s.db.WithContext(ctx).
		Exec(`INSERT INTO plant_units (id, category, unit) VALUES (?, ?, ?) ON CONFLICT (category, unit) DO NOTHING`,
			row.ID, row.Category, row.Unit).Error
	if err != nil {
		return Unit{}, fmt.Errorf("failed to create plant unit: %w", err)
	}
	return Unit{ID: row.ID, Category: row.Category, Unit: row.Unit}, nil
}
