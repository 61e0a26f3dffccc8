package model

import "time"

// PlantUnit is one row of the plant-unit catalog, e.g.
// (category "Cement Mill", unit "Mill 1").
type PlantUnit struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Category  string    `gorm:"column:category;not null"`
	Unit      string    `gorm:"column:unit;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PlantUnit) TableName() string {
	return "plant_units"
}
