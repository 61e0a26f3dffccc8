package model

import "time"

// Permission is a deduplicated permission fact shared across users.
// PlantUnits holds the canonical JSON encoding of the (category, unit)
// set for plant_operations records and "[]" for scalar records; the
// (module_name, permission_level, plant_units) triple is the record's
// content address.
type Permission struct {
	ID              string    `gorm:"column:id;primaryKey"`
	ModuleName      string    `gorm:"column:module_name;not null"`
	PermissionLevel string    `gorm:"column:permission_level;not null"`
	PlantUnits      string    `gorm:"column:plant_units;not null;default:'[]'"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}
