// Package model defines the database models for accessd.
//
// This package contains GORM models that map to the accessd PostgreSQL
// schema.
//
// # Core Models
//
//   - Permission: deduplicated permission facts, one row per distinct
//     (module, level, plant-unit set)
//   - UserPermission: user-to-fact join table with full-replace
//     semantics per user
//   - PlantUnit: the plant-unit catalog consumed when expanding
//     category-wide grants
package model
