// Package permission defines the access-control vocabulary of accessd:
// the totally ordered capability Level, the closed Module set, and the
// per-user Matrix that holds one permission value per module.
//
// All modules carry a single scalar Level except plant_operations,
// which is resolved at (category, unit) granularity through a nested
// PlantGrants map. The shape of each entry is dictated statically by
// Module.Scoped, never discovered at runtime.
//
// Matrix.Allows is the single evaluation primitive used to gate every
// protected surface. It is pure and fail-closed: any ambiguity
// (unknown module, missing scope, absent unit entry) evaluates as
// LevelNone.
package permission
