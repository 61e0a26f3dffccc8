// Package store defines the storage interfaces consumed by the
// permission engine and its HTTP surface. Implementations live in the
// gorm subpackage; tests substitute fakes.
package store
