// Package gorm implements the store interfaces against PostgreSQL
// using GORM with raw SQL queries.
package gorm
