// Package db provides database connection utilities for accessd.
package db
