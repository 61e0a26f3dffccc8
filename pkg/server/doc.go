// Package server provides the HTTP surface of the permission engine:
// the evaluate guard, matrix load/replace, role presets, the plant-unit
// catalog and the change feed.
package server
