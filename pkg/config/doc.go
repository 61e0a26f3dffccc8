// Package config provides configuration management for accessd.
//
// Configuration is loaded from an optional YAML file and overridden by
// ACCESSD_* environment variables; the source of every attribute is
// tracked so operators can see where a value came from.
package config
