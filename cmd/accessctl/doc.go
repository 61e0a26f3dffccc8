// Package accessctl is the CLI for the accessd permission engine: an
// access-control server for a manufacturing-site operations dashboard.
//
// # Quick Start
//
//	# Run database migrations
//	accessctl db migrate
//
//	# Start the server
//	accessctl server
//
//	# Inspect a role preset
//	accessctl preset show "Mill Operator" --expand
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ACCESSD_CONFIG_PATH: directory holding accessd.yml
//   - ACCESSD_LOG_LEVEL: log level (debug, info, warn, error)
//   - ACCESSD_BIND_ADDRESS, ACCESSD_PORT: server listen address
package main
