// Package audit records permission-engine actions: matrix updates and
// denied evaluations. Events are persisted to the audit_events table
// when an audit database connection is configured.
package audit
