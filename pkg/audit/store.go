package audit

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Store handles audit event persistence to the audit_events table
type Store struct {
	db *sql.DB
}

// NewStore creates a store with an existing database connection.
// A nil db disables persistence; Save becomes a no-op.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists an audit event
func (s *Store) Save(event Event) error {
	if s == nil || s.db == nil {
		return nil
	}

	details, err := json.Marshal(event.Details())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO audit_events (created_at, severity, msgid, details, message) VALUES ($1, $2, $3, $4, $5)`,
		time.Now().UTC(),
		event.Severity().String(),
		event.MessageID(),
		details,
		event.Message(),
	)
	return err
}
