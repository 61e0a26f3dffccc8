package audit

// Severity levels for audit events
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Event represents an auditable permission-engine action
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Details() map[string]any
}
