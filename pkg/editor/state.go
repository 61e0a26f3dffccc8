package editor

// State is the lifecycle position of a Session.
type State int

const (
	// StateIdle means nothing is loaded; the session has no buffers.
	StateIdle State = iota
	// StateEditing means a pending matrix may diverge from the
	// committed one.
	StateEditing
	// StateSaving means a save is in flight; edits are rejected until
	// it resolves.
	StateSaving
	// StateCommitted means the pending buffer was persisted and now
	// matches the committed matrix.
	StateCommitted
	// StateFailed means the last save was rejected; the pending buffer
	// is retained unchanged for retry.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
