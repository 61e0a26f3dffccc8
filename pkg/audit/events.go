package audit

import "fmt"

// UpdateEvent records a replacement of a user's permission matrix.
type UpdateEvent struct {
	ActorID      string
	UserID       string
	Success      bool
	ErrorMessage string
}

func (e UpdateEvent) MessageID() string {
	return "permission-update"
}

func (e UpdateEvent) Message() string {
	if !e.Success {
		return fmt.Sprintf("%s failed to update permissions of %s: %s", e.ActorID, e.UserID, e.ErrorMessage)
	}
	return fmt.Sprintf("%s updated permissions of %s", e.ActorID, e.UserID)
}

func (e UpdateEvent) Severity() Severity {
	if !e.Success {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e UpdateEvent) Details() map[string]any {
	details := map[string]any{
		"actor_id": e.ActorID,
		"user_id":  e.UserID,
		"success":  e.Success,
	}
	if e.ErrorMessage != "" {
		details["error"] = e.ErrorMessage
	}
	return details
}

// CheckEvent records a denied permission evaluation. Granted checks are
// not audited; they happen on every render of every gated element.
type CheckEvent struct {
	UserID   string
	Module   string
	Required string
	Category string
	Unit     string
}

func (e CheckEvent) MessageID() string {
	return "permission-denied"
}

func (e CheckEvent) Message() string {
	if e.Category != "" || e.Unit != "" {
		return fmt.Sprintf("%s denied %s on %s (%s/%s)", e.UserID, e.Required, e.Module, e.Category, e.Unit)
	}
	return fmt.Sprintf("%s denied %s on %s", e.UserID, e.Required, e.Module)
}

func (e CheckEvent) Severity() Severity {
	return SeverityInfo
}

func (e CheckEvent) Details() map[string]any {
	details := map[string]any{
		"user_id":  e.UserID,
		"module":   e.Module,
		"required": e.Required,
	}
	if e.Category != "" {
		details["category"] = e.Category
	}
	if e.Unit != "" {
		details["unit"] = e.Unit
	}
	return details
}
