package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/plantops/accessd/pkg/catalog"
	"github.com/plantops/accessd/pkg/permission"
	"github.com/plantops/accessd/pkg/preset"
)

// ErrPendingEdits is returned by ReloadBaseline when replacing the
// baseline would clobber uncommitted edits.
var ErrPendingEdits = errors.New("editor: session has pending edits, baseline reload refused")

// Synchronizer persists a matrix on save. The gorm permissions store
// satisfies this interface.
type Synchronizer interface {
	SaveMatrix(ctx context.Context, userID string, m permission.Matrix) error
	MatrixRevision(ctx context.Context, userID string) (string, error)
}

// ChangeFunc is notified on every pending mutation. It is a preview
// signal for collaborating surfaces and must never be read as "saved".
type ChangeFunc func(module permission.Module)

// Session buffers permission edits for one user until they are saved.
//
// A session is single-writer by construction: all edits go through its
// methods and target only the pending matrix. The committed matrix is
// replaced solely by a successful Save or an explicit baseline reload.
// Sessions are not safe for concurrent use.
type Session struct {
	userID string
	role   preset.Role
	sync   Synchronizer

	state       State
	committed   permission.Matrix
	pending     permission.Matrix
	baselineRev string
	saveErr     error
	onChange    ChangeFunc
}

// NewSession creates an idle session for a user.
func NewSession(userID string, role preset.Role, sync Synchronizer) *Session {
	return &Session{userID: userID, role: role, sync: sync, state: StateIdle}
}

// OnChange installs the pending-mutation notification callback.
func (s *Session) OnChange(fn ChangeFunc) {
	s.onChange = fn
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Err returns the error of the last failed save, nil otherwise.
func (s *Session) Err() error {
	if s.state != StateFailed {
		return nil
	}
	return s.saveErr
}

// UserID returns the user the session edits.
func (s *Session) UserID() string {
	return s.userID
}

// Open loads a committed matrix and its revision token, deep-copying it
// into the pending buffer. All subsequent edits target the copy.
func (s *Session) Open(committed permission.Matrix, revision string) {
	s.committed = committed.Clone()
	s.pending = committed.Clone()
	s.baselineRev = revision
	s.state = StateEditing
	s.saveErr = nil
}

// Pending returns a copy of the pending matrix, nil when idle.
func (s *Session) Pending() permission.Matrix {
	if s.pending == nil {
		return nil
	}
	return s.pending.Clone()
}

// Committed returns a copy of the committed matrix, nil when idle.
func (s *Session) Committed() permission.Matrix {
	if s.committed == nil {
		return nil
	}
	return s.committed.Clone()
}

// Dirty reports whether the pending buffer diverges from the committed
// matrix.
func (s *Session) Dirty() bool {
	if s.pending == nil || s.committed == nil {
		return false
	}
	return !s.pending.Equal(s.committed)
}

func (s *Session) editable() error {
	switch s.state {
	case StateEditing, StateCommitted, StateFailed:
		return nil
	case StateSaving:
		return fmt.Errorf("editor: save in flight for user %q", s.userID)
	}
	return fmt.Errorf("editor: session for user %q is not open", s.userID)
}

func (s *Session) changed(module permission.Module) {
	s.state = StateEditing
	if s.onChange != nil {
		s.onChange(module)
	}
}

// SetLevel replaces a scalar module's pending level.
func (s *Session) SetLevel(module permission.Module, level permission.Level) error {
	if err := s.editable(); err != nil {
		return err
	}
	if err := s.pending.SetLevel(module, level); err != nil {
		return err
	}
	s.changed(module)
	return nil
}

// SetUnitLevel replaces one (category, unit) pending entry of the
// plant-scoped module.
func (s *Session) SetUnitLevel(category, unit string, level permission.Level) error {
	if err := s.editable(); err != nil {
		return err
	}
	if err := s.pending.SetUnitLevel(category, unit, level); err != nil {
		return err
	}
	s.changed(permission.ModulePlantOperations)
	return nil
}

// ApplyModuleWide applies one level to a whole module. For the
// plant-scoped module this enumerates every unit currently in the
// catalog, an explicit enumeration rather than a wildcard flag: units
// added to the catalog afterwards stay at LevelNone until granted
// explicitly.
func (s *Session) ApplyModuleWide(ctx context.Context, module permission.Module, level permission.Level, cat catalog.Catalog) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !module.Scoped() {
		return s.SetLevel(module, level)
	}

	units, err := cat.Units(ctx)
	if err != nil {
		return fmt.Errorf("editor: module-wide apply failed: %w", err)
	}
	for _, unit := range units {
		if err := s.pending.SetUnitLevel(unit.Category, unit.Unit, level); err != nil {
			return err
		}
	}
	s.changed(module)
	return nil
}

// Save validates the pending buffer and hands it to the synchronizer.
// On success the pending buffer becomes the committed matrix. On
// failure the pending buffer is retained unchanged so the attempted
// edit is never silently discarded.
func (s *Session) Save(ctx context.Context) error {
	if s.state == StateIdle {
		return fmt.Errorf("editor: session for user %q is not open", s.userID)
	}
	if s.state == StateSaving {
		return fmt.Errorf("editor: save already in flight for user %q", s.userID)
	}
	if err := s.pending.Validate(); err != nil {
		s.state = StateFailed
		s.saveErr = err
		return err
	}

	s.state = StateSaving
	if err := s.sync.SaveMatrix(ctx, s.userID, s.pending); err != nil {
		s.state = StateFailed
		s.saveErr = err
		return err
	}

	s.committed = s.pending.Clone()
	s.state = StateCommitted
	s.saveErr = nil
	if revision, err := s.sync.MatrixRevision(ctx, s.userID); err == nil {
		s.baselineRev = revision
	}
	return nil
}

// ResetToDefault discards the pending buffer and replaces it with a
// fresh preset for the session's role. The committed matrix is not
// touched until Save.
func (s *Session) ResetToDefault() error {
	if err := s.editable(); err != nil {
		return err
	}
	m, err := preset.Resolve(s.role)
	if err != nil {
		return err
	}
	s.pending = m
	s.changed(permission.ModuleDashboard)
	return nil
}

// Cancel discards the pending buffer. Committed and persisted state are
// untouched.
func (s *Session) Cancel() {
	s.pending = nil
	s.committed = nil
	s.baselineRev = ""
	s.saveErr = nil
	s.state = StateIdle
}

// ReloadBaseline replaces the committed baseline with a freshly loaded
// matrix, e.g. after a change-feed event. A reload that would replace
// the baseline under uncommitted edits is refused unless the revision
// token matches the one captured at Open, so a server push can never
// clobber an editor's unsaved work.
func (s *Session) ReloadBaseline(m permission.Matrix, revision string) error {
	if s.state == StateIdle {
		s.Open(m, revision)
		return nil
	}
	if s.Dirty() {
		if revision == s.baselineRev {
			// Nothing changed server-side; keep the pending edits.
			return nil
		}
		return ErrPendingEdits
	}
	s.Open(m, revision)
	return nil
}
