package store

import (
	"context"

	"github.com/plantops/accessd/pkg/permission"
)

// PermissionsStore abstracts the persistence synchronizer that maps a
// matrix to and from the deduplicated relational representation.
type PermissionsStore interface {
	// SaveMatrix replaces the user's persisted permission links with the
	// encoding of m. LevelNone entries are never persisted.
	SaveMatrix(ctx context.Context, userID string, m permission.Matrix) error

	// LoadMatrix folds the user's reachable permission facts into a
	// fully resolved matrix. A user with no links gets a matrix of
	// LevelNone entries.
	LoadMatrix(ctx context.Context, userID string) (permission.Matrix, error)

	// MatrixRevision returns an opaque token that changes whenever the
	// user's link set changes, used to guard editor baselines against
	// stale reloads.
	MatrixRevision(ctx context.Context, userID string) (string, error)
}
