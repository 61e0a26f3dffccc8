package gorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/plantops/accessd/pkg/permission"
	"github.com/plantops/accessd/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM.
//
// Permission facts are content-addressed by
// (module_name, permission_level, plant_units) and shared across
// users; they are created lazily and never deleted here. A user's
// matrix is encoded as the set of user_permissions links.
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// recordSpec is the content address of one permission fact.
type recordSpec struct {
	module string
	level  permission.Level
	units  string
}

// SaveMatrix replaces the user's link set with the encoding of m.
//
// The whole operation runs in one transaction and writes only the
// symmetric difference of the current and desired link sets, so a
// reader never observes a user stripped of permissions mid-save.
func (s *PermissionsStore) SaveMatrix(ctx context.Context, userID string, m permission.Matrix) error {
	if userID == "" {
		return &permission.ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	if err := m.Validate(); err != nil {
		return err
	}

	specs, err := encodeRecords(m)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		desired := make(map[string]bool, len(specs))
		desiredIDs := make([]string, 0, len(specs))
		for _, spec := range specs {
			id, err := findOrCreateRecord(tx, spec)
			if err != nil {
				return err
			}
			if !desired[id] {
				desired[id] = true
				desiredIDs = append(desiredIDs, id)
			}
		}

		var existing []string
		err := tx.Raw(
			`SELECT permission_id FROM user_permissions WHERE user_id = ? ORDER BY permission_id`,
			userID,
		).Scan(&existing).Error
		if err != nil {
			return wrapStorageErr("save", err)
		}

		existingSet := make(map[string]bool, len(existing))
		for _, id := range existing {
			existingSet[id] = true
		}

		for _, id := range existing {
			if desired[id] {
				continue
			}
			err := tx.Exec(
				`DELETE FROM user_permissions WHERE user_id = ? AND permission_id = ?`,
				userID, id,
			).Error
			if err != nil {
				return wrapStorageErr("save", err)
			}
		}

		for _, id := range desiredIDs {
			if existingSet[id] {
				continue
			}
			err := tx.Exec(
				`INSERT INTO user_permissions (user_id, permission_id) VALUES (?, ?)`,
				userID, id,
			).Error
			if err != nil {
				return wrapStorageErr("save", err)
			}
		}

		return nil
	})
}

// permissionRow mirrors the columns fetched by LoadMatrix.
type permissionRow struct {
	ModuleName      string
	PermissionLevel string
	PlantUnits      string
}

// LoadMatrix folds the user's reachable permission facts into a matrix.
// Scalar modules overwrite their single entry; plant_operations records
// union-merge into the nested category/unit map. Rows that no longer
// parse against the closed module/level sets are skipped, which
// evaluates as LevelNone downstream.
func (s *PermissionsStore) LoadMatrix(ctx context.Context, userID string) (permission.Matrix, error) {
	var rows []permissionRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT p.module_name, p.permission_level, p.plant_units
		 FROM permissions p
		 JOIN user_permissions up ON up.permission_id = p.id
		 WHERE up.user_id = ?
		 ORDER BY p.module_name, p.permission_level`,
		userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, wrapStorageErr("load", err)
	}

	m := permission.NewMatrix()
	for _, row := range rows {
		module := permission.Module(row.ModuleName)
		if !module.Valid() {
			continue
		}
		level, err := permission.LevelString(row.PermissionLevel)
		if err != nil {
			continue
		}

		if module.Scoped() {
			var scopes []permission.Scope
			if err := json.Unmarshal([]byte(row.PlantUnits), &scopes); err != nil {
				continue
			}
			for _, scope := range scopes {
				if err := m.SetUnitLevel(scope.Category, scope.Unit, level); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := m.SetLevel(module, level); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MatrixRevision returns the user's sorted link ids joined into one
// opaque token. Any change to the link set produces a different token.
func (s *PermissionsStore) MatrixRevision(ctx context.Context, userID string) (string, error) {
	var revision string
	err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(string_agg(permission_id, ',' ORDER BY permission_id), '')
		 FROM user_permissions WHERE user_id = ?`,
		userID,
	).Scan(&revision).Error
	if err != nil {
		return "", wrapStorageErr("revision", err)
	}
	return revision, nil
}

// findOrCreateRecord resolves a record spec to a permission fact id,
// creating the fact on first use.
func findOrCreateRecord(tx *gorm.DB, spec recordSpec) (string, error) {
	var id string
	res := tx.Raw(
		`SELECT id FROM permissions WHERE module_name = ? AND permission_level = ? AND plant_units = ?`,
		spec.module, spec.level.String(), spec.units,
	).Scan(&id)
	if res.Error != nil {
		return "", wrapStorageErr("save", res.Error)
	}
	if res.RowsAffected > 0 {
		return id, nil
	}

	id = uuid.NewString()
	err := tx.Exec(
		`INSERT INTO permissions (id, module_name, permission_level, plant_units) VALUES (?, ?, ?, ?)`,
		id, spec.module, spec.level.String(), spec.units,
	).Error
	if err != nil {
		return "", wrapStorageErr("save", err)
	}
	return id, nil
}

// encodeRecords flattens a matrix into its deduplicated record specs in
// a deterministic order. LevelNone entries are dropped: absence is the
// storage-level encoding of "no access".
func encodeRecords(m permission.Matrix) ([]recordSpec, error) {
	var specs []recordSpec
	for _, module := range permission.Modules() {
		mp := m[module]

		if module.Scoped() {
			byLevel := make(map[permission.Level][]permission.Scope)
			for category, units := range mp.Units {
				for unit, level := range units {
					if level == permission.LevelNone {
						continue
					}
					byLevel[level] = append(byLevel[level], permission.Scope{Category: category, Unit: unit})
				}
			}
			for _, level := range permission.LevelValues() {
				scopes := byLevel[level]
				if len(scopes) == 0 {
					continue
				}
				units, err := canonicalUnits(scopes)
				if err != nil {
					return nil, err
				}
				specs = append(specs, recordSpec{module: module.String(), level: level, units: units})
			}
			continue
		}

		if mp.Level == permission.LevelNone {
			continue
		}
		specs = append(specs, recordSpec{module: module.String(), level: mp.Level, units: "[]"})
	}
	return specs, nil
}

// canonicalUnits encodes a unit set as sorted JSON so that identical
// sets produce identical content addresses.
func canonicalUnits(scopes []permission.Scope) (string, error) {
	sort.Slice(scopes, func(i, j int) bool {
		if scopes[i].Category != scopes[j].Category {
			return scopes[i].Category < scopes[j].Category
		}
		return scopes[i].Unit < scopes[j].Unit
	})
	data, err := json.Marshal(scopes)
	if err != nil {
		return "", fmt.Errorf("failed to encode plant units: %w", err)
	}
	return string(data), nil
}

// wrapStorageErr classifies storage failures. Check-constraint
// rejections (unrecognized module or level string) surface as
// non-retriable ConstraintViolations; everything else is a retriable
// PersistenceError.
func wrapStorageErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return &store.ConstraintViolation{Constraint: pgErr.ConstraintName, Err: err}
	}
	return &store.PersistenceError{Op: op, Err: err}
}
