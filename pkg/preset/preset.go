package preset

import (
	"context"
	"fmt"

	"github.com/plantops/accessd/pkg/catalog"
	"github.com/plantops/accessd/pkg/permission"
)

// Role is a label used only to seed a default matrix. A role is never
// itself a permission source; the resolved matrix is the source of
// truth from the moment it is created.
type Role string

const (
	RoleSuperAdmin     Role = "Super Admin"
	RoleAdmin          Role = "Admin"
	RoleMillOperator   Role = "Mill Operator"
	RoleKilnOperator   Role = "Kiln Operator"
	RolePackerOperator Role = "Packer Operator"
	RoleGuest          Role = "Guest"
)

// plantScope is the wildcard intent a role carries for plant_operations
// before the catalog expands it into concrete (category, unit) entries.
type plantScope struct {
	level permission.Level
	// category restricts the grant to one plant category; empty means
	// every category in the catalog.
	category string
}

type policy struct {
	scalars map[permission.Module]permission.Level
	plant   plantScope
}

var policies = map[Role]policy{
	RoleSuperAdmin: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:         permission.LevelAdmin,
			permission.ModuleInspection:        permission.LevelAdmin,
			permission.ModuleProjectManagement: permission.LevelAdmin,
			permission.ModuleSystemSettings:    permission.LevelAdmin,
			permission.ModuleUserManagement:    permission.LevelAdmin,
			permission.ModulePackingPlant:      permission.LevelAdmin,
		},
		plant: plantScope{level: permission.LevelAdmin},
	},
	RoleAdmin: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:         permission.LevelAdmin,
			permission.ModuleInspection:        permission.LevelWrite,
			permission.ModuleProjectManagement: permission.LevelWrite,
			// system settings stay with Super Admin
			permission.ModuleSystemSettings: permission.LevelNone,
			permission.ModuleUserManagement: permission.LevelWrite,
			permission.ModulePackingPlant:   permission.LevelWrite,
		},
		plant: plantScope{level: permission.LevelWrite},
	},
	RoleMillOperator: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:  permission.LevelRead,
			permission.ModuleInspection: permission.LevelRead,
		},
		plant: plantScope{level: permission.LevelWrite, category: "Cement Mill"},
	},
	RoleKilnOperator: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:  permission.LevelRead,
			permission.ModuleInspection: permission.LevelRead,
		},
		plant: plantScope{level: permission.LevelWrite, category: "Kiln"},
	},
	RolePackerOperator: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:    permission.LevelRead,
			permission.ModulePackingPlant: permission.LevelWrite,
		},
		plant: plantScope{level: permission.LevelWrite, category: "Packer"},
	},
	RoleGuest: {
		scalars: map[permission.Module]permission.Level{
			permission.ModuleDashboard:    permission.LevelRead,
			permission.ModulePackingPlant: permission.LevelRead,
		},
	},
}

// roleOrder keeps Roles deterministic for listings and tests.
var roleOrder = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleMillOperator,
	RoleKilnOperator,
	RolePackerOperator,
	RoleGuest,
}

// Roles returns every known role in a stable order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// Known reports whether role is a recognized label.
func Known(role Role) bool {
	_, ok := policies[role]
	return ok
}

// Resolve returns the default matrix for a role. The result is freshly
// allocated on every call so a caller mutating it cannot corrupt other
// callers' state.
//
// Resolve is pure: the scoped module is installed structurally empty
// (every unit LevelNone) because concrete plant units are data, not
// code. ExpandPlantGrants performs the catalog lookup that turns the
// role's category-wide intent into concrete entries.
func Resolve(role Role) (permission.Matrix, error) {
	pol, ok := policies[role]
	if !ok {
		return nil, &permission.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", role)}
	}

	m := permission.NewMatrix()
	for module, level := range pol.scalars {
		if err := m.SetLevel(module, level); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ExpandPlantGrants expands a role's plant_operations intent into
// concrete (category, unit) entries by consulting the plant-unit
// catalog. This is the only step of preset resolution that performs
// I/O. Units added to the catalog after expansion stay at LevelNone
// until granted explicitly.
func ExpandPlantGrants(ctx context.Context, m permission.Matrix, role Role, cat catalog.Catalog) error {
	pol, ok := policies[role]
	if !ok {
		return &permission.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", role)}
	}
	if pol.plant.level == permission.LevelNone {
		return nil
	}

	units, err := cat.Units(ctx)
	if err != nil {
		return fmt.Errorf("failed to expand plant grants for role %q: %w", role, err)
	}

	for _, unit := range units {
		if pol.plant.category != "" && unit.Category != pol.plant.category {
			continue
		}
		if err := m.SetUnitLevel(unit.Category, unit.Unit, pol.plant.level); err != nil {
			return err
		}
	}
	return nil
}
