package permission

import (
	"encoding/json"
	"fmt"
)

// Scope narrows an evaluation within a scoped module to a single
// physical plant unit.
type Scope struct {
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// PlantGrants maps category name to unit name to level. An absent
// (category, unit) entry is equivalent to LevelNone.
type PlantGrants map[string]map[string]Level

// UnitLevel returns the level granted for a (category, unit) pair,
// LevelNone when absent.
func (g PlantGrants) UnitLevel(category, unit string) Level {
	units, ok := g[category]
	if !ok {
		return LevelNone
	}
	return units[unit]
}

// Set assigns a level to a (category, unit) pair, allocating the
// category map on first use.
func (g PlantGrants) Set(category, unit string, level Level) {
	units, ok := g[category]
	if !ok {
		units = make(map[string]Level)
		g[category] = units
	}
	units[unit] = level
}

// Clone returns a deep copy.
func (g PlantGrants) Clone() PlantGrants {
	out := make(PlantGrants, len(g))
	for category, units := range g {
		cloned := make(map[string]Level, len(units))
		for unit, level := range units {
			cloned[unit] = level
		}
		out[category] = cloned
	}
	return out
}

// ModulePermission is the per-module permission value. Its shape is a
// tagged union resolved by Module.Scoped: scalar modules carry Level,
// the scoped module carries Units.
type ModulePermission struct {
	Level Level
	Units PlantGrants
}

// Matrix holds a user's complete permission state, one entry per module.
type Matrix map[Module]ModulePermission

// NewMatrix returns a fully resolved matrix with every module present
// and every level LevelNone.
func NewMatrix() Matrix {
	m := make(Matrix, len(modules))
	for _, module := range modules {
		if module.Scoped() {
			m[module] = ModulePermission{Units: make(PlantGrants)}
			continue
		}
		m[module] = ModulePermission{Level: LevelNone}
	}
	return m
}

// Clone returns a deep copy that shares no state with the receiver.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for module, mp := range m {
		cloned := ModulePermission{Level: mp.Level}
		if mp.Units != nil {
			cloned.Units = mp.Units.Clone()
		}
		out[module] = cloned
	}
	return out
}

// Equal reports structural equality. LevelNone unit entries are not
// collapsed; callers that need set semantics should Normalize first.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for module, mp := range m {
		omp, ok := other[module]
		if !ok {
			return false
		}
		if module.Scoped() {
			if !plantGrantsEqual(mp.Units, omp.Units) {
				return false
			}
			continue
		}
		if mp.Level != omp.Level {
			return false
		}
	}
	return true
}

func plantGrantsEqual(a, b PlantGrants) bool {
	if len(a) != len(b) {
		return false
	}
	for category, units := range a {
		otherUnits, ok := b[category]
		if !ok || len(units) != len(otherUnits) {
			return false
		}
		for unit, level := range units {
			if otherUnits[unit] != level {
				return false
			}
		}
	}
	return true
}

// Normalize removes LevelNone unit entries and empty categories so that
// two matrices that grant the same effective access compare Equal.
func (m Matrix) Normalize() {
	for module, mp := range m {
		if !module.Scoped() {
			continue
		}
		for category, units := range mp.Units {
			for unit, level := range units {
				if level == LevelNone {
					delete(units, unit)
				}
			}
			if len(units) == 0 {
				delete(mp.Units, category)
			}
		}
	}
}

// SetLevel replaces the scalar level of a module. It rejects the scoped
// module, whose entries are addressed per unit.
func (m Matrix) SetLevel(module Module, level Level) error {
	if !module.Valid() {
		return &ValidationError{Field: string(module), Reason: "unknown module"}
	}
	if module.Scoped() {
		return &ValidationError{Field: string(module), Reason: "module is unit-scoped, use SetUnitLevel"}
	}
	if !level.IsALevel() {
		return &ValidationError{Field: string(module), Reason: fmt.Sprintf("level out of range: %d", level)}
	}
	m[module] = ModulePermission{Level: level}
	return nil
}

// SetUnitLevel assigns a level to one (category, unit) pair of the
// scoped module.
func (m Matrix) SetUnitLevel(category, unit string, level Level) error {
	if category == "" || unit == "" {
		return &ValidationError{Field: string(ModulePlantOperations), Reason: "category and unit are required"}
	}
	if !level.IsALevel() {
		return &ValidationError{Field: string(ModulePlantOperations), Reason: fmt.Sprintf("level out of range: %d", level)}
	}
	mp, ok := m[ModulePlantOperations]
	if !ok || mp.Units == nil {
		mp = ModulePermission{Units: make(PlantGrants)}
		m[ModulePlantOperations] = mp
	}
	mp.Units.Set(category, unit, level)
	return nil
}

// Validate checks that the matrix is fully resolved: every module key
// present, every level within the closed set, and each entry carrying
// the shape its module dictates.
func (m Matrix) Validate() error {
	for _, module := range modules {
		mp, ok := m[module]
		if !ok {
			return &ValidationError{Field: string(module), Reason: "missing module entry"}
		}
		if module.Scoped() {
			if mp.Units == nil {
				return &ValidationError{Field: string(module), Reason: "missing unit map"}
			}
			for category, units := range mp.Units {
				for unit, level := range units {
					if !level.IsALevel() {
						return &ValidationError{
							Field:  fmt.Sprintf("%s[%s][%s]", module, category, unit),
							Reason: fmt.Sprintf("level out of range: %d", level),
						}
					}
				}
			}
			continue
		}
		if !mp.Level.IsALevel() {
			return &ValidationError{Field: string(module), Reason: fmt.Sprintf("level out of range: %d", mp.Level)}
		}
	}
	for module := range m {
		if !module.Valid() {
			return &ValidationError{Field: string(module), Reason: "unknown module"}
		}
	}
	return nil
}

// MarshalJSON encodes the tagged union in its wire shape: scalar modules
// as level strings, the scoped module as a nested category/unit object.
func (m Matrix) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(m))
	for module, mp := range m {
		if module.Scoped() {
			out[string(module)] = mp.Units
			continue
		}
		out[string(module)] = mp.Level
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape produced by MarshalJSON. Unknown
// module keys are rejected.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded := NewMatrix()
	for key, value := range raw {
		module := Module(key)
		if !module.Valid() {
			return &ValidationError{Field: key, Reason: "unknown module"}
		}
		if module.Scoped() {
			var units PlantGrants
			if err := json.Unmarshal(value, &units); err != nil {
				return &ValidationError{Field: key, Reason: err.Error()}
			}
			if units == nil {
				units = make(PlantGrants)
			}
			decoded[module] = ModulePermission{Units: units}
			continue
		}
		var level Level
		if err := json.Unmarshal(value, &level); err != nil {
			return &ValidationError{Field: key, Reason: err.Error()}
		}
		decoded[module] = ModulePermission{Level: level}
	}
	*m = decoded
	return nil
}
