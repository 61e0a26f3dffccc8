package permission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrixFullyResolved(t *testing.T) {
	m := NewMatrix()

	require.NoError(t, m.Validate())
	assert.Len(t, m, len(Modules()))
	for _, module := range Modules() {
		mp, ok := m[module]
		require.True(t, ok, "missing module %s", module)
		if module.Scoped() {
			assert.NotNil(t, mp.Units)
			continue
		}
		assert.Equal(t, LevelNone, mp.Level)
	}
}

func TestMatrixCloneIsDeep(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.SetLevel(ModuleDashboard, LevelWrite))
	require.NoError(t, m.SetUnitLevel("Kiln", "Kiln 1", LevelRead))

	clone := m.Clone()
	require.True(t, m.Equal(clone))

	require.NoError(t, clone.SetLevel(ModuleDashboard, LevelNone))
	require.NoError(t, clone.SetUnitLevel("Kiln", "Kiln 1", LevelAdmin))

	assert.Equal(t, LevelWrite, m[ModuleDashboard].Level)
	assert.Equal(t, LevelRead, m[ModulePlantOperations].Units.UnitLevel("Kiln", "Kiln 1"))
}

func TestMatrixSetLevelRejectsScopedModule(t *testing.T) {
	m := NewMatrix()
	err := m.SetLevel(ModulePlantOperations, LevelWrite)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestMatrixValidate(t *testing.T) {
	t.Run("missing module", func(t *testing.T) {
		m := NewMatrix()
		delete(m, ModuleInspection)
		assert.Error(t, m.Validate())
	})

	t.Run("level out of range", func(t *testing.T) {
		m := NewMatrix()
		m[ModuleDashboard] = ModulePermission{Level: Level(9)}
		assert.Error(t, m.Validate())
	})

	t.Run("unknown module key", func(t *testing.T) {
		m := NewMatrix()
		m[Module("payroll")] = ModulePermission{Level: LevelRead}
		assert.Error(t, m.Validate())
	})

	t.Run("bad unit level", func(t *testing.T) {
		m := NewMatrix()
		m[ModulePlantOperations].Units.Set("Kiln", "Kiln 1", Level(-3))
		assert.Error(t, m.Validate())
	})
}

func TestMatrixNormalize(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.SetUnitLevel("Kiln", "Kiln 1", LevelWrite))
	require.NoError(t, m.SetUnitLevel("Kiln", "Kiln 2", LevelNone))
	require.NoError(t, m.SetUnitLevel("Packer", "Packer 1", LevelNone))

	other := NewMatrix()
	require.NoError(t, other.SetUnitLevel("Kiln", "Kiln 1", LevelWrite))

	assert.False(t, m.Equal(other))
	m.Normalize()
	assert.True(t, m.Equal(other))
}

// The wire shape is a tagged union: scalar modules serialize as level
// strings, plant_operations as a nested category/unit object.
func TestMatrixJSONWireShape(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.SetLevel(ModuleDashboard, LevelRead))
	require.NoError(t, m.SetUnitLevel("Cement Mill", "Mill 1", LevelWrite))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.JSONEq(t, `"read"`, string(wire["dashboard"]))
	assert.JSONEq(t, `{"Cement Mill":{"Mill 1":"write"}}`, string(wire["plant_operations"]))

	var decoded Matrix
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))
	require.NoError(t, decoded.Validate())
}

func TestMatrixJSONRejectsUnknownModule(t *testing.T) {
	var m Matrix
	err := json.Unmarshal([]byte(`{"payroll":"admin"}`), &m)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
