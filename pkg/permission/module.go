package permission

// Module identifies a feature area subject to access control. The set is
// closed at design time; adding a module is a schema change.
type Module string

const (
	ModuleDashboard         Module = "dashboard"
	ModulePlantOperations   Module = "plant_operations"
	ModuleInspection        Module = "inspection"
	ModuleProjectManagement Module = "project_management"
	ModuleSystemSettings    Module = "system_settings"
	ModuleUserManagement    Module = "user_management"
	ModulePackingPlant      Module = "packing_plant"
)

var modules = []Module{
	ModuleDashboard,
	ModulePlantOperations,
	ModuleInspection,
	ModuleProjectManagement,
	ModuleSystemSettings,
	ModuleUserManagement,
	ModulePackingPlant,
}

// Modules returns every known module in a stable order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// Valid reports whether m is a known module.
func (m Module) Valid() bool {
	for _, known := range modules {
		if m == known {
			return true
		}
	}
	return false
}

// Scoped reports whether the module's permission is resolved at
// (category, unit) granularity rather than as a single level.
// plant_operations is the only scoped module.
func (m Module) Scoped() bool {
	return m == ModulePlantOperations
}

func (m Module) String() string {
	return string(m)
}
