package permission

// Allows evaluates whether the matrix grants the required level on a
// module. For the scoped module a Scope is mandatory and there is no
// inheritance from category wildcards; wildcard semantics exist only at
// preset-resolution or bulk-edit time.
//
// Allows never fails: an absent module, nil scope, or malformed entry
// evaluates as LevelNone. Under-granting on ambiguity is the safety
// invariant every caller relies on.
func (m Matrix) Allows(module Module, required Level, scope *Scope) bool {
	mp, ok := m[module]
	if !ok {
		return LevelNone.Grants(required)
	}
	if module.Scoped() {
		if scope == nil {
			return LevelNone.Grants(required)
		}
		return mp.Units.UnitLevel(scope.Category, scope.Unit).Grants(required)
	}
	return mp.Level.Grants(required)
}
