package permission

//go:generate go run github.com/dmarkham/enumer -type Level -trimprefix Level -transform lower -json -sql -yaml -output level.gen.go

// Level is the capability scale applied to every module. Levels are
// totally ordered; a higher level implies every lower one.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelWrite
	LevelAdmin
)

// Grants reports whether a holder of this level satisfies the required
// level. This comparison is the only permission primitive in the system.
func (i Level) Grants(required Level) bool {
	return i >= required
}
