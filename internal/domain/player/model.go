package player

// Element type ids follow the upstream FPL bootstrap data.
const (
	ElementTypeGoalkeeper = 1
	ElementTypeDefender   = 2
	ElementTypeMidfielder = 3
	ElementTypeForward    = 4
)

type Player struct {
	ID          int64
	WebName     string
	TeamID      int64
	ElementType int
}
