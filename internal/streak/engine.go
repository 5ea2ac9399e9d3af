package streak

import "math"

// XP curve constants. A completion is worth the base reward plus a bonus
// that scales with the streak it lands on, so a restart (streak 1) earns
// the lowest tier.
const (
	XPBase        = 10
	XPStreakBonus = 2
)

// Outcome classifies what a mark-done event did to a task.
type Outcome int

const (
	// OutcomeAlreadyDone means the task was already completed today;
	// the event is a silent no-op, not an error.
	OutcomeAlreadyDone Outcome = iota
	// OutcomeExtended means yesterday's completion was followed up and
	// the streak grew by one.
	OutcomeExtended
	// OutcomeRestarted means the chain was broken (or never started)
	// and the streak begins again at 1.
	OutcomeRestarted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyDone:
		return "already done"
	case OutcomeExtended:
		return "extended"
	case OutcomeRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Advance applies the mark-done state machine and returns the new streak
// value. Streak continuity is defined purely by calendar-day adjacency:
//
//	last == today      -> no-op, streak unchanged
//	last == today - 1  -> streak + 1
//	anything else      -> streak resets to 1
func Advance(streak int, last, today Day) (int, Outcome) {
	switch {
	case last == today:
		return streak, OutcomeAlreadyDone
	case !last.IsZero() && last.Next() == today:
		return streak + 1, OutcomeExtended
	default:
		return 1, OutcomeRestarted
	}
}

// Award returns the XP earned by a mark-done event that produced the
// given outcome and streak. A same-day repeat earns nothing.
func Award(o Outcome, newStreak int) int {
	if o == OutcomeAlreadyDone {
		return 0
	}
	return XPBase + XPStreakBonus*newStreak
}

// Level maps cumulative XP to a level. The curve is square-root shaped:
// early levels are cheap, later ones cost proportionally more
// (level 2 at 100 XP, 3 at 400, 4 at 900). Negative input clamps to
// level 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + int(math.Sqrt(float64(xp)))/10
}

// LeveledUp reports whether gaining the last `gained` XP pushed the user
// over a level boundary. It compares the level at xpAfter with the level
// the user had before the gain.
func LeveledUp(xpAfter, gained int) bool {
	if gained <= 0 {
		return false
	}
	return Level(xpAfter) > Level(xpAfter-gained)
}
