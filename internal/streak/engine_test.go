package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf_TruncatesInUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 3, 14, 23, 30, 0, 0, loc)
	assert.Equal(t, Day("2026-03-15"), DayOf(local))

	utc := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Day("2026-03-14"), DayOf(utc))
}

func TestDay_Next(t *testing.T) {
	assert.Equal(t, Day("2026-03-01"), Day("2026-02-28").Next())
	assert.Equal(t, Day("2024-02-29"), Day("2024-02-28").Next(), "leap year")
	assert.Equal(t, Day("2027-01-01"), Day("2026-12-31").Next())
	assert.Equal(t, Day(""), Day("").Next(), "zero day has no successor")
}

func TestDay_Valid(t *testing.T) {
	assert.True(t, Day("").Valid())
	assert.True(t, Day("2026-08-29").Valid())
	assert.False(t, Day("29/08/2026").Valid())
	assert.False(t, Day("yesterday").Valid())
}

func TestAdvance_SameDayIsNoOp(t *testing.T) {
	today := Day("2026-08-29")
	got, outcome := Advance(3, today, today)
	assert.Equal(t, OutcomeAlreadyDone, outcome)
	assert.Equal(t, 3, got, "streak must not change on a same-day repeat")
}

func TestAdvance_YesterdayExtends(t *testing.T) {
	got, outcome := Advance(3, Day("2026-08-28"), Day("2026-08-29"))
	assert.Equal(t, OutcomeExtended, outcome)
	assert.Equal(t, 4, got)
}

func TestAdvance_GapResets(t *testing.T) {
	got, outcome := Advance(7, Day("2026-08-26"), Day("2026-08-29"))
	assert.Equal(t, OutcomeRestarted, outcome)
	assert.Equal(t, 1, got)
}

func TestAdvance_NeverCompletedStartsAtOne(t *testing.T) {
	got, outcome := Advance(0, Day(""), Day("2026-08-29"))
	assert.Equal(t, OutcomeRestarted, outcome)
	assert.Equal(t, 1, got)
}

func TestAdvance_MonthAndYearBoundaries(t *testing.T) {
	got, outcome := Advance(10, Day("2026-12-31"), Day("2027-01-01"))
	require.Equal(t, OutcomeExtended, outcome)
	assert.Equal(t, 11, got)

	got, outcome = Advance(5, Day("2026-02-28"), Day("2026-03-01"))
	require.Equal(t, OutcomeExtended, outcome)
	assert.Equal(t, 6, got)
}

func TestAward(t *testing.T) {
	assert.Equal(t, 0, Award(OutcomeAlreadyDone, 3))
	assert.Equal(t, 12, Award(OutcomeRestarted, 1), "restart lands on the lowest tier")
	assert.Equal(t, 18, Award(OutcomeExtended, 4))
}

func TestLevel_CurvePoints(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.xp), "Level(%d)", tt.xp)
	}
}

func TestLevel_Monotone(t *testing.T) {
	prev := Level(0)
	for xp := 1; xp <= 5000; xp++ {
		cur := Level(xp)
		require.GreaterOrEqual(t, cur, prev, "level curve must never decrease (xp=%d)", xp)
		prev = cur
	}
}

func TestLeveledUp(t *testing.T) {
	assert.True(t, LeveledUp(104, 12), "crossing 100 is a level up")
	assert.False(t, LeveledUp(90, 12))
	assert.False(t, LeveledUp(104, 0), "no gain, no level up")
}
