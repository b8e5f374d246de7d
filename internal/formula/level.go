package formula

import "math"

const (
	// BaseXP is the experience needed to leave level 1.
	BaseXP = 1000
	// LevelGrowth compounds the requirement for each further level.
	LevelGrowth = 1.5
)

// earlyClickPower covers the hand-tuned levels before the step formula starts.
var earlyClickPower = [...]int64{1: 1, 2: 2, 3: 5}

// LevelRequirement returns the experience needed to advance from level to level+1.
// Levels below 1 are treated as 1.
func LevelRequirement(level int) int64 {
	if level < 1 {
		level = 1
	}
	return Floor(BaseXP * math.Pow(LevelGrowth, float64(level-1)))
}

// ClickPowerForLevel returns the base click yield at the given level.
// The result never decreases from one level to the next.
func ClickPowerForLevel(level int) int64 {
	switch {
	case level < 1:
		return earlyClickPower[1]
	case level < len(earlyClickPower):
		return earlyClickPower[level]
	case level < 10:
		return int64(level) * 10
	case level < 50:
		return int64(level) * 100
	default:
		return int64(level) * 1000
	}
}
