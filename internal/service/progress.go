package service

import (
	"time"

	"mentora_backend/internal/util"
)

// ProgressAggregate is the participant's progression state as a value.
// Reward handling builds the current aggregate, applies one completion
// event through the pure transition below, and persists the result in a
// single locked transaction; nothing else increments these fields.
type ProgressAggregate struct {
	XP                 int
	Coins              int
	CompletionStreak   int
	LastCompletionDate *time.Time
}

// CompletionEvent is one rewarded completion.
type CompletionEvent struct {
	XP          int
	Coins       int
	CompletedAt time.Time
}

// Apply returns the aggregate after the event. Streak transition: first
// completion starts at 1; a completion exactly one day after the last one
// extends the streak; a larger gap resets it to 1; another completion on
// the same day leaves it untouched.
func (a ProgressAggregate) Apply(e CompletionEvent) ProgressAggregate {
	today := util.StartOfDay(e.CompletedAt)

	next := a
	next.XP += e.XP
	next.Coins += e.Coins

	switch {
	case a.LastCompletionDate == nil:
		next.CompletionStreak = 1
	default:
		gap := util.DaysBetween(*a.LastCompletionDate, today)
		switch {
		case gap == 0:
			// same day, streak unchanged
		case gap == 1:
			next.CompletionStreak = a.CompletionStreak + 1
		default:
			next.CompletionStreak = 1
		}
	}

	next.LastCompletionDate = &today
	return next
}

// levelThresholds[i] is the minimum XP for level i+1. Level is always
// recomputed from XP; there is no stored level state anywhere.
var levelThresholds = []int{
	0,    // level 1
	100,  // level 2
	250,  // level 3
	450,  // level 4
	700,  // level 5
	1000, // level 6
	1400, // level 7
	1900, // level 8
	2500, // level 9
	3200, // level 10
	4000, // level 11
	5000, // level 12
	6200, // level 13
	7600, // level 14
	9200, // level 15
}

// xpPerLevelBeyondTable extends the table linearly past its last entry.
const xpPerLevelBeyondTable = 2000

// LevelForXP derives the level from total experience points.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	last := len(levelThresholds) - 1
	if xp >= levelThresholds[last] {
		return last + 1 + (xp-levelThresholds[last])/xpPerLevelBeyondTable
	}
	level := 1
	for i, threshold := range levelThresholds {
		if xp >= threshold {
			level = i + 1
		}
	}
	return level
}

// NextLevelXP returns the XP required to reach the level after the one the
// given XP sits in.
func NextLevelXP(xp int) int {
	level := LevelForXP(xp)
	if level < len(levelThresholds) {
		return levelThresholds[level]
	}
	last := len(levelThresholds) - 1
	return levelThresholds[last] + (level-last)*xpPerLevelBeyondTable
}
