// ABOUTME: Dopamine scoring rules for habit logs.
// ABOUTME: Computes base points plus once-per-day first win, swap and streak bonuses.
package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
)

// Point values.
const (
	GoodHabitPoints = 10
	BadHabitPoints  = -5
	FirstWinBonus   = 5
	SwapBonus       = 15
	StreakBonus     = 10
)

// SwapWindow is how long after a bad log a good log can still swap it.
const SwapWindow = 60 * time.Minute

// ScoreResult is the outcome of scoring one habit log against a day's record.
type ScoreResult struct {
	Change      int
	FirstWin    bool // newly awarded by this log
	SwapBonus   bool
	StreakBonus bool
}

// Score computes the score change for logging a habit of type ht against the
// day's record as it stood before this log. swapEligible reports whether the
// referenced swap log qualifies (see SwapQualifies).
func Score(ht models.HabitType, day *models.DopamineDaily, swapEligible bool) ScoreResult {
	if ht != models.HabitGood {
		return ScoreResult{Change: BadHabitPoints}
	}

	r := ScoreResult{Change: GoodHabitPoints}
	if !day.FirstWin && day.GoodCount == 0 {
		r.Change += FirstWinBonus
		r.FirstWin = true
	}
	if swapEligible && !day.SwapBonus {
		r.Change += SwapBonus
		r.SwapBonus = true
	}
	if !day.StreakBonus && day.StreakDays > 0 {
		r.Change += StreakBonus
		r.StreakBonus = true
	}
	return r
}

// Apply folds a score result into the day's record for a log of type ht.
// Bonus flags only ever move from false to true.
func Apply(day *models.DopamineDaily, ht models.HabitType, r ScoreResult) {
	day.Score += r.Change
	if ht == models.HabitGood {
		day.GoodCount++
	} else {
		day.BadCount++
	}
	day.FirstWin = day.FirstWin || r.FirstWin
	day.SwapBonus = day.SwapBonus || r.SwapBonus
	day.StreakBonus = day.StreakBonus || r.StreakBonus
}

// SwapQualifies reports whether ref can be swapped by a good log at now:
// it must be a bad log by the same user on the same daily record, logged no
// more than SwapWindow ago.
func SwapQualifies(ref *models.HabitLog, userID string, dailyID uuid.UUID, now time.Time) bool {
	if ref == nil {
		return false
	}
	if ref.Type != models.HabitBad || ref.UserID != userID || ref.DailyID != dailyID {
		return false
	}
	return now.Sub(ref.LoggedAt) <= SwapWindow
}

// SeedStreak returns the streak for a new daily record given yesterday's.
func SeedStreak(yesterday *models.DopamineDaily) int {
	if yesterday == nil || yesterday.GoodCount <= 0 {
		return 0
	}
	return yesterday.StreakDays + 1
}
