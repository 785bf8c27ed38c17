package game

import (
	"math"

	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
	"github.com/andrekvist/burgersim/pkg/utils"
)

// Score maps cumulative profit onto the level's bounded score:
// floor(profit/100), clamped to [0, maxScore].
func Score(cumulativeProfit float64, maxScore int) int {
	return utils.Clamp(int(math.Floor(cumulativeProfit/100)), 0, maxScore)
}

// IsGameOver reports whether the game has reached a terminal state: either
// bankruptcy was flagged or the day counter has passed the level's length.
// Callers must stop invoking the processor once this returns true.
func IsGameOver(s *State, cfg *level.Config) bool {
	return s.GameOver || s.Day > cfg.DaysToComplete
}

// Result is the final game summary projected for the caller.
type Result struct {
	LevelID          string           `json:"levelId"`
	UserID           string           `json:"userId"`
	FinalDay         int              `json:"finalDay"`
	FinalCash        float64          `json:"finalCash"`
	FinalInventory   shared.Inventory `json:"finalInventory"`
	CumulativeProfit float64          `json:"cumulativeProfit"`
	Score            int              `json:"score"`
	Bankrupt         bool             `json:"bankrupt"`
	History          []DayResult      `json:"history"`
}

// CalculateResult projects the final summary from a state. Pure: no side
// effects, no failure modes beyond what the caller passed in.
func CalculateResult(s *State, cfg *level.Config, userID string) Result {
	return Result{
		LevelID:          cfg.ID,
		UserID:           userID,
		FinalDay:         s.Day,
		FinalCash:        s.Cash,
		FinalInventory:   s.Inventory,
		CumulativeProfit: s.CumulativeProfit,
		Score:            Score(s.CumulativeProfit, cfg.MaxScore),
		Bankrupt:         s.GameOver,
		History:          s.History,
	}
}
