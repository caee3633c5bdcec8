/* models.go
 * Contains the input, configuration and result types for the watch score calculator
 * Authors: Courtwatch developers
 */

package watchscore

import "courtwatch/api/shared"

// Factor keys used in contribution maps and the explainer
const (
	FactorCloseness           = "closeness"
	FactorTimeRemaining       = "time_remaining"
	FactorLeadChanges         = "lead_changes"
	FactorUpsetLikelihood     = "upset_likelihood"
	FactorRankedStakes        = "ranked_stakes"
	FactorTourneyImplications = "tourney_implications"
)

// Weights are the externally supplied factor weights. They are expected, but
// not enforced, to sum to roughly 1.0.
type Weights struct {
	Closeness           float64 `bson:"closeness" json:"closeness"`
	TimeRemaining       float64 `bson:"time_remaining" json:"time_remaining"`
	LeadChanges         float64 `bson:"lead_changes" json:"lead_changes"`
	UpsetLikelihood     float64 `bson:"upset_likelihood" json:"upset_likelihood"`
	RankedStakes        float64 `bson:"ranked_stakes" json:"ranked_stakes"`
	TourneyImplications float64 `bson:"tourney_implications" json:"tourney_implications"`
}

// Thresholds are tunables surfaced to the admin review workflow alongside the
// weights. The factor functions themselves use the documented fixed constants.
type Thresholds struct {
	CloseGameMargin       int     `bson:"close_game_margin" json:"close_game_margin"`
	CloseGameClockSeconds int     `bson:"close_game_clock_seconds" json:"close_game_clock_seconds"`
	UpsetWinProbThreshold float64 `bson:"upset_win_prob_threshold" json:"upset_win_prob_threshold"`
	BlowoutMargin         int     `bson:"blowout_margin" json:"blowout_margin"`
}

// Config is the full watch score configuration, passed explicitly into
// ComputeWatchScore. The calculator never reads global state.
type Config struct {
	ModelVersion string     `bson:"model_version" json:"model_version"`
	Weights      Weights    `bson:"weights" json:"weights"`
	Thresholds   Thresholds `bson:"thresholds" json:"thresholds"`
}

// DefaultConfig returns the seed configuration used until an operator tunes it
func DefaultConfig() Config {
	return Config{
		ModelVersion: "v1.0",
		Weights: Weights{
			Closeness:           0.25,
			TimeRemaining:       0.20,
			LeadChanges:         0.10,
			UpsetLikelihood:     0.15,
			RankedStakes:        0.20,
			TourneyImplications: 0.10,
		},
		Thresholds: Thresholds{
			CloseGameMargin:       8,
			CloseGameClockSeconds: 300,
			UpsetWinProbThreshold: 0.5,
			BlowoutMargin:         25,
		},
	}
}

// Input is a flattened view of one game's current state. It is constructed
// fresh per scoring call and never persisted.
type Input struct {
	GameID       string
	Status       shared.GameStatus
	HomeScore    int
	AwayScore    int
	Period       int
	ClockDisplay string   // e.g. "5:32", empty if unknown
	LeadChanges  int
	WinProbHome  *float64 // 0-1, nil when unavailable
	HomeRanking  *int     // AP rank, nil if unranked
	AwayRanking  *int
	Spread       *float64 // positive = home favored pregame
}

// FactorScores are the six raw factor values, each in [0,1]
type FactorScores struct {
	Closeness           float64 `json:"closeness"`
	TimeRemaining       float64 `json:"time_remaining"`
	LeadChanges         float64 `json:"lead_changes"`
	UpsetLikelihood     float64 `json:"upset_likelihood"`
	RankedStakes        float64 `json:"ranked_stakes"`
	TourneyImplications float64 `json:"tourney_implications"`
}

// Result is the output of one watch score computation
type Result struct {
	Score         int                `json:"score"` // 0-100
	FactorScores  FactorScores       `json:"factorScores"`
	Contributions map[string]float64 `json:"factorContributions"` // 0-100 scale points per factor
	Explanation   string             `json:"explanation"`
	ModelVersion  string             `json:"modelVersion"`
}
