/* calculator.go
 * Contains the watch score calculator: combines the six factor scores into a
 * single explainable 0-100 ranking using externally supplied weights
 * Authors: Courtwatch developers
 */

package watchscore

import "math"

// ComputeWatchScore scores one game. Each factor returns 0-1; factors are
// multiplied by their weight, summed and scaled to 0-100. Weights are expected
// to sum to roughly 1.0 but this is not enforced, so the final score is
// clamped. Per-factor contributions are reported on a 0-100 point scale with
// one decimal place for the explanation and UI.
func ComputeWatchScore(input Input, config Config) Result {
	factors := FactorScores{
		Closeness:           computeCloseness(input),
		TimeRemaining:       computeTimeRemaining(input),
		LeadChanges:         computeLeadChanges(input),
		UpsetLikelihood:     computeUpsetLikelihood(input),
		RankedStakes:        computeRankedStakes(input),
		TourneyImplications: computeTourneyImplications(input),
	}

	weighted := []struct {
		key    string
		score  float64
		weight float64
	}{
		{FactorCloseness, factors.Closeness, config.Weights.Closeness},
		{FactorTimeRemaining, factors.TimeRemaining, config.Weights.TimeRemaining},
		{FactorLeadChanges, factors.LeadChanges, config.Weights.LeadChanges},
		{FactorUpsetLikelihood, factors.UpsetLikelihood, config.Weights.UpsetLikelihood},
		{FactorRankedStakes, factors.RankedStakes, config.Weights.RankedStakes},
		{FactorTourneyImplications, factors.TourneyImplications, config.Weights.TourneyImplications},
	}

	contributions := make(map[string]float64, len(weighted))
	weightedSum := 0.0
	for _, w := range weighted {
		contribution := w.score * w.weight
		contributions[w.key] = math.Round(contribution*1000) / 10
		weightedSum += contribution
	}

	score := int(math.Round(weightedSum * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Result{
		Score:         score,
		FactorScores:  factors,
		Contributions: contributions,
		Explanation:   buildExplanation(factors, contributions, input),
		ModelVersion:  config.ModelVersion,
	}
}
