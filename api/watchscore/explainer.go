/* explainer.go
 * Contains the explanation generator: a pure mapping from factor scores to one
 * short sentence built from a small set of phrase templates
 * Authors: Courtwatch developers
 */

package watchscore

import (
	"fmt"
	"sort"
	"strings"

	"courtwatch/api/shared"
)

// buildExplanation renders the top contributing factors into a one sentence
// summary. Factors are ordered by contribution descending with a name
// tie-break so the output is deterministic; at most two phrases are joined and
// a generic fallback covers games where nothing stands out.
func buildExplanation(factors FactorScores, contributions map[string]float64, input Input) string {
	keys := make([]string, 0, len(contributions))
	for key := range contributions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if contributions[keys[i]] != contributions[keys[j]] {
			return contributions[keys[i]] > contributions[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var parts []string
	for _, key := range keys[:min(3, len(keys))] {
		if phrase := describeFactor(key, factors, input); phrase != "" {
			parts = append(parts, phrase)
		}
		if len(parts) >= 2 {
			break
		}
	}

	switch len(parts) {
	case 0:
		return "Interesting matchup"
	case 1:
		return capitalize(parts[0])
	default:
		return capitalize(parts[0]) + " + " + parts[1]
	}
}

// describeFactor maps one factor to a phrase, or "" when the factor is not
// strong enough to mention
func describeFactor(key string, factors FactorScores, input Input) string {
	switch key {
	case FactorCloseness:
		margin := abs(input.HomeScore - input.AwayScore)
		switch {
		case factors.Closeness >= 0.9:
			return "tied game"
		case factors.Closeness >= 0.7:
			return fmt.Sprintf("%d-point game", margin)
		case factors.Closeness >= 0.5:
			return fmt.Sprintf("within %d", margin)
		}
	case FactorTimeRemaining:
		switch {
		case input.Status == shared.StatusHalftime:
			return "halftime"
		case factors.TimeRemaining >= 0.9:
			return "final minutes"
		case factors.TimeRemaining >= 0.75:
			return "late in the game"
		case factors.TimeRemaining >= 0.5:
			return "second half"
		}
	case FactorLeadChanges:
		switch {
		case factors.LeadChanges >= 0.8:
			return fmt.Sprintf("%d lead changes", input.LeadChanges)
		case factors.LeadChanges >= 0.5:
			return "back-and-forth battle"
		case factors.LeadChanges >= 0.3:
			return "multiple lead changes"
		}
	case FactorUpsetLikelihood:
		switch {
		case factors.UpsetLikelihood >= 0.7:
			return "major upset brewing"
		case factors.UpsetLikelihood >= 0.4:
			return "upset in the making"
		case factors.UpsetLikelihood >= 0.2:
			return "underdog hanging around"
		}
	case FactorRankedStakes:
		switch {
		case input.HomeRanking != nil && input.AwayRanking != nil:
			best, worst := *input.HomeRanking, *input.AwayRanking
			if worst < best {
				best, worst = worst, best
			}
			return fmt.Sprintf("#%d vs #%d ranked matchup", best, worst)
		case input.HomeRanking != nil:
			return "ranked team at home"
		case input.AwayRanking != nil:
			return "ranked team on the road"
		}
	case FactorTourneyImplications:
		switch {
		case factors.TourneyImplications >= 0.8:
			return "huge tournament implications"
		case factors.TourneyImplications >= 0.5:
			return "tournament stakes"
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
