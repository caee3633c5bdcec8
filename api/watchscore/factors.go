/* factors.go
 * Contains the six independent factor functions. Each maps the game state to a
 * score in [0,1] and depends on nothing but its input
 * Authors: Courtwatch developers
 */

package watchscore

import (
	"strconv"
	"strings"

	"courtwatch/api/shared"
)

// computeCloseness scores how close the game is. Live games decay linearly
// from 1.0 at a tie to 0 at a 25+ point blowout. Games that are not being
// played score a neutral 0.5.
func computeCloseness(input Input) float64 {
	if !input.Status.Live() {
		return 0.5
	}
	margin := abs(input.HomeScore - input.AwayScore)
	const blowoutMargin = 25.0
	return max(0, 1-float64(margin)/blowoutMargin)
}

// computeTimeRemaining scores how late in the game it is. College basketball
// plays two 20 minute halves with 5 minute overtimes.
//
//	first half  ramps 0    -> 0.35
//	halftime    fixed 0.45
//	second half ramps 0.35 -> 1.0
//	overtime    floors 0.9 -> 1.0
//
// Unparseable clocks fall back to a fixed mid-range default for the period
// rather than failing.
func computeTimeRemaining(input Input) float64 {
	if input.Status == shared.StatusHalftime {
		return 0.45
	}
	if !input.Status.Live() {
		return 0
	}

	clockSeconds, clockOK := parseClockSeconds(input.ClockDisplay)

	switch {
	case input.Period <= 1:
		if !clockOK {
			return 0.15
		}
		elapsed := 1200 - clockSeconds
		return min(0.35, float64(elapsed)/1200*0.35)
	case input.Period == 2:
		if !clockOK {
			return 0.6
		}
		fraction := 1 - float64(clockSeconds)/1200
		return 0.35 + fraction*0.65
	default: // overtime
		if !clockOK {
			return 0.95
		}
		fraction := 1 - float64(clockSeconds)/300
		return 0.9 + fraction*0.1
	}
}

// computeLeadChanges scores back-and-forth play, capping at 15 lead changes
func computeLeadChanges(input Input) float64 {
	if input.Status == shared.StatusScheduled {
		return 0
	}
	if input.LeadChanges <= 0 {
		return 0
	}
	const maxLeadChanges = 15.0
	return min(1, float64(input.LeadChanges)/maxLeadChanges)
}

// computeRankedStakes scores poll-ranking stakes. Both teams ranked gives a
// 0.7 base plus a top-10 bonus; a single ranked team gives 0.3-0.5 by rank.
func computeRankedStakes(input Input) float64 {
	homeRanked := rankedTop25(input.HomeRanking)
	awayRanked := rankedTop25(input.AwayRanking)

	if !homeRanked && !awayRanked {
		return 0
	}

	if homeRanked && awayRanked {
		bestRank := *input.HomeRanking
		if *input.AwayRanking < bestRank {
			bestRank = *input.AwayRanking
		}
		bonus := max(0, float64(10-bestRank)*0.03)
		return min(1, 0.7+bonus)
	}

	rank := 0
	if homeRanked {
		rank = *input.HomeRanking
	} else {
		rank = *input.AwayRanking
	}
	return max(0.3, 0.5-float64(rank-1)*0.01)
}

// computeTourneyImplications scores tournament stakes via a top-10/top-25
// ranking proxy
func computeTourneyImplications(input Input) float64 {
	homeTop10 := rankedWithin(input.HomeRanking, 10)
	awayTop10 := rankedWithin(input.AwayRanking, 10)

	switch {
	case homeTop10 && awayTop10:
		return 0.9
	case homeTop10 || awayTop10:
		return 0.6
	case rankedWithin(input.HomeRanking, 25) || rankedWithin(input.AwayRanking, 25):
		return 0.35
	default:
		return 0
	}
}

// computeUpsetLikelihood combines up to three independent upset signals and
// takes the strongest:
//
//  1. the pregame favorite's live win probability has fallen below 0.5,
//     scaling linearly to 1.0 at a probability of 0.1 or lower
//  2. an unranked team currently leads a ranked opponent
//  3. the worse-ranked of two ranked teams currently leads
func computeUpsetLikelihood(input Input) float64 {
	if !input.Status.Live() {
		return 0
	}

	var signals []float64

	// Win probability vs the pregame spread
	if input.WinProbHome != nil && input.Spread != nil {
		winProbFavorite := *input.WinProbHome
		if *input.Spread <= 0 {
			winProbFavorite = 1 - winProbFavorite
		}
		if winProbFavorite < 0.5 {
			signals = append(signals, min(1, (0.5-winProbFavorite)/0.4))
		}
	}

	homeRanked := rankedTop25(input.HomeRanking)
	awayRanked := rankedTop25(input.AwayRanking)
	homeLeading := input.HomeScore > input.AwayScore
	awayLeading := input.AwayScore > input.HomeScore

	// Unranked team leading a ranked opponent
	if homeLeading && !homeRanked && awayRanked {
		signals = append(signals, max(0.3, 0.8-float64(*input.AwayRanking-1)*0.02))
	} else if awayLeading && !awayRanked && homeRanked {
		signals = append(signals, max(0.3, 0.8-float64(*input.HomeRanking-1)*0.02))
	}

	// Worse-ranked team leading a better-ranked team
	if homeRanked && awayRanked {
		if homeLeading && *input.HomeRanking > *input.AwayRanking {
			signals = append(signals, min(0.6, float64(*input.HomeRanking-*input.AwayRanking)*0.05))
		} else if awayLeading && *input.AwayRanking > *input.HomeRanking {
			signals = append(signals, min(0.6, float64(*input.AwayRanking-*input.HomeRanking)*0.05))
		}
	}

	best := 0.0
	for _, s := range signals {
		if s > best {
			best = s
		}
	}
	return min(1, best)
}

// parseClockSeconds parses a clock display like "5:32" into total seconds.
// The second return value reports whether the clock was parseable.
func parseClockSeconds(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}

func rankedTop25(rank *int) bool {
	return rankedWithin(rank, 25)
}

func rankedWithin(rank *int, limit int) bool {
	return rank != nil && *rank <= limit
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
