/* projection.go
 * Contains the pregame score projection model and the thrill score blend
 * Authors: Courtwatch developers
 */

package watchscore

import "math"

// leagueAvgEfficiency is the D1 average adjusted efficiency (points per 100
// possessions) used to normalize the offense x defense cross product.
const leagueAvgEfficiency = 102.0

// TeamEfficiency is the slice of a team's efficiency snapshot the projection
// model needs
type TeamEfficiency struct {
	AdjO          float64 // points scored per 100 possessions
	AdjD          float64 // points allowed per 100 possessions
	AdjT          float64 // possessions per 40 minutes
	WinExpectancy float64 // pythagorean win expectancy 0-1
}

// ProjectScores predicts a final score for a matchup using efficiency math:
//
//	avgTempo  = (home.AdjT + away.AdjT) / 2
//	homeScore = round(home.AdjO * (away.AdjD / leagueAvg) * avgTempo / 100)
//	awayScore = round(away.AdjO * (home.AdjD / leagueAvg) * avgTempo / 100)
//
// The projection is symmetric under a home/away swap. It is a heuristic, not a
// probabilistic forecast; only determinism and the numeric shape are promised.
func ProjectScores(home, away TeamEfficiency) (homeScore, awayScore int) {
	avgTempo := (home.AdjT + away.AdjT) / 2
	homeScore = int(math.Round(home.AdjO * (away.AdjD / leagueAvgEfficiency) * avgTempo / 100))
	awayScore = int(math.Round(away.AdjO * (home.AdjD / leagueAvgEfficiency) * avgTempo / 100))
	return homeScore, awayScore
}

// ThrillScore blends projected closeness with team quality into a pregame
// 0-100 metric:
//
//	closeness = max(0, 1 - margin/20)
//	quality   = (home.WinExpectancy + away.WinExpectancy) / 2
//	thrill    = clamp(round((0.6*closeness + 0.4*quality) * 100), 0, 100)
func ThrillScore(home, away TeamEfficiency, homeScore, awayScore int) int {
	margin := float64(abs(homeScore - awayScore))
	closeness := max(0, 1-margin/20)
	quality := (home.WinExpectancy + away.WinExpectancy) / 2

	thrill := int(math.Round((0.6*closeness + 0.4*quality) * 100))
	if thrill > 100 {
		thrill = 100
	}
	if thrill < 0 {
		thrill = 0
	}
	return thrill
}
