/* models.go
 * This file contains the types that are shared between api sub packages: canonical teams,
 * game status values and the flattened game state consumed by the watch score calculator
 * Authors: Courtwatch developers
 */

package shared

// GameStatus is the provider-neutral status of a game
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusHalftime   GameStatus = "HALFTIME"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCancelled  GameStatus = "CANCELLED"
)

// Live returns true if the game is currently being played
func (s GameStatus) Live() bool {
	return s == StatusInProgress || s == StatusHalftime
}

// Team is the canonical identity for a college team, independent of any provider's
// naming. Teams are seeded externally; the core never creates or deletes them.
type Team struct {
	ID            string
	CanonicalName string
	Aliases       []string
	Conference    string
}

// Record is a win/loss record
type Record struct {
	Wins   int
	Losses int
}
