/* models.go
 * Contains the provider-neutral record types produced by the normalizers in this package
 * Authors: Courtwatch developers
 */

package external

import (
	"time"

	"courtwatch/api/shared"
)

// Provider tags used for mapping cache keys and stats snapshots
const (
	ProviderESPN         = "espn"
	ProviderBartTorvik   = "barttorvik"
	ProviderHaslametrics = "haslametrics"
)

// BartTorvikTeamStats is one team's efficiency snapshot from BartTorvik's
// positional-array feed
type BartTorvikTeamStats struct {
	TeamName string
	TRank    int     // T-Rank (overall rank)
	Barthag  float64 // pythagorean win expectancy 0-1
	AdjO     float64 // adjusted offensive efficiency
	AdjD     float64 // adjusted defensive efficiency
	AdjT     float64 // adjusted tempo (possessions/40 min)
	Wins     int
	Losses   int
	WAB      float64 // wins above bubble
}

// HaslametricsTeamStats is one team's efficiency snapshot from the
// Haslametrics ratings XML
type HaslametricsTeamStats struct {
	TeamName  string
	HaslRank  int
	TID       int     // team capsule URL id: (raw id * 2) + 23
	APPct     float64 // All-Play %, rescaled to 0-100
	AdjO      float64
	AdjD      float64
	Pace      float64 // possessions per game
	Momentum  float64
	MomentumO float64
	MomentumD float64
	PTF       float64 // Paper Tiger Factor
	Wins      int
	Losses    int
}

// GameTeam is one side of a normalized scoreboard game
type GameTeam struct {
	ExternalID   string
	Name         string
	ShortName    string
	Abbreviation string
	LogoURL      string
	Ranking      *int // AP/Coaches poll rank, nil if unranked
	Conference   string
	Record       *shared.Record
}

// LiveState is the in-game state of a live game
type LiveState struct {
	HomeScore    int
	AwayScore    int
	Period       int
	ClockDisplay string // e.g. "5:32", empty when the provider omits it
	LeadChanges  int
	WinProbHome  *float64 // 0-1, nil when unavailable
	Possession   string   // "home", "away" or empty
}

// Game is a normalized scoreboard event attached to its calendar day
type Game struct {
	ExternalID  string
	Provider    string
	GameDate    string // YYYY-MM-DD, the requested calendar day
	ScheduledAt time.Time
	HomeTeam    GameTeam
	AwayTeam    GameTeam
	TVNetwork   string
	Status      shared.GameStatus
	Live        *LiveState // nil unless the game is live
	Spread      *float64   // positive = home favored pregame
	OverUnder   *float64
}
