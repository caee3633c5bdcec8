/* models.go
 * This file contains the structs and helper functions that relate to DB objects
 * Authors: Courtwatch developers
 */

package store

import (
	"time"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/watchscore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamDoc represents the way a canonical team is stored in the DB
type TeamDoc struct {
	Id            primitive.ObjectID `bson:"_id,omitempty"`
	TeamID        string             `bson:"team_id"`
	CanonicalName string             `bson:"canonical_name"`
	Aliases       []string           `bson:"aliases,omitempty"`
	Conference    string             `bson:"conference,omitempty"`
}

// ToTeam converts a TeamDoc into the shared team type. Used when getting data from the db
func (d TeamDoc) ToTeam() shared.Team {
	return shared.Team{
		ID:            d.TeamID,
		CanonicalName: d.CanonicalName,
		Aliases:       d.Aliases,
		Conference:    d.Conference,
	}
}

// FromTeam converts a shared team into its DB representation
func FromTeam(team shared.Team) TeamDoc {
	return TeamDoc{
		TeamID:        team.ID,
		CanonicalName: team.CanonicalName,
		Aliases:       team.Aliases,
		Conference:    team.Conference,
	}
}

// MappingDoc represents the way a cached name resolution is stored in the DB.
// The (external_name, provider) pair is unique
type MappingDoc struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	ExternalName string             `bson:"external_name"`
	Provider     string             `bson:"provider"`
	TeamID       string             `bson:"team_id"`
	Confidence   float64            `bson:"confidence"`
	ConfirmedAt  *time.Time         `bson:"confirmed_at,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// ToMapping converts a MappingDoc into the reconciler's mapping type
func (d MappingDoc) ToMapping() reconcile.Mapping {
	return reconcile.Mapping{
		ExternalName: d.ExternalName,
		Provider:     d.Provider,
		TeamID:       d.TeamID,
		Confidence:   d.Confidence,
		ConfirmedAt:  d.ConfirmedAt,
	}
}

// FromMapping converts a reconciler mapping into its DB representation.
// UpdatedAt is stamped by the upsert, not here
func FromMapping(m reconcile.Mapping) MappingDoc {
	return MappingDoc{
		ExternalName: m.ExternalName,
		Provider:     m.Provider,
		TeamID:       m.TeamID,
		Confidence:   m.Confidence,
		ConfirmedAt:  m.ConfirmedAt,
	}
}

// AdvancedStatsDoc is one team's rating snapshot from one provider for one season.
// Both providers fill the common efficiency fields; the provider-specific extras
// are zero for the other source
type AdvancedStatsDoc struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	TeamID    string             `bson:"team_id"`
	Provider  string             `bson:"provider"`
	Season    int                `bson:"season"`
	FetchedAt time.Time          `bson:"fetched_at"`

	Rank          int     `bson:"rank,omitempty"`
	AdjO          float64 `bson:"adj_o,omitempty"`
	AdjD          float64 `bson:"adj_d,omitempty"`
	Tempo         float64 `bson:"tempo,omitempty"`
	WinExpectancy float64 `bson:"win_expectancy,omitempty"`
	WAB           float64 `bson:"wab,omitempty"`
	Wins          int     `bson:"wins,omitempty"`
	Losses        int     `bson:"losses,omitempty"`

	// Haslametrics extras
	Momentum float64 `bson:"momentum,omitempty"`
	PTF      float64 `bson:"ptf,omitempty"`
}

// FromBartTorvik builds a stats snapshot from one BartTorvik row
func FromBartTorvik(teamID string, season int, stats external.BartTorvikTeamStats) AdvancedStatsDoc {
	return AdvancedStatsDoc{
		TeamID:        teamID,
		Provider:      external.ProviderBartTorvik,
		Season:        season,
		Rank:          stats.TRank,
		AdjO:          stats.AdjO,
		AdjD:          stats.AdjD,
		Tempo:         stats.AdjT,
		WinExpectancy: stats.Barthag,
		WAB:           stats.WAB,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
	}
}

// FromHaslametrics builds a stats snapshot from one Haslametrics team. All-Play %
// stands in for win expectancy, rescaled back to 0-1
func FromHaslametrics(teamID string, season int, stats external.HaslametricsTeamStats) AdvancedStatsDoc {
	return AdvancedStatsDoc{
		TeamID:        teamID,
		Provider:      external.ProviderHaslametrics,
		Season:        season,
		Rank:          stats.HaslRank,
		AdjO:          stats.AdjO,
		AdjD:          stats.AdjD,
		Tempo:         stats.Pace,
		WinExpectancy: stats.APPct / 100,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		Momentum:      stats.Momentum,
		PTF:           stats.PTF,
	}
}

// Efficiency extracts the slice of the snapshot the projection model needs
func (d AdvancedStatsDoc) Efficiency() watchscore.TeamEfficiency {
	return watchscore.TeamEfficiency{
		AdjO:          d.AdjO,
		AdjD:          d.AdjD,
		AdjT:          d.Tempo,
		WinExpectancy: d.WinExpectancy,
	}
}

// ScoreboardDoc stores one calendar day's normalized games
type ScoreboardDoc struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	Date      string             `bson:"date"` // YYYY-MM-DD
	FetchedAt time.Time          `bson:"fetched_at"`
	Games     []external.Game    `bson:"games"`
}

// configDocKey is the _id of the singleton watch score configuration document
const configDocKey = "watch_config"

// ConfigDoc is the singleton watch score configuration document
type ConfigDoc struct {
	Key       string            `bson:"_id"`
	Config    watchscore.Config `bson:"config"`
	UpdatedAt time.Time         `bson:"updated_at"`
}
