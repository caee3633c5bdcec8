/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Courtwatch developers
 */

package store

import (
	"context"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/watchscore"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Teams
	ListTeams() ([]shared.Team, error)
	GetTeam(teamID string) (shared.Team, bool, error)
	UpsertTeam(team shared.Team) error

	// Mapping cache and review workflow
	GetMapping(externalName, provider string) (reconcile.Mapping, bool, error)
	UpsertMapping(mapping reconcile.Mapping) error
	ListUnconfirmedMappings() ([]reconcile.Mapping, error)
	ConfirmMapping(externalName, provider string) error
	OverrideMapping(externalName, provider, teamID string) error
	DeleteMapping(externalName, provider string) error

	// Rating snapshots
	UpsertAdvancedStats(doc AdvancedStatsDoc) error
	GetAdvancedStats(teamID, provider string, season int) (AdvancedStatsDoc, bool, error)
	GetSeasonStats(provider string, season int) ([]AdvancedStatsDoc, error)

	// Scoreboards
	StoreScoreboard(date string, games []external.Game) error
	GetScoreboard(date string) ([]external.Game, bool, error)

	// Watch score configuration
	GetWatchConfig() (watchscore.Config, error)
	SaveWatchConfig(config watchscore.Config) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// Ensure Store can back the name reconciler's mapping cache
var _ reconcile.MappingRepo = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
