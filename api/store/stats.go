/* stats.go
 * Contains the methods for interacting with the advanced_stats collection
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertAdvancedStats stores or replaces one team's rating snapshot for a
// (team, provider, season) triple
// Preconditions: Receives a snapshot with team id, provider and season set
// Postconditions: The snapshot is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) UpsertAdvancedStats(doc AdvancedStatsDoc) error {
	if doc.TeamID == "" || doc.Provider == "" {
		return fmt.Errorf("team id and provider cannot be empty")
	}
	doc.FetchedAt = time.Now().UTC()

	filter := bson.M{"team_id": doc.TeamID, "provider": doc.Provider, "season": doc.Season}
	opts := options.Replace().SetUpsert(true)

	_, err := s.Collections.Stats.ReplaceOne(context.TODO(), filter, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert advanced stats: %w", err)
	}
	return nil
}

// GetAdvancedStats does a DB lookup for one team's snapshot from one provider
// Preconditions: Receives the canonical team id, provider tag and season ending year
// Postconditions: Returns the snapshot and true if it exists, false if not, or an error if it occurs
func (s *Store) GetAdvancedStats(teamID, provider string, season int) (AdvancedStatsDoc, bool, error) {
	var doc AdvancedStatsDoc
	err := s.Collections.Stats.FindOne(context.TODO(), bson.M{"team_id": teamID, "provider": provider, "season": season}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return AdvancedStatsDoc{}, false, nil
		}
		return AdvancedStatsDoc{}, false, fmt.Errorf("error fetching advanced stats from db: %w", err)
	}
	return doc, true, nil
}

// GetSeasonStats gets every stored snapshot for one provider and season
// Preconditions: Receives the provider tag and season ending year
// Postconditions: Returns a slice of snapshots, or an error if it occurs
func (s *Store) GetSeasonStats(provider string, season int) ([]AdvancedStatsDoc, error) {
	cursor, err := s.Collections.Stats.Find(context.TODO(), bson.M{"provider": provider, "season": season})
	if err != nil {
		return nil, fmt.Errorf("error fetching advanced stats from db: %w", err)
	}

	var docs []AdvancedStatsDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of advanced stats: %w", err)
	}
	return docs, nil
}
