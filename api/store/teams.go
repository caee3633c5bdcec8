/* teams.go
 * Contains the methods for interacting with the teams collection
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"courtwatch/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListTeams gets every canonical team. Used as the candidate set for name resolution
// Preconditions: none
// Postconditions: Returns a slice of teams, or an error if it occurs
func (s *Store) ListTeams() ([]shared.Team, error) {
	cursor, err := s.Collections.Teams.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching teams from db: %w", err)
	}

	var docs []TeamDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of teams: %w", err)
	}

	teams := make([]shared.Team, 0, len(docs))
	for _, doc := range docs {
		teams = append(teams, doc.ToTeam())
	}
	return teams, nil
}

// GetTeam does a DB lookup for one canonical team
// Preconditions: Receives a string containing the canonical team id
// Postconditions: Returns the team and true if it exists, false if not, or an error if it occurs
func (s *Store) GetTeam(teamID string) (shared.Team, bool, error) {
	var doc TeamDoc
	err := s.Collections.Teams.FindOne(context.TODO(), bson.M{"team_id": teamID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Team{}, false, nil
		}
		return shared.Team{}, false, fmt.Errorf("error fetching team from db: %w", err)
	}
	return doc.ToTeam(), true, nil
}

// UpsertTeam stores or replaces one canonical team. Used by the seeding tooling
// Preconditions: Receives a team with a non-empty id and canonical name
// Postconditions: The team is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) UpsertTeam(team shared.Team) error {
	if team.ID == "" || team.CanonicalName == "" {
		return fmt.Errorf("team id and canonical name cannot be empty")
	}

	filter := bson.M{"team_id": team.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := s.Collections.Teams.ReplaceOne(context.TODO(), filter, FromTeam(team), opts)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}
	return nil
}
