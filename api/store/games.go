/* games.go
 * Contains the methods for interacting with the scoreboards collection. One
 * document holds all of a calendar day's normalized games
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtwatch/api/external"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreScoreboard stores or replaces the day's games
// Preconditions: Receives a YYYY-MM-DD date string and the day's normalized games
// Postconditions: The day's scoreboard is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) StoreScoreboard(date string, games []external.Game) error {
	if date == "" {
		return fmt.Errorf("date cannot be empty")
	}
	doc := ScoreboardDoc{
		Date:      date,
		FetchedAt: time.Now().UTC(),
		Games:     games,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Scoreboards.ReplaceOne(context.TODO(), bson.M{"date": date}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to store scoreboard: %w", err)
	}
	return nil
}

// GetScoreboard does a DB lookup for one day's games
// Preconditions: Receives a YYYY-MM-DD date string
// Postconditions: Returns the day's games and true if a scoreboard exists, false if not, or an error if it occurs
func (s *Store) GetScoreboard(date string) ([]external.Game, bool, error) {
	var doc ScoreboardDoc
	err := s.Collections.Scoreboards.FindOne(context.TODO(), bson.M{"date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error fetching scoreboard from db: %w", err)
	}
	return doc.Games, true, nil
}
