/* config.go
 * Contains the methods for interacting with the watch_config collection. The
 * configuration is a singleton document seeded with the defaults on first read
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtwatch/api/watchscore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetWatchConfig gets the stored watch score configuration, seeding the
// defaults if none has been saved yet
// Preconditions: none
// Postconditions: Returns the configuration, or an error if it occurs
func (s *Store) GetWatchConfig() (watchscore.Config, error) {
	var doc ConfigDoc
	err := s.Collections.Config.FindOne(context.TODO(), bson.M{"_id": configDocKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config := watchscore.DefaultConfig()
			if err := s.SaveWatchConfig(config); err != nil {
				return watchscore.Config{}, err
			}
			return config, nil
		}
		return watchscore.Config{}, fmt.Errorf("error fetching watch config from db: %w", err)
	}
	return doc.Config, nil
}

// SaveWatchConfig stores or replaces the watch score configuration
// Preconditions: Receives the configuration to store
// Postconditions: The configuration is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) SaveWatchConfig(config watchscore.Config) error {
	doc := ConfigDoc{
		Key:       configDocKey,
		Config:    config,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Config.ReplaceOne(context.TODO(), bson.M{"_id": configDocKey}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to save watch config: %w", err)
	}
	return nil
}
