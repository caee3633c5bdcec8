/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split
 * into teams, mappings, stats, games and config files. Each of these files contain methods
 * for interacting with that part of the database
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Teams       *mongo.Collection
		Mappings    *mongo.Collection
		Stats       *mongo.Collection
		Scoreboards *mongo.Collection
		Config      *mongo.Collection
	}
}

// Function for initialising Store. Connects to the db, binds collection handles and
// creates the lookup indexes
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("db name cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Teams = db.Collection("teams")
	s.Collections.Mappings = db.Collection("team_name_mappings")
	s.Collections.Stats = db.Collection("advanced_stats")
	s.Collections.Scoreboards = db.Collection("scoreboards")
	s.Collections.Config = db.Collection("watch_config")

	if err := s.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

// ensureIndexes creates the unique lookup indexes the upsert methods rely on
// Preconditions: Collections have been bound
// Postconditions: Indexes exist, or returns an error if creation fails
func (s *Store) ensureIndexes() error {
	_, err := s.Collections.Mappings.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "external_name", Value: 1}, {Key: "provider", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Collections.Stats.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "team_id", Value: 1}, {Key: "provider", Value: 1}, {Key: "season", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Collections.Teams.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "team_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
