/* mappings.go
 * Contains the methods for interacting with the team_name_mappings collection.
 * Store satisfies the reconciler's mapping cache interface, plus the review
 * operations for unconfirmed mappings
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtwatch/api/reconcile"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMapping does a DB lookup for the cached resolution of one (external name, provider) pair
// Preconditions: Receives strings containing the provider's name for a team and the provider tag
// Postconditions: Returns the mapping and true if it exists, false if not, or an error if it occurs
func (s *Store) GetMapping(externalName, provider string) (reconcile.Mapping, bool, error) {
	var doc MappingDoc
	err := s.Collections.Mappings.FindOne(context.TODO(), bson.M{"external_name": externalName, "provider": provider}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return reconcile.Mapping{}, false, nil
		}
		return reconcile.Mapping{}, false, fmt.Errorf("error fetching mapping from db: %w", err)
	}
	return doc.ToMapping(), true, nil
}

// UpsertMapping stores or replaces the cached resolution for a (external name, provider) pair
// Preconditions: Receives a mapping with external name, provider and team id set
// Postconditions: The mapping is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) UpsertMapping(mapping reconcile.Mapping) error {
	doc := FromMapping(mapping)
	doc.UpdatedAt = time.Now().UTC()

	filter := bson.M{"external_name": doc.ExternalName, "provider": doc.Provider}
	opts := options.Replace().SetUpsert(true)

	_, err := s.Collections.Mappings.ReplaceOne(context.TODO(), filter, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping: %w", err)
	}
	return nil
}

// ListUnconfirmedMappings gets every cached mapping still waiting on operator review
// Preconditions: none
// Postconditions: Returns a slice of unconfirmed mappings, or an error if it occurs
func (s *Store) ListUnconfirmedMappings() ([]reconcile.Mapping, error) {
	filter := bson.M{"confirmed_at": bson.M{"$exists": false}}

	cursor, err := s.Collections.Mappings.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching mappings from db: %w", err)
	}

	var docs []MappingDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of mappings: %w", err)
	}

	mappings := make([]reconcile.Mapping, 0, len(docs))
	for _, doc := range docs {
		mappings = append(mappings, doc.ToMapping())
	}
	return mappings, nil
}

// ConfirmMapping marks an existing mapping as operator-approved
// Preconditions: Receives the external name and provider of a stored mapping
// Postconditions: The mapping's confirmed_at is set, or returns an error if no mapping exists
func (s *Store) ConfirmMapping(externalName, provider string) error {
	filter := bson.M{"external_name": externalName, "provider": provider}
	update := bson.M{"$set": bson.M{"confirmed_at": time.Now().UTC(), "updated_at": time.Now().UTC()}}

	result, err := s.Collections.Mappings.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to confirm mapping: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no mapping found for %q from %s", externalName, provider)
	}
	return nil
}

// OverrideMapping points a mapping at an operator-chosen team. The override is
// stored at full confidence and counts as confirmed; it creates the mapping if
// the resolver never produced one
// Preconditions: Receives the external name, provider and the canonical team id to map to
// Postconditions: The mapping is stored in the db, or returns an error if the operation was unsuccessful
func (s *Store) OverrideMapping(externalName, provider, teamID string) error {
	now := time.Now().UTC()
	doc := MappingDoc{
		ExternalName: externalName,
		Provider:     provider,
		TeamID:       teamID,
		Confidence:   1.0,
		ConfirmedAt:  &now,
		UpdatedAt:    now,
	}

	filter := bson.M{"external_name": externalName, "provider": provider}
	opts := options.Replace().SetUpsert(true)

	_, err := s.Collections.Mappings.ReplaceOne(context.TODO(), filter, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to override mapping: %w", err)
	}
	return nil
}

// DeleteMapping removes a cached mapping so the resolver re-derives it on the next ingest
// Preconditions: Receives the external name and provider of a stored mapping
// Postconditions: The mapping is removed, or returns an error if no mapping exists
func (s *Store) DeleteMapping(externalName, provider string) error {
	result, err := s.Collections.Mappings.DeleteOne(context.TODO(), bson.M{"external_name": externalName, "provider": provider})
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no mapping found for %q from %s", externalName, provider)
	}
	return nil
}
