/* test_helpers.go
 * Contains test helper functions for store package tests. The integration tests
 * need a reachable MongoDB and are skipped when MONGO_TEST_URI is not set
 * Authors: Courtwatch developers
 */

package store

import (
	"context"
	"os"
	"testing"

	"courtwatch/api/shared"
)

// NewTestStore connects to the test database named by MONGO_TEST_URI and drops
// every collection so each test starts clean. Skips the test when the env var
// is not set
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	mongoURI := os.Getenv("MONGO_TEST_URI")
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set; skipping store integration test")
	}

	s, err := NewStore("courtwatch_test", mongoURI)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	_ = s.Collections.Teams.Drop(context.TODO())
	_ = s.Collections.Mappings.Drop(context.TODO())
	_ = s.Collections.Stats.Drop(context.TODO())
	_ = s.Collections.Scoreboards.Drop(context.TODO())
	_ = s.Collections.Config.Drop(context.TODO())

	t.Cleanup(func() {
		_ = s.Client.Disconnect(context.TODO())
	})
	return s
}

// CreateSampleTeams returns a small candidate set for resolution tests
func CreateSampleTeams() []shared.Team {
	return []shared.Team{
		{ID: "duke", CanonicalName: "Duke", Aliases: []string{"Duke Blue Devils"}, Conference: "ACC"},
		{ID: "north-carolina", CanonicalName: "North Carolina", Aliases: []string{"UNC", "North Carolina Tar Heels"}, Conference: "ACC"},
		{ID: "gonzaga", CanonicalName: "Gonzaga", Aliases: []string{"Gonzaga Bulldogs"}, Conference: "WCC"},
	}
}
