/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Courtwatch developers
 */

package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/store"
	"courtwatch/api/watchscore"
)

// MockStore implements the Store interface for testing. The ingest path hits it
// from two goroutines, so every method locks
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Teams       map[string]shared.Team
	Mappings    map[string]reconcile.Mapping
	Stats       map[string]store.AdvancedStatsDoc
	Scoreboards map[string][]external.Game
	Config      *watchscore.Config

	// Error injection for testing error paths
	ListTeamsError      error
	GetMappingError     error
	UpsertMappingError  error
	UpsertStatsError    error
	GetScoreboardError  error
	GetWatchConfigError error
}

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		Teams:       make(map[string]shared.Team),
		Mappings:    make(map[string]reconcile.Mapping),
		Stats:       make(map[string]store.AdvancedStatsDoc),
		Scoreboards: make(map[string][]external.Game),
	}
}

func mappingKey(externalName, provider string) string {
	return externalName + "|" + provider
}

func statsKey(teamID, provider string, season int) string {
	return fmt.Sprintf("%s|%s|%d", teamID, provider, season)
}

func (m *MockStore) ListTeams() ([]shared.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTeamsError != nil {
		return nil, m.ListTeamsError
	}
	teams := make([]shared.Team, 0, len(m.Teams))
	for _, team := range m.Teams {
		teams = append(teams, team)
	}
	return teams, nil
}

func (m *MockStore) GetTeam(teamID string) (shared.Team, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.Teams[teamID]
	return team, ok, nil
}

func (m *MockStore) UpsertTeam(team shared.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Teams[team.ID] = team
	return nil
}

func (m *MockStore) GetMapping(externalName, provider string) (reconcile.Mapping, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMappingError != nil {
		return reconcile.Mapping{}, false, m.GetMappingError
	}
	mapping, ok := m.Mappings[mappingKey(externalName, provider)]
	return mapping, ok, nil
}

func (m *MockStore) UpsertMapping(mapping reconcile.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertMappingError != nil {
		return m.UpsertMappingError
	}
	m.Mappings[mappingKey(mapping.ExternalName, mapping.Provider)] = mapping
	return nil
}

func (m *MockStore) ListUnconfirmedMappings() ([]reconcile.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []reconcile.Mapping
	for _, mapping := range m.Mappings {
		if mapping.ConfirmedAt == nil {
			pending = append(pending, mapping)
		}
	}
	return pending, nil
}

func (m *MockStore) ConfirmMapping(externalName, provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := mappingKey(externalName, provider)
	mapping, ok := m.Mappings[key]
	if !ok {
		return fmt.Errorf("no mapping found for %q from %s", externalName, provider)
	}
	now := time.Now()
	mapping.ConfirmedAt = &now
	m.Mappings[key] = mapping
	return nil
}

func (m *MockStore) OverrideMapping(externalName, provider, teamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.Mappings[mappingKey(externalName, provider)] = reconcile.Mapping{
		ExternalName: externalName,
		Provider:     provider,
		TeamID:       teamID,
		Confidence:   1.0,
		ConfirmedAt:  &now,
	}
	return nil
}

func (m *MockStore) DeleteMapping(externalName, provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := mappingKey(externalName, provider)
	if _, ok := m.Mappings[key]; !ok {
		return fmt.Errorf("no mapping found for %q from %s", externalName, provider)
	}
	delete(m.Mappings, key)
	return nil
}

func (m *MockStore) UpsertAdvancedStats(doc store.AdvancedStatsDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertStatsError != nil {
		return m.UpsertStatsError
	}
	m.Stats[statsKey(doc.TeamID, doc.Provider, doc.Season)] = doc
	return nil
}

func (m *MockStore) GetAdvancedStats(teamID, provider string, season int) (store.AdvancedStatsDoc, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.Stats[statsKey(teamID, provider, season)]
	return doc, ok, nil
}

func (m *MockStore) GetSeasonStats(provider string, season int) ([]store.AdvancedStatsDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []store.AdvancedStatsDoc
	for _, doc := range m.Stats {
		if doc.Provider == provider && doc.Season == season {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockStore) StoreScoreboard(date string, games []external.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scoreboards[date] = games
	return nil
}

func (m *MockStore) GetScoreboard(date string) ([]external.Game, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetScoreboardError != nil {
		return nil, false, m.GetScoreboardError
	}
	games, ok := m.Scoreboards[date]
	return games, ok, nil
}

func (m *MockStore) GetWatchConfig() (watchscore.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetWatchConfigError != nil {
		return watchscore.Config{}, m.GetWatchConfigError
	}
	if m.Config == nil {
		return watchscore.DefaultConfig(), nil
	}
	return *m.Config, nil
}

func (m *MockStore) SaveWatchConfig(config watchscore.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Config = &config
	return nil
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: "test_db"}
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the Store interface
var _ store.Interface = (*MockStore)(nil)

// MockFetcher serves canned provider payloads
type MockFetcher struct {
	ScoreboardPayload   []byte
	BartTorvikPayload   []byte
	HaslametricsPayload string

	ScoreboardError   error
	BartTorvikError   error
	HaslametricsError error
}

func (f *MockFetcher) FetchScoreboard(ctx context.Context, date string) ([]byte, error) {
	return f.ScoreboardPayload, f.ScoreboardError
}

func (f *MockFetcher) FetchBartTorvik(ctx context.Context, season int) ([]byte, error) {
	return f.BartTorvikPayload, f.BartTorvikError
}

func (f *MockFetcher) FetchHaslametrics(ctx context.Context) (string, error) {
	return f.HaslametricsPayload, f.HaslametricsError
}
