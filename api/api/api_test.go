/* api_test.go
 * Contains unit tests for api.go - testing all public API methods
 * Authors: Courtwatch developers
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires an API onto the mock store and fetcher
func newTestAPI(mockStore *MockStore, fetcher *MockFetcher) *API {
	return &API{
		Store:      mockStore,
		Reconciler: reconcile.NewReconciler(mockStore),
		Fetcher:    fetcher,
	}
}

func seedTeams(m *MockStore) {
	for _, team := range []shared.Team{
		{ID: "duke", CanonicalName: "Duke", Aliases: []string{"Duke Blue Devils"}, Conference: "ACC"},
		{ID: "north-carolina", CanonicalName: "North Carolina", Aliases: []string{"UNC"}, Conference: "ACC"},
		{ID: "gonzaga", CanonicalName: "Gonzaga", Conference: "WCC"},
	} {
		m.Teams[team.ID] = team
	}
}

// makeBartRow builds one positional row with the columns the normalizer reads
func makeBartRow(rank int, name, record string, adjO, adjD, barthag, wab, adjT float64) []any {
	row := make([]any, 45)
	for i := range row {
		row[i] = 0.0
	}
	row[0] = rank
	row[1] = name
	row[3] = record
	row[4] = adjO
	row[6] = adjD
	row[8] = barthag
	row[41] = wab
	row[44] = adjT
	return row
}

func marshalBartRows(t *testing.T, rows [][]any) []byte {
	t.Helper()
	payload, err := json.Marshal(rows)
	require.NoError(t, err)
	return payload
}

const haslaPayload = `<xml>
<mr rk="1" t="Duke" id="5" ap="0.95" oe="121.0" de="90.5" ou="67.0" w="28" l="3"/>
<mr rk="2" t="Gonzaga" id="9" ap="0.91" oe="117.2" de="94.8" ou="70.1" w="26" l="5"/>
<mr rk="3" t="North Carolina" id="12" ap="0.88" oe="114.9" de="95.5" ou="69.0" w="24" l="7"/>
</xml>`

// region NewAPI tests

func TestNewAPI_EmptyDbName(t *testing.T) {
	_, err := NewAPI("", "mongodb://localhost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dbName is required")
}

// endregion

// region IngestAdvancedStats tests

func TestIngestAdvancedStats_Success(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	fetcher := &MockFetcher{
		BartTorvikPayload: marshalBartRows(t, [][]any{
			makeBartRow(1, "Duke", "28-3", 122.4, 89.7, 0.975, 8.1, 67.2),
			makeBartRow(2, "Gonzaga", "26-5", 118.0, 94.1, 0.93, 5.5, 70.5),
			makeBartRow(3, "North Carolina", "24-7", 115.2, 95.0, 0.90, 4.2, 69.8),
		}),
		HaslametricsPayload: haslaPayload,
	}
	api := newTestAPI(mockStore, fetcher)

	reports, err := api.IngestAdvancedStats(context.Background(), 2026)

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, external.ProviderBartTorvik, reports[0].Provider)
	assert.Equal(t, external.ProviderHaslametrics, reports[1].Provider)
	for _, report := range reports {
		assert.Equal(t, IngestSuccess, report.Status)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 3, report.Matched)
		assert.Equal(t, 0, report.Unmatched)
	}

	// Snapshots stored per provider
	assert.Len(t, mockStore.Stats, 6)
	doc, ok, err := mockStore.GetAdvancedStats("duke", external.ProviderBartTorvik, 2026)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 122.4, doc.AdjO)
	assert.Equal(t, 28, doc.Wins)

	// Exact name matches are cached auto-confirmed
	mapping, found, err := mockStore.GetMapping("Duke", external.ProviderBartTorvik)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1.0, mapping.Confidence)
	assert.NotNil(t, mapping.ConfirmedAt)
}

func TestIngestAdvancedStats_FlagsPartialRun(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	fetcher := &MockFetcher{
		// Two of three names are lower-division teams outside the directory
		BartTorvikPayload: marshalBartRows(t, [][]any{
			makeBartRow(1, "Duke", "28-3", 122.4, 89.7, 0.975, 8.1, 67.2),
			makeBartRow(210, "Quinnipiac", "15-16", 101.0, 103.2, 0.42, -6.0, 68.0),
			makeBartRow(305, "Chicago St.", "8-23", 95.1, 110.4, 0.12, -12.3, 66.1),
		}),
		HaslametricsPayload: haslaPayload,
	}
	api := newTestAPI(mockStore, fetcher)

	reports, err := api.IngestAdvancedStats(context.Background(), 2026)

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, IngestPartial, reports[0].Status)
	assert.Equal(t, 1, reports[0].Matched)
	assert.Equal(t, 2, reports[0].Unmatched)
	assert.Equal(t, IngestSuccess, reports[1].Status)
}

func TestIngestAdvancedStats_NoTeamsSeeded(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{})

	_, err := api.IngestAdvancedStats(context.Background(), 2026)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no canonical teams seeded")
}

func TestIngestAdvancedStats_FetchFailure(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	fetcher := &MockFetcher{
		BartTorvikError:     errors.New("connection refused"),
		HaslametricsPayload: haslaPayload,
	}
	api := newTestAPI(mockStore, fetcher)

	_, err := api.IngestAdvancedStats(context.Background(), 2026)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "barttorvik fetch failed")
}

func TestIngestAdvancedStats_CacheErrorsCountAsFailed(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	mockStore.GetMappingError = errors.New("primary stepped down")
	fetcher := &MockFetcher{
		BartTorvikPayload: marshalBartRows(t, [][]any{
			makeBartRow(1, "Duke", "28-3", 122.4, 89.7, 0.975, 8.1, 67.2),
		}),
		HaslametricsPayload: haslaPayload,
	}
	api := newTestAPI(mockStore, fetcher)

	reports, err := api.IngestAdvancedStats(context.Background(), 2026)

	require.NoError(t, err)
	assert.Equal(t, 1, reports[0].Failed)
	assert.Equal(t, 0, reports[0].Matched)
	// A run that resolved nothing is not a success
	assert.Equal(t, IngestPartial, reports[0].Status)
}

// endregion

// region IngestScoreboard tests

const scoreboardPayload = `{"events":[
{"id":"401700001","date":"2026-02-15T00:00Z","competitions":[{
  "competitors":[
    {"homeAway":"home","team":{"id":"150","displayName":"Duke"}},
    {"homeAway":"away","team":{"id":"153","displayName":"North Carolina"}}
  ],
  "status":{"type":{"state":"pre","name":"Scheduled"}}
}]}
]}`

func TestIngestScoreboard_StoresDay(t *testing.T) {
	mockStore := NewMockStore()
	fetcher := &MockFetcher{ScoreboardPayload: []byte(scoreboardPayload)}
	api := newTestAPI(mockStore, fetcher)

	report, err := api.IngestScoreboard(context.Background(), "2026-02-14")

	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", report.Date)
	assert.Equal(t, 1, report.Games)

	games, found, err := mockStore.GetScoreboard("2026-02-14")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, games, 1)
	// The requested day wins over the event's UTC timestamp
	assert.Equal(t, "2026-02-14", games[0].GameDate)
	assert.Equal(t, "Duke", games[0].HomeTeam.Name)
}

func TestIngestScoreboard_FetchFailure(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{ScoreboardError: errors.New("timeout")})

	_, err := api.IngestScoreboard(context.Background(), "2026-02-14")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoreboard fetch failed")
}

// endregion

// region RankGames tests

func liveGame(id string, homeScore, awayScore, leadChanges int, clock string) external.Game {
	return external.Game{
		ExternalID: id,
		Provider:   external.ProviderESPN,
		GameDate:   "2026-02-14",
		HomeTeam:   external.GameTeam{Name: "Home " + id},
		AwayTeam:   external.GameTeam{Name: "Away " + id},
		Status:     shared.StatusInProgress,
		Live: &external.LiveState{
			HomeScore:    homeScore,
			AwayScore:    awayScore,
			Period:       2,
			ClockDisplay: clock,
			LeadChanges:  leadChanges,
		},
	}
}

func TestRankGames_OrdersByScore(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.Scoreboards["2026-02-14"] = []external.Game{
		liveGame("blowout", 88, 52, 0, "6:00"),
		liveGame("thriller", 71, 70, 12, "1:30"),
	}
	api := newTestAPI(mockStore, &MockFetcher{})

	ranked, err := api.RankGames("2026-02-14")

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "thriller", ranked[0].Game.ExternalID)
	assert.Greater(t, ranked[0].Score.Score, ranked[1].Score.Score)
	assert.NotEmpty(t, ranked[0].Score.Explanation)
}

func TestRankGames_StableTieBreak(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.Scoreboards["2026-02-14"] = []external.Game{
		liveGame("b-game", 60, 58, 4, "9:00"),
		liveGame("a-game", 60, 58, 4, "9:00"),
	}
	api := newTestAPI(mockStore, &MockFetcher{})

	ranked, err := api.RankGames("2026-02-14")

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a-game", ranked[0].Game.ExternalID)
}

func TestRankGames_MissingDay(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{})

	_, err := api.RankGames("2026-02-14")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scoreboard stored")
}

// endregion

// region PregameDigest tests

func TestPregameDigest_ProjectsScheduledGames(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	require.NoError(t, mockStore.UpsertAdvancedStats(store.FromBartTorvik("duke", 2026, external.BartTorvikTeamStats{
		TeamName: "Duke", AdjO: 120, AdjD: 90, AdjT: 68, Barthag: 0.97,
	})))
	require.NoError(t, mockStore.UpsertAdvancedStats(store.FromBartTorvik("gonzaga", 2026, external.BartTorvikTeamStats{
		TeamName: "Gonzaga", AdjO: 115, AdjD: 95, AdjT: 70, Barthag: 0.92,
	})))
	mockStore.Scoreboards["2026-02-14"] = []external.Game{
		{
			ExternalID: "headliner", Provider: external.ProviderESPN, GameDate: "2026-02-14",
			Status:   shared.StatusScheduled,
			HomeTeam: external.GameTeam{Name: "Duke"},
			AwayTeam: external.GameTeam{Name: "Gonzaga"},
		},
		{
			// No ratings stored for North Carolina, so this game is left out
			ExternalID: "unrated", Provider: external.ProviderESPN, GameDate: "2026-02-14",
			Status:   shared.StatusScheduled,
			HomeTeam: external.GameTeam{Name: "North Carolina"},
			AwayTeam: external.GameTeam{Name: "Duke"},
		},
		liveGame("in-progress", 40, 38, 2, "12:00"),
	}
	api := newTestAPI(mockStore, &MockFetcher{})

	digest, err := api.PregameDigest("2026-02-14", 2026)

	require.NoError(t, err)
	require.Len(t, digest, 1)
	assert.Equal(t, "headliner", digest[0].Game.ExternalID)
	// avgTempo 69: Duke 120*(95/102)*0.69 -> 77, Gonzaga 115*(90/102)*0.69 -> 70
	assert.Equal(t, 77, digest[0].HomeProjected)
	assert.Equal(t, 70, digest[0].AwayProjected)
	assert.Equal(t, 77, digest[0].Thrill)
}

func TestPregameDigest_MissingDay(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{})

	_, err := api.PregameDigest("2026-02-14", 2026)

	require.Error(t, err)
}

// endregion

// region review workflow tests

func TestReviewWorkflow(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	require.NoError(t, mockStore.UpsertMapping(reconcile.Mapping{
		ExternalName: "tar heels", Provider: external.ProviderESPN,
		TeamID: "north-carolina", Confidence: 0.86,
	}))
	api := newTestAPI(mockStore, &MockFetcher{})

	pending, err := api.PendingMappings()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "tar heels", pending[0].ExternalName)

	require.NoError(t, api.ConfirmMapping("tar heels", external.ProviderESPN))

	pending, err = api.PendingMappings()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOverrideMapping_UnknownTeam(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	api := newTestAPI(mockStore, &MockFetcher{})

	err := api.OverrideMapping("blue devils", external.ProviderESPN, "not-a-team")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown team id")
}

func TestOverrideMapping_Success(t *testing.T) {
	mockStore := NewMockStore()
	seedTeams(mockStore)
	api := newTestAPI(mockStore, &MockFetcher{})

	require.NoError(t, api.OverrideMapping("blue devils", external.ProviderESPN, "duke"))

	mapping, found, err := mockStore.GetMapping("blue devils", external.ProviderESPN)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "duke", mapping.TeamID)
	assert.Equal(t, 1.0, mapping.Confidence)
	assert.NotNil(t, mapping.ConfirmedAt)
}

// endregion

// region watch config tests

func TestUpdateWatchConfig_EmptyVersion(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{})

	config, err := api.WatchConfig()
	require.NoError(t, err)

	config.ModelVersion = ""
	assert.Error(t, api.UpdateWatchConfig(config))
}

func TestUpdateWatchConfig_RoundTrip(t *testing.T) {
	api := newTestAPI(NewMockStore(), &MockFetcher{})

	config, err := api.WatchConfig()
	require.NoError(t, err)
	config.Weights.UpsetLikelihood = 0.2
	config.ModelVersion = "v1.1"

	require.NoError(t, api.UpdateWatchConfig(config))

	got, err := api.WatchConfig()
	require.NoError(t, err)
	assert.Equal(t, "v1.1", got.ModelVersion)
	assert.Equal(t, 0.2, got.Weights.UpsetLikelihood)
}

// endregion
