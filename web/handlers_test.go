/* handlers_test.go
 * Contains unit tests for the HTTP handlers using httptest and the mock API
 * Authors: Courtwatch developers
 */

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiPkg "courtwatch/api/api"
	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2026-02-14"

// createTestServer builds a Server wired to a mock API with one day of games
func createTestServer(t *testing.T) (*Server, *apiPkg.MockStore) {
	t.Helper()
	mockStore := apiPkg.NewMockStore()
	for _, team := range []shared.Team{
		{ID: "duke", CanonicalName: "Duke", Conference: "ACC"},
		{ID: "gonzaga", CanonicalName: "Gonzaga", Conference: "WCC"},
	} {
		require.NoError(t, mockStore.UpsertTeam(team))
	}

	season := external.CurrentSeason(time.Now())
	require.NoError(t, mockStore.UpsertAdvancedStats(store.FromBartTorvik("duke", season, external.BartTorvikTeamStats{
		TeamName: "Duke", AdjO: 120, AdjD: 90, AdjT: 68, Barthag: 0.97,
	})))
	require.NoError(t, mockStore.UpsertAdvancedStats(store.FromBartTorvik("gonzaga", season, external.BartTorvikTeamStats{
		TeamName: "Gonzaga", AdjO: 115, AdjD: 95, AdjT: 70, Barthag: 0.92,
	})))

	mockStore.Scoreboards[testDate] = []external.Game{
		{
			ExternalID: "headliner", Provider: external.ProviderESPN, GameDate: testDate,
			Status:   shared.StatusScheduled,
			HomeTeam: external.GameTeam{Name: "Duke"},
			AwayTeam: external.GameTeam{Name: "Gonzaga"},
		},
		{
			ExternalID: "thriller", Provider: external.ProviderESPN, GameDate: testDate,
			Status:   shared.StatusInProgress,
			HomeTeam: external.GameTeam{Name: "Duke"},
			AwayTeam: external.GameTeam{Name: "Gonzaga"},
			Live: &external.LiveState{
				HomeScore: 71, AwayScore: 70, Period: 2, ClockDisplay: "1:30", LeadChanges: 12,
			},
		},
	}

	server := &Server{api: &apiPkg.API{
		Store:      mockStore,
		Reconciler: reconcile.NewReconciler(mockStore),
		Fetcher:    &apiPkg.MockFetcher{},
	}}
	return server, mockStore
}

// region GamesHandler tests

func TestGamesHandler_WrongMethod(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/games", nil)
	w := httptest.NewRecorder()

	server.GamesHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGamesHandler_BadDate(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games?date=02-14-2026", nil)
	w := httptest.NewRecorder()

	server.GamesHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGamesHandler_MissingDay(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games?date=2026-03-01", nil)
	w := httptest.NewRecorder()

	server.GamesHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGamesHandler_ReturnsGames(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games?date="+testDate, nil)
	w := httptest.NewRecorder()

	server.GamesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var games []external.Game
	require.NoError(t, json.NewDecoder(w.Body).Decode(&games))
	require.Len(t, games, 2)
	assert.Equal(t, "headliner", games[0].ExternalID)
}

// endregion

// region WatchScoreHandler tests

func TestWatchScoreHandler_RanksGames(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/watchscore?date="+testDate, nil)
	w := httptest.NewRecorder()

	server.WatchScoreHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var ranked []apiPkg.RankedGame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "thriller", ranked[0].Game.ExternalID)
	assert.Greater(t, ranked[0].Score.Score, ranked[1].Score.Score)
	assert.NotEmpty(t, ranked[0].Score.Explanation)
}

func TestWatchScoreHandler_MissingDay(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/watchscore?date=2026-03-01", nil)
	w := httptest.NewRecorder()

	server.WatchScoreHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// endregion

// region PregameHandler tests

func TestPregameHandler_ProjectsGames(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pregame?date="+testDate, nil)
	w := httptest.NewRecorder()

	server.PregameHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var digest []apiPkg.PregameGame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&digest))
	require.Len(t, digest, 1)
	assert.Equal(t, "headliner", digest[0].Game.ExternalID)
	assert.Equal(t, 77, digest[0].HomeProjected)
	assert.Equal(t, 70, digest[0].AwayProjected)
	assert.Equal(t, 77, digest[0].Thrill)
}

// endregion

// region IngestWebhookHandler tests

func TestIngestWebhookHandler_WrongMethod(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/webhooks/ingest", nil)
	w := httptest.NewRecorder()

	server.IngestWebhookHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestIngestWebhookHandler_InvalidJSON(t *testing.T) {
	server, _ := createTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/ingest", bytes.NewBufferString("invalid json"))
	w := httptest.NewRecorder()

	server.IngestWebhookHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestWebhookHandler_BadDate(t *testing.T) {
	server, _ := createTestServer(t)

	body, _ := json.Marshal(IngestEvent{Date: "yesterday"})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ingest", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	server.IngestWebhookHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestWebhookHandler_Accepted(t *testing.T) {
	server, _ := createTestServer(t)

	body, _ := json.Marshal(IngestEvent{Date: testDate, Season: 2026})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ingest", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	server.IngestWebhookHandler(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

// endregion
