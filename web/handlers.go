/* handlers.go
 * Contains the HTTP handler methods for the rankings endpoints and the ingest
 * webhook. Handlers are plain methods so they can be tested with httptest
 * Authors: Courtwatch developers
 */

package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"courtwatch/api/external"
)

// IngestEvent is the webhook body that kicks off a data refresh
type IngestEvent struct {
	Date   string `json:"date"`   // YYYY-MM-DD, defaults to today
	Season int    `json:"season"` // season ending year, defaults to the current season
}

// dateParam reads the date query parameter, defaulting to today
func dateParam(r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to encode response:", err)
	}
}

// GamesHandler serves the stored scoreboard for one day
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Request
// Postconditions: Responds with the day's normalized games as JSON
func (s *Server) GamesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	date, ok := dateParam(r)
	if !ok {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	games, found, err := s.api.Store.GetScoreboard(date)
	if err != nil {
		log.Println("scoreboard lookup failed:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "no scoreboard stored for "+date, http.StatusNotFound)
		return
	}
	writeJSON(w, games)
}

// WatchScoreHandler serves the day's games ranked by watch score
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Request
// Postconditions: Responds with the ranked games as JSON
func (s *Server) WatchScoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	date, ok := dateParam(r)
	if !ok {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ranked, err := s.api.RankGames(date)
	if err != nil {
		log.Println("ranking failed:", err)
		http.Error(w, "no rankings available for "+date, http.StatusNotFound)
		return
	}
	writeJSON(w, ranked)
}

// PregameHandler serves projected scores and thrill ratings for the day's
// scheduled games
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Request
// Postconditions: Responds with the projected games as JSON
func (s *Server) PregameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	date, ok := dateParam(r)
	if !ok {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	digest, err := s.api.PregameDigest(date, external.CurrentSeason(time.Now()))
	if err != nil {
		log.Println("projection failed:", err)
		http.Error(w, "no projections available for "+date, http.StatusNotFound)
		return
	}
	writeJSON(w, digest)
}

// IngestWebhookHandler receives a webhook used to kick off fetching provider
// data and refreshing the stored ratings and scoreboard
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Request
// Postconditions: Kicks off the async ingest pipeline and responds 202
func (s *Server) IngestWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event IngestEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	now := time.Now()
	if event.Date == "" {
		event.Date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if event.Season == 0 {
		event.Season = external.CurrentSeason(now)
	}

	log.Printf("ingest webhook date=%s season=%d\n", event.Date, event.Season)

	// Kick async pipeline; the webhook caller does not wait for provider fetches
	go func(e IngestEvent) {
		if _, err := s.api.IngestAdvancedStats(context.Background(), e.Season); err != nil {
			log.Println("ratings ingest failed:", err)
		}
		if _, err := s.api.IngestScoreboard(context.Background(), e.Date); err != nil {
			log.Println("scoreboard ingest failed:", err)
		}
	}(event)

	w.WriteHeader(http.StatusAccepted)
}
