/* espn.go
 * Contains the normalizer for the ESPN college basketball scoreboard JSON.
 * The feed shape is undocumented, so every field is decoded defensively and a
 * single bad event never takes down the batch
 * Authors: Courtwatch developers
 */

package external

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"courtwatch/api/shared"
)

// Raw ESPN shapes. Only the fields we read are declared; unknown fields are
// ignored by the decoder.

type espnScoreboard struct {
	Events []json.RawMessage `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	Competitors   []espnCompetitor   `json:"competitors"`
	Status        espnStatus         `json:"status"`
	Situation     *espnSituation     `json:"situation"`
	Odds          []espnOdds         `json:"odds"`
	Broadcasts    []espnBroadcast    `json:"broadcasts"`
	GeoBroadcasts []espnGeoBroadcast `json:"geoBroadcasts"`
}

type espnCompetitor struct {
	HomeAway    string       `json:"homeAway"`
	Score       string       `json:"score"`
	CuratedRank *espnRank    `json:"curatedRank"`
	Records     []espnRecord `json:"records"`
	Team        espnTeamInfo `json:"team"`
}

type espnRank struct {
	Current int `json:"current"`
}

type espnRecord struct {
	Type         string `json:"type"`
	Abbreviation string `json:"abbreviation"`
	Summary      string `json:"summary"`
}

type espnTeamInfo struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	Name             string `json:"name"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Logo             string `json:"logo"`
	Rank             int    `json:"rank"`
	ConferenceID     string `json:"conferenceId"`
}

type espnStatus struct {
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
	Type         struct {
		State string `json:"state"`
		Name  string `json:"name"`
	} `json:"type"`
}

type espnSituation struct {
	LeadChanges int `json:"leadChanges"`
	LastPlay    *struct {
		Probability *espnProbability `json:"probability"`
	} `json:"lastPlay"`
	Probability *espnProbability `json:"probability"`
	Possession  *struct {
		HomeAway string `json:"homeAway"`
	} `json:"possession"`
}

type espnProbability struct {
	HomeWinPercentage *float64 `json:"homeWinPercentage"`
}

type espnOdds struct {
	Spread    *float64 `json:"spread"`
	OverUnder *float64 `json:"overUnder"`
}

type espnBroadcast struct {
	Names  []string `json:"names"`
	Market struct {
		ShortName string `json:"shortName"`
	} `json:"market"`
}

type espnGeoBroadcast struct {
	Media struct {
		ShortName string `json:"shortName"`
		Name      string `json:"name"`
	} `json:"media"`
}

// NormalizeScoreboard parses an ESPN scoreboard response into normalized games.
// Each event is fault-isolated: an event that fails to decode or is missing its
// competition is dropped and the rest of the batch proceeds.
//
// requestedDate (YYYY-MM-DD) is the US calendar day the scoreboard was queried
// for and becomes the canonical game date of every event. The event's own UTC
// timestamp is deliberately not used: evening games in US time carry a UTC
// timestamp on the following calendar day.
func NormalizeScoreboard(raw []byte, requestedDate string) ([]Game, error) {
	var board espnScoreboard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("scoreboard payload is not valid JSON: %w", err)
	}

	gameDate := requestedDate
	if gameDate == "" {
		gameDate = time.Now().UTC().Format("2006-01-02")
	}

	var games []Game
	for _, rawEvent := range board.Events {
		game, err := normalizeEvent(rawEvent, gameDate)
		if err != nil {
			// One malformed event must not abort the batch
			continue
		}
		games = append(games, *game)
	}
	return games, nil
}

// normalizeEvent converts a single raw event, returning an error for any
// structural problem so the caller can skip just this event
func normalizeEvent(raw json.RawMessage, gameDate string) (*Game, error) {
	var event espnEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("event failed to decode: %w", err)
	}
	if len(event.Competitions) == 0 {
		return nil, fmt.Errorf("event %s has no competitions", event.ID)
	}
	comp := event.Competitions[0]

	home, away, err := splitCompetitors(comp.Competitors)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", event.ID, err)
	}

	status := mapESPNStatus(comp.Status.Type.State, comp.Status.Type.Name)

	var live *LiveState
	if status.Live() {
		live = normalizeLiveState(comp, home, away)
	}

	scheduledAt, err := time.Parse("2006-01-02T15:04Z", event.Date)
	if err != nil {
		// Some responses carry full RFC3339 timestamps instead
		scheduledAt, err = time.Parse(time.RFC3339, event.Date)
		if err != nil {
			scheduledAt = time.Time{}
		}
	}

	game := &Game{
		ExternalID:  event.ID,
		Provider:    ProviderESPN,
		GameDate:    gameDate,
		ScheduledAt: scheduledAt,
		HomeTeam:    normalizeGameTeam(home),
		AwayTeam:    normalizeGameTeam(away),
		TVNetwork:   extractTVNetwork(comp),
		Status:      status,
		Live:        live,
	}
	if len(comp.Odds) > 0 {
		game.Spread = comp.Odds[0].Spread
		game.OverUnder = comp.Odds[0].OverUnder
	}
	return game, nil
}

// splitCompetitors finds the home and away entries of a competition
func splitCompetitors(competitors []espnCompetitor) (home, away *espnCompetitor, err error) {
	for i := range competitors {
		switch competitors[i].HomeAway {
		case "home":
			home = &competitors[i]
		case "away":
			away = &competitors[i]
		}
	}
	if home == nil || away == nil {
		return nil, nil, fmt.Errorf("missing home or away competitor")
	}
	return home, away, nil
}

func normalizeGameTeam(competitor *espnCompetitor) GameTeam {
	// Rankings appear in different places depending on the endpoint
	var ranking *int
	rawRank := 0
	if competitor.CuratedRank != nil {
		rawRank = competitor.CuratedRank.Current
	}
	if rawRank == 0 {
		rawRank = competitor.Team.Rank
	}
	if rawRank > 0 && rawRank <= 25 {
		ranking = &rawRank
	}

	name := competitor.Team.DisplayName
	if name == "" {
		name = competitor.Team.Name
	}
	if name == "" {
		name = "Unknown"
	}

	return GameTeam{
		ExternalID:   competitor.Team.ID,
		Name:         name,
		ShortName:    competitor.Team.ShortDisplayName,
		Abbreviation: competitor.Team.Abbreviation,
		LogoURL:      competitor.Team.Logo,
		Ranking:      ranking,
		Conference:   competitor.Team.ConferenceID,
		Record:       extractRecord(competitor.Records),
	}
}

// extractRecord picks the overall W-L record from the competitor records list
func extractRecord(records []espnRecord) *shared.Record {
	var summary string
	for _, r := range records {
		if r.Type == "total" || r.Abbreviation == "Total" {
			summary = r.Summary
			break
		}
	}
	if summary == "" && len(records) > 0 {
		summary = records[0].Summary
	}

	parts := strings.Split(summary, "-")
	if len(parts) != 2 {
		return nil
	}
	wins, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	losses, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	return &shared.Record{Wins: wins, Losses: losses}
}

func normalizeLiveState(comp espnCompetition, home, away *espnCompetitor) *LiveState {
	state := &LiveState{
		HomeScore:    atoiOrZero(home.Score),
		AwayScore:    atoiOrZero(away.Score),
		Period:       comp.Status.Period,
		ClockDisplay: comp.Status.DisplayClock,
	}
	if state.Period == 0 {
		state.Period = 1
	}

	if comp.Situation != nil {
		state.LeadChanges = comp.Situation.LeadChanges

		// ESPN reports win probability 0-100; we store 0-1
		var rawProb *float64
		if comp.Situation.LastPlay != nil && comp.Situation.LastPlay.Probability != nil {
			rawProb = comp.Situation.LastPlay.Probability.HomeWinPercentage
		}
		if rawProb == nil && comp.Situation.Probability != nil {
			rawProb = comp.Situation.Probability.HomeWinPercentage
		}
		if rawProb != nil {
			prob := *rawProb / 100
			state.WinProbHome = &prob
		}

		if comp.Situation.Possession != nil {
			side := comp.Situation.Possession.HomeAway
			if side == "home" || side == "away" {
				state.Possession = side
			}
		}
	}

	return state
}

func extractTVNetwork(comp espnCompetition) string {
	if len(comp.Broadcasts) > 0 {
		b := comp.Broadcasts[0]
		if len(b.Names) > 0 {
			return b.Names[0]
		}
		if b.Market.ShortName != "" {
			return b.Market.ShortName
		}
	}
	if len(comp.GeoBroadcasts) > 0 {
		media := comp.GeoBroadcasts[0].Media
		if media.ShortName != "" {
			return media.ShortName
		}
		return media.Name
	}
	return ""
}

// mapESPNStatus derives the provider-neutral status from ESPN's state and
// status-name pair
func mapESPNStatus(state, name string) shared.GameStatus {
	switch {
	case state == "post":
		return shared.StatusFinal
	case state == "in":
		if name == "Halftime" || name == "StatusHalftime" {
			return shared.StatusHalftime
		}
		return shared.StatusInProgress
	case name == "Postponed" || name == "StatusPostponed":
		return shared.StatusPostponed
	case name == "Cancelled" || name == "Canceled" || name == "StatusCanceled":
		return shared.StatusCancelled
	default:
		return shared.StatusScheduled
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
