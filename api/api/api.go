/* api.go
 * This file contains the public methods for interacting with this package. For consistent results,
 * functions should only be called from this file, not the sub packages for reconcile and external
 * Authors: Courtwatch developers
 */

package api

import (
	"context"
	"fmt"
	"sort"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"
	"courtwatch/api/shared"
	"courtwatch/api/store"
	"courtwatch/api/watchscore"

	"golang.org/x/sync/errgroup"
)

// API provides methods for interacting with the courtwatch data layer
type API struct {
	Store      store.Interface
	Reconciler *reconcile.Reconciler
	Fetcher    Fetcher
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:      s,
		Reconciler: reconcile.NewReconciler(s),
		Fetcher:    liveFetcher{},
	}, nil
}

// IngestAdvancedStats fetches both rating providers for a season, resolves every
// team name against the canonical directory and stores the matched snapshots.
// The two providers are fetched concurrently. Unresolvable names are counted,
// not fatal; a run where more than 45% of names stay unmatched is flagged PARTIAL
// Preconditions: Receives a context and the season ending year; canonical teams must be seeded
// Postconditions: Returns one report per provider, or an error if a fetch or payload decode fails
func (a *API) IngestAdvancedStats(ctx context.Context, season int) ([]IngestReport, error) {
	teams, err := a.Store.ListTeams()
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no canonical teams seeded; cannot resolve provider names")
	}

	var bartReport, haslaReport IngestReport
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bartReport, err = a.ingestBartTorvik(ctx, season, teams)
		return err
	})
	g.Go(func() error {
		var err error
		haslaReport, err = a.ingestHaslametrics(ctx, season, teams)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return []IngestReport{bartReport, haslaReport}, nil
}

// ingestBartTorvik fetches and stores one season of BartTorvik ratings
func (a *API) ingestBartTorvik(ctx context.Context, season int, teams []shared.Team) (IngestReport, error) {
	raw, err := a.Fetcher.FetchBartTorvik(ctx, season)
	if err != nil {
		return IngestReport{}, fmt.Errorf("barttorvik fetch failed: %w", err)
	}
	rows, err := external.NormalizeBartTorvik(raw)
	if err != nil {
		return IngestReport{}, fmt.Errorf("barttorvik payload invalid: %w", err)
	}

	report := IngestReport{Provider: external.ProviderBartTorvik, Season: season, Total: len(rows)}
	for _, row := range rows {
		match, found, err := a.Reconciler.Resolve(row.TeamName, external.ProviderBartTorvik, teams)
		if err != nil {
			report.Failed++
			continue
		}
		if !found {
			report.Unmatched++
			continue
		}
		if err := a.Store.UpsertAdvancedStats(store.FromBartTorvik(match.TeamID, season, row)); err != nil {
			report.Failed++
			continue
		}
		report.Matched++
	}
	report.Status = ingestStatus(report)
	return report, nil
}

// ingestHaslametrics fetches and stores the current Haslametrics ratings
func (a *API) ingestHaslametrics(ctx context.Context, season int, teams []shared.Team) (IngestReport, error) {
	xmlContent, err := a.Fetcher.FetchHaslametrics(ctx)
	if err != nil {
		return IngestReport{}, fmt.Errorf("haslametrics fetch failed: %w", err)
	}
	rows := external.NormalizeHaslametrics(xmlContent)

	report := IngestReport{Provider: external.ProviderHaslametrics, Season: season, Total: len(rows)}
	for _, row := range rows {
		match, found, err := a.Reconciler.Resolve(row.TeamName, external.ProviderHaslametrics, teams)
		if err != nil {
			report.Failed++
			continue
		}
		if !found {
			report.Unmatched++
			continue
		}
		if err := a.Store.UpsertAdvancedStats(store.FromHaslametrics(match.TeamID, season, row)); err != nil {
			report.Failed++
			continue
		}
		report.Matched++
	}
	report.Status = ingestStatus(report)
	return report, nil
}

// ingestStatus flags a run PARTIAL when too many names stayed unmatched.
// Resolutions aborted by cache errors leave their names unmatched too, so they
// count against the run
func ingestStatus(report IngestReport) IngestStatus {
	if report.Total > 0 && float64(report.Unmatched+report.Failed)/float64(report.Total) > partialThreshold {
		return IngestPartial
	}
	return IngestSuccess
}

// IngestScoreboard fetches one calendar day's games from the live scoreboard
// and stores the normalized result
// Preconditions: Receives a context and a YYYY-MM-DD date string
// Postconditions: The day's games are stored, or returns an error if it occurs
func (a *API) IngestScoreboard(ctx context.Context, date string) (ScoreboardReport, error) {
	raw, err := a.Fetcher.FetchScoreboard(ctx, date)
	if err != nil {
		return ScoreboardReport{}, fmt.Errorf("scoreboard fetch failed: %w", err)
	}
	games, err := external.NormalizeScoreboard(raw, date)
	if err != nil {
		return ScoreboardReport{}, fmt.Errorf("scoreboard payload invalid: %w", err)
	}

	if err := a.Store.StoreScoreboard(date, games); err != nil {
		return ScoreboardReport{}, err
	}
	return ScoreboardReport{Date: date, Games: len(games)}, nil
}

// RankGames scores every stored game for a day and returns them ordered from
// most to least watchable. Ties are broken by game id so the ordering is stable
// Preconditions: Receives a YYYY-MM-DD date string; the day's scoreboard must have been ingested
// Postconditions: Returns the ranked games, or an error if it occurs
func (a *API) RankGames(date string) ([]RankedGame, error) {
	games, found, err := a.Store.GetScoreboard(date)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no scoreboard stored for %s", date)
	}

	config, err := a.Store.GetWatchConfig()
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedGame, 0, len(games))
	for _, game := range games {
		ranked = append(ranked, RankedGame{
			Game:  game,
			Score: watchscore.ComputeWatchScore(scoreInput(game), config),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score.Score != ranked[j].Score.Score {
			return ranked[i].Score.Score > ranked[j].Score.Score
		}
		return ranked[i].Game.ExternalID < ranked[j].Game.ExternalID
	})
	return ranked, nil
}

// PregameDigest projects final scores for a day's scheduled games and returns
// them ordered by thrill rating. Games without stored ratings for both sides
// are left out
// Preconditions: Receives a YYYY-MM-DD date string and the season ending year
// Postconditions: Returns the projected games, or an error if it occurs
func (a *API) PregameDigest(date string, season int) ([]PregameGame, error) {
	games, found, err := a.Store.GetScoreboard(date)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no scoreboard stored for %s", date)
	}

	teams, err := a.Store.ListTeams()
	if err != nil {
		return nil, err
	}

	var digest []PregameGame
	for _, game := range games {
		if game.Status != shared.StatusScheduled {
			continue
		}
		home, ok := a.teamEfficiency(game.HomeTeam.Name, game.Provider, season, teams)
		if !ok {
			continue
		}
		away, ok := a.teamEfficiency(game.AwayTeam.Name, game.Provider, season, teams)
		if !ok {
			continue
		}

		homeScore, awayScore := watchscore.ProjectScores(home, away)
		digest = append(digest, PregameGame{
			Game:          game,
			HomeProjected: homeScore,
			AwayProjected: awayScore,
			Thrill:        watchscore.ThrillScore(home, away, homeScore, awayScore),
		})
	}

	sort.Slice(digest, func(i, j int) bool {
		if digest[i].Thrill != digest[j].Thrill {
			return digest[i].Thrill > digest[j].Thrill
		}
		return digest[i].Game.ExternalID < digest[j].Game.ExternalID
	})
	return digest, nil
}

// teamEfficiency resolves a scoreboard team name and loads its stored rating
// snapshot, preferring BartTorvik and falling back to Haslametrics
func (a *API) teamEfficiency(name, provider string, season int, teams []shared.Team) (watchscore.TeamEfficiency, bool) {
	match, found, err := a.Reconciler.Resolve(name, provider, teams)
	if err != nil || !found {
		return watchscore.TeamEfficiency{}, false
	}

	for _, source := range []string{external.ProviderBartTorvik, external.ProviderHaslametrics} {
		doc, ok, err := a.Store.GetAdvancedStats(match.TeamID, source, season)
		if err == nil && ok {
			return doc.Efficiency(), true
		}
	}
	return watchscore.TeamEfficiency{}, false
}

// PendingMappings lists every cached name resolution awaiting operator review
func (a *API) PendingMappings() ([]reconcile.Mapping, error) {
	return a.Store.ListUnconfirmedMappings()
}

// ConfirmMapping approves a cached name resolution
func (a *API) ConfirmMapping(externalName, provider string) error {
	return a.Store.ConfirmMapping(externalName, provider)
}

// OverrideMapping points a cached name resolution at an operator-chosen team
// Preconditions: Receives the external name, provider tag and a canonical team id that exists
// Postconditions: The override is stored at full confidence, or returns an error if it occurs
func (a *API) OverrideMapping(externalName, provider, teamID string) error {
	_, found, err := a.Store.GetTeam(teamID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("unknown team id '%s'", teamID)
	}
	return a.Store.OverrideMapping(externalName, provider, teamID)
}

// DeleteMapping removes a cached name resolution so it is re-derived on the next ingest
func (a *API) DeleteMapping(externalName, provider string) error {
	return a.Store.DeleteMapping(externalName, provider)
}

// WatchConfig returns the active watch score configuration
func (a *API) WatchConfig() (watchscore.Config, error) {
	return a.Store.GetWatchConfig()
}

// UpdateWatchConfig stores a tuned watch score configuration
func (a *API) UpdateWatchConfig(config watchscore.Config) error {
	if config.ModelVersion == "" {
		return fmt.Errorf("model version cannot be empty")
	}
	return a.Store.SaveWatchConfig(config)
}

// scoreInput flattens one stored game into the calculator's input
func scoreInput(game external.Game) watchscore.Input {
	input := watchscore.Input{
		GameID:      game.ExternalID,
		Status:      game.Status,
		HomeRanking: game.HomeTeam.Ranking,
		AwayRanking: game.AwayTeam.Ranking,
		Spread:      game.Spread,
	}
	if game.Live != nil {
		input.HomeScore = game.Live.HomeScore
		input.AwayScore = game.Live.AwayScore
		input.Period = game.Live.Period
		input.ClockDisplay = game.Live.ClockDisplay
		input.LeadChanges = game.Live.LeadChanges
		input.WinProbHome = game.Live.WinProbHome
	}
	return input
}
