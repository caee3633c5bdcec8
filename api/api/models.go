/* models.go
 * This file contains the interfaces, structs and helper functions that are used by api consumers
 * Authors: Courtwatch developers
 */

package api

import (
	"context"

	"courtwatch/api/external"
	"courtwatch/api/watchscore"
)

// IngestStatus is the run-level outcome of one provider ingest
type IngestStatus string

const (
	IngestSuccess IngestStatus = "SUCCESS"
	IngestPartial IngestStatus = "PARTIAL"
)

// partialThreshold is the unmatched fraction above which an ingest run is
// flagged PARTIAL instead of SUCCESS
const partialThreshold = 0.45

// IngestReport summarises one provider's ingest run
type IngestReport struct {
	Provider  string       `json:"provider"`
	Season    int          `json:"season"`
	Total     int          `json:"total"`
	Matched   int          `json:"matched"`
	Unmatched int          `json:"unmatched"`
	Failed    int          `json:"failed"` // resolutions aborted by cache errors
	Status    IngestStatus `json:"status"`
}

// ScoreboardReport summarises one scoreboard ingest run
type ScoreboardReport struct {
	Date  string `json:"date"`
	Games int    `json:"games"`
}

// RankedGame is one scoreboard game with its computed watch score
type RankedGame struct {
	Game  external.Game     `json:"game"`
	Score watchscore.Result `json:"watchScore"`
}

// PregameGame is one scheduled game with its projected score and thrill rating
type PregameGame struct {
	Game          external.Game `json:"game"`
	HomeProjected int           `json:"homeProjected"`
	AwayProjected int           `json:"awayProjected"`
	Thrill        int           `json:"thrill"` // 0-100
}

// Fetcher abstracts the provider HTTP clients so tests can run offline
type Fetcher interface {
	FetchScoreboard(ctx context.Context, date string) ([]byte, error)
	FetchBartTorvik(ctx context.Context, season int) ([]byte, error)
	FetchHaslametrics(ctx context.Context) (string, error)
}

// liveFetcher forwards to the real provider clients
type liveFetcher struct{}

func (liveFetcher) FetchScoreboard(ctx context.Context, date string) ([]byte, error) {
	return external.FetchScoreboard(ctx, date)
}

func (liveFetcher) FetchBartTorvik(ctx context.Context, season int) ([]byte, error) {
	return external.FetchBartTorvik(ctx, season)
}

func (liveFetcher) FetchHaslametrics(ctx context.Context) (string, error) {
	return external.FetchHaslametrics(ctx)
}
