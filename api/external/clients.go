/* clients.go
 * Contains the HTTP fetchers for the three providers. Fetching is kept separate
 * from normalizing so the normalizers stay pure and testable offline
 * Authors: Courtwatch developers
 */

package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	espnScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball/scoreboard"
	bartTorvikURLFmt  = "https://barttorvik.com/%d_team_results.json"
	haslametricsURL   = "https://haslametrics.com/ratings.xml"
)

// One request every two seconds across all providers. These are hobbyist-run
// sites; be polite.
var fetchLimiter = rate.NewLimiter(rate.Every(2*time.Second), 1)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// FetchScoreboard fetches the ESPN scoreboard for one calendar day.
// date must be YYYY-MM-DD; it is forwarded to ESPN as YYYYMMDD.
func FetchScoreboard(ctx context.Context, date string) ([]byte, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid scoreboard date %q: %w", date, err)
	}
	url := fmt.Sprintf("%s?dates=%s&groups=50&limit=300", espnScoreboardURL, d.Format("20060102"))
	return fetchURL(ctx, url)
}

// FetchBartTorvik fetches the team_results.json file for a season.
// season is the ending year of the season, e.g. 2026 for 2025-26.
func FetchBartTorvik(ctx context.Context, season int) ([]byte, error) {
	return fetchURL(ctx, fmt.Sprintf(bartTorvikURLFmt, season))
}

// FetchHaslametrics fetches the current ratings XML
func FetchHaslametrics(ctx context.Context) (string, error) {
	body, err := fetchURL(ctx, haslametricsURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchURL performs a rate-limited GET and returns the response body
func fetchURL(ctx context.Context, url string) ([]byte, error) {
	if err := fetchLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	request.Header.Set("User-Agent", "courtwatch/1.0")

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", response.StatusCode, url)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

// CurrentSeason returns the ending year of the current college basketball
// season: from August onward the season that ends next calendar year.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year() + 1
	}
	return now.Year()
}
