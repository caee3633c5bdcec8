/* barttorvik.go
 * Contains the normalizer for BartTorvik's team_results.json feed. The feed is an
 * array of positional arrays with no headers; the column constants below were
 * verified against the 2026 season file
 * Authors: Courtwatch developers
 */

package external

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column index constants. Update here if BartTorvik changes the array structure.
const (
	colTRank    = 0
	colTeamName = 1
	colRecord   = 3 // "W-L" string
	colAdjO     = 4
	colAdjD     = 6
	colBarthag  = 8
	colWAB      = 41
	colAdjT     = 44

	// Rows shorter than this are missing columns we need and are skipped
	bartTorvikMinColumns = 45
)

// NormalizeBartTorvik parses the raw BartTorvik JSON payload into typed team
// stats. Rows with fewer than 45 columns or without a non-empty team name are
// skipped; a "W-L" record that fails to parse degrades to 0-0 and numeric
// columns that fail to parse degrade to 0, keeping the row. Only a payload that
// is not a JSON array at all is an error.
func NormalizeBartTorvik(raw []byte) ([]BartTorvikTeamStats, error) {
	var rows [][]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("barttorvik payload is not an array of rows: %w", err)
	}

	var results []BartTorvikTeamStats
	for _, row := range rows {
		if len(row) < bartTorvikMinColumns {
			continue
		}

		teamName := colStr(row, colTeamName)
		if teamName == "" {
			continue
		}

		wins, losses := parseWinLoss(colStr(row, colRecord))

		results = append(results, BartTorvikTeamStats{
			TeamName: teamName,
			TRank:    int(colNum(row, colTRank)),
			Barthag:  colNum(row, colBarthag),
			AdjO:     colNum(row, colAdjO),
			AdjD:     colNum(row, colAdjD),
			AdjT:     colNum(row, colAdjT),
			Wins:     wins,
			Losses:   losses,
			WAB:      colNum(row, colWAB),
		})
	}

	return results, nil
}

// colStr extracts a string column, returning "" for any other type
func colStr(row []any, idx int) string {
	s, _ := row[idx].(string)
	return s
}

// colNum extracts a numeric column. Strings are parsed; anything unparseable
// degrades to 0 per the graceful-degradation policy.
func colNum(row []any, idx int) float64 {
	switch v := row[idx].(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// parseWinLoss parses a "W-L" record string. A record that does not parse into
// two integers degrades to 0-0 rather than dropping the row.
func parseWinLoss(record string) (int, int) {
	parts := strings.Split(record, "-")
	if len(parts) != 2 {
		return 0, 0
	}
	wins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0
	}
	losses, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0
	}
	return wins, losses
}
