/* normalize.go
 * Contains the pure name normalization logic used before any similarity scoring.
 * Authors: Courtwatch developers
 */

package reconcile

import "strings"

// knownAliases expands common abbreviations to the canonical long form.
// Add new entries here when unmatched teams show up in ingest logs.
var knownAliases = map[string]string{
	"unc":      "north carolina",
	"usc":      "southern california",
	"uva":      "virginia",
	"uk":       "kentucky",
	"vt":       "virginia tech",
	"psu":      "penn state",
	"uconn":    "connecticut",
	"lsu":      "louisiana state",
	"smu":      "southern methodist",
	"tcu":      "texas christian",
	"utep":     "texas el paso",
	"unlv":     "nevada las vegas",
	"ucf":      "central florida",
	"uab":      "alabama birmingham",
	"unt":      "north texas",
	"utsa":     "texas san antonio",
	"fiu":      "florida international",
	"fau":      "florida atlantic",
	"wku":      "western kentucky",
	"odu":      "old dominion",
	"vcu":      "virginia commonwealth",
	"miami fl": "miami",
	"miami oh": "miami ohio",
}

// NormalizeTeamName normalizes a team name for fuzzy comparison.
// It lowercases and trims the input, expands known abbreviations ("UNC" becomes
// "north carolina"), strips punctuation except spaces, collapses repeated
// whitespace and rewrites a trailing standalone "st" token to "state" so that
// "Iowa St" lines up with "Iowa State". The rewrite only applies at the end of
// the name, so "St. John's" is left alone. The function is idempotent.
func NormalizeTeamName(name string) string {
	if name == "" {
		return ""
	}

	lower := strings.ToLower(strings.TrimSpace(name))

	// Strip punctuation, keeping letters, digits and spaces
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	// Collapse whitespace runs left behind by stripped punctuation
	normalized := strings.Join(strings.Fields(b.String()), " ")

	// Expand abbreviations after stripping so "Miami (FL)" and "Miami FL"
	// normalize the same way; expansions are already normalized
	if expanded, ok := knownAliases[normalized]; ok {
		return expanded
	}

	// Trailing standalone "st" means "state", e.g. "iowa st" -> "iowa state"
	if strings.HasSuffix(normalized, " st") {
		normalized = strings.TrimSuffix(normalized, " st") + " state"
	}

	return normalized
}
