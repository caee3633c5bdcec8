/* similarity.go
 * Contains the pure similarity scoring function used by the reconciler's fuzzy fallback
 * Authors: Courtwatch developers
 */

package reconcile

import "github.com/lithammer/fuzzysearch/fuzzy"

// MatchScore returns a similarity score in [0,1] between two team name strings.
// 1.0 means identical after normalization.
//
// A prefix boost applies when the shorter normalized name has at least two words
// and is a whole-token prefix of the longer one. This handles provider names that
// append mascots, e.g. "Texas Tech" vs "Texas Tech Red Raiders" scores ~0.90.
// The two-word guard stops single-word names from falsely prefix-matching
// compound names: "Iowa" must not score highly against "Iowa State".
//
// Otherwise the score is normalized Levenshtein similarity 1 - dist/maxLen.
// The function is symmetric: MatchScore(a, b) == MatchScore(b, a).
func MatchScore(a, b string) float64 {
	na := NormalizeTeamName(a)
	nb := NormalizeTeamName(b)

	if na == nb {
		if na == "" {
			return 0.0
		}
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	// Prefix boost: 0.85 base plus up to 0.10 based on coverage ratio
	if countWords(shorter) >= 2 && len(longer) > len(shorter) && longer[:len(shorter)+1] == shorter+" " {
		return 0.85 + 0.10*float64(len(shorter))/float64(len(longer))
	}

	dist := fuzzy.LevenshteinDistance(na, nb)
	maxLen := len(longer)
	return 1.0 - float64(dist)/float64(maxLen)
}

// countWords returns the number of space separated tokens in a normalized name
func countWords(s string) int {
	if s == "" {
		return 0
	}
	count := 1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			count++
		}
	}
	return count
}
