/* reconciler.go
 * Contains the team identity reconciler: maps an external provider team name to a
 * canonical team id using the persisted mapping cache with fuzzy-match fallback
 * Authors: Courtwatch developers
 */

package reconcile

import (
	"fmt"
	"time"

	"courtwatch/api/shared"
)

// Reconciler resolves external team names against the canonical team directory
type Reconciler struct {
	repo MappingRepo
}

// NewReconciler creates a Reconciler backed by the given mapping cache
func NewReconciler(repo MappingRepo) *Reconciler {
	return &Reconciler{repo: repo}
}

// Resolve maps an external team name from one provider to a canonical team.
// It checks the persisted mapping cache first and returns a cached mapping
// without re-scoring. Otherwise it fuzzy-matches the name against every
// candidate's canonical name and aliases, taking the maximum score per team and
// then across teams. Ties are broken lexicographically by canonical name so
// resolution is reproducible regardless of candidate ordering.
//
// Decision policy:
//   - confidence < 0.80: no match. Returns found=false with a nil error; this is
//     a normal outcome because providers carry lower-division teams outside the
//     canonical set. Nothing is persisted.
//   - 0.80 <= confidence < 0.95: mapping persisted unconfirmed, awaiting review.
//   - confidence >= 0.95: mapping persisted auto-confirmed.
//
// A mapping cache read or write failure is returned as an error and aborts only
// this one resolution.
func (r *Reconciler) Resolve(externalName, provider string, candidates []shared.Team) (Match, bool, error) {
	existing, ok, err := r.repo.GetMapping(externalName, provider)
	if err != nil {
		return Match{}, false, fmt.Errorf("mapping lookup for %q (%s) failed: %w", externalName, provider, err)
	}
	if ok {
		return Match{TeamID: existing.TeamID, Confidence: existing.Confidence}, true, nil
	}

	best, found := bestCandidate(externalName, candidates)
	if !found || best.score < MatchThreshold {
		return Match{}, false, nil
	}

	mapping := Mapping{
		ExternalName: externalName,
		Provider:     provider,
		TeamID:       best.teamID,
		Confidence:   best.score,
	}
	if best.score >= AutoConfirmThreshold {
		now := time.Now()
		mapping.ConfirmedAt = &now
	}

	if err := r.repo.UpsertMapping(mapping); err != nil {
		return Match{}, false, fmt.Errorf("failed to persist mapping for %q (%s): %w", externalName, provider, err)
	}

	return Match{TeamID: best.teamID, Confidence: best.score}, true, nil
}

type candidateScore struct {
	teamID        string
	canonicalName string
	score         float64
}

// bestCandidate scores the external name against every candidate team's
// canonical name and aliases and returns the best team
func bestCandidate(externalName string, candidates []shared.Team) (candidateScore, bool) {
	var best candidateScore
	found := false

	for _, team := range candidates {
		teamBest := MatchScore(externalName, team.CanonicalName)
		for _, alias := range team.Aliases {
			if s := MatchScore(externalName, alias); s > teamBest {
				teamBest = s
			}
		}

		if !found || teamBest > best.score ||
			(teamBest == best.score && team.CanonicalName < best.canonicalName) {
			best = candidateScore{teamID: team.ID, canonicalName: team.CanonicalName, score: teamBest}
			found = true
		}
	}

	return best, found
}
