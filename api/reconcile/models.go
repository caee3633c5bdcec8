/* models.go
 * Contains the types used by the team identity reconciler
 * Authors: Courtwatch developers
 */

package reconcile

import "time"

// Match thresholds for the decision policy. Below MatchThreshold a name is
// unresolved; at or above AutoConfirmThreshold the mapping is auto-confirmed.
const (
	MatchThreshold       = 0.80
	AutoConfirmThreshold = 0.95
)

// Mapping is a cached resolution of one (external name, provider) pair to a
// canonical team. ConfirmedAt is nil while the mapping is unconfirmed.
type Mapping struct {
	ExternalName string
	Provider     string
	TeamID       string
	Confidence   float64
	ConfirmedAt  *time.Time
}

// Match is the result of a successful resolution
type Match struct {
	TeamID     string
	Confidence float64
}

// MappingRepo is the persisted mapping cache the reconciler reads and writes.
// It is injected so the reconciler can be tested with an in-memory fake.
type MappingRepo interface {
	GetMapping(externalName, provider string) (Mapping, bool, error)
	UpsertMapping(mapping Mapping) error
}
