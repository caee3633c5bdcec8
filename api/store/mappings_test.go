/* mappings_test.go
 * Contains integration tests for the team_name_mappings collection methods.
 * Requires a reachable MongoDB; skipped when MONGO_TEST_URI is not set
 * Authors: Courtwatch developers
 */

package store

import (
	"testing"

	"courtwatch/api/external"
	"courtwatch/api/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappings_GetMissing(t *testing.T) {
	s := NewTestStore(t)

	_, found, err := s.GetMapping("tar heels", external.ProviderESPN)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestMappings_UpsertAndGet(t *testing.T) {
	s := NewTestStore(t)
	mapping := reconcile.Mapping{
		ExternalName: "north carolina",
		Provider:     external.ProviderBartTorvik,
		TeamID:       "north-carolina",
		Confidence:   0.97,
	}

	require.NoError(t, s.UpsertMapping(mapping))

	got, found, err := s.GetMapping("north carolina", external.ProviderBartTorvik)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "north-carolina", got.TeamID)
	assert.Equal(t, 0.97, got.Confidence)
	assert.Nil(t, got.ConfirmedAt)

	// Same name under a different provider is a separate cache entry
	_, found, err = s.GetMapping("north carolina", external.ProviderESPN)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMappings_UpsertReplaces(t *testing.T) {
	s := NewTestStore(t)
	mapping := reconcile.Mapping{
		ExternalName: "zags", Provider: external.ProviderESPN,
		TeamID: "gonzaga", Confidence: 0.82,
	}
	require.NoError(t, s.UpsertMapping(mapping))

	mapping.Confidence = 0.91
	require.NoError(t, s.UpsertMapping(mapping))

	got, found, err := s.GetMapping("zags", external.ProviderESPN)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.91, got.Confidence)
}

func TestMappings_ReviewWorkflow(t *testing.T) {
	s := NewTestStore(t)
	require.NoError(t, s.UpsertMapping(reconcile.Mapping{
		ExternalName: "st marys", Provider: external.ProviderHaslametrics,
		TeamID: "saint-marys", Confidence: 0.84,
	}))
	require.NoError(t, s.UpsertMapping(reconcile.Mapping{
		ExternalName: "uconn", Provider: external.ProviderHaslametrics,
		TeamID: "connecticut", Confidence: 0.88,
	}))

	pending, err := s.ListUnconfirmedMappings()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, s.ConfirmMapping("st marys", external.ProviderHaslametrics))

	pending, err = s.ListUnconfirmedMappings()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "uconn", pending[0].ExternalName)

	got, found, err := s.GetMapping("st marys", external.ProviderHaslametrics)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotNil(t, got.ConfirmedAt)
}

func TestMappings_ConfirmMissingFails(t *testing.T) {
	s := NewTestStore(t)

	err := s.ConfirmMapping("nobody", external.ProviderESPN)

	assert.Error(t, err)
}

func TestMappings_OverrideCreatesConfirmed(t *testing.T) {
	s := NewTestStore(t)

	require.NoError(t, s.OverrideMapping("miami oh", external.ProviderBartTorvik, "miami-ohio"))

	got, found, err := s.GetMapping("miami oh", external.ProviderBartTorvik)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "miami-ohio", got.TeamID)
	assert.Equal(t, 1.0, got.Confidence)
	assert.NotNil(t, got.ConfirmedAt)
}

func TestMappings_Delete(t *testing.T) {
	s := NewTestStore(t)
	require.NoError(t, s.UpsertMapping(reconcile.Mapping{
		ExternalName: "wrong", Provider: external.ProviderESPN,
		TeamID: "wrong-team", Confidence: 0.85,
	}))

	require.NoError(t, s.DeleteMapping("wrong", external.ProviderESPN))

	_, found, err := s.GetMapping("wrong", external.ProviderESPN)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Error(t, s.DeleteMapping("wrong", external.ProviderESPN))
}
