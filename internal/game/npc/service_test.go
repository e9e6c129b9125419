package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/realm/internal/game/npc"
)

var allServiceTypes = []npc.ServiceType{
	npc.ServiceBlacksmith,
	npc.ServiceArmorer,
	npc.ServiceAlchemist,
	npc.ServiceInnkeeper,
	npc.ServiceBanker,
	npc.ServicePriest,
}

func TestParseServiceType(t *testing.T) {
	got, err := npc.ParseServiceType("  Innkeeper ")
	require.NoError(t, err)
	assert.Equal(t, npc.ServiceInnkeeper, got)

	got, err = npc.ParseServiceType("jester")
	assert.Error(t, err)
	assert.Equal(t, npc.ServiceUnknown, got)

	_, err = npc.ParseServiceType("unknown")
	assert.Error(t, err)
}

func TestPropertyServiceTypeNameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		st := rapid.SampledFrom(allServiceTypes).Draw(t, "type")
		got, err := npc.ParseServiceType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	})
}

func TestServiceType_StringUnknown(t *testing.T) {
	assert.Equal(t, "unknown", npc.ServiceUnknown.String())
	assert.Equal(t, "unknown", npc.ServiceType(99).String())
}

func TestNewVendor(t *testing.T) {
	v, err := npc.NewVendor(npc.ServicePriest, "Sister Aldith")
	require.NoError(t, err)
	assert.Equal(t, npc.ServicePriest, v.ServiceType())
	assert.Equal(t, "Sister Aldith", v.Name())

	var _ npc.Service = v
}

func TestNewVendor_Rejects(t *testing.T) {
	_, err := npc.NewVendor(npc.ServiceUnknown, "Nobody")
	assert.Error(t, err)

	_, err = npc.NewVendor(npc.ServiceBanker, "   ")
	assert.Error(t, err)
}
