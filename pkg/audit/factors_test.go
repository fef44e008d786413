package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFactors_SplitAndOrder(t *testing.T) {
	on := &SubScore{Factors: []Factor{
		{Source: SourceOnChain, Kind: KindContractVerified, Label: "verified", Points: 20},
		{Source: SourceOnChain, Kind: KindRiskFlag, Label: "owner control", Points: -8},
		{Source: SourceOnChain, Kind: KindHolderBase, Label: "holders", Points: 10},
	}}
	off := &SubScore{Factors: []Factor{
		{Source: SourceOffChain, Kind: KindSentiment, Label: "sentiment", Points: 15},
		{Source: SourceOffChain, Kind: KindPartnershipFalse, Label: "false claim", Points: -10},
	}}

	positive, risk := ExtractFactors(on, off)

	require.Len(t, positive, 3)
	assert.Equal(t, "verified", positive[0].Label)
	assert.Equal(t, "sentiment", positive[1].Label)
	assert.Equal(t, "holders", positive[2].Label)

	require.Len(t, risk, 2)
	assert.Equal(t, "false claim", risk[0].Label)
	assert.Equal(t, "owner control", risk[1].Label)
}

func TestExtractFactors_TieBreakOnChainFirst(t *testing.T) {
	on := &SubScore{Factors: []Factor{
		{Source: SourceOnChain, Kind: KindHolderBase, Label: "on side", Points: 10},
	}}
	off := &SubScore{Factors: []Factor{
		{Source: SourceOffChain, Kind: KindTeamVerified, Label: "off side", Points: 10},
	}}

	positive, _ := ExtractFactors(on, off)
	require.Len(t, positive, 2)
	assert.Equal(t, "on side", positive[0].Label)
	assert.Equal(t, "off side", positive[1].Label)
}

func TestExtractFactors_DedupeByIdentityNotText(t *testing.T) {
	off := &SubScore{Factors: []Factor{
		{Source: SourceOffChain, Kind: KindPartnershipFalse, Label: "claim not substantiated", Points: -10},
		{Source: SourceOffChain, Kind: KindPartnershipFalse, Label: "claim not substantiated", Points: -10},
		{Source: SourceOffChain, Kind: KindSentiment, Label: "claim not substantiated", Points: -5},
	}}

	_, risk := ExtractFactors(nil, off)
	// Same (source, kind, label) collapses; same label on a different kind
	// survives.
	require.Len(t, risk, 2)
}

func TestExtractFactors_Disjoint(t *testing.T) {
	on := NormalizeOnChain(&OnChainEvidence{
		Verified:  boolPtr(true),
		RiskFlags: []string{"Owner has full control"},
	})
	positive, risk := ExtractFactors(on, nil)

	seen := map[string]bool{}
	for _, f := range positive {
		seen[f.Label] = true
	}
	for _, f := range risk {
		assert.False(t, seen[f.Label], "label %q in both lists", f.Label)
	}
}

func TestExtractFactors_Idempotent(t *testing.T) {
	on := NormalizeOnChain(&OnChainEvidence{
		Verified:           boolPtr(true),
		TransactionCount:   intPtr(2000),
		SecurityIndicators: []string{"a", "b"},
		RiskFlags:          []string{"r1", "r2"},
	})
	off := NormalizeOffChain(&OffChainEvidence{
		Sentiment: floatPtr(-0.6),
	})

	p1, r1 := ExtractFactors(on, off)
	p2, r2 := ExtractFactors(on, off)
	assert.Equal(t, p1, p2)
	assert.Equal(t, r1, r2)
}

func TestExtractFactors_BothAbsent(t *testing.T) {
	positive, risk := ExtractFactors(nil, nil)
	assert.Empty(t, positive)
	assert.Empty(t, risk)
}

func TestLabels(t *testing.T) {
	labels := Labels([]Factor{{Label: "a"}, {Label: "b"}})
	assert.Equal(t, []string{"a", "b"}, labels)
	assert.Empty(t, Labels(nil))
}
