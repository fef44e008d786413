package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeOnChain() *OnChainEvidence {
	return &OnChainEvidence{
		Verified:         boolPtr(true),
		TransactionCount: intPtr(100),
		HolderCount:      intPtr(10),
	}
}

func completeOffChain() *OffChainEvidence {
	return &OffChainEvidence{
		Sentiment:  floatPtr(0.2),
		Engagement: intPtr(100),
	}
}

func TestEstimateConfidence_Floor(t *testing.T) {
	got := EstimateConfidence(nil, nil, nil, nil, false)
	assert.InDelta(t, 0.5, got, 0.0001)
}

func TestEstimateConfidence_AllPresent(t *testing.T) {
	got := EstimateConfidence(completeOnChain(), completeOffChain(),
		&SubScore{Value: 70}, &SubScore{Value: 65}, true)
	assert.InDelta(t, 1.0, got, 0.0001)
}

func TestEstimateConfidence_PartialRecordNotComplete(t *testing.T) {
	// Record present but missing core fields adds nothing.
	got := EstimateConfidence(&OnChainEvidence{Verified: boolPtr(true)}, nil, nil, nil, false)
	assert.InDelta(t, 0.5, got, 0.0001)
}

func TestEstimateConfidence_Monotonic(t *testing.T) {
	prev := EstimateConfidence(nil, nil, nil, nil, false)

	steps := []float64{
		EstimateConfidence(completeOnChain(), nil, nil, nil, false),
		EstimateConfidence(completeOnChain(), completeOffChain(), nil, nil, false),
		EstimateConfidence(completeOnChain(), completeOffChain(), nil, nil, true),
	}

	for i, got := range steps {
		assert.GreaterOrEqual(t, got, prev, "step %d", i)
		prev = got
	}
}

func TestEstimateConfidence_DisagreementPenalty(t *testing.T) {
	agreeing := EstimateConfidence(completeOnChain(), completeOffChain(),
		&SubScore{Value: 60}, &SubScore{Value: 80}, false)
	disagreeing := EstimateConfidence(completeOnChain(), completeOffChain(),
		&SubScore{Value: 30}, &SubScore{Value: 71}, false)

	// Gap of 20 is fine, gap of 41 costs exactly 0.2.
	assert.InDelta(t, 0.85, agreeing, 0.0001)
	assert.InDelta(t, agreeing-0.2, disagreeing, 0.0001)
}

func TestEstimateConfidence_GapAtThresholdNotPenalized(t *testing.T) {
	got := EstimateConfidence(completeOnChain(), completeOffChain(),
		&SubScore{Value: 30}, &SubScore{Value: 70}, false)
	assert.InDelta(t, 0.85, got, 0.0001)
}

func TestEstimateConfidence_InRange(t *testing.T) {
	for _, insight := range []bool{true, false} {
		got := EstimateConfidence(completeOnChain(), completeOffChain(),
			&SubScore{Value: 0}, &SubScore{Value: 100}, insight)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}
