package audit

const (
	confidenceBase             = 0.5
	confidenceOnChainComplete  = 0.2
	confidenceOffChainComplete = 0.15
	confidenceInsightPresent   = 0.15
	confidenceDisagreement     = 0.2

	// Sub-score gap beyond which the two sources are considered to disagree.
	disagreementThreshold = 40
)

// EstimateConfidence derives the 0.0-1.0 confidence level from evidence
// completeness, source agreement, and insight availability. Large
// disagreement between independent sources lowers certainty rather than
// being averaged away. Always computable; the floor is a legitimate result.
func EstimateConfidence(on *OnChainEvidence, off *OffChainEvidence, onSub, offSub *SubScore, insightPresent bool) float64 {
	c := confidenceBase

	if on.Complete() {
		c += confidenceOnChainComplete
	}
	if off.Complete() {
		c += confidenceOffChainComplete
	}
	if insightPresent {
		c += confidenceInsightPresent
	}

	if onSub != nil && offSub != nil {
		gap := onSub.Value - offSub.Value
		if gap < 0 {
			gap = -gap
		}
		if gap > disagreementThreshold {
			c -= confidenceDisagreement
		}
	}

	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
