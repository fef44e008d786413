package audit

import "math"

// Weighting applied when both evidence sides produced a sub-score. On-chain
// data is weighted heavier because it is harder to fabricate.
const (
	onChainWeight  = 0.6
	offChainWeight = 0.4
)

// Combine merges the two sub-scores into the overall 1-100 trust score.
// With a single side present, its value passes through unweighted. With
// neither present, combining fails with ErrInsufficientEvidence: a score is
// never fabricated from zero evidence and 0 is never reported.
func Combine(on, off *SubScore) (int, error) {
	switch {
	case on == nil && off == nil:
		return 0, ErrInsufficientEvidence
	case on == nil:
		return floorScore(off.Value), nil
	case off == nil:
		return floorScore(on.Value), nil
	}

	weighted := onChainWeight*float64(on.Value) + offChainWeight*float64(off.Value)
	return floorScore(int(math.Round(weighted))), nil
}

// floorScore lifts 0 to 1: the overall score range is [1,100].
func floorScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}
