package audit

import (
	"fmt"
	"math"
)

const (
	subScoreBase = 50

	// On-chain deltas. Transaction and holder bonuses scale linearly up to
	// their target counts, then cap.
	verifiedPoints          = 20
	txTargetCount           = 1000
	txMaxPoints             = 10
	holderTargetCount       = 100
	holderMaxPoints         = 10
	securityIndicatorPoints = 3
	securityIndicatorCap    = 9
	riskFlagPoints          = -8

	// Off-chain deltas. Sentiment scales linearly between -0.3 and 0.3 and
	// saturates at +/-15 beyond that band.
	sentimentBand       = 0.3
	sentimentMaxPoints  = 15
	teamVerifiedPoints  = 10
	mediaHighPoints     = 10
	mediaMediumPoints   = 5
	engagementThreshold = 1000
	engagementPoints    = 5
	claimVerifiedPoints = 3
	claimFalsePoints    = -10
)

// NormalizeOnChain converts on-chain evidence into a bounded sub-score.
// Returns nil when the evidence record itself is absent; a missing record
// never fabricates a default score.
func NormalizeOnChain(e *OnChainEvidence) *SubScore {
	if e == nil {
		return nil
	}

	s := &SubScore{Factors: []Factor{}}
	total := subScoreBase

	if e.Verified != nil && *e.Verified {
		total += s.add(SourceOnChain, KindContractVerified, "Contract source code verified", verifiedPoints)
	}

	if e.TransactionCount != nil {
		if p := scaledPoints(*e.TransactionCount, txTargetCount, txMaxPoints); p > 0 {
			label := fmt.Sprintf("Active usage (%d transactions)", *e.TransactionCount)
			total += s.add(SourceOnChain, KindTransactionActivity, label, p)
		}
	}

	if e.HolderCount != nil {
		if p := scaledPoints(*e.HolderCount, holderTargetCount, holderMaxPoints); p > 0 {
			label := fmt.Sprintf("Diverse holder base (%d holders)", *e.HolderCount)
			total += s.add(SourceOnChain, KindHolderBase, label, p)
		}
	}

	indicatorPoints := 0
	for _, ind := range e.SecurityIndicators {
		p := securityIndicatorPoints
		if indicatorPoints+p > securityIndicatorCap {
			break
		}
		indicatorPoints += p
		total += s.add(SourceOnChain, KindSecurityIndicator, ind, p)
	}

	for _, flag := range e.RiskFlags {
		total += s.add(SourceOnChain, KindRiskFlag, flag, riskFlagPoints)
	}

	s.Value = clampScore(total)
	return s
}

// NormalizeOffChain converts off-chain evidence into a bounded sub-score.
// Same absence rule as NormalizeOnChain.
func NormalizeOffChain(e *OffChainEvidence) *SubScore {
	if e == nil {
		return nil
	}

	s := &SubScore{Factors: []Factor{}}
	total := subScoreBase

	if e.Sentiment != nil {
		if p := sentimentPoints(*e.Sentiment); p != 0 {
			kind := KindSentiment
			label := fmt.Sprintf("Positive community sentiment (%.2f)", *e.Sentiment)
			if p < 0 {
				label = fmt.Sprintf("Negative community sentiment (%.2f)", *e.Sentiment)
			}
			total += s.add(SourceOffChain, kind, label, p)
		}
	}

	if e.TeamVerified {
		total += s.add(SourceOffChain, KindTeamVerified, "Team identity verified", teamVerifiedPoints)
	}

	switch e.MediaCoverage {
	case CoverageHigh:
		total += s.add(SourceOffChain, KindMediaCoverage, "High media coverage", mediaHighPoints)
	case CoverageMedium:
		total += s.add(SourceOffChain, KindMediaCoverage, "Moderate media coverage", mediaMediumPoints)
	}

	if e.Engagement != nil && *e.Engagement >= engagementThreshold {
		label := fmt.Sprintf("Active community (%d interactions)", *e.Engagement)
		total += s.add(SourceOffChain, KindCommunityEngagement, label, engagementPoints)
	}

	for _, claim := range e.Claims {
		switch claim.Status {
		case ClaimVerified:
			label := fmt.Sprintf("Verified partnership: %s", claim.Name)
			total += s.add(SourceOffChain, KindPartnershipVerified, label, claimVerifiedPoints)
		case ClaimFalse:
			label := fmt.Sprintf("False partnership claim: %s", claim.Name)
			total += s.add(SourceOffChain, KindPartnershipFalse, label, claimFalsePoints)
		}
	}

	s.Value = clampScore(total)
	return s
}

// add records the factor tag and returns its contribution. Every point delta
// flows through here so the sub-score stays traceable.
func (s *SubScore) add(src FactorSource, kind FactorKind, label string, points int) int {
	s.Factors = append(s.Factors, Factor{Source: src, Kind: kind, Label: label, Points: points})
	return points
}

// scaledPoints returns max points at or above target, else a linear share.
func scaledPoints(count, target, max int64) int {
	if count <= 0 {
		return 0
	}
	if count >= target {
		return int(max)
	}
	return int(count * max / target)
}

func sentimentPoints(sentiment float64) int {
	scaled := sentiment / sentimentBand * sentimentMaxPoints
	if scaled > sentimentMaxPoints {
		scaled = sentimentMaxPoints
	}
	if scaled < -sentimentMaxPoints {
		scaled = -sentimentMaxPoints
	}
	return int(math.Round(scaled))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
