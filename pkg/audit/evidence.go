package audit

import "fmt"

// FactorSource identifies which evidence side produced a factor.
type FactorSource int

const (
	SourceOnChain FactorSource = iota
	SourceOffChain
)

func (s FactorSource) String() string {
	if s == SourceOnChain {
		return "on_chain"
	}
	return "off_chain"
}

// FactorKind is the tagged enumeration of scoring conditions. Scoring logic
// keys off the kind; display text comes from the factor label.
type FactorKind int

const (
	KindContractVerified FactorKind = iota
	KindTransactionActivity
	KindHolderBase
	KindSecurityIndicator
	KindRiskFlag
	KindSentiment
	KindTeamVerified
	KindMediaCoverage
	KindCommunityEngagement
	KindPartnershipVerified
	KindPartnershipFalse
)

func (k FactorKind) String() string {
	switch k {
	case KindContractVerified:
		return "contract_verified"
	case KindTransactionActivity:
		return "transaction_activity"
	case KindHolderBase:
		return "holder_base"
	case KindSecurityIndicator:
		return "security_indicator"
	case KindRiskFlag:
		return "risk_flag"
	case KindSentiment:
		return "sentiment"
	case KindTeamVerified:
		return "team_verified"
	case KindMediaCoverage:
		return "media_coverage"
	case KindCommunityEngagement:
		return "community_engagement"
	case KindPartnershipVerified:
		return "partnership_verified"
	case KindPartnershipFalse:
		return "partnership_false"
	default:
		return fmt.Sprintf("unknown_%d", int(k))
	}
}

// Factor is a single scored condition: where it came from, what condition
// matched, the display label, and the signed point contribution.
type Factor struct {
	Source FactorSource `json:"source" yaml:"source"`
	Kind   FactorKind   `json:"kind" yaml:"kind"`
	Label  string       `json:"label" yaml:"label"`
	Points int          `json:"points" yaml:"points"`
}

// SubScore is a normalized 0-100 assessment of one evidence side, with the
// factor contributions that produced it.
type SubScore struct {
	Value   int      `json:"value" yaml:"value"`
	Factors []Factor `json:"factors" yaml:"factors"`
}

// MediaCoverage is the off-chain media coverage level.
type MediaCoverage int

const (
	CoverageNone MediaCoverage = iota
	CoverageLow
	CoverageMedium
	CoverageHigh
)

func (m MediaCoverage) String() string {
	switch m {
	case CoverageLow:
		return "low"
	case CoverageMedium:
		return "medium"
	case CoverageHigh:
		return "high"
	default:
		return "none"
	}
}

// ClaimStatus is the verification state of a partnership claim.
type ClaimStatus int

const (
	ClaimUnverified ClaimStatus = iota
	ClaimVerified
	ClaimFalse
)

// PartnershipClaim is a named partnership assertion found off-chain.
type PartnershipClaim struct {
	Name   string      `json:"name" yaml:"name"`
	Status ClaimStatus `json:"status" yaml:"status"`
}

// OnChainEvidence holds facts collected from the blockchain side. A nil
// record means collection failed entirely; nil fields mean partial data.
// Records are never mutated after the collector returns them.
type OnChainEvidence struct {
	Verified           *bool    `json:"verified,omitempty" yaml:"verified,omitempty"`
	TransactionCount   *int64   `json:"transaction_count,omitempty" yaml:"transaction_count,omitempty"`
	HolderCount        *int64   `json:"holder_count,omitempty" yaml:"holder_count,omitempty"`
	SecurityIndicators []string `json:"security_indicators,omitempty" yaml:"security_indicators,omitempty"`
	RiskFlags          []string `json:"risk_flags,omitempty" yaml:"risk_flags,omitempty"`
}

// Complete reports whether all core fields are populated, not just whether
// the record exists. Used by the confidence estimator.
func (e *OnChainEvidence) Complete() bool {
	return e != nil && e.Verified != nil && e.TransactionCount != nil && e.HolderCount != nil
}

// OffChainEvidence holds facts collected from news, social, and team
// sources. Same presence and mutation rules as OnChainEvidence.
type OffChainEvidence struct {
	Sentiment     *float64           `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	TeamVerified  bool               `json:"team_verified" yaml:"team_verified"`
	MediaCoverage MediaCoverage      `json:"media_coverage" yaml:"media_coverage"`
	Engagement    *int64             `json:"engagement,omitempty" yaml:"engagement,omitempty"`
	Claims        []PartnershipClaim `json:"claims,omitempty" yaml:"claims,omitempty"`
}

func (e *OffChainEvidence) Complete() bool {
	return e != nil && e.Sentiment != nil && e.Engagement != nil
}
