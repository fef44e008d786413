package audit

import "time"

// Recommendation is the categorical tier derived from the overall score.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationCaution   Recommendation = "caution"
	RecommendationHighRisk  Recommendation = "high risk"
)

// Recommendation tier cut points. Configuration constants, not logic:
// scores at or above the minimum fall into that tier.
const (
	tierExcellentMin = 80
	tierGoodMin      = 60
	tierCautionMin   = 40
)

// RecommendationFor maps an overall score to its tier.
func RecommendationFor(score int) Recommendation {
	switch {
	case score >= tierExcellentMin:
		return RecommendationExcellent
	case score >= tierGoodMin:
		return RecommendationGood
	case score >= tierCautionMin:
		return RecommendationCaution
	default:
		return RecommendationHighRisk
	}
}

// Insight is the structured result of the AI collaborator.
type Insight struct {
	Confidence     float64  `json:"confidence" yaml:"confidence"`
	KeyInsights    []string `json:"key_insights,omitempty" yaml:"key_insights,omitempty"`
	RiskLevel      string   `json:"risk_level,omitempty" yaml:"risk_level,omitempty"`
	Recommendation string   `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// SourceStatus records the outcome of one collector call for the report.
type SourceStatus struct {
	Attempted bool   `json:"attempted" yaml:"attempted"`
	Collected bool   `json:"collected" yaml:"collected"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SourceReport shows which evidence sources were attempted and which failed.
type SourceReport struct {
	OnChain  SourceStatus `json:"on_chain" yaml:"on_chain"`
	OffChain SourceStatus `json:"off_chain" yaml:"off_chain"`
	Insight  SourceStatus `json:"insight" yaml:"insight"`
}

// TrustScore is the final audit artifact. Immutable once constructed; the
// field names and nesting are a stable contract for downstream consumers.
type TrustScore struct {
	Project         string         `json:"project" yaml:"project"`
	Address         string         `json:"address,omitempty" yaml:"address,omitempty"`
	ProjectType     string         `json:"project_type,omitempty" yaml:"project_type,omitempty"`
	OverallScore    int            `json:"overall_score" yaml:"overall_score"`
	OnChainScore    *int           `json:"on_chain_score,omitempty" yaml:"on_chain_score,omitempty"`
	OffChainScore   *int           `json:"off_chain_score,omitempty" yaml:"off_chain_score,omitempty"`
	ConfidenceLevel float64        `json:"confidence_level" yaml:"confidence_level"`
	PositiveFactors []string       `json:"positive_factors" yaml:"positive_factors"`
	RiskFactors     []string       `json:"risk_factors" yaml:"risk_factors"`
	Recommendation  Recommendation `json:"recommendation" yaml:"recommendation"`
	Insight         *Insight       `json:"insight,omitempty" yaml:"insight,omitempty"`
	Sources         SourceReport   `json:"sources" yaml:"sources"`
	Timestamp       time.Time      `json:"timestamp" yaml:"timestamp"`
}
