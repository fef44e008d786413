package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool       { return &v }
func intPtr(v int64) *int64      { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNormalizeOnChain_Absent(t *testing.T) {
	assert.Nil(t, NormalizeOnChain(nil))
}

func TestNormalizeOnChain_Empty(t *testing.T) {
	s := NormalizeOnChain(&OnChainEvidence{})
	require.NotNil(t, s)
	assert.Equal(t, 50, s.Value)
	assert.Empty(t, s.Factors)
}

func TestNormalizeOnChain_FullPositive(t *testing.T) {
	ev := &OnChainEvidence{
		Verified:         boolPtr(true),
		TransactionCount: intPtr(1500),
		HolderCount:      intPtr(450),
		SecurityIndicators: []string{
			"No obvious vulnerabilities",
			"Standard patterns used",
		},
		RiskFlags: []string{
			"Owner has full control",
			"No timelock on critical functions",
		},
	}

	s := NormalizeOnChain(ev)
	require.NotNil(t, s)
	// 50 + 20 + 10 + 10 + 6 - 16
	assert.Equal(t, 80, s.Value)
	assert.Len(t, s.Factors, 6)

	for _, f := range s.Factors {
		assert.Equal(t, SourceOnChain, f.Source)
		assert.NotEmpty(t, f.Label)
		assert.NotZero(t, f.Points)
	}
}

func TestNormalizeOnChain_SubThresholdScaling(t *testing.T) {
	tests := []struct {
		name    string
		tx      int64
		holders int64
		want    int
	}{
		{name: "half activity", tx: 500, holders: 50, want: 60},      // +5 +5
		{name: "at thresholds", tx: 1000, holders: 100, want: 70},    // +10 +10
		{name: "above thresholds", tx: 50000, holders: 9000, want: 70},
		{name: "zero", tx: 0, holders: 0, want: 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NormalizeOnChain(&OnChainEvidence{
				TransactionCount: intPtr(tc.tx),
				HolderCount:      intPtr(tc.holders),
			})
			require.NotNil(t, s)
			assert.Equal(t, tc.want, s.Value)
		})
	}
}

func TestNormalizeOnChain_IndicatorCap(t *testing.T) {
	ev := &OnChainEvidence{
		SecurityIndicators: []string{"a", "b", "c", "d", "e"},
	}
	s := NormalizeOnChain(ev)
	require.NotNil(t, s)
	// +3 each, capped at +9: only three indicators score.
	assert.Equal(t, 59, s.Value)
	assert.Len(t, s.Factors, 3)
}

func TestNormalizeOnChain_ClampFloor(t *testing.T) {
	flags := make([]string, 10)
	for i := range flags {
		flags[i] = "risk"
	}
	s := NormalizeOnChain(&OnChainEvidence{RiskFlags: flags})
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Value)
}

func TestNormalizeOffChain_Absent(t *testing.T) {
	assert.Nil(t, NormalizeOffChain(nil))
}

func TestNormalizeOffChain_FullPositive(t *testing.T) {
	ev := &OffChainEvidence{
		Sentiment:     floatPtr(0.5),
		TeamVerified:  true,
		MediaCoverage: CoverageHigh,
		Engagement:    intPtr(1500),
	}
	s := NormalizeOffChain(ev)
	require.NotNil(t, s)
	// 50 + 15 + 10 + 10 + 5
	assert.Equal(t, 90, s.Value)
}

func TestNormalizeOffChain_SentimentScaling(t *testing.T) {
	tests := []struct {
		sentiment float64
		want      int
	}{
		{sentiment: 0.5, want: 65},
		{sentiment: 0.3, want: 65},
		{sentiment: 0.15, want: 58}, // +7.5 rounds to 8
		{sentiment: 0.0, want: 50},
		{sentiment: -0.15, want: 42},
		{sentiment: -0.3, want: 35},
		{sentiment: -0.9, want: 35},
	}

	for _, tc := range tests {
		s := NormalizeOffChain(&OffChainEvidence{Sentiment: floatPtr(tc.sentiment)})
		require.NotNil(t, s)
		assert.Equal(t, tc.want, s.Value, "sentiment %v", tc.sentiment)
	}
}

func TestNormalizeOffChain_MediaCoverage(t *testing.T) {
	tests := []struct {
		coverage MediaCoverage
		want     int
	}{
		{coverage: CoverageNone, want: 50},
		{coverage: CoverageLow, want: 50},
		{coverage: CoverageMedium, want: 55},
		{coverage: CoverageHigh, want: 60},
	}
	for _, tc := range tests {
		s := NormalizeOffChain(&OffChainEvidence{MediaCoverage: tc.coverage})
		require.NotNil(t, s)
		assert.Equal(t, tc.want, s.Value, "coverage %s", tc.coverage)
	}
}

func TestNormalizeOffChain_PartnershipClaims(t *testing.T) {
	ev := &OffChainEvidence{
		Claims: []PartnershipClaim{
			{Name: "Acme integration", Status: ClaimVerified},
			{Name: "MegaCorp deal", Status: ClaimFalse},
			{Name: "Rumored listing", Status: ClaimUnverified},
		},
	}
	s := NormalizeOffChain(ev)
	require.NotNil(t, s)
	// 50 + 3 - 10; unverified claims contribute nothing
	assert.Equal(t, 43, s.Value)
	assert.Len(t, s.Factors, 2)
}

func TestNormalize_AlwaysInRange(t *testing.T) {
	extremes := []*OffChainEvidence{
		{Sentiment: floatPtr(-1), Claims: []PartnershipClaim{
			{Name: "a", Status: ClaimFalse}, {Name: "b", Status: ClaimFalse},
			{Name: "c", Status: ClaimFalse}, {Name: "d", Status: ClaimFalse},
		}},
		{Sentiment: floatPtr(1), TeamVerified: true, MediaCoverage: CoverageHigh,
			Engagement: intPtr(100000), Claims: []PartnershipClaim{
				{Name: "a", Status: ClaimVerified}, {Name: "b", Status: ClaimVerified},
				{Name: "c", Status: ClaimVerified}, {Name: "d", Status: ClaimVerified},
				{Name: "e", Status: ClaimVerified}, {Name: "f", Status: ClaimVerified},
				{Name: "g", Status: ClaimVerified}, {Name: "h", Status: ClaimVerified},
			}},
	}

	for _, ev := range extremes {
		s := NormalizeOffChain(ev)
		require.NotNil(t, s)
		assert.GreaterOrEqual(t, s.Value, 0)
		assert.LessOrEqual(t, s.Value, 100)
	}
}
