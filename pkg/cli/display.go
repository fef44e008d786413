package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veritasproject/veritas/pkg/audit"
)

const (
	scoreBarLength   = 20
	factorListLimit  = 10
	displayRuleWidth = 60
)

// renderScore produces the human-readable audit summary.
func renderScore(s *audit.TrustScore) string {
	var b strings.Builder
	rule := strings.Repeat("=", displayRuleWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "VERITAS AUDIT RESULTS")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Project: %s\n", s.Project)
	if s.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", s.Address)
	}
	fmt.Fprintf(&b, "Audit Date: %s\n\n", s.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "Overall Trust Score: %d/100\n", s.OverallScore)
	fmt.Fprintf(&b, "Confidence Level: %.1f%%\n\n", s.ConfidenceLevel*100)

	fmt.Fprintln(&b, "Score Breakdown:")
	fmt.Fprintf(&b, "  On-chain Score:  %s\n", renderSide(s.OnChainScore))
	fmt.Fprintf(&b, "  Off-chain Score: %s\n", renderSide(s.OffChainScore))
	fmt.Fprintf(&b, "  Visual Score: %s\n", scoreBar(s.OverallScore))

	writeFactorList(&b, "Positive Factors", s.PositiveFactors)
	writeFactorList(&b, "Risk Factors", s.RiskFactors)

	fmt.Fprintf(&b, "\nRecommendation: %s\n", s.Recommendation)
	fmt.Fprint(&b, rule)

	return b.String()
}

func renderSide(v *int) string {
	if v == nil {
		return "n/a (evidence unavailable)"
	}
	return fmt.Sprintf("%d/100", *v)
}

func scoreBar(score int) string {
	filled := scoreBarLength * score / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", scoreBarLength-filled)
	return fmt.Sprintf("[%s] %d%%", bar, score)
}

func writeFactorList(b *strings.Builder, title string, factors []string) {
	if len(factors) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s (%d):\n", title, len(factors))
	for i, f := range factors {
		if i >= factorListLimit {
			fmt.Fprintf(b, "  ... and %d more\n", len(factors)-factorListLimit)
			break
		}
		fmt.Fprintf(b, "  %d. %s\n", i+1, f)
	}
}

func safeFileName(name string) string {
	r := strings.NewReplacer("/", "_", " ", "_", ":", "_")
	s := r.Replace(name)
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}

func jsonIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
