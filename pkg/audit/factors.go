package audit

import "sort"

type factorKey struct {
	source FactorSource
	kind   FactorKind
	label  string
}

// ExtractFactors pools factor tags from both present sub-scores and splits
// them into positive and risk lists, each ordered most impactful first.
// Ties keep the on-chain-before-off-chain evaluation order. Duplicates are
// collapsed by (source, kind, label) identity, not by display text alone,
// since independent conditions may share wording.
func ExtractFactors(on, off *SubScore) (positive, risk []Factor) {
	pool := make([]Factor, 0)
	seen := make(map[factorKey]bool)

	for _, sub := range []*SubScore{on, off} {
		if sub == nil {
			continue
		}
		for _, f := range sub.Factors {
			k := factorKey{source: f.Source, kind: f.Kind, label: f.Label}
			if seen[k] {
				continue
			}
			seen[k] = true
			pool = append(pool, f)
		}
	}

	positive = make([]Factor, 0)
	risk = make([]Factor, 0)
	for _, f := range pool {
		switch {
		case f.Points > 0:
			positive = append(positive, f)
		case f.Points < 0:
			risk = append(risk, f)
		}
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Points > positive[j].Points
	})
	sort.SliceStable(risk, func(i, j int) bool {
		return risk[i].Points < risk[j].Points
	})

	return positive, risk
}

// Labels renders an ordered factor list for the report.
func Labels(factors []Factor) []string {
	labels := make([]string, 0, len(factors))
	for _, f := range factors {
		labels = append(labels, f.Label)
	}
	return labels
}
