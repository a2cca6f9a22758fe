package projection

// ComputeTotals derives the headline scalars from a summary set. PctDelta is
// 0 when the baseline is not positive (an empty year, or an all-zero model).
func ComputeTotals(summaries []StateSummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.BaselineTotal += s.BaselineTotal
		t.AdjustedTotal += s.AdjustedTotal
	}
	t.YearsGained = t.BaselineTotal - t.AdjustedTotal
	if t.BaselineTotal > 0 {
		t.PctDelta = t.YearsGained / t.BaselineTotal * 100.0
	}
	return t
}

// Mappable filters out rows without a USPS abbreviation. The engine keeps
// such rows in its output; this helper is for geography-keyed consumers
// (the choropleth) that cannot place them.
func Mappable(summaries []StateSummary) []StateSummary {
	out := make([]StateSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.StateAbbrev != "" {
			out = append(out, s)
		}
	}
	return out
}
