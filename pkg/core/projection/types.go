// Package projection implements the aggregation-and-projection engine:
// filter the dataset to a target year, predict YPLL per stratum, apply the
// scenario's per-cause factors, and roll the result up to state-level
// baseline/adjusted/gained totals.
package projection

import "ypll_explorer/pkg/core/cause"

// CauseBreakdown is the per-(state, cause) rollup row. Share is diagnostic:
// the cause's fraction of the state's baseline total, 0.0 whenever the state
// total is not positive.
type CauseBreakdown struct {
	Cause         cause.Key `json:"cause"`
	Total         float64   `json:"total"`
	Share         float64   `json:"share"`
	Factor        float64   `json:"factor"`
	AdjustedTotal float64   `json:"adjusted_total"`
}

// StateSummary is one output row per state. StateAbbrev is empty when the
// state has no known USPS code; the row is kept and the caller excludes it
// before geography-keyed rendering.
type StateSummary struct {
	State         string           `json:"state"`
	StateAbbrev   string           `json:"state_abbrev,omitempty"`
	BaselineTotal float64          `json:"baseline_total"`
	AdjustedTotal float64          `json:"adjusted_total"`
	YearsGained   float64          `json:"years_gained"`
	Causes        []CauseBreakdown `json:"causes"`
}

// Totals are the derived scalars the presentation layer displays next to the
// map.
type Totals struct {
	BaselineTotal float64 `json:"baseline_total"`
	AdjustedTotal float64 `json:"adjusted_total"`
	YearsGained   float64 `json:"years_gained"`
	PctDelta      float64 `json:"pct_delta"`
}
