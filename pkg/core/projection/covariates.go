package projection

import (
	"context"
	"fmt"
	"math"
	"sort"

	"ypll_explorer/pkg/core/cause"
	"ypll_explorer/pkg/core/dataset"
	"ypll_explorer/pkg/core/geo"
	"ypll_explorer/pkg/core/predict"
	"ypll_explorer/pkg/core/scenario"
)

// clipLow and clipHigh bound shifted covariates to the observed percentile
// band so the model is never evaluated far outside its training support.
const (
	clipLow  = 1.0
	clipHigh = 99.0
)

// ProjectCovariates runs the feature-change mode: scale the scenario's
// covariate columns, clip each shifted column to its observed [p1, p99] band
// for the target year, re-predict, and roll up baseline vs shifted totals.
// This mode invokes the model twice (baseline and shifted frames).
func (e *Engine) ProjectCovariates(ctx context.Context, cs scenario.CovariateScenario, targetYear int) ([]StateSummary, error) {
	records := e.store.FilterYear(targetYear)
	if len(records) == 0 {
		return []StateSummary{}, nil
	}

	baseFrame := predict.BuildFrame(records)
	basePreds, err := e.model.Predict(ctx, baseFrame)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	if len(basePreds) != len(records) {
		return nil, &PredictionError{Err: fmt.Errorf("model returned %d predictions for %d records", len(basePreds), len(records))}
	}

	shifted := shiftCovariates(records, cs)
	shiftFrame := predict.BuildFrame(shifted)
	shiftPreds, err := e.model.Predict(ctx, shiftFrame)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	if len(shiftPreds) != len(records) {
		return nil, &PredictionError{Err: fmt.Errorf("model returned %d predictions for %d records", len(shiftPreds), len(records))}
	}

	type pair struct{ base, shifted float64 }
	byState := make(map[string]map[cause.Key]pair)
	for i, rec := range records {
		key := cause.Classify(rec.CauseRaw)
		totals, ok := byState[rec.State]
		if !ok {
			totals = make(map[cause.Key]pair)
			byState[rec.State] = totals
		}
		p := totals[key]
		p.base += basePreds[i]
		p.shifted += shiftPreds[i]
		totals[key] = p
	}

	states := make([]string, 0, len(byState))
	for state := range byState {
		states = append(states, state)
	}
	sort.Strings(states)

	summaries := make([]StateSummary, 0, len(states))
	for _, state := range states {
		causeTotals := byState[state]

		stateTotal := 0.0
		for _, p := range causeTotals {
			stateTotal += p.base
		}

		summary := StateSummary{State: state}
		if abbrev, ok := geo.Abbrev(state); ok {
			summary.StateAbbrev = abbrev
		}

		for _, key := range allCauses() {
			p, ok := causeTotals[key]
			if !ok {
				continue
			}

			share := 0.0
			if stateTotal > 0 {
				share = p.base / stateTotal
			}
			factor := 1.0
			if p.base != 0 {
				factor = p.shifted / p.base
			}

			summary.Causes = append(summary.Causes, CauseBreakdown{
				Cause:         key,
				Total:         p.base,
				Share:         share,
				Factor:        factor,
				AdjustedTotal: p.shifted,
			})
			summary.BaselineTotal += p.base
			summary.AdjustedTotal += p.shifted
		}
		summary.YearsGained = summary.BaselineTotal - summary.AdjustedTotal

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// shiftCovariates applies the scenario factors column by column, clipping
// each shifted value to the column's observed percentile band. Input records
// are copied, never mutated.
func shiftCovariates(records []dataset.MortalityRecord, cs scenario.CovariateScenario) []dataset.MortalityRecord {
	shifted := make([]dataset.MortalityRecord, len(records))
	copy(shifted, records)

	for _, column := range dataset.CovariateColumns() {
		factor := cs.Factor(column)
		if factor == 1.0 {
			continue
		}

		values := make([]float64, 0, len(records))
		for _, rec := range records {
			if v, ok := rec.Covars.CovariateValue(column); ok {
				values = append(values, v)
			}
		}
		sort.Float64s(values)
		lo := percentile(values, clipLow)
		hi := percentile(values, clipHigh)

		for i := range shifted {
			v, _ := shifted[i].Covars.CovariateValue(column)
			shifted[i].Covars.SetCovariateValue(column, clamp(v*factor, lo, hi))
		}
	}
	return shifted
}

// percentile computes the q-th percentile with linear interpolation over a
// sorted slice.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q / 100.0 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
