package projection

import (
	"context"
	"fmt"
	"sort"

	"ypll_explorer/pkg/core/cause"
	"ypll_explorer/pkg/core/dataset"
	"ypll_explorer/pkg/core/geo"
	"ypll_explorer/pkg/core/predict"
	"ypll_explorer/pkg/core/scenario"
)

// Engine orchestrates one projection call: filter, predict, tag, roll up,
// adjust, enrich. It holds no mutable state of its own, so a call is a pure
// function of (store snapshot, scenario, target year, model).
type Engine struct {
	store *dataset.Store
	model predict.Model
}

// NewEngine wires the engine to its immutable record store and trained model.
func NewEngine(store *dataset.Store, model predict.Model) *Engine {
	return &Engine{store: store, model: model}
}

// Project computes per-state baseline/adjusted/gained YPLL totals for the
// target year under the given scenario. An empty year yields an empty (valid)
// result; a model failure aborts the whole call with a PredictionError.
func (e *Engine) Project(ctx context.Context, sc scenario.Scenario, targetYear int) ([]StateSummary, error) {
	records := e.store.FilterYear(targetYear)
	if len(records) == 0 {
		return []StateSummary{}, nil
	}

	// One model invocation per call, never per-row.
	frame := predict.BuildFrame(records)
	preds, err := e.model.Predict(ctx, frame)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	if len(preds) != len(records) {
		return nil, &PredictionError{Err: fmt.Errorf("model returned %d predictions for %d records", len(preds), len(records))}
	}

	byState := make(map[string]map[cause.Key]float64)
	for i, rec := range records {
		key := cause.Classify(rec.CauseRaw)
		totals, ok := byState[rec.State]
		if !ok {
			totals = make(map[cause.Key]float64)
			byState[rec.State] = totals
		}
		totals[key] += preds[i]
	}

	return summarize(byState, sc), nil
}

// allCauses is the deterministic rollup order: the five adjustable causes,
// then the unrecognized bucket.
func allCauses() []cause.Key {
	return append(cause.Keys(), cause.Unrecognized)
}

func summarize(byState map[string]map[cause.Key]float64, sc scenario.Scenario) []StateSummary {
	states := make([]string, 0, len(byState))
	for state := range byState {
		states = append(states, state)
	}
	sort.Strings(states)

	summaries := make([]StateSummary, 0, len(states))
	for _, state := range states {
		causeTotals := byState[state]

		stateTotal := 0.0
		for _, total := range causeTotals {
			stateTotal += total
		}

		summary := StateSummary{State: state}
		if abbrev, ok := geo.Abbrev(state); ok {
			summary.StateAbbrev = abbrev
		}

		for _, key := range allCauses() {
			total, ok := causeTotals[key]
			if !ok {
				continue
			}

			share := 0.0
			if stateTotal > 0 {
				share = total / stateTotal
			}

			factor := sc.Factor(key)
			adjusted := total * factor

			summary.Causes = append(summary.Causes, CauseBreakdown{
				Cause:         key,
				Total:         total,
				Share:         share,
				Factor:        factor,
				AdjustedTotal: adjusted,
			})
			summary.BaselineTotal += total
			summary.AdjustedTotal += adjusted
		}
		summary.YearsGained = summary.BaselineTotal - summary.AdjustedTotal

		summaries = append(summaries, summary)
	}
	return summaries
}
