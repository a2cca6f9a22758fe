package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LinearModel evaluates an offline-trained linear regression export:
// an intercept, per-column numeric weights, and additive effect tables for
// the categorical columns (state, sex, UCD). Categories unseen at training
// time contribute a zero effect rather than failing the whole call.
type LinearModel struct {
	Intercept    float64            `json:"intercept"`
	Weights      map[string]float64 `json:"weights"`
	StateEffects map[string]float64 `json:"state_effects"`
	SexEffects   map[string]float64 `json:"sex_effects"`
	CauseEffects map[string]float64 `json:"cause_effects"`
}

// LoadLinearModel reads a coefficient export produced by the training
// pipeline.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	fmt.Printf("[MODEL] Loaded linear model from %s (%d weights, %d state effects)\n",
		path, len(m.Weights), len(m.StateEffects))
	return &m, nil
}

// Predict evaluates the model for every row in the frame. It never fails on
// data content; only a malformed frame is an error.
func (m *LinearModel) Predict(_ context.Context, frame FeatureFrame) ([]float64, error) {
	// Fixed accumulation order keeps repeated calls bit-identical.
	columns := make([]string, 0, len(m.Weights))
	for col := range m.Weights {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	preds := make([]float64, len(frame.Rows))
	for i, row := range frame.Rows {
		v := m.Intercept
		for _, col := range columns {
			x, ok := row.numericValue(col)
			if !ok {
				return nil, fmt.Errorf("model weight refers to unknown column %q", col)
			}
			v += m.Weights[col] * x
		}
		v += m.StateEffects[row.State]
		v += m.SexEffects[row.Sex]
		v += m.CauseEffects[row.UCD]
		preds[i] = v
	}
	return preds, nil
}
