package scenario

import (
	"math"

	"ypll_explorer/pkg/core/dataset"
)

// CovariateScenario is the alternate "what-if" kind: instead of scaling
// cause-level death counts, it shifts the risk-factor covariates themselves
// (percentage change per column) and lets the model re-predict. Shifted
// values are clipped to the observed percentile band so the model is never
// asked to extrapolate far outside its training support.
type CovariateScenario map[string]float64

// ValidateCovariates builds a CovariateScenario from raw input. Unknown
// column names are dropped, mirroring Validate; non-finite values are
// rejected.
func ValidateCovariates(raw map[string]float64) (CovariateScenario, error) {
	known := make(map[string]bool)
	for _, col := range dataset.CovariateColumns() {
		known[col] = true
	}

	cs := make(CovariateScenario, len(raw))
	for col, pct := range raw {
		if !known[col] {
			continue
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			return nil, &ValidationError{Key: col, Reason: "value must be finite"}
		}
		cs[col] = pct
	}
	return cs, nil
}

// Factor returns the multiplicative shift for a covariate column, 1.0 when
// the column is not part of the scenario.
func (c CovariateScenario) Factor(column string) float64 {
	pct, ok := c[column]
	if !ok {
		return 1.0
	}
	return 1.0 + pct/100.0
}
