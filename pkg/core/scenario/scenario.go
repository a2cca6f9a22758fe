// Package scenario models the user-chosen counterfactual: a signed
// percentage change per canonical cause, validated at the UI boundary and
// converted into multiplicative factors by the projection engine.
package scenario

import (
	"fmt"
	"math"

	"ypll_explorer/pkg/core/cause"
)

// Scenario maps canonical cause keys to signed percentage changes.
// Negative = fewer deaths = improvement. The engine applies 1 + pct/100.
type Scenario map[cause.Key]float64

// ValidationError reports a malformed scenario input. The caller fixes the
// payload and resubmits; the engine never sees an invalid Scenario.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario value for %q: %s", e.Key, e.Reason)
}

// Validate builds a Scenario from raw UI input. Unknown keys are silently
// dropped (the boundary stays permissive toward newer UI builds); non-finite
// values are rejected. Range clamping (the UI's ±20%) is deliberately not
// enforced here.
func Validate(raw map[string]float64) (Scenario, error) {
	sc := make(Scenario, len(raw))
	for key, pct := range raw {
		k, ok := cause.Parse(key)
		if !ok {
			continue
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			return nil, &ValidationError{Key: key, Reason: "value must be finite"}
		}
		sc[k] = pct
	}
	return sc, nil
}

// Factor returns the multiplicative adjustment for a cause. Causes outside
// the recognized five, and recognized causes absent from the scenario, pass
// through at 1.0.
func (s Scenario) Factor(k cause.Key) float64 {
	if !k.Recognized() {
		return 1.0
	}
	pct, ok := s[k]
	if !ok {
		return 1.0
	}
	return 1.0 + pct/100.0
}
