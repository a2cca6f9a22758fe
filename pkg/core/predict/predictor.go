// Package predict wraps the trained YPLL regressor behind a capability
// interface so the projection engine never depends on how the model was
// fitted. Any conforming implementation (loaded coefficients, a remote model
// service, a deterministic test stub) can be substituted.
package predict

import "context"

// Model is the black-box predictor: one YPLL prediction per feature row, in
// row order. Implementations must be deterministic and stateless as observed
// by the engine.
type Model interface {
	Predict(ctx context.Context, frame FeatureFrame) ([]float64, error)
}
