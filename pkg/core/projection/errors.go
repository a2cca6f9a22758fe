package projection

import "fmt"

// PredictionError means the model invocation itself failed. It is fatal for
// the whole call: the engine returns no partial results and does not retry.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
