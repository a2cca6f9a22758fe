package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteModel calls an external model service over HTTP. The service accepts
// the feature frame as JSON and returns one prediction per row, in row order.
type RemoteModel struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteModel creates a client for the model service at baseURL.
func NewRemoteModel(baseURL string) *RemoteModel {
	return &RemoteModel{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type remotePredictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// Predict posts the frame to the service's /predict endpoint.
func (m *RemoteModel) Predict(ctx context.Context, frame FeatureFrame) ([]float64, error) {
	body, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model service returned %d: %s", resp.StatusCode, string(msg))
	}

	var out remotePredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}
	if len(out.Predictions) != len(frame.Rows) {
		return nil, fmt.Errorf("model service returned %d predictions for %d rows",
			len(out.Predictions), len(frame.Rows))
	}
	return out.Predictions, nil
}
