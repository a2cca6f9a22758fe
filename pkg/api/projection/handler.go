// Package projection exposes the projection engine over HTTP for the
// dashboard shell. One request per slider interaction; each request runs one
// full engine call and returns the complete summary set.
package projection

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	coreprojection "ypll_explorer/pkg/core/projection"
	"ypll_explorer/pkg/core/scenario"
)

type Handler struct {
	engine *coreprojection.Engine
}

func NewHandler(engine *coreprojection.Engine) *Handler {
	return &Handler{engine: engine}
}

type summaryRequest struct {
	Year   int                `json:"year"`
	Causes map[string]float64 `json:"causes"`
}

type covariatesRequest struct {
	Year       int                `json:"year"`
	Covariates map[string]float64 `json:"covariates"`
}

type summaryResponse struct {
	RunID     string                        `json:"run_id"`
	Year      int                           `json:"year"`
	Summaries []coreprojection.StateSummary `json:"summaries"`
	Totals    coreprojection.Totals         `json:"totals"`
}

// HandleSummary serves POST /api/projection/summary: the cause-percentage
// scenario mode.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()[:8]
	fmt.Printf("[API] (%s) projection request: year=%d causes=%d\n", runID, req.Year, len(req.Causes))

	sc, err := scenario.Validate(req.Causes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries, err := h.engine.Project(r.Context(), sc, req.Year)
	if err != nil {
		var predErr *coreprojection.PredictionError
		if errors.As(err, &predErr) {
			fmt.Printf("[API] (%s) prediction failed: %v\n", runID, err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summaryResponse{
		RunID:     runID,
		Year:      req.Year,
		Summaries: summaries,
		Totals:    coreprojection.ComputeTotals(summaries),
	})
}

// HandleCovariates serves POST /api/projection/covariates: the feature-change
// scenario mode.
func (h *Handler) HandleCovariates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req covariatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()[:8]
	fmt.Printf("[API] (%s) covariate projection request: year=%d columns=%d\n", runID, req.Year, len(req.Covariates))

	cs, err := scenario.ValidateCovariates(req.Covariates)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries, err := h.engine.ProjectCovariates(r.Context(), cs, req.Year)
	if err != nil {
		var predErr *coreprojection.PredictionError
		if errors.As(err, &predErr) {
			fmt.Printf("[API] (%s) prediction failed: %v\n", runID, err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summaryResponse{
		RunID:     runID,
		Year:      req.Year,
		Summaries: summaries,
		Totals:    coreprojection.ComputeTotals(summaries),
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Printf("[API] Failed to encode response: %v\n", err)
	}
}
