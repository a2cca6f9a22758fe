// Package dataset exposes dataset metadata so the dashboard can populate its
// year selector and slider labels without hardcoding them.
package dataset

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ypll_explorer/pkg/core/cause"
	coredataset "ypll_explorer/pkg/core/dataset"
)

type Handler struct {
	store *coredataset.Store
}

func NewHandler(store *coredataset.Store) *Handler {
	return &Handler{store: store}
}

type infoResponse struct {
	RecordCount int         `json:"record_count"`
	Years       []int       `json:"years"`
	States      []string    `json:"states"`
	Causes      []cause.Key `json:"causes"`
}

// HandleInfo serves GET /api/dataset/info.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := infoResponse{
		RecordCount: h.store.Len(),
		Years:       h.store.Years(),
		States:      h.store.States(),
		Causes:      cause.Keys(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		fmt.Printf("[API] Failed to encode dataset info: %v\n", err)
	}
}
