package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rishiparsad75/pixland-face-service/internal/config"
	"github.com/rishiparsad75/pixland-face-service/internal/similarity"
)

// CompareHandler handles embedding comparison.
type CompareHandler struct {
	threshold float64
}

// NewCompareHandler creates a compare handler using the configured model's
// match threshold.
func NewCompareHandler(cfg *config.Config) *CompareHandler {
	info, _ := cfg.ModelInfo(cfg.Face.Model)
	return &CompareHandler{threshold: info.Threshold}
}

// compareRequest is the JSON request body for /compare.
type compareRequest struct {
	Embedding1 []float64 `json:"embedding1"`
	Embedding2 []float64 `json:"embedding2"`
}

// parseCompareRequest validates a compare request, returning an error
// message if invalid. Length mismatch is rejected here so the similarity
// engine itself never sees vectors it cannot compare.
func parseCompareRequest(r *http.Request) (compareRequest, string) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errInvalidRequestBody
	}
	if len(req.Embedding1) == 0 {
		return req, "embedding1 is required"
	}
	if len(req.Embedding2) == 0 {
		return req, "embedding2 is required"
	}
	if len(req.Embedding1) != len(req.Embedding2) {
		return req, "embedding1 and embedding2 must have the same length"
	}
	return req, ""
}

// Compare computes cosine similarity between two embeddings and reports
// whether they represent the same identity.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, errMsg := parseCompareRequest(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, codeInvalidInput, errMsg)
		return
	}

	result := similarity.CompareWithThreshold(req.Embedding1, req.Embedding2, h.threshold)
	respondJSON(w, http.StatusOK, result)
}
