package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rishiparsad75/pixland-face-service/internal/config"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError sends a tagged error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: code, Message: message})
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	config *config.Config
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{config: cfg}
}

// Health reports service status and the active recognizer configuration.
// It answers regardless of whether the recognizer has been initialized.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"model":    h.config.Face.Model,
		"detector": h.config.Face.Detector,
	})
}
