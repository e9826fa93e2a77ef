package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rishiparsad75/pixland-face-service/internal/extract"
	"github.com/rishiparsad75/pixland-face-service/internal/recognize"
)

// maxUploadSize limits multipart image uploads (32 MB).
const maxUploadSize = 32 << 20

// ExtractHandler handles face embedding extraction.
type ExtractHandler struct {
	extractor *extract.Extractor
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(extractor *extract.Extractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// extractRequest is the JSON request body for /extract.
type extractRequest struct {
	Image string `json:"image"` // base64 or data URI
}

// extractResponse is the success body for /extract.
type extractResponse struct {
	Embedding    []float64      `json:"embedding"`
	EmbeddingDim int            `json:"embedding_dim"`
	FaceCount    int            `json:"face_count"`
	FaceArea     recognize.Area `json:"face_area"`
	Model        string         `json:"model"`
}

// Extract extracts the primary face embedding from an image.
// Accepts a JSON body {"image": "<base64 or data URI>"} or a multipart
// form with an "image" file field.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	var result *extract.Result
	var err error

	switch {
	case strings.HasPrefix(contentType, "application/json"):
		var req extractRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			respondError(w, http.StatusBadRequest, codeInvalidInput, errInvalidRequestBody)
			return
		}
		if req.Image == "" {
			respondError(w, http.StatusBadRequest, codeInvalidInput, "image is required")
			return
		}
		result, err = h.extractor.ExtractString(r.Context(), req.Image)

	case strings.HasPrefix(contentType, "multipart/form-data"):
		if parseErr := r.ParseMultipartForm(maxUploadSize); parseErr != nil {
			respondError(w, http.StatusBadRequest, codeInvalidInput, "failed to parse multipart form")
			return
		}
		file, _, formErr := r.FormFile("image")
		if formErr != nil {
			respondError(w, http.StatusBadRequest, codeInvalidInput, "image is required")
			return
		}
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			respondError(w, http.StatusBadRequest, codeInvalidInput, "failed to read uploaded file")
			return
		}
		result, err = h.extractor.ExtractBytes(r.Context(), data)

	default:
		respondError(w, http.StatusBadRequest, codeInvalidInput,
			"no image provided: send JSON {\"image\": \"<base64>\"} or a multipart 'image' field")
		return
	}

	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, extractResponse{
		Embedding:    result.Embedding,
		EmbeddingDim: result.EmbeddingDim,
		FaceCount:    result.FaceCount,
		FaceArea:     result.FaceArea,
		Model:        result.Model,
	})
}
