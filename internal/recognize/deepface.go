package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
)

const defaultBackendURL = "http://localhost:8008"

// DeepFaceProvider implements Recognizer against a DeepFace-style HTTP backend.
// The backend owns the heavyweight model weights; this client only ships
// rasters over the wire and shapes the response.
type DeepFaceProvider struct {
	parsedURL *url.URL
	model     string
	detector  string
	client    *http.Client
}

// NewDeepFaceProvider creates a recognizer client for the given backend.
// The model/detector pair fixes the recognizer configuration; alignment and
// base normalization are always requested since the downstream similarity
// threshold is tuned for them.
func NewDeepFaceProvider(baseURL, model, detector string) (*DeepFaceProvider, error) {
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid face backend URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid face backend URL scheme %q: must be http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("invalid face backend URL: missing host")
	}
	return &DeepFaceProvider{
		parsedURL: parsed,
		model:     model,
		detector:  detector,
		client:    &http.Client{},
	}, nil
}

// representRequest is the wire format for the backend's /represent endpoint.
type representRequest struct {
	Img           string `json:"img"` // base64 encoded JPEG
	Model         string `json:"model"`
	Detector      string `json:"detector"`
	Align         bool   `json:"align"`
	Normalization string `json:"normalization"`
}

// representResponse is the backend's reply: one result per detected face.
type representResponse struct {
	Results []representResult `json:"results"`
	Error   string            `json:"error,omitempty"`
}

type representResult struct {
	Embedding  []float64 `json:"embedding"`
	FacialArea Area      `json:"facial_area"`
}

// DetectAndEmbed sends the raster to the backend and returns one detection
// per face found. Zero faces is ErrNoFace, everything else ErrInference.
func (p *DeepFaceProvider) DetectAndEmbed(ctx context.Context, raster *imaging.Raster) ([]Detection, error) {
	jpg, err := imaging.EncodeJPEG(raster)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	payload := representRequest{
		Img:           base64.StdEncoding.EncodeToString(jpg),
		Model:         p.model,
		Detector:      p.detector,
		Align:         true,   // alignment materially changes embedding quality
		Normalization: "base", // must match the similarity threshold's convention
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.parsedURL.String()+"/represent", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrInference, err)
	}

	var parsed representResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid backend response: %v", ErrInference, err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrNoFace
	}
	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return nil, fmt.Errorf("%w: backend returned %d: %s", ErrInference, resp.StatusCode, msg)
	}

	if len(parsed.Results) == 0 {
		return nil, ErrNoFace
	}

	detections := make([]Detection, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		detections = append(detections, Detection{
			Area:      r.FacialArea,
			Embedding: r.Embedding,
		})
	}
	return detections, nil
}
