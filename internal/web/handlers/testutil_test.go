package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http/httptest"
	"testing"

	"github.com/rishiparsad75/pixland-face-service/internal/config"
	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
	"github.com/rishiparsad75/pixland-face-service/internal/recognize"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Face: config.Face{
			BackendURL: "http://localhost:8008",
			Model:      "ArcFace",
			Detector:   "opencv",
		},
		Models: config.Models{
			Models: map[string]config.ModelInfo{
				"ArcFace": {Dim: 512, Threshold: 0.55},
			},
		},
	}
}

// stubRecognizer implements recognize.Recognizer with canned output.
type stubRecognizer struct {
	detections []recognize.Detection
	err        error
}

func (s *stubRecognizer) DetectAndEmbed(ctx context.Context, raster *imaging.Raster) ([]recognize.Detection, error) {
	return s.detections, s.err
}

// whiteJPEG encodes a uniformly white, featureless image.
func whiteJPEG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertErrorCode checks if the response carries the expected error code tag
func assertErrorCode(t *testing.T, recorder *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedCode {
		t.Errorf("expected error code '%s', got '%s'", expectedCode, result["error"])
	}
}
