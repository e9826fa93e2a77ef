// Package recognize defines the face recognition capability consumed by the
// extraction pipeline and its HTTP-backed implementation.
package recognize

import (
	"context"
	"errors"

	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
)

var (
	// ErrNoFace reports that detection ran successfully but found zero faces.
	// Callers must be able to tell this apart from a backend failure.
	ErrNoFace = errors.New("no face detected")

	// ErrInference marks transport or backend failures during detection.
	ErrInference = errors.New("inference failed")
)

// Area is a face bounding region in pixel coordinates.
type Area struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Detection is one detected face: its bounding region and embedding.
// Embeddings are comparable only between detections produced by the same
// recognizer configuration.
type Detection struct {
	Area      Area
	Embedding []float64
}

// Recognizer detects faces in a raster and returns one embedding per face.
// Implementations must return ErrNoFace when zero faces are found and wrap
// every other failure in ErrInference. Ordering of detections is
// implementation-defined; index 0 is treated as the primary face.
type Recognizer interface {
	DetectAndEmbed(ctx context.Context, raster *imaging.Raster) ([]Detection, error)
}
