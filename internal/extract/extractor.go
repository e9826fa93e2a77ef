// Package extract orchestrates decoding and recognition into a single
// embedding extraction result.
package extract

import (
	"context"

	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
	"github.com/rishiparsad75/pixland-face-service/internal/recognize"
)

// Result is one successful extraction: the primary face's embedding plus
// enough metadata for callers to judge ambiguity. Nothing is persisted.
type Result struct {
	Embedding    []float64
	EmbeddingDim int
	FaceCount    int
	FaceArea     recognize.Area
	Model        string
}

// Extractor runs the decode → detect pipeline with a fixed recognizer
// configuration. Failures keep their category: decode errors surface as
// imaging.ErrDecode, recognition failures as recognize.ErrNoFace or
// recognize.ErrInference, never re-classified and never retried.
type Extractor struct {
	recognizer recognize.Recognizer
	model      string
}

// New creates an extractor backed by the given recognizer.
// The model name is reported verbatim in results.
func New(recognizer recognize.Recognizer, model string) *Extractor {
	return &Extractor{
		recognizer: recognizer,
		model:      model,
	}
}

// ExtractBytes decodes raw image bytes and extracts the primary embedding.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (*Result, error) {
	raster, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return e.extract(ctx, raster)
}

// ExtractString decodes a base64 or data-URI payload and extracts the
// primary embedding.
func (e *Extractor) ExtractString(ctx context.Context, payload string) (*Result, error) {
	raster, err := imaging.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	return e.extract(ctx, raster)
}

func (e *Extractor) extract(ctx context.Context, raster *imaging.Raster) (*Result, error) {
	detections, err := e.recognizer.DetectAndEmbed(ctx, raster)
	if err != nil {
		return nil, err
	}
	if len(detections) == 0 {
		return nil, recognize.ErrNoFace
	}

	// Index 0 is the primary face. More than one face is not an error;
	// FaceCount lets callers warn about ambiguity instead.
	primary := detections[0]

	return &Result{
		Embedding:    primary.Embedding,
		EmbeddingDim: len(primary.Embedding),
		FaceCount:    len(detections),
		FaceArea:     primary.Area,
		Model:        e.model,
	}, nil
}
