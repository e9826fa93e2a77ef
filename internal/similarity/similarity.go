// Package similarity decides whether two face embeddings belong to the same
// identity using cosine distance.
package similarity

import "math"

// MatchThreshold is the maximum cosine distance for a match.
// Tuned for ArcFace embeddings under base normalization; it is not a general
// cosine constant and must be revisited if the recognizer configuration changes.
const MatchThreshold = 0.55

// Result is the outcome of one embedding comparison.
// Similarity and Distance are rounded to 4 digits for display; the match
// decision is taken at full precision before rounding.
type Result struct {
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
	IsMatch    bool    `json:"is_match"`
	Threshold  float64 `json:"threshold"`
}

// Compare computes cosine similarity between two embeddings and applies the
// match policy. It never fails: a zero-magnitude vector on either side yields
// similarity 0 and distance 1 rather than an error. Raw signed similarity is
// preserved; negative values are not clamped.
func Compare(e1, e2 []float64) Result {
	return CompareWithThreshold(e1, e2, MatchThreshold)
}

// CompareWithThreshold is Compare with an explicit distance threshold.
func CompareWithThreshold(e1, e2 []float64, threshold float64) Result {
	var dot, norm1, norm2 float64
	n := min(len(e1), len(e2))
	for i := 0; i < n; i++ {
		dot += e1[i] * e2[i]
	}
	for _, v := range e1 {
		norm1 += v * v
	}
	for _, v := range e2 {
		norm2 += v * v
	}

	if norm1 == 0 || norm2 == 0 {
		return Result{
			Similarity: 0.0,
			Distance:   1.0,
			IsMatch:    false,
			Threshold:  threshold,
		}
	}

	sim := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	dist := 1 - sim

	return Result{
		Similarity: round4(sim),
		Distance:   round4(dist),
		IsMatch:    dist < threshold,
		Threshold:  threshold,
	}
}

// round4 rounds half away from zero to 4 decimal digits.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
