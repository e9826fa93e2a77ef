package similarity

import (
	"math"
	"math/rand"
	"testing"
)

func TestCompare_IdenticalVectors(t *testing.T) {
	v := []float64{0.3, -0.5, 0.8, 0.1}

	res := Compare(v, v)

	if res.Similarity < 0.999 {
		t.Errorf("expected self-similarity >= 0.999, got %f", res.Similarity)
	}
	if res.Distance > 0.001 {
		t.Errorf("expected near-zero self-distance, got %f", res.Distance)
	}
	if !res.IsMatch {
		t.Error("expected identical vectors to match")
	}
	if res.Threshold != MatchThreshold {
		t.Errorf("expected threshold %f, got %f", MatchThreshold, res.Threshold)
	}
}

func TestCompare_OppositeVectors(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{-1, 0, 0}

	res := Compare(a, b)

	// Signed similarity is preserved, not clamped to [0, 1].
	if res.Similarity != -1.0 {
		t.Errorf("expected similarity -1.0, got %f", res.Similarity)
	}
	if res.Distance != 2.0 {
		t.Errorf("expected distance 2.0, got %f", res.Distance)
	}
	if res.IsMatch {
		t.Error("opposite vectors must not match")
	}
}

func TestCompare_OrthogonalVectors(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}

	res := Compare(a, b)

	if res.Similarity != 0.0 {
		t.Errorf("expected similarity 0.0, got %f", res.Similarity)
	}
	if res.Distance != 1.0 {
		t.Errorf("expected distance 1.0, got %f", res.Distance)
	}
	if res.IsMatch {
		t.Error("orthogonal vectors must not match")
	}
}

func TestCompare_ZeroVector(t *testing.T) {
	zero := make([]float64, 512)
	other := make([]float64, 512)
	other[0] = 1

	tests := []struct {
		name string
		a, b []float64
	}{
		{"ZeroFirst", zero, other},
		{"ZeroSecond", other, zero},
		{"BothZero", zero, zero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Compare(tc.a, tc.b)

			if res.Similarity != 0.0 {
				t.Errorf("expected similarity 0.0, got %f", res.Similarity)
			}
			if res.Distance != 1.0 {
				t.Errorf("expected distance 1.0, got %f", res.Distance)
			}
			if res.IsMatch {
				t.Error("zero vector must never match")
			}
		})
	}
}

func TestCompare_RandomHighDimVectorsDoNotMatch(t *testing.T) {
	// Fixed seed: independent 512-dim gaussian vectors concentrate near
	// zero similarity.
	rng := rand.New(rand.NewSource(42))
	a := make([]float64, 512)
	b := make([]float64, 512)
	for i := range a {
		a[i] = rng.NormFloat64()
		b[i] = rng.NormFloat64()
	}

	res := Compare(a, b)

	if res.IsMatch {
		t.Errorf("random 512-dim vectors must not match (similarity %f)", res.Similarity)
	}
	if res.Similarity >= 0.2 {
		t.Errorf("expected similarity < 0.2 for random vectors, got %f", res.Similarity)
	}
}

func TestCompare_MagnitudeInvariance(t *testing.T) {
	a := []float64{0.2, 0.4, -0.1}
	scaled := []float64{2, 4, -1}

	res := Compare(a, scaled)

	if res.Similarity < 0.999 {
		t.Errorf("cosine similarity must ignore magnitude, got %f", res.Similarity)
	}
	if !res.IsMatch {
		t.Error("expected scaled copies to match")
	}
}

func TestCompare_DistanceRoundingRelation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := make([]float64, 64)
		b := make([]float64, 64)
		for i := range a {
			a[i] = rng.NormFloat64()
			b[i] = rng.NormFloat64()
		}

		res := Compare(a, b)

		if math.Abs(res.Distance-(1-res.Similarity)) > 0.0001 {
			t.Fatalf("distance %f inconsistent with similarity %f", res.Distance, res.Similarity)
		}
	}
}

func TestCompare_Idempotent(t *testing.T) {
	a := []float64{0.11111, 0.22222, 0.33333}
	b := []float64{0.44444, 0.55555, 0.66666}

	first := Compare(a, b)
	for i := 0; i < 10; i++ {
		again := Compare(a, b)
		if again != first {
			t.Fatalf("expected bit-identical results, got %+v then %+v", first, again)
		}
	}
}

func TestCompare_RoundedToFourDigits(t *testing.T) {
	a := []float64{1, 1, 0}
	b := []float64{1, 0, 0}

	res := Compare(a, b)

	// cos = 1/sqrt(2) = 0.70710678... -> 0.7071
	if res.Similarity != 0.7071 {
		t.Errorf("expected similarity 0.7071, got %v", res.Similarity)
	}
	if res.Distance != 0.2929 {
		t.Errorf("expected distance 0.2929, got %v", res.Distance)
	}
	if !res.IsMatch {
		t.Error("expected distance 0.2929 < 0.55 to match")
	}
}

func TestCompareWithThreshold_CustomThreshold(t *testing.T) {
	a := []float64{1, 1, 0}
	b := []float64{1, 0, 0}

	strict := CompareWithThreshold(a, b, 0.1)
	if strict.IsMatch {
		t.Error("expected no match under strict threshold")
	}
	if strict.Threshold != 0.1 {
		t.Errorf("expected threshold 0.1 in result, got %f", strict.Threshold)
	}
}

func TestCompare_DecisionUsesFullPrecision(t *testing.T) {
	// Distance just under the threshold before rounding must match even if
	// the rounded display value equals the threshold.
	a := []float64{1, 0}
	theta := math.Acos(1 - (MatchThreshold - 1e-9))
	b := []float64{math.Cos(theta), math.Sin(theta)}

	res := Compare(a, b)

	if !res.IsMatch {
		t.Errorf("expected full-precision distance just under %f to match (rounded: %f)", MatchThreshold, res.Distance)
	}
}
