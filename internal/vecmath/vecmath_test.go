package vecmath

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	got, err := Cosine([]float32{1, 0}, []float32{1, 0})
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: got %v want 1", got)
	}

	got, err = Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Fatalf("orthogonal vectors: got %v want 0", got)
	}

	got, err = Cosine([]float32{1, 0}, []float32{-1, 0})
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if math.Abs(got+1) > 1e-9 {
		t.Fatalf("opposite vectors: got %v want -1", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	got, err := Cosine([]float32{0, 0}, []float32{1, 2})
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if got != 0 {
		t.Fatalf("zero vector: got %v want 0", got)
	}
}

func TestCosine_LengthMismatch(t *testing.T) {
	if _, err := Cosine([]float32{1}, []float32{1, 2}); err != ErrVectorLengthMismatch {
		t.Fatalf("got %v want ErrVectorLengthMismatch", err)
	}
}

func TestNormalizeL2(t *testing.T) {
	out := NormalizeL2([]float32{3, 4})
	var sum float64
	for _, x := range out {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Fatalf("norm² = %v, want 1", sum)
	}

	zero := NormalizeL2([]float32{0, 0, 0})
	for _, x := range zero {
		if x != 0 {
			t.Fatalf("zero vector changed: %v", zero)
		}
	}
}
