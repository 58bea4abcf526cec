package embeddings

import (
	"context"
	"math"
	"testing"

	"github.com/mindfulorg/smartfs/internal/vecmath"
)

func TestLocal_FixedDimension(t *testing.T) {
	p := NewLocal(64)
	if p.Dim() != 64 {
		t.Fatalf("Dim: got %d want 64", p.Dim())
	}
	v, err := p.Embed(context.Background(), "some text about files")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(v) != 64 {
		t.Fatalf("vector length: got %d want 64", len(v))
	}
}

func TestLocal_Deterministic(t *testing.T) {
	p := NewLocal(0)
	a, err := p.Embed(context.Background(), "machine learning document")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := p.Embed(context.Background(), "machine learning document")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLocal_EmptyTextDoesNotFail(t *testing.T) {
	p := NewLocal(32)
	v, err := p.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed empty: %v", err)
	}
	if len(v) != 32 {
		t.Fatalf("vector length: got %d want 32", len(v))
	}
	for _, x := range v {
		if x != 0 {
			t.Fatalf("empty text should embed to the zero vector, got %v", v)
		}
	}
}

func TestLocal_UnitNorm(t *testing.T) {
	p := NewLocal(0)
	v, err := p.Embed(context.Background(), "files clusters embeddings search")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1) > 1e-5 {
		t.Fatalf("norm² = %v, want 1", sum)
	}
}

func TestLocal_SimilarTextsScoreHigher(t *testing.T) {
	p := NewLocal(0)
	ctx := context.Background()
	query, _ := p.Embed(ctx, "machine learning models")
	related, _ := p.Embed(ctx, "machine learning document")
	unrelated, _ := p.Embed(ctx, "banana bread recipe collection")

	simRelated, err := vecmath.Cosine(query, related)
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	simUnrelated, err := vecmath.Cosine(query, unrelated)
	if err != nil {
		t.Fatalf("Cosine: %v", err)
	}
	if simRelated <= simUnrelated {
		t.Fatalf("related %v should outscore unrelated %v", simRelated, simUnrelated)
	}
}
