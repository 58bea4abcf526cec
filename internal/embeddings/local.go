package embeddings

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/mindfulorg/smartfs/internal/vecmath"
)

// DefaultDim is the local provider's vector dimension when none is configured.
const DefaultDim = 256

// localProvider embeds text with signed feature hashing over term
// frequencies: each token hashes to one bucket of a fixed-size vector, with
// a hash-derived sign so unrelated collisions tend to cancel. The result is
// L2-normalized, so dot product equals cosine similarity.
//
// The model has no corpus state, which makes embeddings bitwise-stable
// across processes, not just within one.
type localProvider struct {
	dim          int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewLocal returns the offline deterministic provider with the given
// dimension (DefaultDim when dim <= 0).
func NewLocal(dim int) Provider {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &localProvider{
		dim:          dim,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
		stopwords:    defaultStopwords(),
	}
}

func (p *localProvider) ModelID() string { return "local:fnv1a" }

func (p *localProvider) Dim() int { return p.dim }

// Embed never fails: empty or stopword-only text yields the zero vector.
func (p *localProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	vec := make([]float32, p.dim)
	for _, tok := range p.tokenize(text) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(tok))
		sum := h.Sum64()
		idx := int(sum % uint64(p.dim))
		if sum&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	return vecmath.NormalizeL2(vec), nil
}

func (p *localProvider) tokenize(text string) []string {
	raw := p.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := p.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "than", "so",
		"such", "into", "about", "between", "through", "during", "before",
		"after", "above", "below", "out", "off", "own", "same", "too",
		"very", "can", "will", "just", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
