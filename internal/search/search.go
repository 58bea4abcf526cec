// Package search ranks indexed files by cosine similarity to a free-text
// query.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/mindfulorg/smartfs/internal/embeddings"
	"github.com/mindfulorg/smartfs/internal/store"
	"github.com/mindfulorg/smartfs/internal/vecmath"
)

// Result is one ranked file.
type Result struct {
	Path       string  `json:"path"`
	Similarity float64 `json:"similarity"`
}

// Searcher embeds queries and scores them against stored embeddings.
type Searcher struct {
	store    store.Store
	provider embeddings.Provider
}

// New returns a Searcher over the given store and provider. The provider
// must be the one the index was built with; mixing models makes the cosine
// scores meaningless.
func New(st store.Store, prov embeddings.Provider) *Searcher {
	return &Searcher{store: st, provider: prov}
}

// Search returns up to topK files ordered by descending cosine similarity
// to query. topK is clamped to the number of embedded files; an empty store
// yields an empty result, not an error. Ties keep the store's path order.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		return []Result{}, nil
	}
	items, err := s.store.AllWithEmbedding()
	if err != nil {
		return nil, fmt.Errorf("cannot read embeddings: %w", err)
	}
	if len(items) == 0 {
		return []Result{}, nil
	}

	qv, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cannot embed query: %w", err)
	}

	results := make([]Result, 0, len(items))
	for _, it := range items {
		score, err := vecmath.Cosine(qv, it.Embedding)
		if err != nil {
			return nil, fmt.Errorf("cannot score %s: %w", it.Path, err)
		}
		results = append(results, Result{Path: it.Path, Similarity: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}
