// Package indexer walks directories and turns files into stored FileRecords:
// a chunked content hash and stat metadata for every file, plus an embedding
// for files whose extension marks them as text.
package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/mindfulorg/smartfs/internal/embeddings"
	"github.com/mindfulorg/smartfs/internal/store"
)

// Options configures an Indexer.
type Options struct {
	// TextExtensions is the set of extensions (with leading dot, lowercase)
	// whose files are read as text and embedded.
	TextExtensions []string
	// Workers bounds concurrent file indexing; values < 1 mean sequential.
	Workers int
	// MaxTextBytes caps how large a file may be and still be embedded.
	// Larger text files are indexed metadata-only.
	MaxTextBytes int64
	// Logger receives per-file failures and progress.
	Logger logr.Logger
}

// Summary is the result of one IndexDirectory run.
type Summary struct {
	FilesIndexed int
	FilesFailed  int
	Elapsed      time.Duration
}

// Indexer computes and stores FileRecords.
type Indexer struct {
	store    store.Store
	provider embeddings.Provider
	textExts map[string]struct{}
	workers  int
	maxText  int64
	log      logr.Logger
}

// New returns an Indexer over the given store and embedding provider.
func New(st store.Store, prov embeddings.Provider, opts Options) *Indexer {
	exts := make(map[string]struct{}, len(opts.TextExtensions))
	for _, e := range opts.TextExtensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	maxText := opts.MaxTextBytes
	if maxText <= 0 {
		maxText = 10 << 20
	}
	return &Indexer{
		store:    st,
		provider: prov,
		textExts: exts,
		workers:  workers,
		maxText:  maxText,
		log:      opts.Logger,
	}
}

// IndexDirectory walks root recursively and indexes every regular file.
// Per-file failures are logged and counted; only a missing or unreadable
// root aborts the run. The returned count includes successes only.
func (ix *Indexer) IndexDirectory(ctx context.Context, root string) (Summary, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return Summary{}, fmt.Errorf("directory not found: %s", root)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("not a directory: %s", root)
	}

	var indexed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			ix.log.Error(err, "cannot visit path", "path", path)
			// Only regular files count toward FilesFailed; an unreadable
			// directory is logged but is not a file that failed to index.
			if entry != nil && entry.Type().IsRegular() {
				failed.Add(1)
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		g.Go(func() error {
			if err := ix.IndexFile(gctx, path); err != nil {
				ix.log.Error(err, "cannot index file", "path", path)
				failed.Add(1)
				return nil
			}
			indexed.Add(1)
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if walkErr != nil {
		return Summary{}, walkErr
	}

	sum := Summary{
		FilesIndexed: int(indexed.Load()),
		FilesFailed:  int(failed.Load()),
		Elapsed:      time.Since(start),
	}
	ix.log.V(1).Info("directory indexed",
		"root", root, "indexed", sum.FilesIndexed, "failed", sum.FilesFailed)
	return sum, nil
}

// IndexFile hashes, stats, and (for text files) embeds a single file, then
// upserts its record. Decode failures degrade to a metadata-only record;
// store failures surface as the file's indexing error.
func (ix *Indexer) IndexFile(ctx context.Context, path string) error {
	hash, err := hashFile(path)
	if err != nil {
		return fmt.Errorf("cannot hash %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	rec := &store.FileRecord{
		Path:         path,
		ContentHash:  hash,
		LastModified: info.ModTime(),
		Size:         info.Size(),
		FileType:     strings.ToLower(filepath.Ext(path)),
	}

	if _, isText := ix.textExts[rec.FileType]; isText && info.Size() <= ix.maxText {
		if err := ix.embedText(ctx, path, hash, rec); err != nil {
			return err
		}
	}

	if err := ix.store.Put(rec); err != nil {
		return fmt.Errorf("cannot store %s: %w", path, err)
	}
	return nil
}

// embedText fills rec's metadata and embedding from the file's content.
func (ix *Indexer) embedText(ctx context.Context, path, hash string, rec *store.FileRecord) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		// Wrong extension on binary content; index metadata-only.
		ix.log.V(1).Info("file is not valid UTF-8, skipping embedding", "path", path)
		return nil
	}

	text := string(content)
	rec.Metadata = map[string]any{
		"content_length": len(text),
		"line_count":     strings.Count(text, "\n") + 1,
	}

	// Unchanged content keeps its stored embedding, so re-indexing a large
	// tree only pays for files that actually changed.
	if prev, err := ix.store.Get(path); err == nil &&
		prev.ContentHash == hash && prev.Embedding != nil {
		rec.Embedding = prev.Embedding
		return nil
	}

	vec, err := ix.provider.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("cannot embed %s: %w", path, err)
	}
	rec.Embedding = vec
	return nil
}

// hashFile streams the file through SHA-256 without loading it whole.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
