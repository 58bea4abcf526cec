// Package store persists one FileRecord per indexed path. The SQLite
// implementation is the durable store the CLI uses; the in-memory one backs
// tests and embedded library use.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no record exists for the path.
var ErrNotFound = errors.New("record not found")

// FileRecord is the persisted state of one indexed file. Records are
// replaced wholesale on re-index; the path is the primary key.
type FileRecord struct {
	Path         string
	ContentHash  string
	LastModified time.Time
	Size         int64
	FileType     string
	// Metadata holds auxiliary facts (content_length, line_count) and is
	// only populated for files read as text.
	Metadata map[string]any
	// Embedding is nil for files indexed metadata-only. A nil embedding
	// excludes the record from clustering and search.
	Embedding []float32
}

// PathEmbedding pairs a path with its stored vector.
type PathEmbedding struct {
	Path      string
	Embedding []float32
}

// Store is the content store contract. Implementations must make Put
// last-write-wins per path and keep AllWithEmbedding ordering stable for an
// unchanged store snapshot.
type Store interface {
	// Put inserts or overwrites the record for record.Path.
	Put(record *FileRecord) error
	// Get returns the record for path, or ErrNotFound.
	Get(path string) (*FileRecord, error)
	// Exists reports whether a record is stored for path.
	Exists(path string) (bool, error)
	// AllWithEmbedding returns every record that carries an embedding,
	// ordered by path.
	AllWithEmbedding() ([]PathEmbedding, error)
	// Counts returns the total number of records and how many of them
	// carry an embedding.
	Counts() (total int, withEmbedding int, err error)
	// Close releases underlying resources.
	Close() error
}
