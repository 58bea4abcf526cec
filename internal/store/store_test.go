package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Both implementations must satisfy the same contract.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"sqlite": sq,
		"memory": NewMemoryStore(),
	}
}

func sampleRecord(path string, embedding []float32) *FileRecord {
	return &FileRecord{
		Path:         path,
		ContentHash:  "abc123",
		LastModified: time.Unix(0, 1700000000123456789),
		Size:         42,
		FileType:     ".txt",
		Metadata:     map[string]any{"content_length": float64(42), "line_count": float64(3)},
		Embedding:    embedding,
	}
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleRecord("/tmp/a.txt", []float32{0.5, -1.25, 3})
			require.NoError(t, st.Put(want))

			got, err := st.Get("/tmp/a.txt")
			require.NoError(t, err)
			require.Equal(t, want.Path, got.Path)
			require.Equal(t, want.ContentHash, got.ContentHash)
			require.True(t, want.LastModified.Equal(got.LastModified))
			require.Equal(t, want.Size, got.Size)
			require.Equal(t, want.FileType, got.FileType)
			require.Equal(t, want.Metadata, got.Metadata)
			require.Equal(t, want.Embedding, got.Embedding)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get("/nope")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_PutOverwritesWholesale(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Put(sampleRecord("/tmp/a.txt", []float32{1, 2})))

			// Second write drops the embedding and metadata entirely.
			require.NoError(t, st.Put(&FileRecord{
				Path:        "/tmp/a.txt",
				ContentHash: "def456",
				Size:        7,
			}))

			got, err := st.Get("/tmp/a.txt")
			require.NoError(t, err)
			require.Equal(t, "def456", got.ContentHash)
			require.Nil(t, got.Embedding)
			require.Nil(t, got.Metadata)
		})
	}
}

func TestStore_AllWithEmbedding(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Put(sampleRecord("/b.txt", []float32{2})))
			require.NoError(t, st.Put(sampleRecord("/a.txt", []float32{1})))
			require.NoError(t, st.Put(sampleRecord("/c.bin", nil)))

			items, err := st.AllWithEmbedding()
			require.NoError(t, err)
			require.Len(t, items, 2, "record without embedding must be excluded")
			require.Equal(t, "/a.txt", items[0].Path, "ordering must be stable by path")
			require.Equal(t, "/b.txt", items[1].Path)
			require.Equal(t, []float32{1}, items[0].Embedding)
		})
	}
}

func TestStore_ExistsAndCounts(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := st.Exists("/a.txt")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, st.Put(sampleRecord("/a.txt", []float32{1})))
			require.NoError(t, st.Put(sampleRecord("/c.bin", nil)))

			ok, err = st.Exists("/a.txt")
			require.NoError(t, err)
			require.True(t, ok)

			total, embedded, err := st.Counts()
			require.NoError(t, err)
			require.Equal(t, 2, total)
			require.Equal(t, 1, embedded)
		})
	}
}

func TestStore_ConcurrentPutsSamePath(t *testing.T) {
	// Indexer workers can race on the same path; the surviving row must be
	// one writer's record in full, never fields from two writers.
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			const writers = 8
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					rec := sampleRecord("/tmp/raced.txt", []float32{float32(i)})
					rec.ContentHash = fmt.Sprintf("hash-%d", i)
					rec.Size = int64(i)
					if err := st.Put(rec); err != nil {
						t.Errorf("Put: %v", err)
					}
				}(i)
			}
			wg.Wait()

			got, err := st.Get("/tmp/raced.txt")
			require.NoError(t, err)
			require.Len(t, got.Embedding, 1)
			winner := int(got.Embedding[0])
			require.Equal(t, fmt.Sprintf("hash-%d", winner), got.ContentHash)
			require.Equal(t, int64(winner), got.Size)

			total, _, err := st.Counts()
			require.NoError(t, err)
			require.Equal(t, 1, total)
		})
	}
}

func TestVectorCodec(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.14159}
	out, err := decodeVector(encodeVector(in))
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = decodeVector([]byte{1, 2, 3})
	require.Error(t, err)

	none, err := decodeVector(nil)
	require.NoError(t, err)
	require.Nil(t, none)
}
