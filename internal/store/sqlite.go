package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists FileRecords in a single SQLite database file. The
// pool is capped at one connection, so concurrent upserts queue on it and
// resolve last-write-wins with no partial rows.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens/creates the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", dbPath, err)
	}
	// One connection serializes the indexer's concurrent writers instead of
	// racing them into SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	// WAL keeps single-file durability while letting readers overlap the
	// indexer's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot configure database %s: %w", dbPath, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot initialize schema in %s: %w", dbPath, err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		last_modified INTEGER NOT NULL,
		size INTEGER NOT NULL,
		file_type TEXT,
		metadata TEXT,
		embedding BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_files_file_type ON files(file_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put upserts the record keyed by path. The write commits before Put
// returns, so an interrupted indexing run resumes from what is on disk.
func (s *SQLiteStore) Put(record *FileRecord) error {
	if record == nil || record.Path == "" {
		return errors.New("record with path required")
	}
	var metaJSON any
	if record.Metadata != nil {
		b, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("cannot encode metadata for %s: %w", record.Path, err)
		}
		metaJSON = string(b)
	}
	var blob any
	if record.Embedding != nil {
		blob = encodeVector(record.Embedding)
	}
	query := `
	INSERT INTO files (path, content_hash, last_modified, size, file_type, metadata, embedding)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		content_hash=excluded.content_hash,
		last_modified=excluded.last_modified,
		size=excluded.size,
		file_type=excluded.file_type,
		metadata=excluded.metadata,
		embedding=excluded.embedding
	`
	_, err := s.db.Exec(query,
		record.Path,
		record.ContentHash,
		record.LastModified.UnixNano(),
		record.Size,
		record.FileType,
		metaJSON,
		blob,
	)
	if err != nil {
		return fmt.Errorf("cannot store record for %s: %w", record.Path, err)
	}
	return nil
}

// Get returns the record for path, or ErrNotFound.
func (s *SQLiteStore) Get(path string) (*FileRecord, error) {
	row := s.db.QueryRow(
		`SELECT path, content_hash, last_modified, size, file_type, metadata, embedding
		 FROM files WHERE path = ?`, path)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Exists reports whether a record is stored for path.
func (s *SQLiteStore) Exists(path string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM files WHERE path = ?`, path).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllWithEmbedding returns every embedded record ordered by path. The path
// ordering gives callers a stable positional correspondence between this
// snapshot and the cluster arrays computed from it.
func (s *SQLiteStore) AllWithEmbedding() ([]PathEmbedding, error) {
	rows, err := s.db.Query(
		`SELECT path, embedding FROM files WHERE embedding IS NOT NULL ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PathEmbedding
	for rows.Next() {
		var path string
		var blob []byte
		if err := rows.Scan(&path, &blob); err != nil {
			return nil, err
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt embedding for %s: %w", path, err)
		}
		out = append(out, PathEmbedding{Path: path, Embedding: vec})
	}
	return out, rows.Err()
}

// Counts returns total records and how many carry an embedding.
func (s *SQLiteStore) Counts() (int, int, error) {
	var total, embedded int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&total); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM files WHERE embedding IS NOT NULL`).Scan(&embedded); err != nil {
		return 0, 0, err
	}
	return total, embedded, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*FileRecord, error) {
	var (
		rec      FileRecord
		mtime    int64
		fileType sql.NullString
		metaJSON sql.NullString
		blob     []byte
	)
	if err := row.Scan(&rec.Path, &rec.ContentHash, &mtime, &rec.Size, &fileType, &metaJSON, &blob); err != nil {
		return nil, err
	}
	rec.LastModified = time.Unix(0, mtime)
	rec.FileType = fileType.String
	if metaJSON.Valid && metaJSON.String != "" {
		if err := json.Unmarshal([]byte(metaJSON.String), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("corrupt metadata for %s: %w", rec.Path, err)
		}
	}
	vec, err := decodeVector(blob)
	if err != nil {
		return nil, fmt.Errorf("corrupt embedding for %s: %w", rec.Path, err)
	}
	rec.Embedding = vec
	return &rec, nil
}
