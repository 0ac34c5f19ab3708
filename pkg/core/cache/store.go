package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	frerror "github.com/msto63/frege/foundation/core/error"
)

// Key identifies rendered output: the source hash plus the output format
type Key struct {
	Hash   string
	Format string
}

// KeyFor derives the key for source rendered in format
func KeyFor(source, format string) Key {
	sum := sha256.Sum256([]byte(source))
	return Key{Hash: hex.EncodeToString(sum[:]), Format: format}
}

// String returns hash:format with a shortened hash
func (k Key) String() string {
	hash := k.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return hash + ":" + k.Format
}

// Entry is one cached rendering
type Entry struct {
	ID         string    `json:"id"`
	Key        Key       `json:"-"`
	Name       string    `json:"name"`
	Output     []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	AccessedAt time.Time `json:"accessed_at"`
	Hits       int64     `json:"hits"`
}

// Stats summarizes a store
type Stats struct {
	Entries     int64            `json:"entries"`
	Bytes       int64            `json:"bytes"`
	Hits        int64            `json:"hits"`
	ByFormat    map[string]int64 `json:"by_format"`
	OldestEntry time.Time        `json:"oldest_entry"`
	NewestEntry time.Time        `json:"newest_entry"`
}

// Store defines the interface for rendered output persistence
type Store interface {
	Get(ctx context.Context, key Key) (*Entry, bool, error)
	Put(ctx context.Context, entry *Entry) error
	Stats(ctx context.Context) (*Stats, error)

	// Maintenance
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Vacuum(ctx context.Context) error
	Close() error
}

func storeError(err error, op, message string) error {
	return frerror.Wrap(err, message).
		WithCode(frerror.CodeCache).
		WithOperation(op)
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return SQLiteConfig{
		Path: filepath.Join(dir, "frege", "cache.db"),
	}
}

// NewSQLiteStore opens or creates the cache database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storeError(err, "cache.open", "failed to create cache directory")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, storeError(err, "cache.open", "failed to open cache database")
	}

	store := &SQLiteStore{db: db, path: cfg.Path}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storeError(err, "cache.open", "failed to initialize cache schema")
	}

	return store, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renderings (
		id TEXT NOT NULL,
		hash TEXT NOT NULL,
		format TEXT NOT NULL,
		name TEXT,
		output BLOB NOT NULL,
		created_at DATETIME NOT NULL,
		accessed_at DATETIME NOT NULL,
		hits INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (hash, format)
	);

	CREATE INDEX IF NOT EXISTS idx_renderings_accessed ON renderings(accessed_at);
	CREATE INDEX IF NOT EXISTS idx_renderings_format ON renderings(format);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get looks up key and records the access
func (s *SQLiteStore) Get(ctx context.Context, key Key) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{Key: key}
	var name sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, output, created_at, accessed_at, hits
		FROM renderings WHERE hash = ? AND format = ?
	`, key.Hash, key.Format).Scan(&entry.ID, &name, &entry.Output, &entry.CreatedAt, &entry.AccessedAt, &entry.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError(err, "cache.get", "failed to read cache entry")
	}
	entry.Name = name.String

	now := time.Now()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE renderings SET hits = hits + 1, accessed_at = ? WHERE hash = ? AND format = ?
	`, now, key.Hash, key.Format); err != nil {
		return nil, false, storeError(err, "cache.get", "failed to update cache entry")
	}
	entry.Hits++
	entry.AccessedAt = now

	return entry, true, nil
}

// Put stores or replaces an entry
func (s *SQLiteStore) Put(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.AccessedAt.IsZero() {
		entry.AccessedAt = entry.CreatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO renderings (id, hash, format, name, output, created_at, accessed_at, hits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Key.Hash, entry.Key.Format, entry.Name, entry.Output,
		entry.CreatedAt, entry.AccessedAt, entry.Hits)
	if err != nil {
		return storeError(err, "cache.put", "failed to insert cache entry")
	}

	return nil
}

// Stats returns entry counts and sizes
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByFormat: make(map[string]int64)}

	var oldest, newest sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(LENGTH(output)), 0), COALESCE(SUM(hits), 0),
		       MIN(created_at), MAX(created_at)
		FROM renderings
	`).Scan(&stats.Entries, &stats.Bytes, &stats.Hits, &oldest, &newest)
	if err != nil {
		return nil, storeError(err, "cache.stats", "failed to query cache stats")
	}
	stats.OldestEntry = parseSQLiteTime(oldest)
	stats.NewestEntry = parseSQLiteTime(newest)

	rows, err := s.db.QueryContext(ctx, `SELECT format, COUNT(*) FROM renderings GROUP BY format`)
	if err != nil {
		return nil, storeError(err, "cache.stats", "failed to query cache formats")
	}
	defer rows.Close()

	for rows.Next() {
		var format string
		var count int64
		if err := rows.Scan(&format, &count); err != nil {
			return nil, storeError(err, "cache.stats", "failed to scan cache formats")
		}
		stats.ByFormat[format] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "cache.stats", "failed to read cache formats")
	}

	return stats, nil
}

// parseSQLiteTime reads MIN/MAX aggregates, which lose the DATETIME column
// type and come back as text
func parseSQLiteTime(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	layouts := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Prune removes entries not accessed within olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM renderings WHERE accessed_at < ?`, cutoff)
	if err != nil {
		return 0, storeError(err, "cache.prune", "failed to prune cache")
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// Clear removes all entries
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM renderings`)
	if err != nil {
		return 0, storeError(err, "cache.clear", "failed to clear cache")
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// Vacuum compacts the database file
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return storeError(err, "cache.vacuum", "failed to vacuum cache")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory Store backed by Cache, used for tests and
// short-lived sessions
type MemoryStore struct {
	mu    sync.Mutex // guards entry fields updated on access
	cache *Cache[*Entry]
}

// NewMemoryStore creates a new in-memory store holding up to maxItems
// entries without expiry
func NewMemoryStore(maxItems int) *MemoryStore {
	return &MemoryStore{cache: New[*Entry](Config{MaxItems: maxItems, TTL: -1})}
}

// Get looks up key and records the access
func (s *MemoryStore) Get(_ context.Context, key Key) (*Entry, bool, error) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Hits++
	entry.AccessedAt = time.Now()

	cp := *entry
	return &cp, true, nil
}

// Put stores or replaces an entry
func (s *MemoryStore) Put(_ context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.AccessedAt.IsZero() {
		entry.AccessedAt = entry.CreatedAt
	}
	cp := *entry
	s.cache.Set(entry.Key, &cp)
	return nil
}

// Stats returns entry counts and sizes
func (s *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	stats := &Stats{ByFormat: make(map[string]int64)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Range(func(_ Key, entry *Entry) bool {
		stats.Entries++
		stats.Bytes += int64(len(entry.Output))
		stats.Hits += entry.Hits
		stats.ByFormat[entry.Key.Format]++
		if stats.OldestEntry.IsZero() || entry.CreatedAt.Before(stats.OldestEntry) {
			stats.OldestEntry = entry.CreatedAt
		}
		if entry.CreatedAt.After(stats.NewestEntry) {
			stats.NewestEntry = entry.CreatedAt
		}
		return true
	})
	return stats, nil
}

// Prune removes entries not accessed within olderThan
func (s *MemoryStore) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.cache.DeleteFunc(func(_ Key, entry *Entry) bool {
		return entry.AccessedAt.Before(cutoff)
	})
	return int64(n), nil
}

// Clear removes all entries
func (s *MemoryStore) Clear(_ context.Context) (int64, error) {
	return int64(s.cache.Clear()), nil
}

// Vacuum is a no-op for memory stores
func (s *MemoryStore) Vacuum(_ context.Context) error {
	return nil
}

// Close stops the underlying cache
func (s *MemoryStore) Close() error {
	s.cache.Close()
	return nil
}

// Lookup returns the cached output for key or computes, stores and returns
// it. The boolean reports a cache hit.
func Lookup(ctx context.Context, store Store, key Key, name string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if entry, ok, err := store.Get(ctx, key); err != nil {
		return nil, false, err
	} else if ok {
		return entry.Output, true, nil
	}

	out, err := compute()
	if err != nil {
		return nil, false, err
	}

	if err := store.Put(ctx, &Entry{Key: key, Name: name, Output: out}); err != nil {
		return nil, false, fmt.Errorf("store %s: %w", key, err)
	}
	return out, false, nil
}
