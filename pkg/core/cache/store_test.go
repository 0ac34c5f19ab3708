package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	frerror "github.com/msto63/frege/foundation/core/error"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	mem := NewMemoryStore(100)

	t.Cleanup(func() {
		sqlite.Close()
		mem.Close()
	})
	return map[string]Store{"sqlite": sqlite, "memory": mem}
}

func TestKeyFor(t *testing.T) {
	a := KeyFor("let x = 1;", "json")
	b := KeyFor("let x = 1;", "json")
	c := KeyFor("let x = 1;", "yaml")
	d := KeyFor("let x = 2;", "json")

	if a != b {
		t.Error("same source and format produced different keys")
	}
	if a == c || a == d {
		t.Error("different inputs produced the same key")
	}
	if len(a.Hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(a.Hash))
	}
	if got := a.String(); got != a.Hash[:12]+":json" {
		t.Errorf("String() = %s", got)
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			key := KeyFor("x;", "sexpr")

			if _, ok, err := store.Get(ctx, key); err != nil || ok {
				t.Fatalf("Get() on empty store = %v, %v", ok, err)
			}

			entry := &Entry{Key: key, Name: "a.fr", Output: []byte("(program x)")}
			if err := store.Put(ctx, entry); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if entry.ID == "" || entry.CreatedAt.IsZero() {
				t.Error("Put() did not fill ID and CreatedAt")
			}

			got, ok, err := store.Get(ctx, key)
			if err != nil || !ok {
				t.Fatalf("Get() = %v, %v", ok, err)
			}
			if string(got.Output) != "(program x)" || got.Name != "a.fr" {
				t.Errorf("Get() = %+v", got)
			}
			if got.Hits != 1 {
				t.Errorf("Hits = %d, want 1", got.Hits)
			}

			again, _, _ := store.Get(ctx, key)
			if again.Hits != 2 {
				t.Errorf("Hits after second read = %d, want 2", again.Hits)
			}

			// replace keeps a single entry per key
			if err := store.Put(ctx, &Entry{Key: key, Output: []byte("(program y)")}); err != nil {
				t.Fatalf("Put() replace error = %v", err)
			}
			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Entries != 1 || stats.ByFormat["sexpr"] != 1 {
				t.Errorf("Stats() = %+v", stats)
			}
			if stats.Bytes != int64(len("(program y)")) {
				t.Errorf("Bytes = %d", stats.Bytes)
			}
		})
	}
}

func TestStore_PruneAndClear(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			old := time.Now().Add(-48 * time.Hour)
			if err := store.Put(ctx, &Entry{Key: KeyFor("old", "json"), Output: []byte("{}"), CreatedAt: old, AccessedAt: old}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := store.Put(ctx, &Entry{Key: KeyFor("new", "json"), Output: []byte("{}")}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := store.Put(ctx, &Entry{Key: KeyFor("new", "yaml"), Output: []byte("a: 1")}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			deleted, err := store.Prune(ctx, 24*time.Hour)
			if err != nil || deleted != 1 {
				t.Errorf("Prune() = %d, %v, want 1", deleted, err)
			}
			if _, ok, _ := store.Get(ctx, KeyFor("old", "json")); ok {
				t.Error("pruned entry still present")
			}

			if err := store.Vacuum(ctx); err != nil {
				t.Errorf("Vacuum() error = %v", err)
			}

			cleared, err := store.Clear(ctx)
			if err != nil || cleared != 2 {
				t.Errorf("Clear() = %d, %v, want 2", cleared, err)
			}
			stats, _ := store.Stats(ctx)
			if stats.Entries != 0 {
				t.Errorf("Entries after Clear = %d", stats.Entries)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			key := KeyFor("1;", "json")
			calls := 0
			compute := func() ([]byte, error) {
				calls++
				return []byte(`{"type":"Program"}`), nil
			}

			out, hit, err := Lookup(ctx, store, key, "inline", compute)
			if err != nil || hit || string(out) != `{"type":"Program"}` {
				t.Fatalf("first Lookup() = %s, %v, %v", out, hit, err)
			}
			out, hit, err = Lookup(ctx, store, key, "inline", compute)
			if err != nil || !hit || string(out) != `{"type":"Program"}` {
				t.Fatalf("second Lookup() = %s, %v, %v", out, hit, err)
			}
			if calls != 1 {
				t.Errorf("compute called %d times, want 1", calls)
			}

			boom := errors.New("boom")
			_, _, err = Lookup(ctx, store, KeyFor("2;", "json"), "inline", func() ([]byte, error) { return nil, boom })
			if !errors.Is(err, boom) {
				t.Errorf("Lookup() error = %v, want boom", err)
			}
		})
	}
}

func TestSQLiteStore_Errors(t *testing.T) {
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "c.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	store.Close()

	_, _, err = store.Get(context.Background(), KeyFor("x", "json"))
	if !frerror.HasCode(err, frerror.CodeCache) {
		t.Errorf("Get() on closed store code = %s, want %s", frerror.GetCode(err), frerror.CodeCache)
	}
}
