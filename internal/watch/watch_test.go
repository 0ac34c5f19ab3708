package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
)

func startWatcher(t *testing.T, paths []string) <-chan string {
	t.Helper()

	w, err := New(paths, Options{Debounce: 50 * time.Millisecond, Logger: frlog.Discard()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changes <- path })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancel")
		}
	})

	// Run adds the directories after it starts
	time.Sleep(100 * time.Millisecond)
	return changes
}

func waitChange(t *testing.T, changes <-chan string) string {
	t.Helper()
	select {
	case p := <-changes:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return ""
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.fr")
	if err := os.WriteFile(target, []byte("a;"), 0o644); err != nil {
		t.Fatal(err)
	}

	changes := startWatcher(t, []string{target})

	if err := os.WriteFile(filepath.Join(dir, "other.fr"), []byte("b;"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("a = 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := waitChange(t, changes); got != target {
		t.Errorf("changed path = %q, want %q", got, target)
	}

	// Further reports may follow if the writes straddled the quiet period,
	// but never for the unwatched file
	timeout := time.After(300 * time.Millisecond)
	for {
		select {
		case got := <-changes:
			if got != target {
				t.Errorf("unexpected change for %q", got)
			}
		case <-timeout:
			return
		}
	}
}

func TestWatcherReportsRecreatedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.fr")

	changes := startWatcher(t, []string{target})

	if err := os.WriteFile(target, []byte("x;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitChange(t, changes); got != target {
		t.Errorf("changed path = %q, want %q", got, target)
	}

	if err := os.Remove(target); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("y;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitChange(t, changes); got != target {
		t.Errorf("changed path = %q, want %q", got, target)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		code  frerror.Code
	}{
		{"no paths", nil, frerror.CodeInvalidInput},
		{"missing directory", []string{filepath.Join(t.TempDir(), "nope", "a.fr")}, frerror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.paths, Options{Logger: frlog.Discard()})
			if !frerror.HasCode(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
