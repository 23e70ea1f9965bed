package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcher_reportsSettledFiles(t *testing.T) {
	dir := t.TempDir()
	var mu sync.Mutex
	var seen []string
	onContract := func(path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
	}

	w := NewWatcher([]string{dir}, []string{".txt"}, onContract, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "dropped.txt")
	if err := os.WriteFile(path, []byte("1. Payment due in thirty days of invoice."), 0600); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("file never reported")
		case <-time.After(20 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if filepath.Clean(seen[0]) != filepath.Clean(path) {
		t.Errorf("reported %q, want %q", seen[0], path)
	}
}

func TestWatcher_extensionFilter(t *testing.T) {
	dir := t.TempDir()
	var mu sync.Mutex
	var seen []string
	w := NewWatcher([]string{dir}, []string{".pdf", ".docx", ".txt"}, func(path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
	}, WithDebounce(30*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "ignore.png"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 0 {
		t.Errorf("non-matching extension reported: %v", seen)
	}
}

func TestWatcher_createsMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "inbox")
	w := NewWatcher([]string{root}, nil, func(string) {})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if _, err := os.Stat(root); err != nil {
		t.Errorf("root not created: %v", err)
	}
}

func TestWatcher_stopIdempotent(t *testing.T) {
	w := NewWatcher([]string{t.TempDir()}, nil, func(string) {})
	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
