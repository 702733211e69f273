package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	if err := os.WriteFile(path, []byte("solid a"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("solid b"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		if p != abs {
			t.Errorf("callback path failed: expected %s, got %s", abs, p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changed:
		t.Error("burst of writes reported more than once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnwatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{path}, func(string) {}); err != nil {
		t.Fatal(err)
	}
	if !fw.Watched(path) {
		t.Error("expected file to be watched")
	}

	fw.Unwatch([]string{path})
	if fw.Watched(path) {
		t.Error("expected file to be unwatched")
	}
}
