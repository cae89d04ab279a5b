package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, path string, onChange func()) *KnowledgeWatcher {
	t.Helper()
	w := NewKnowledgeWatcher(path, onChange, nil)
	w.debounce = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestKnowledgeWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yaml")
	if err := os.WriteFile(path, []byte("- question: q\n  answer: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	newTestWatcher(t, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	if err := os.WriteFile(path, []byte("- question: q2\n  answer: a2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the reload callback")
	}
}

func TestKnowledgeWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	newTestWatcher(t, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("callback fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestKnowledgeWatcher_StopDuringEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewKnowledgeWatcher(path, func() {}, nil)
	w.debounce = 10 * time.Millisecond
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writing := make(chan struct{})
	go func() {
		defer close(writing)
		for i := 0; i < 50; i++ {
			_ = os.WriteFile(path, []byte("[]\n"), 0o644)
		}
	}()

	// Stop while writes are still landing; the event loop must drain and
	// exit without touching the closed watcher.
	w.Stop()
	<-writing
	w.Stop()
}

func TestKnowledgeWatcher_StartTwiceAndStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewKnowledgeWatcher(path, func() {}, nil)
	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err != nil {
		t.Errorf("second Start returned %v", err)
	}
	w.Stop()
	w.Stop()
}
