package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/onepercent/pkg/pipeline"
)

func newTestWatchSession(t *testing.T, input string) (*watchSession, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetOutput(&out)

	opts := c.baseOptions()
	opts.Input = input
	opts.Formats = []string{pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	s := c.newWatchSession(opts, "")
	t.Cleanup(s.close)
	return s, &out
}

func TestWatchSession_Update(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "share.csv")
	ctx := context.Background()

	if err := os.WriteFile(input, []byte("40,first\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, out := newTestWatchSession(t, input)
	if err := s.update(ctx); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if len(s.chart.Scene()) != 100 {
		t.Fatalf("scene has %d circles, want 100", len(s.chart.Scene()))
	}

	if err := os.WriteFile(input, []byte("60,second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.update(ctx); err != nil {
		t.Fatalf("second update: %v", err)
	}
	frame := s.rec.Frame()
	if frame.Label.Text != "60%" || frame.Label.Description != "second" {
		t.Errorf("label = %+v", frame.Label)
	}
	if !strings.Contains(out.String(), "share.json") {
		t.Errorf("output does not list written file: %q", out.String())
	}
}

func TestWatchSession_EmptyFileKeepsChart(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "share.json")
	if err := os.WriteFile(input, []byte(`[[25]]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := newTestWatchSession(t, input)
	if err := s.update(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(input, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.update(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.rec.Frame().Label.Text; got != "25%" {
		t.Errorf("label = %q, want unchanged 25%%", got)
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "share.csv")
	if err := os.WriteFile(path, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("no change notification")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile returned %v", err)
	}
}
