package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes args against a fresh CLI with isolated config and cache
// directories and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "value.csv")
	if err := os.WriteFile(input, []byte("42,answer\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "config.toml")
	cacheRoot := filepath.Join(dir, "cache")
	if err := os.WriteFile(cfg, []byte("[cache]\ndir = \""+filepath.ToSlash(cacheRoot)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--config", cfg, "render", input, "-f", "svg,json", "-o", filepath.Join(dir, "out")); err != nil {
		t.Fatalf("render: %v", err)
	}
	out, err := runCLI(t, "--config", cfg, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}
}
