package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/onepercent/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	cfg := Default()
	if cfg.Render.Width != 800 || cfg.Render.Height != 600 || cfg.Render.Seed != 42 {
		t.Errorf("render defaults = %+v", cfg.Render)
	}
	if a := cfg.AnimationConfig(); a.Duration != 200*time.Millisecond || a.Stagger != 6*time.Millisecond {
		t.Errorf("animation defaults = %+v", a)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[chart]
palette = ["#112233", "#abc"]

[animation]
duration = "1s"
stagger = "10ms"

[render]
width = 400
formats = ["svg", "png"]

[cache]
redis_addr = "localhost:6379"
ttl = "1h"

[server]
addr = ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Chart.Palette) != 2 || cfg.Chart.Palette[1] != "#abc" {
		t.Errorf("palette = %v", cfg.Chart.Palette)
	}
	if cfg.Chart.Neutral != "#e5e5e5" {
		t.Errorf("neutral default lost: %q", cfg.Chart.Neutral)
	}
	if cfg.Animation.Duration != time.Second || cfg.Animation.Stagger != 10*time.Millisecond {
		t.Errorf("animation = %+v", cfg.Animation)
	}
	if cfg.Render.Width != 400 || cfg.Render.Height != 600 {
		t.Errorf("render size = %vx%v", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.TTL != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[chart\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[render]\ncolour = 1\n", errors.ErrCodeInvalidConfig},
		{"bad color", "[chart]\nneutral = \"grey\"\n", errors.ErrCodeInvalidConfig},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidConfig},
		{"bad size", "[render]\nwidth = -1\n", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", errors.ErrCodeInvalidConfig},
		{"png raster too large", "[render]\nformats = [\"png\"]\nscale = 40.0\n", errors.ErrCodeInvalidConfig},
		{"cache dir traversal", "[cache]\ndir = \"../../etc\"\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := Resolve("")
	if err != nil || path != "" || cfg.Render.Width != 800 {
		t.Fatalf("Resolve(\"\") = %v, %q, %v", cfg, path, err)
	}

	explicit := writeConfig(t, "[render]\nseed = 7\n")
	cfg, path, err = Resolve(explicit)
	if err != nil || path != explicit || cfg.Render.Seed != 7 {
		t.Fatalf("Resolve(explicit) = %+v, %q, %v", cfg.Render, path, err)
	}

	if _, _, err := Resolve(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Resolve(missing) err = %v", err)
	}
}
