package config

import (
	"slices"

	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// Validate checks cfg for values the renderer cannot use.
func Validate(cfg *Config) error {
	if err := errors.ValidatePalette(cfg.Chart.Palette); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "chart.palette")
	}
	if err := errors.ValidateColor(cfg.Chart.Neutral); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "chart.neutral")
	}
	if cfg.Animation.Duration < 0 || cfg.Animation.Stagger < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "animation timings must not be negative")
	}
	if err := errors.ValidateViewport(cfg.Render.Width, cfg.Render.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render size")
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if cfg.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must not be negative")
	}
	if cfg.Render.Scale > 0 && slices.Contains(cfg.Render.Formats, pipeline.FormatPNG) {
		if err := errors.ValidateRaster(cfg.Render.Width, cfg.Render.Height, cfg.Render.Scale); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.scale")
		}
	}
	if cfg.Render.Background != "" {
		if err := errors.ValidateColor(cfg.Render.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.background")
		}
	}
	if cfg.Cache.Dir != "" {
		if err := errors.ValidatePath(cfg.Cache.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.dir")
		}
	}
	if cfg.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must not be negative")
	}
	return nil
}
