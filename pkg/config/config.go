// Package config loads the onepercent configuration file.
//
// The file is TOML. Every key is optional; [Default] supplies the values a
// missing key takes. Command-line flags override file values.
//
//	[chart]
//	palette = ["#00ACE4", "#00D8A5"]
//	neutral = "#e5e5e5"
//
//	[animation]
//	duration = "200ms"
//	stagger = "6ms"
//
//	[render]
//	width = 800
//	height = 600
//	formats = ["svg", "png"]
//	seed = 42
//
//	[cache]
//	dir = "/var/cache/onepercent"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[history]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "onepercent"
//
//	[server]
//	addr = ":8080"
package config

import (
	"time"

	"github.com/matzehuels/onepercent/pkg/core/anim"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
)

// Config is the complete configuration.
type Config struct {
	Chart     Chart     `toml:"chart"`
	Animation Animation `toml:"animation"`
	Render    Render    `toml:"render"`
	Cache     Cache     `toml:"cache"`
	History   History   `toml:"history"`
	Server    Server    `toml:"server"`
}

// Chart holds the color settings.
type Chart struct {
	Palette []string `toml:"palette"`
	Neutral string   `toml:"neutral"`
}

// Animation holds transition timing.
type Animation struct {
	Duration time.Duration `toml:"duration"`
	Stagger  time.Duration `toml:"stagger"`
}

// Render holds output defaults.
type Render struct {
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Formats []string `toml:"formats"`
	Seed    uint64   `toml:"seed"`
	Scale   float64  `toml:"scale"`

	Background string `toml:"background"`
	Font       string `toml:"font"`
}

// Cache selects and configures the artifact cache. A non-empty RedisAddr
// selects Redis; otherwise a file cache under Dir is used.
type Cache struct {
	Disabled  bool          `toml:"disabled"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// History selects the render history store. An empty MongoURI keeps
// history in memory.
type History struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
	Limit    int    `toml:"limit"`
}

// Server configures the HTTP server.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: Chart{
			Palette: append([]string(nil), dataset.Palette...),
			Neutral: dataset.Neutral,
		},
		Animation: Animation{
			Duration: anim.DefaultDuration,
			Stagger:  anim.DefaultStagger,
		},
		Render: Render{
			Width:   800,
			Height:  600,
			Formats: []string{"svg"},
			Seed:    42,
			Scale:   1,
		},
		Cache: Cache{
			TTL: 24 * time.Hour,
		},
		History: History{
			Database: "onepercent",
			Limit:    50,
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// AnimationConfig converts the animation section for the scheduler.
func (c *Config) AnimationConfig() anim.Config {
	return anim.Config{Duration: c.Animation.Duration, Stagger: c.Animation.Stagger}
}
