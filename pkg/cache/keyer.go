package cache

import "time"

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Static     bool    `json:"static,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
	Font       string  `json:"font,omitempty"`
}

// FrameKeyOpts are the chart options that change a recorded frame.
type FrameKeyOpts struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Seed     uint64        `json:"seed"`
	Palette  []string      `json:"palette,omitempty"`
	Neutral  string        `json:"neutral,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Stagger  time.Duration `json:"stagger,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FrameKey identifies the frame rendered from a data view.
	FrameKey(dataHash string, opts FrameKeyOpts) string

	// ArtifactKey identifies one encoded output of a frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FrameKey(dataHash string, opts FrameKeyOpts) string {
	return hashKey("frame", dataHash, opts)
}

func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}
