// Package history records the charts a server or CLI has rendered.
//
// A [Store] keeps one [Entry] per render. [MemoryStore] holds a bounded list
// in process; [MongoStore] persists entries in a MongoDB collection so that
// several server instances share one history.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/onepercent/pkg/errors"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "history entry not found")

// Entry describes one render.
type Entry struct {
	ID          string    `json:"id" bson:"_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Source      string    `json:"source,omitempty" bson:"source,omitempty"`
	Value       float64   `json:"value" bson:"value"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Color       string    `json:"color" bson:"color"`
	Width       float64   `json:"width" bson:"width"`
	Height      float64   `json:"height" bson:"height"`
	Formats     []string  `json:"formats" bson:"formats"`
	FrameHash   string    `json:"frame_hash" bson:"frame_hash"`
	CacheHit    bool      `json:"cache_hit" bson:"cache_hit"`
}

// NewID returns a fresh entry ID.
func NewID() string { return uuid.NewString() }

// Store persists entries.
type Store interface {
	// Record saves e. An empty ID or zero CreatedAt is filled in.
	Record(ctx context.Context, e *Entry) error

	// Get returns the entry with id or ErrNotFound.
	Get(ctx context.Context, id string) (Entry, error)

	// List returns up to limit entries, newest first. A limit of zero or
	// less returns every entry.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Close releases the store.
	Close(ctx context.Context) error
}

func prepare(e *Entry) {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}
