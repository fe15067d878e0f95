// Package history records completed generation runs so they can be listed,
// inspected and re-rendered later.
//
// Three backends are provided: [MemoryStore] for tests and one-shot CLI
// invocations, [SQLiteStore] for a local durable history, and [MongoStore]
// for shared deployments. All backends store the same [Run] record.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planline/planline/pkg/layout"
)

// Run is one completed generation pass.
type Run struct {
	ID        uuid.UUID     `json:"id" bson:"id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	DictHash  string        `json:"dict_hash" bson:"dict_hash"`
	Roots     []string      `json:"roots" bson:"roots"`
	Sequence  []string      `json:"sequence" bson:"sequence"`
	Links     []layout.Link `json:"links" bson:"links"`
	Crossings int           `json:"crossings" bson:"crossings"`
	Planar    bool          `json:"planar" bson:"planar"`
	Steps     int           `json:"steps" bson:"steps"`
	Unmet     int           `json:"unmet" bson:"unmet"`
}

// NewRun creates a run record with a fresh ID and timestamp.
func NewRun() *Run {
	return &Run{ID: uuid.New(), CreatedAt: time.Now().UTC()}
}

// Layout returns the run's sequence and links as a layout for rendering
// or re-checking.
func (r *Run) Layout() *layout.Layout {
	return &layout.Layout{Sequence: r.Sequence, Links: r.Links}
}

// Store is the persistence interface shared by all backends.
type Store interface {
	// Save persists a run record.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. An unknown ID yields ErrCodeRunNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Run, error)

	// List returns the most recent runs, newest first. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases backend resources.
	Close() error
}
