// Package archive loads dated archive records from disk or SQLite and normalizes
// them into timeline items.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/tOgg1/chrono/internal/config"
	"github.com/tOgg1/chrono/internal/timeline"
)

var (
	// ErrInvalidRecord marks a record that cannot be placed on the timeline.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnknownSource is returned by OpenSource for an unsupported data.source.
	ErrUnknownSource = errors.New("unknown data source")
)

// Record is the on-disk form of an archive entry.
type Record struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Date      string          `json:"date"`
	Creator   string          `json:"creator,omitempty"`
	Summary   string          `json:"summary,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	Links     []timeline.Link `json:"links,omitempty"`
}

// Rejected describes a record Normalize dropped.
type Rejected struct {
	Index  int
	ID     string
	Title  string
	Reason string
}

func (r Rejected) Error() string {
	return fmt.Sprintf("%v: record %d (%q): %s", ErrInvalidRecord, r.Index, r.Title, r.Reason)
}

func (r Rejected) Unwrap() error { return ErrInvalidRecord }

// Source yields the normalized, sorted dataset.
type Source interface {
	Load(ctx context.Context) ([]timeline.Item, error)
	Close() error
}

// OpenSource selects the Source named by cfg.Source.
func OpenSource(cfg config.DataConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return NewFileSource(cfg.Path), nil
	case config.SourceSQLite:
		return Open(cfg.Database)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
