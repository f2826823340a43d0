// Package catalog talks to the public playlist catalog and translates its
// records into provider-neutral types.
package catalog

import (
	"context"
	"errors"
)

// ErrUpstream indicates the catalog was unreachable, answered with a
// non-success status, or returned a body that could not be decoded.
var ErrUpstream = errors.New("catalog unavailable")

// Playlist describes one catalog playlist from a keyword search. Tracklist
// is the URL to fetch its tracks from; the catalog may omit it.
type Playlist struct {
	ID        int64
	Title     string
	Tracklist string
	Picture   string
}

// Track is one raw catalog track record. Optional fields keep the catalog's
// absent values as zero values; callers decide defaults.
type Track struct {
	ID         int64
	TitleShort string
	Title      string
	Artist     string
	CoverURL   string
	PreviewURL string
	Link       string
	Duration   int
}

// Client is the catalog operations the recommendation pipeline needs.
type Client interface {
	SearchPlaylists(ctx context.Context, keyword string, limit int) ([]Playlist, error)
	FetchTracks(ctx context.Context, tracklistURL string, limit int) ([]Track, error)
}
