// Package recommend implements the mood-to-track recommendation pipeline.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"vibezone/internal/catalog"
)

const (
	playlistSearchLimit = 75
	trackFetchLimit     = 100
	sampleSize          = 5
)

var (
	// ErrNoPlaylists indicates the keyword search returned nothing.
	ErrNoPlaylists = errors.New("no playlists for mood")
	// ErrEmptyPlaylist indicates the chosen playlist has no tracks.
	ErrEmptyPlaylist = errors.New("playlist is empty")
)

// Track is the normalized output shape, independent of catalog field names.
type Track struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	CoverURL   string `json:"cover_url"`
	PreviewURL string `json:"preview_url"`
	Link       string `json:"link"`
	Duration   int    `json:"duration"`
}

// KeywordPicker validates a mood and yields a search keyword for it.
type KeywordPicker interface {
	Keyword(mood string) (string, error)
}

// Source supplies the pipeline's random draws. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Service composes the mood selector and catalog client into the
// recommendation pipeline.
type Service struct {
	keywords KeywordPicker
	catalog  catalog.Client
	src      Source
}

// New wires a recommendation Service.
func New(keywords KeywordPicker, cat catalog.Client, src Source) *Service {
	return &Service{keywords: keywords, catalog: cat, src: src}
}

// Recommend turns a mood into up to five normalized tracks: random keyword,
// playlist search, random playlist, tracklist fetch, shuffle, sample.
// Selection failures are classified; no raw catalog data escapes.
func (s *Service) Recommend(ctx context.Context, mood string) ([]Track, error) {
	keyword, err := s.keywords.Keyword(mood)
	if err != nil {
		return nil, err
	}

	playlists, err := s.catalog.SearchPlaylists(ctx, keyword, playlistSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoPlaylists, mood)
	}

	chosen := playlists[s.src.Intn(len(playlists))]
	if chosen.Tracklist == "" {
		// Terminal failure, not retried with a different playlist.
		return nil, fmt.Errorf("%w: playlist %d has no tracklist", catalog.ErrUpstream, chosen.ID)
	}

	tracks, err := s.catalog.FetchTracks(ctx, chosen.Tracklist, trackFetchLimit)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrEmptyPlaylist
	}

	s.src.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})

	n := sampleSize
	if len(tracks) < n {
		n = len(tracks)
	}

	out := make([]Track, 0, n)
	for _, t := range tracks[:n] {
		out = append(out, normalize(t))
	}
	return out, nil
}

func normalize(t catalog.Track) Track {
	title := t.TitleShort
	if title == "" {
		title = t.Title
	}
	if title == "" {
		title = "Unknown title"
	}

	artist := t.Artist
	if artist == "" {
		artist = "Unknown artist"
	}

	link := t.Link
	if link == "" {
		link = "#"
	}

	return Track{
		ID:         t.ID,
		Title:      title,
		Artist:     artist,
		CoverURL:   t.CoverURL,
		PreviewURL: t.PreviewURL,
		Link:       link,
		Duration:   t.Duration,
	}
}
