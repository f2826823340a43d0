package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	deezerBaseURL  = "https://api.deezer.com"
	requestTimeout = 5 * time.Second
)

// Deezer response structures.

type deezerPlaylistPage struct {
	Data []deezerPlaylist `json:"data"`
}

type deezerPlaylist struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Tracklist string `json:"tracklist"`
	Picture   string `json:"picture"`
}

type deezerTrackPage struct {
	Data []deezerTrack `json:"data"`
}

type deezerTrack struct {
	ID         int64        `json:"id"`
	TitleShort string       `json:"title_short"`
	Title      string       `json:"title"`
	Artist     deezerArtist `json:"artist"`
	Album      deezerAlbum  `json:"album"`
	Preview    string       `json:"preview"`
	Link       string       `json:"link"`
	Duration   int          `json:"duration"`
}

type deezerArtist struct {
	Name string `json:"name"`
}

type deezerAlbum struct {
	CoverXL string `json:"cover_xl"`
}

// DeezerClient implements Client against the Deezer public API.
type DeezerClient struct {
	baseURL string
	http    *resty.Client
}

// NewDeezerClient returns a DeezerClient. baseURL overrides the production
// endpoint, which tests use to point at a stub server.
func NewDeezerClient(baseURL string) *DeezerClient {
	if baseURL == "" {
		baseURL = deezerBaseURL
	}
	return &DeezerClient{
		baseURL: baseURL,
		http:    resty.New().SetTimeout(requestTimeout),
	}
}

// SearchPlaylists searches the catalog for playlists matching the keyword.
// An empty result list is not an error here; the caller classifies it.
func (c *DeezerClient) SearchPlaylists(ctx context.Context, keyword string, limit int) ([]Playlist, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     keyword,
			"limit": strconv.Itoa(limit),
		}).
		Get(c.baseURL + "/search/playlist")
	if err != nil {
		return nil, fmt.Errorf("%w: search playlists: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: search playlists: status %s", ErrUpstream, resp.Status())
	}

	var page deezerPlaylistPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("%w: decode playlist search: %v", ErrUpstream, err)
	}

	playlists := make([]Playlist, 0, len(page.Data))
	for _, p := range page.Data {
		playlists = append(playlists, Playlist{
			ID:        p.ID,
			Title:     p.Title,
			Tracklist: p.Tracklist,
			Picture:   p.Picture,
		})
	}
	return playlists, nil
}

// FetchTracks fetches up to limit tracks from a playlist's tracklist URL.
func (c *DeezerClient) FetchTracks(ctx context.Context, tracklistURL string, limit int) ([]Track, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get(tracklistURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch tracks: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: fetch tracks: status %s", ErrUpstream, resp.Status())
	}

	var page deezerTrackPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("%w: decode tracklist: %v", ErrUpstream, err)
	}

	tracks := make([]Track, 0, len(page.Data))
	for _, t := range page.Data {
		tracks = append(tracks, convertTrack(t))
	}
	return tracks, nil
}

func convertTrack(t deezerTrack) Track {
	return Track{
		ID:         t.ID,
		TitleShort: t.TitleShort,
		Title:      t.Title,
		Artist:     t.Artist.Name,
		CoverURL:   t.Album.CoverXL,
		PreviewURL: t.Preview,
		Link:       t.Link,
		Duration:   t.Duration,
	}
}
