package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeezerClient_SearchPlaylists(t *testing.T) {
	var gotQuery, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/playlist" {
			t.Errorf("path = %q, want /search/playlist", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": 11, "title": "Feel Good Friday", "tracklist": "https://example.com/11/tracks", "picture": "https://example.com/11.jpg"},
			{"id": 12, "title": "Good Vibes", "tracklist": "https://example.com/12/tracks", "picture": ""}
		]}`))
	}))
	defer srv.Close()

	client := NewDeezerClient(srv.URL)
	playlists, err := client.SearchPlaylists(context.Background(), "feel good", 75)
	if err != nil {
		t.Fatalf("SearchPlaylists: %v", err)
	}

	if gotQuery != "feel good" {
		t.Errorf("q param = %q, want %q", gotQuery, "feel good")
	}
	if gotLimit != "75" {
		t.Errorf("limit param = %q, want %q", gotLimit, "75")
	}

	if len(playlists) != 2 {
		t.Fatalf("playlists = %d, want 2", len(playlists))
	}
	want := Playlist{ID: 11, Title: "Feel Good Friday", Tracklist: "https://example.com/11/tracks", Picture: "https://example.com/11.jpg"}
	if playlists[0] != want {
		t.Errorf("playlists[0] = %+v, want %+v", playlists[0], want)
	}
}

func TestDeezerClient_SearchPlaylistsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewDeezerClient(srv.URL)
	playlists, err := client.SearchPlaylists(context.Background(), "obscure", 75)
	if err != nil {
		t.Fatalf("SearchPlaylists: %v", err)
	}
	if len(playlists) != 0 {
		t.Errorf("playlists = %d, want 0", len(playlists))
	}
}

func TestDeezerClient_SearchPlaylistsUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data": [`))
			},
		},
		{
			name: "html error page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>gateway timeout</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewDeezerClient(srv.URL)
			_, err := client.SearchPlaylists(context.Background(), "happy hits", 75)
			if !errors.Is(err, ErrUpstream) {
				t.Errorf("SearchPlaylists() error = %v, want ErrUpstream", err)
			}
		})
	}
}

func TestDeezerClient_SearchPlaylistsUnreachable(t *testing.T) {
	client := NewDeezerClient("http://127.0.0.1:0")
	_, err := client.SearchPlaylists(context.Background(), "happy hits", 75)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("SearchPlaylists() error = %v, want ErrUpstream", err)
	}
}

func TestDeezerClient_FetchTracks(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"data": [
			{
				"id": 301,
				"title_short": "Teardrop",
				"title": "Teardrop (Remastered)",
				"artist": {"name": "Massive Attack"},
				"album": {"cover_xl": "https://example.com/mezzanine.jpg"},
				"preview": "https://example.com/teardrop.mp3",
				"link": "https://example.com/track/301",
				"duration": 331
			},
			{"id": 302, "title": "", "artist": {}, "album": {}}
		]}`))
	}))
	defer srv.Close()

	client := NewDeezerClient("")
	tracks, err := client.FetchTracks(context.Background(), srv.URL+"/playlist/11/tracks", 100)
	if err != nil {
		t.Fatalf("FetchTracks: %v", err)
	}

	if gotLimit != "100" {
		t.Errorf("limit param = %q, want %q", gotLimit, "100")
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(tracks))
	}

	want := Track{
		ID:         301,
		TitleShort: "Teardrop",
		Title:      "Teardrop (Remastered)",
		Artist:     "Massive Attack",
		CoverURL:   "https://example.com/mezzanine.jpg",
		PreviewURL: "https://example.com/teardrop.mp3",
		Link:       "https://example.com/track/301",
		Duration:   331,
	}
	if tracks[0] != want {
		t.Errorf("tracks[0] = %+v, want %+v", tracks[0], want)
	}

	// Absent fields survive as zero values; normalization happens upstream.
	if tracks[1].Artist != "" || tracks[1].Duration != 0 {
		t.Errorf("tracks[1] = %+v, want zero-valued fields", tracks[1])
	}
}

func TestDeezerClient_FetchTracksUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewDeezerClient("")
	_, err := client.FetchTracks(context.Background(), srv.URL+"/playlist/999/tracks", 100)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("FetchTracks() error = %v, want ErrUpstream", err)
	}
}
