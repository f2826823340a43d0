package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestSpotifyProvider_AuthCodeURL(t *testing.T) {
	p := NewSpotifyProvider("client-id", "client-secret", "http://localhost:8080/auth/callback")

	u := p.AuthCodeURL("state-123")
	for _, want := range []string{
		spotifyAuthURL,
		"client_id=client-id",
		"state=state-123",
		"user-read-private",
		"user-read-email",
	} {
		if !strings.Contains(u, want) {
			t.Errorf("AuthCodeURL() = %q, missing %q", u, want)
		}
	}
}

func TestSpotifyProvider_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("path = %q, want /me", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer access-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{
			"id": "spotify-abc",
			"display_name": "Vibe Tester",
			"email": "vibe@example.com",
			"images": [{"url": "https://example.com/avatar.jpg"}]
		}`))
	}))
	defer srv.Close()

	p := NewSpotifyProvider("client-id", "client-secret", "http://localhost:8080/auth/callback")
	p.apiURL = srv.URL

	profile, err := p.Profile(context.Background(), &oauth2.Token{AccessToken: "access-token", TokenType: "Bearer"})
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}

	want := Profile{
		ID:          "spotify-abc",
		DisplayName: "Vibe Tester",
		Email:       "vibe@example.com",
		ImageURL:    "https://example.com/avatar.jpg",
	}
	if *profile != want {
		t.Errorf("profile = %+v, want %+v", *profile, want)
	}
}

func TestSpotifyProvider_ProfileUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"status": 403}}`))
	}))
	defer srv.Close()

	p := NewSpotifyProvider("client-id", "client-secret", "http://localhost:8080/auth/callback")
	p.apiURL = srv.URL

	if _, err := p.Profile(context.Background(), &oauth2.Token{AccessToken: "t", TokenType: "Bearer"}); err == nil {
		t.Error("expected error for non-200 profile response")
	}
}
