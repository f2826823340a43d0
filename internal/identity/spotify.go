// Package identity resolves an external OAuth identity into a profile the
// rest of the application can consume.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIURL   = "https://api.spotify.com/v1"
)

// Profile is the resolved external identity. ID is the provider's opaque
// user identifier; Email and ImageURL may be empty.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	ImageURL    string
}

// Provider abstracts the identity collaborator for handlers and tests.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// SpotifyProvider implements Provider against the Spotify accounts service.
type SpotifyProvider struct {
	conf   *oauth2.Config
	apiURL string
}

// NewSpotifyProvider configures the authorization-code flow for Spotify.
func NewSpotifyProvider(clientID, clientSecret, redirectURL string) *SpotifyProvider {
	return &SpotifyProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"user-read-private", "user-read-email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyAuthURL,
				TokenURL: spotifyTokenURL,
			},
		},
		apiURL: spotifyAPIURL,
	}
}

// AuthCodeURL returns the provider URL to redirect the user to. The state
// token should be cryptographically random for CSRF protection.
func (p *SpotifyProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token.
func (p *SpotifyProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

type spotifyProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// Profile fetches the authenticated user's profile.
func (p *SpotifyProvider) Profile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.conf.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("create profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch profile: %s - %s", resp.Status, string(body))
	}

	var sp spotifyProfile
	if err := json.NewDecoder(resp.Body).Decode(&sp); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	profile := &Profile{
		ID:          sp.ID,
		DisplayName: sp.DisplayName,
		Email:       sp.Email,
	}
	if len(sp.Images) > 0 {
		profile.ImageURL = sp.Images[0].URL
	}
	return profile, nil
}
