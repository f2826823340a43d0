package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabasePath        string
	Addr                string
	AllowedOrigins      []string
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string
	SessionSecret       string
	DeezerBaseURL       string
	MoodKeywordsFile    string
	StationsFile        string
	LogLevel            string
	LogFormat           string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return Config{}, errors.New("SESSION_SECRET env var is required")
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return Config{}, errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET env vars are required")
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))

	origins := parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	return Config{
		DatabasePath:        envOrDefault("DATABASE_PATH", "vibezone.db"),
		Addr:                addr,
		AllowedOrigins:      origins,
		SpotifyClientID:     clientID,
		SpotifyClientSecret: clientSecret,
		SpotifyRedirectURL:  envOrDefault("SPOTIFY_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		SessionSecret:       secret,
		DeezerBaseURL:       os.Getenv("DEEZER_BASE_URL"),
		MoodKeywordsFile:    os.Getenv("MOOD_KEYWORDS_FILE"),
		StationsFile:        os.Getenv("STATIONS_FILE"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
