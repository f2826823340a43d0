package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"vibezone/internal/logging"
	"vibezone/internal/store"
)

// handleMe returns the caller's profile together with their favorites and
// collections.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	profile, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// handleDeleteProfile removes the account and everything hanging off it,
// then clears the session cookie.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, token, ok := s.identify(w, r)
	if !ok {
		return
	}

	if err := s.users.DeleteProfile(r.Context(), userID, token); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		s.internalError(w, r, err)
		return
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Profile deleted.",
	})
}

type stationsResponse struct {
	Stations []json.RawMessage `json:"stations"`
}

// handleStations serves the curated station list from disk. Entries are
// passed through untouched. No file deployed, or one that will not parse,
// means no stations page.
func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	if s.stationsPath == "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stations available"})
		return
	}

	data, err := os.ReadFile(s.stationsPath)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stations available"})
		return
	}

	var payload stationsResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("path", s.stationsPath).Msg("stations file unreadable")
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stations available"})
		return
	}
	if payload.Stations == nil {
		payload.Stations = []json.RawMessage{}
	}

	writeJSON(w, http.StatusOK, payload)
}
