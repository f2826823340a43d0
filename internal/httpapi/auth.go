package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"vibezone/internal/auth"
)

// handleLogin starts the OAuth flow: mint a one-shot state, remember it in
// a short-lived cookie and send the browser to the provider.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.users.AuthURL(state), http.StatusFound)
}

// handleCallback completes the OAuth flow. The state parameter must match
// the cookie set at login; a mismatch aborts the exchange.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if msg := r.URL.Query().Get("error"); msg != "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: fmt.Sprintf("login refused: %s", msg)})
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if err != nil || state == "" || cookie.Value != state {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "state mismatch"})
		return
	}
	clearCookie(w, stateCookie)

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing authorization code"})
		return
	}

	token, err := s.users.CompleteLogin(r.Context(), code)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "token": token})
		return
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// handleLogout invalidates the session server-side and clears the cookie.
// Logging out an already-dead session still succeeds.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		if err := s.users.Logout(r.Context(), token); err != nil {
			s.internalError(w, r, err)
			return
		}
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Logged out.",
	})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func clearSessionCookie(w http.ResponseWriter) {
	clearCookie(w, sessionCookie)
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
