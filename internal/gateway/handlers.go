package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/pipeforge-labs/pipeforge-console/internal/claims"
)

// userDataCookie carries a JSON profile snapshot readable by the UI.
// It is deliberately not HttpOnly; the session token never goes in it.
const userDataCookie = "user-data"

// cookieTTL matches the backend token lifetime.
const cookieTTL = 24 * 60 * 60

// AuthHandler terminates the session surface at the gateway: it logs
// in against the backend, owns the session cookies and answers the
// who-am-I endpoint.
type AuthHandler struct {
	backendOrigin string
	cookieDomain  string
	cookieSecure  bool
	hc            *http.Client
	log           zerolog.Logger
}

func NewAuthHandler(backendOrigin, cookieDomain string, cookieSecure bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		backendOrigin: backendOrigin,
		cookieDomain:  cookieDomain,
		cookieSecure:  cookieSecure,
		hc:            &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

type backendLoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// Login forwards the credentials to the backend and, on success, sets
// the auth-token and user-data cookies. The token itself never appears
// in the response body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequest("POST", h.backendOrigin+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.hc.Do(req)
	if err != nil {
		h.log.Error().Err(err).Msg("login request to backend failed")
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	var data backendLoginResponse
	if err := json.Unmarshal(respBody, &data); err != nil || data.Token == "" {
		h.log.Error().Err(err).Msg("unusable login response from backend")
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return
	}

	h.setSessionCookie(w, data.Token)
	h.setUserDataCookie(w, data.Username, data.Role, data.Token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  "Login successful",
		"username": data.Username,
		"role":     data.Role,
	})
}

// Logout clears both session cookies. No backend call; the token is
// stateless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

// Me resolves the current user from the session token, falling back to
// the user-data cookie when the token is missing or undecodable. The
// fallback may be stale; refreshing it requires a new login.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if decoded := claims.Decode(c.Value); decoded != nil {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"username": claims.Username(decoded),
				"role":     claims.Role(decoded),
			})
			return
		}
	}

	if c, err := r.Cookie(userDataCookie); err == nil && c.Value != "" {
		raw, err := url.QueryUnescape(c.Value)
		if err == nil {
			var cached map[string]interface{}
			if json.Unmarshal([]byte(raw), &cached) == nil {
				json.NewEncoder(w).Encode(cached)
				return
			}
		}
	}

	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   cookieTTL,
		Secure:   h.cookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) setUserDataCookie(w http.ResponseWriter, username, role, token string) {
	profile := map[string]interface{}{
		"username": username,
		"role":     role,
	}
	if decoded := claims.Decode(token); decoded != nil {
		if email, ok := decoded["email"].(string); ok && email != "" {
			profile["email"] = email
		}
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	// Cookie values cannot carry raw JSON; URL-encode it the way
	// browser cookie libraries do.
	http.SetCookie(w, &http.Cookie{
		Name:     userDataCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   cookieTTL,
		Secure:   h.cookieSecure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookie, userDataCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   h.cookieDomain,
			MaxAge:   -1,
			Secure:   h.cookieSecure,
			HttpOnly: name == sessionCookie,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
