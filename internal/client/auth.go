package client

import (
	"encoding/json"
	"net/http"

	"github.com/pipeforge-labs/pipeforge-console/internal/claims"
	"github.com/pipeforge-labs/pipeforge-console/internal/credstore"
)

// AuthClient handles login, logout and best-effort session
// verification. It owns writes to the credential store; every other
// client only reads the token through it.
type AuthClient struct {
	service
	store *credstore.Store
}

func NewAuthClient(baseURL string, store *credstore.Store) *AuthClient {
	return &AuthClient{service: newService(baseURL, store), store: store}
}

// LoginResult is the envelope for Login.
type LoginResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

// Login authenticates against the backend and, on success, persists
// the session token and a cached profile snapshot with a one-day
// expiry. The snapshot backs Verify when the verify endpoint is
// unavailable.
func (c *AuthClient) Login(username, password string) LoginResult {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.doJSON("POST", "/api/auth/login", payload)
	if err != nil {
		return LoginResult{Message: "cannot connect to server: " + err.Error()}
	}
	body := readBody(resp)

	if len(body) == 0 {
		return LoginResult{Message: "empty response from server, check that the backend is reachable"}
	}

	var data loginResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return LoginResult{Message: "invalid response format from server"}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		if resp.StatusCode == http.StatusUnauthorized {
			return LoginResult{Message: "Username or password is not correct, please try again"}
		}
		msg := data.Message
		if msg == "" {
			msg = errorMessage(resp.StatusCode, body)
		}
		return LoginResult{Message: msg}
	}

	if data.Token == "" {
		return LoginResult{Message: "no token received from server"}
	}

	if err := c.store.SetToken(data.Token, credstore.DefaultTTL); err != nil {
		return LoginResult{Message: "failed to save credentials: " + err.Error()}
	}

	profile := &credstore.Profile{
		ID:       1,
		Username: data.Username,
		Role:     data.Role,
	}
	if decoded := claims.Decode(data.Token); decoded != nil {
		if email, ok := decoded["email"].(string); ok {
			profile.Email = email
		}
	}
	if err := c.store.SetProfile(profile, credstore.DefaultTTL); err != nil {
		return LoginResult{Message: "failed to save credentials: " + err.Error()}
	}

	return LoginResult{
		Success:  true,
		Message:  "Login successful",
		Username: data.Username,
		Role:     data.Role,
	}
}

// Verify resolves the current user. It asks GET /api/auth/verify when a
// token is stored; the endpoint is best-effort and may not exist, in
// which case the cached profile from login is the answer. Returns nil
// when no session is usable.
func (c *AuthClient) Verify() *credstore.Profile {
	if c.token() == "" {
		return nil
	}

	resp, err := c.doJSON("GET", "/api/auth/verify", nil)
	if err == nil {
		body := readBody(resp)
		if isHTTPSuccess(resp.StatusCode) {
			var p credstore.Profile
			if json.Unmarshal(body, &p) == nil && p.Username != "" {
				return &p
			}
		}
	}

	return c.store.Profile()
}

// Logout removes the stored token and cached profile.
func (c *AuthClient) Logout() error {
	return c.store.Clear()
}

// CurrentUsername resolves the audit identity from the stored session
// token.
func (c *AuthClient) CurrentUsername() string {
	return claims.Username(claims.Decode(c.token()))
}
