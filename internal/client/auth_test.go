package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge-labs/pipeforge-console/internal/credstore"
)

func tempStore(t *testing.T) *credstore.Store {
	t.Helper()
	store, err := credstore.Open(filepath.Join(t.TempDir(), "credentials.yaml"))
	require.NoError(t, err)
	return store
}

func TestAuthLogin(t *testing.T) {
	token := testToken("admin", "ADMIN")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin", creds["username"])
		assert.Equal(t, "secret", creds["password"])

		json.NewEncoder(w).Encode(map[string]string{
			"token":    token,
			"username": "admin",
			"role":     "ADMIN",
		})
	}))
	defer server.Close()

	store := tempStore(t)
	c := NewAuthClient(server.URL, store)
	result := c.Login("admin", "secret")

	assert.True(t, result.Success)
	assert.Equal(t, "Login successful", result.Message)
	assert.Equal(t, "admin", result.Username)
	assert.Equal(t, "ADMIN", result.Role)

	// Token and profile are persisted for later sessions.
	assert.Equal(t, token, store.Token())
	profile := store.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Username)
	assert.Equal(t, "ADMIN", profile.Role)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer server.Close()

	c := NewAuthClient(server.URL, tempStore(t))
	result := c.Login("admin", "wrong")

	assert.False(t, result.Success)
	assert.Equal(t, "Username or password is not correct, please try again", result.Message)
}

func TestAuthLogin_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewAuthClient(server.URL, tempStore(t))
	result := c.Login("admin", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "empty response from server")
}

func TestAuthLogin_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	c := NewAuthClient(server.URL, tempStore(t))
	result := c.Login("admin", "secret")

	assert.False(t, result.Success)
	assert.Equal(t, "invalid response format from server", result.Message)
}

func TestAuthLogin_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"admin","role":"ADMIN"}`))
	}))
	defer server.Close()

	c := NewAuthClient(server.URL, tempStore(t))
	result := c.Login("admin", "secret")

	assert.False(t, result.Success)
	assert.Equal(t, "no token received from server", result.Message)
}

func TestAuthLogin_ConnectionRefused(t *testing.T) {
	c := NewAuthClient("http://127.0.0.1:1", tempStore(t))
	result := c.Login("admin", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "cannot connect to server")
}

func TestAuthVerify_NoSession(t *testing.T) {
	c := NewAuthClient("http://127.0.0.1:1", tempStore(t))
	assert.Nil(t, c.Verify())
}

func TestAuthVerify_EndpointAnswers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/verify", r.URL.Path)
		w.Write([]byte(`{"id":7,"username":"admin","role":"ADMIN"}`))
	}))
	defer server.Close()

	store := tempStore(t)
	require.NoError(t, store.SetToken(testToken("admin", "ADMIN"), 0))

	c := NewAuthClient(server.URL, store)
	profile := c.Verify()

	require.NotNil(t, profile)
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, "admin", profile.Username)
}

func TestAuthVerify_FallsBackToCachedProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	store := tempStore(t)
	require.NoError(t, store.SetToken(testToken("admin", "ADMIN"), 0))
	require.NoError(t, store.SetProfile(&credstore.Profile{ID: 1, Username: "admin", Role: "ADMIN"}, 0))

	c := NewAuthClient(server.URL, store)
	profile := c.Verify()

	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Username)
}

func TestAuthLogout(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.SetToken(testToken("admin", "ADMIN"), 0))

	c := NewAuthClient("http://127.0.0.1:1", store)
	require.NoError(t, c.Logout())

	assert.Empty(t, store.Token())
	assert.Nil(t, store.Profile())
}

func TestAuthCurrentUsername(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.SetToken(testToken("frank", "USER"), 0))

	c := NewAuthClient("http://127.0.0.1:1", store)
	assert.Equal(t, "frank", c.CurrentUsername())

	assert.Equal(t, "Unknown User", NewAuthClient("http://127.0.0.1:1", tempStore(t)).CurrentUsername())
}
