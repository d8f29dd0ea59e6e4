package client

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

// staticCreds is a fixed-token credential source for tests.
type staticCreds string

func (s staticCreds) Token() string { return string(s) }

// testToken builds an unsigned three-part token carrying username/role
// claims, the way the backend issues them.
func testToken(username, role string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(
		`{"username":"` + username + `","role":"` + role + `","exp":9999999999}`))
	sig := base64.RawURLEncoding.EncodeToString([]byte("fake-signature"))
	return header + "." + payload + "." + sig
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"empty body", 500, "", "HTTP error! status: 500"},
		{"plain text body", 400, "Username already exists", "Username already exists"},
		{"json body with message", 409, `{"message":"duplicate user"}`, "duplicate user"},
		{"json body without message", 400, `{"error":"nope"}`, `{"error":"nope"}`},
		{"whitespace-only body", 502, "   \n", "HTTP error! status: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestSuccessBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		defaultMsg string
		wantMsg    string
		wantData   map[string]interface{}
	}{
		{
			name:       "json with message",
			body:       `{"message":"created","id":7}`,
			defaultMsg: "default",
			wantMsg:    "created",
			wantData:   map[string]interface{}{"message": "created", "id": float64(7)},
		},
		{
			name:       "json without message keeps default",
			body:       `{"id":7}`,
			defaultMsg: "default",
			wantMsg:    "default",
			wantData:   map[string]interface{}{"id": float64(7)},
		},
		{
			name:       "plain text becomes message and wrapped data",
			body:       "Project created",
			defaultMsg: "default",
			wantMsg:    "Project created",
			wantData:   map[string]interface{}{"message": "Project created"},
		},
		{
			name:       "empty body keeps default",
			body:       "",
			defaultMsg: "default",
			wantMsg:    "default",
			wantData:   map[string]interface{}{"message": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, data := successBody([]byte(tt.body), tt.defaultMsg)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestServiceUsername(t *testing.T) {
	s := newService("http://localhost:8081", staticCreds(testToken("admin", "ADMIN")))
	assert.Equal(t, "admin", s.username())

	anon := newService("http://localhost:8081", nil)
	assert.Equal(t, "Unknown User", anon.username())

	garbage := newService("http://localhost:8081", staticCreds("not-a-token"))
	assert.Equal(t, "Unknown User", garbage.username())
}

func TestValidationMessage(t *testing.T) {
	msg := validationMessage(AddUserRequest{Username: "u", Password: "p", Email: "u@example.com", Role: "ADMIN"})
	assert.Empty(t, msg)

	msg = validationMessage(AddUserRequest{})
	assert.Contains(t, msg, "username is required")
	assert.Contains(t, msg, "password is required")

	msg = validationMessage(AddUserRequest{Username: "u", Password: "p", Email: "not-an-email", Role: "ROOT"})
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "role must be one of: ADMIN USER")
}
