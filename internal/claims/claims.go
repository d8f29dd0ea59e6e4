// Package claims extracts the payload embedded in a session token for
// optimistic UI use. It does NOT verify the signature; the backend is
// the only authority on token validity.
package claims

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// UnknownUser is returned by Username when no recognisable username
// claim is present.
const UnknownUser = "Unknown User"

// Claims is the decoded key/value payload of a session token.
type Claims map[string]interface{}

// usernameFields is the probe order for the username claim. Backend
// claim naming drifts across endpoints; the first non-empty match wins.
var usernameFields = []string{
	"username",
	"name",
	"email",
	"sub",
	"user_name",
	"display_name",
}

// Decode splits a compact three-part token, base64url-decodes the
// middle segment and parses it as JSON. Any structural failure returns
// nil; Decode never panics.
func Decode(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil
	}
	return c
}

// Username returns the best-effort username embedded in c, probing the
// known alternative field names in priority order. Returns UnknownUser
// when c is nil or carries none of them.
func Username(c Claims) string {
	if c == nil {
		return UnknownUser
	}
	for _, field := range usernameFields {
		if v, ok := c[field].(string); ok && v != "" {
			return v
		}
	}
	return UnknownUser
}

// Role returns the role claim, or "" when absent.
func Role(c Claims) string {
	if c == nil {
		return ""
	}
	if v, ok := c["role"].(string); ok {
		return v
	}
	return ""
}
