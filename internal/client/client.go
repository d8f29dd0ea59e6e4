// Package client is the typed façade over the Pipeforge backend REST
// API. One client per resource; one method per endpoint.
//
// Every operation resolves to a result envelope instead of returning a
// Go error: transport failures, non-2xx statuses and malformed bodies
// all fold into {Success: false, Message: ...}. Callers decide whether
// to retry; this layer never does.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pipeforge-labs/pipeforge-console/internal/claims"
)

// CredentialSource supplies the session token attached to outgoing
// requests. An empty token means the request goes out unauthenticated;
// the backend is the enforcement point.
type CredentialSource interface {
	Token() string
}

// service carries what every resource client needs: the configured
// backend origin, the credential source and the HTTP transport.
type service struct {
	baseURL string
	creds   CredentialSource
	hc      *http.Client
}

func newService(baseURL string, creds CredentialSource) service {
	return service{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *service) token() string {
	if s.creds == nil {
		return ""
	}
	return s.creds.Token()
}

// username resolves the audit identity from the decoded session token.
// Mutations stamp createdBy with this value, never with caller input.
func (s *service) username() string {
	return claims.Username(claims.Decode(s.token()))
}

// newRequest builds a request with the Authorization header when a
// token is present. contentType "" leaves the header unset (multipart
// bodies set their own boundary-bearing type).
func (s *service) newRequest(method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := s.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// doJSON issues a request with an optional JSON payload.
func (s *service) doJSON(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := s.newRequest(method, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	return s.hc.Do(req)
}

// statusSuccess is the discriminator value list endpoints use. Only
// this value counts as success, regardless of the HTTP status code.
const statusSuccess = "success"

// listEnvelope is the wire shape of every list endpoint response.
type listEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func httpErrorMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// errorMessage normalizes a non-2xx body: JSON {message} when parseable,
// the raw text when not, the generic status line when empty.
func errorMessage(status int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return httpErrorMessage(status)
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return text
}

// successBody normalizes a 2xx body. A JSON object yields its message
// field (or defaultMsg) and itself as data. Anything else is treated as
// a bare text message and wrapped as {"message": text}: the backend
// answers some endpoints with plain strings, and that leniency is
// deliberate.
func successBody(body []byte, defaultMsg string) (string, map[string]interface{}) {
	text := strings.TrimSpace(string(body))

	var parsed map[string]interface{}
	if json.Unmarshal(body, &parsed) == nil && parsed != nil {
		msg := defaultMsg
		if m, ok := parsed["message"].(string); ok && m != "" {
			msg = m
		}
		return msg, parsed
	}

	msg := defaultMsg
	if text != "" {
		msg = text
	}
	return msg, map[string]interface{}{"message": text}
}

// readBody drains and closes the response body.
func readBody(resp *http.Response) []byte {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return body
}

func isHTTPSuccess(status int) bool {
	return status >= 200 && status < 300
}
