package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// sessionCookie is the cookie carrying the backend session token. The
// gateway turns it into an Authorization header so the browser never
// handles the token directly.
const sessionCookie = "auth-token"

// Proxy forwards console API traffic to the configured backend origin.
type Proxy struct {
	targetURL string
	hc        *http.Client
	log       zerolog.Logger
}

func NewProxy(targetURL string, log zerolog.Logger) *Proxy {
	return &Proxy{
		targetURL: targetURL,
		hc:        &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

func (p *Proxy) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		targetURL := p.targetURL + r.URL.Path
		if r.URL.RawQuery != "" {
			targetURL += "?" + r.URL.RawQuery
		}

		proxyReq, err := http.NewRequest(r.Method, targetURL, r.Body)
		if err != nil {
			p.log.Error().Err(err).Str("target", targetURL).Msg("proxy request creation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		for key, values := range r.Header {
			for _, value := range values {
				proxyReq.Header.Add(key, value)
			}
		}

		// Clients behind the gateway authenticate by cookie; the
		// backend expects a bearer header.
		if proxyReq.Header.Get("Authorization") == "" {
			if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
				proxyReq.Header.Set("Authorization", "Bearer "+c.Value)
			}
		}

		if reqID := GetRequestID(r.Context()); reqID != "" {
			proxyReq.Header.Set("X-Request-ID", reqID)
		}

		resp, err := p.hc.Do(proxyReq)
		if err != nil {
			p.log.Error().Err(err).Str("target", targetURL).Msg("proxy request failed")
			http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
			return
		}
		defer resp.Body.Close()

		for key, values := range resp.Header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		w.WriteHeader(resp.StatusCode)
		io.Copy(w, resp.Body)
	})
}
