package gateway

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter wires the gateway's routes and middleware chain.
func NewRouter(cfg *Config, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authHandler := NewAuthHandler(cfg.BackendOrigin, cfg.CookieDomain, cfg.CookieSecure, log)
	backendProxy := NewProxy(cfg.BackendOrigin, log)
	metrics := NewMetrics()

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Resource traffic passes through unchanged; the proxy injects the
	// bearer header from the session cookie.
	for _, prefix := range []string{"/api/user/", "/api/project/", "/api/script/", "/api/group/"} {
		mux.Handle(prefix, backendProxy.Handler())
	}

	// Legacy path without the /api prefix, kept for old clients.
	mux.Handle("/script/", http.StripPrefix("/script", rewritePrefix("/api/script", backendProxy.Handler())))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","service":"gateway"}`)
	})

	mux.Handle("GET /metrics", metrics.Handler())

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
	})

	var handler http.Handler = mux
	handler = metrics.Instrument(handler)
	handler = corsMiddleware.Handler(handler)
	handler = SecurityHeaders(cfg.CookieSecure)(handler)
	handler = RequestLogger(log)(handler)
	handler = RequestID(handler)

	return handler
}

// rewritePrefix prepends prefix to the request path before handing the
// request to next.
func rewritePrefix(prefix string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = prefix + r.URL.Path
		next.ServeHTTP(w, r2)
	})
}
