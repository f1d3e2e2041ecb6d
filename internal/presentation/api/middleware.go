package api

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (app *Application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sourceKey := app.ratelimiter.GetSourceKey(r)

		maxBurst := app.ratelimiter.GetMaxBurst()
		if !app.ratelimiter.Allow(sourceKey) {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxBurst))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1") // Retry after 1 second

			app.logger.Warn(
				logging.General,
				logging.RateLimiting,
				"rate limit exceeded",
				map[logging.ExtraKey]any{
					"source":       sourceKey,
					logging.Path:   r.URL.Path,
					logging.Method: r.Method,
				},
			)

			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		remaining := app.ratelimiter.Remaining(sourceKey)
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxBurst))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		next.ServeHTTP(w, r)
	})
}

// corsMiddleware attaches CORS headers only when the request Origin exactly
// matches the configured allow-list. No wildcard, no subdomain matching; an
// unlisted origin gets no CORS headers at all.
func (app *Application) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && slices.Contains(app.config.HTTP.AllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(app.config.HTTP.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
			}
		}

		// allow preflight requests from the browser API
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		extra := map[logging.ExtraKey]any{
			logging.Method:     r.Method,
			logging.Path:       r.URL.Path,
			logging.StatusCode: wrapped.statusCode,
			logging.Latency:    duration.Milliseconds(),
			logging.BodySize:   wrapped.bytes,
			logging.ClientIp:   r.RemoteAddr,
			"user_agent":       r.UserAgent(),
		}

		if r.URL.RawQuery != "" {
			extra["query"] = r.URL.RawQuery
		}

		switch {
		case wrapped.statusCode >= 500:
			app.logger.Error(logging.RequestResponse, logging.ExternalService, "request completed with server error", extra)
		case wrapped.statusCode >= 400:
			app.logger.Warn(logging.RequestResponse, logging.ExternalService, "request completed with client error", extra)
		default:
			app.logger.Info(logging.RequestResponse, logging.ExternalService, "request completed", extra)
		}
	})
}
