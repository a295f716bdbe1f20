// Package logging builds the service's zerolog logger and its HTTP access log.
package logging

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// New returns a logger writing to w. format is "json" or "console".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Middleware attaches logger to each request, tags it with a request id and
// the client address, and writes one access log line per response.
func Middleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	withLogger := hlog.NewHandler(logger)
	withAddr := hlog.RemoteAddrHandler("ip")
	withID := hlog.RequestIDHandler("req_id", "Request-Id")

	return func(next http.Handler) http.Handler {
		return withLogger(withAddr(withID(access(next))))
	}
}
