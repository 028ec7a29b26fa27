package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yeisme/ptserve/pkg/header"
)

// statusRecorder remembers the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// accessLog writes one line per request. At trace level the header block
// that was sent is logged as well.
func accessLog(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		event := logger.Info()
		if rec.status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Str("proto", r.Proto).
			Int("status", rec.status).
			Int64("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")

		if trace := logger.Trace(); trace.Enabled() {
			var sb strings.Builder
			_ = header.Serialize(&sb, header.FromHTTP(w.Header()))
			trace.Str("path", r.URL.Path).Str("headers", sb.String()).Msg("response headers")
		}
	})
}
