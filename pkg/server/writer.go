package server

import (
	"net/http"

	"github.com/yeisme/ptserve/pkg/header"
)

// plainTextWriter runs the header pipeline once, right before the status line
// is written, whichever of WriteHeader, Write or handler return comes first.
type plainTextWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *plainTextWriter) WriteHeader(code int) {
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.wroteHeader = true
	h := w.ResponseWriter.Header()
	header.Apply(h, header.PlainText(header.FromHTTP(h)))
	w.ResponseWriter.WriteHeader(code)
}

func (w *plainTextWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *plainTextWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// notModifiedValidators are the request headers that let a handler answer
// 304. net/http drops Content-Type from every 304, so they never reach next.
var notModifiedValidators = []string{"If-Modified-Since", "If-None-Match"}

// ForcePlainText wraps next so that every response carries exactly one
// "Content-Type: text/plain" header and no other Content-Type.
//
// Conditional GET and HEAD requests are answered in full: the validators that
// would produce a 304 are removed before next sees the request.
func ForcePlainText(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = withoutValidators(r)
		pw := &plainTextWriter{ResponseWriter: w}
		next.ServeHTTP(pw, r)
		if !pw.wroteHeader {
			pw.WriteHeader(http.StatusOK)
		}
	})
}

func withoutValidators(r *http.Request) *http.Request {
	found := false
	for _, name := range notModifiedValidators {
		if _, ok := r.Header[name]; ok {
			found = true
			break
		}
	}
	if !found {
		return r
	}
	r = r.Clone(r.Context())
	for _, name := range notModifiedValidators {
		r.Header.Del(name)
	}
	return r
}
