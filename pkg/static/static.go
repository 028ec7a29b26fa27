// Package static maps request paths onto a read-only file tree.
//
// Files are returned byte for byte, directories are answered with an index
// file or a generated listing. Content-Type values set here are whatever the
// usual static-file logic would pick; callers are free to rewrite them.
package static

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultIndexNames are tried, in order, before a directory listing is built.
var DefaultIndexNames = []string{"index.html", "index.htm"}

// Handler serves files from an fs.FS.
type Handler struct {
	fsys       fs.FS
	serverName string
	indexNames []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithServerName sets the value of the Server header sent with every response.
func WithServerName(name string) Option {
	return func(h *Handler) {
		h.serverName = name
	}
}

// WithIndexNames replaces DefaultIndexNames.
func WithIndexNames(names ...string) Option {
	return func(h *Handler) {
		h.indexNames = names
	}
}

// New returns a Handler rooted at fsys.
func New(fsys fs.FS, opts ...Option) *Handler {
	h := &Handler{
		fsys:       fsys,
		indexNames: DefaultIndexNames,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.serverName != "" {
		w.Header().Set("Server", h.serverName)
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Unsupported method ("+strconv.Quote(r.Method)+")", http.StatusNotImplemented)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}

	name, ok := fsName(upath)
	if !ok {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	f, err := h.fsys.Open(name)
	if err != nil {
		writeOpenError(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeOpenError(w, err)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			redirectToDir(w, r)
			return
		}
		h.serveDir(w, r, name, upath)
		return
	}

	// a trailing slash names a directory, never a file
	if strings.HasSuffix(upath, "/") {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	serveFile(w, r, f, info)
}

func (h *Handler) serveDir(w http.ResponseWriter, r *http.Request, name, upath string) {
	for _, index := range h.indexNames {
		indexName := path.Join(name, index)
		f, err := h.fsys.Open(indexName)
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			f.Close()
			continue
		}
		serveFile(w, r, f, info)
		f.Close()
		return
	}

	body, err := h.listing(name, upath)
	if err != nil {
		http.Error(w, "No permission to list directory", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

// serveFile hands the file to http.ServeContent, which takes care of ranges,
// conditional requests and HEAD. Files that cannot seek are buffered.
func serveFile(w http.ResponseWriter, r *http.Request, f fs.File, info fs.FileInfo) {
	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			writeOpenError(w, err)
			return
		}
		content = bytes.NewReader(data)
	}
	http.ServeContent(w, r, info.Name(), modTime(info), content)
}

func modTime(info fs.FileInfo) time.Time {
	t := info.ModTime()
	if t.IsZero() || t.Equal(time.Unix(0, 0)) {
		return time.Time{}
	}
	return t
}

func redirectToDir(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Location", target)
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusMovedPermanently)
}

// fsName converts a slash-rooted URL path into an fs.FS name. Cleaning the
// rooted path removes every ".." element, so the result never leaves the root.
func fsName(upath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean(upath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

func writeOpenError(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrPermission) {
		http.Error(w, "Permission denied", http.StatusForbidden)
		return
	}
	http.Error(w, "File not found", http.StatusNotFound)
}
