package static

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":         {Data: []byte("<h1>hello</h1>")},
		"data.json":          {Data: []byte(`{"a":1}`)},
		"image.png":          {Data: []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}},
		"docs/readme.txt":    {Data: []byte("read me")},
		"docs/B.txt":         {Data: []byte("b")},
		"docs/a file.txt":    {Data: []byte("a")},
		"docs/sub/inner.txt": {Data: []byte("inner")},
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeFiles(t *testing.T) {
	fsys := newTestFS()
	h := New(fsys)

	for _, name := range []string{"index.html", "data.json", "image.png", "docs/readme.txt"} {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, "/"+name)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got, want := rec.Body.String(), string(fsys[name].Data); got != want {
				t.Errorf("body = %q, want %q", got, want)
			}
			if got := rec.Header().Get("Content-Length"); got == "" {
				t.Error("Content-Length not set")
			}
		})
	}
}

func TestServeHead(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodHead, "/data.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body should be empty, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Length"); got != "7" {
		t.Errorf("Content-Length = %q, want %q", got, "7")
	}
}

func TestServeRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/docs/readme.txt", nil)
	req.Header.Set("Range", "bytes=0-3")
	rec := httptest.NewRecorder()
	New(newTestFS()).ServeHTTP(rec, req)

	if rec.Code != http.StatusPartialContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusPartialContent)
	}
	if got := rec.Body.String(); got != "read" {
		t.Errorf("body = %q, want %q", got, "read")
	}
}

func TestServeErrors(t *testing.T) {
	h := New(newTestFS())
	testCases := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"missing file", http.MethodGet, "/nope.txt", http.StatusNotFound},
		{"missing nested", http.MethodGet, "/docs/nope/x", http.StatusNotFound},
		{"file with trailing slash", http.MethodGet, "/data.json/", http.StatusNotFound},
		{"dot dot stays in root", http.MethodGet, "/../../etc/passwd", http.StatusNotFound},
		{"post", http.MethodPost, "/index.html", http.StatusNotImplemented},
		{"delete", http.MethodDelete, "/index.html", http.StatusNotImplemented},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, h, tc.method, tc.target)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

func TestUnsupportedMethodAllow(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodPut, "/")
	if got := rec.Header().Get("Allow"); got != "GET, HEAD" {
		t.Errorf("Allow = %q, want %q", got, "GET, HEAD")
	}
}

func TestIndexNotRedirected(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodGet, "/index.html")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("unexpected redirect to %q", loc)
	}
}

func TestDirectoryRedirect(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodGet, "/docs?x=1")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if got := rec.Header().Get("Location"); got != "/docs/?x=1" {
		t.Errorf("Location = %q, want %q", got, "/docs/?x=1")
	}
}

func TestDirectoryIndex(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "<h1>hello</h1>" {
		t.Errorf("body = %q, want index.html contents", got)
	}
}

func TestDirectoryListing(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodGet, "/docs/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()

	for _, want := range []string{
		"Directory listing for /docs/",
		`<a href="./a%20file.txt">a file.txt</a>`,
		`<a href="./B.txt">B.txt</a>`,
		`<a href="./sub/">sub/</a>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("listing missing %q:\n%s", want, body)
		}
	}

	// case-insensitive ordering: "a file.txt" < "B.txt" < "readme.txt" < "sub/"
	order := []string{"a file.txt", "B.txt", "readme.txt", "sub/"}
	last := -1
	for _, name := range order {
		idx := strings.Index(body, ">"+name+"<")
		if idx < last {
			t.Errorf("%q listed out of order", name)
		}
		last = idx
	}
}

func TestDirectoryListingHead(t *testing.T) {
	rec := serve(t, New(newTestFS()), http.MethodHead, "/docs/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body should be empty")
	}
}

func TestDirectoryListingEscapesNames(t *testing.T) {
	fsys := fstest.MapFS{
		"d/<script>.txt": {Data: []byte("x")},
	}
	rec := serve(t, New(fsys), http.MethodGet, "/d/")
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Errorf("listing contains unescaped name:\n%s", rec.Body.String())
	}
}

func TestDirectoryListingColonName(t *testing.T) {
	fsys := fstest.MapFS{
		"d/a:b.txt": {Data: []byte("x")},
	}
	rec := serve(t, New(fsys), http.MethodGet, "/d/")
	body := rec.Body.String()
	if strings.Contains(body, "ZgotmplZ") {
		t.Fatalf("href was rejected by the template:\n%s", body)
	}
	if want := `<a href="./a:b.txt">a:b.txt</a>`; !strings.Contains(body, want) {
		t.Errorf("listing missing %q:\n%s", want, body)
	}
}

func TestWithIndexNames(t *testing.T) {
	rec := serve(t, New(newTestFS(), WithIndexNames("nothing.html")), http.MethodGet, "/")
	if !strings.Contains(rec.Body.String(), "Directory listing for /") {
		t.Errorf("expected directory listing, got %q", rec.Body.String())
	}
}

func TestServerName(t *testing.T) {
	h := New(newTestFS(), WithServerName("ptserve/test"))
	for _, target := range []string{"/data.json", "/missing"} {
		rec := serve(t, h, http.MethodGet, target)
		if got := rec.Header().Get("Server"); got != "ptserve/test" {
			t.Errorf("%s: Server = %q, want %q", target, got, "ptserve/test")
		}
	}
}

func TestConditionalRequest(t *testing.T) {
	mod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fsys := fstest.MapFS{"a.txt": {Data: []byte("a"), ModTime: mod}}

	req := httptest.NewRequest(http.MethodGet, "/a.txt", nil)
	req.Header.Set("If-Modified-Since", mod.Format(http.TimeFormat))
	rec := httptest.NewRecorder()
	New(fsys).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotModified)
	}
}

func TestSymlinkListing(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "real"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.Symlink("real", filepath.Join(root, "linkdir")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink("file.txt", filepath.Join(root, "linkfile")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rec := serve(t, New(os.DirFS(root)), http.MethodGet, "/")
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`<a href="./linkdir/">linkdir@</a>`,
		`<a href="./linkfile">linkfile@</a>`,
		`<a href="./real/">real/</a>`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("listing missing %q:\n%s", want, body)
		}
	}
}
