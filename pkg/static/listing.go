package static

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Title}}</title>
</head>
<body>
<h1>Directory listing for {{.Title}}</h1>
<hr>
<ul>
{{range .Entries}}<li><a href="{{.Href}}">{{.Display}}</a></li>
{{end}}</ul>
<hr>
</body>
</html>
`))

type listingEntry struct {
	Href    string
	Display string
}

type listingPage struct {
	Title   string
	Entries []listingEntry
}

// listing renders the entries of the directory name. Directories are shown
// with a trailing "/" and symlinks with a trailing "@".
func (h *Handler) listing(name, upath string) ([]byte, error) {
	entries, err := fs.ReadDir(h.fsys, name)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	page := listingPage{
		Title:   upath,
		Entries: make([]listingEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		display := entry.Name()
		// "./" keeps names such as "a:b.txt" from parsing as a URL scheme
		href := "./" + (&url.URL{Path: entry.Name()}).EscapedPath()

		if h.isDir(path.Join(name, entry.Name()), entry) {
			display += "/"
			href += "/"
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			display = entry.Name() + "@"
		}
		page.Entries = append(page.Entries, listingEntry{Href: href, Display: display})
	}

	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isDir follows symlinks so a link to a directory is linked like one.
func (h *Handler) isDir(name string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(h.fsys, name)
	return err == nil && info.IsDir()
}
