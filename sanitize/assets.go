package sanitize

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver error codes.
const (
	ResolveBadExtension = "bad_extension"
	ResolveOutsideRoot  = "outside_root"
	ResolveNotFound     = "not_found"
)

// ResolveError says why a linked stylesheet could not be mapped to a
// readable local file.
type ResolveError struct {
	Code    string
	Message string
}

func (e *ResolveError) Error() string { return e.Code + ": " + e.Message }

// AssetResolver maps a stylesheet URL to a validated local filesystem
// path. The driver performs the read itself.
type AssetResolver interface {
	Resolve(href string) (string, error)
}

// DirResolver resolves stylesheet hrefs against a list of allowed root
// directories. Only .css files inside one of the roots resolve.
type DirResolver struct {
	Roots []string
}

func (r *DirResolver) Resolve(href string) (string, error) {
	path := href
	if i := strings.IndexAny(path, "?#"); i != -1 {
		path = path[:i]
	}
	if i := strings.Index(path, "://"); i != -1 {
		rest := path[i+3:]
		if j := strings.IndexByte(rest, '/'); j != -1 {
			path = rest[j:]
		} else {
			path = "/"
		}
	}
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return "", &ResolveError{Code: ResolveBadExtension, Message: "stylesheet link must end in .css: " + href}
	}
	rel := filepath.Clean(strings.TrimPrefix(path, "/"))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", &ResolveError{Code: ResolveOutsideRoot, Message: "path escapes allowed roots: " + href}
	}
	for _, root := range r.Roots {
		candidate := filepath.Join(root, rel)
		if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", &ResolveError{Code: ResolveNotFound, Message: "no readable stylesheet for " + href}
}
