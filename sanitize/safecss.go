package sanitize

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// SafeCSS strips unsafe property/value pairs from one raw inline style
// string and returns a cleaned single-line declaration list, or an
// empty string when nothing safe remains. The driver treats the filter
// as ground truth and never second-guesses its output.
type SafeCSS interface {
	FilterCSS(raw string) string
}

// DefaultFilter parses the declaration list with douceur and drops
// anything malformed or matching a deny pattern.
var DefaultFilter SafeCSS = declarationFilter{}

type declarationFilter struct{}

var unsafeValueMarkers = []string{"expression(", "javascript:", "-moz-binding", "behavior:"}

func (declarationFilter) FilterCSS(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// douceur drops the value of a trailing declaration that has no
	// terminating semicolon, so make sure the list is terminated.
	terminated := raw
	if !strings.HasSuffix(terminated, ";") {
		terminated += ";"
	}
	var pairs []string
	if decls, err := parser.ParseDeclarations(terminated); err == nil {
		for _, d := range decls {
			if d == nil {
				continue
			}
			prop := strings.TrimSpace(d.Property)
			val := strings.TrimSpace(d.Value)
			if prop == "" || val == "" || !safeValue(val) {
				continue
			}
			if d.Important {
				val += " !important"
			}
			pairs = append(pairs, prop+": "+val)
		}
	} else {
		// douceur could not make sense of the attribute; fall back to a
		// naive split and keep whatever still looks like a declaration.
		for _, part := range splitDeclarations(raw) {
			kv := strings.SplitN(part, ":", 2)
			if len(kv) != 2 {
				continue
			}
			prop := strings.TrimSpace(kv[0])
			val := strings.TrimSpace(kv[1])
			if prop == "" || val == "" || !safeValue(val) {
				continue
			}
			pairs = append(pairs, prop+": "+val)
		}
	}
	return strings.Join(pairs, "; ")
}

func safeValue(v string) bool {
	lower := strings.ToLower(v)
	for _, marker := range unsafeValueMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
