package sanitize

import (
	"regexp"
	"sort"
	"strings"
)

// Declaration is a single CSS property:value pair. Property names are
// emitted lower-cased; values stay verbatim apart from the targeted
// rewrites in filterStyle.
type Declaration struct {
	Property string
	Value    string
}

// ProcessInline turns one element's raw style attribute into a
// normalized, deterministically ordered declaration set. The raw value
// first goes through the safe-CSS filter; the cleaned list is split on
// top-level semicolons, sorted, and each candidate is filtered. The
// resulting order is stable for identical filtered input, which is what
// makes content-addressed class names reproducible.
func ProcessInline(raw string, filter SafeCSS) []Declaration {
	if filter == nil {
		filter = DefaultFilter
	}
	filtered := filter.FilterCSS(raw)
	if strings.TrimSpace(filtered) == "" {
		return nil
	}
	parts := splitDeclarations(filtered)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// Sorting happens on the unparsed "property:value" text so the
	// outcome does not depend on the order the filter emitted them in.
	sort.Strings(parts)

	decls := make([]Declaration, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop, val = filterStyle(strings.TrimSpace(prop), strings.TrimSpace(val))
		if prop == "" || val == "" {
			continue
		}
		decls = append(decls, Declaration{Property: prop, Value: val})
	}
	return decls
}

// splitDeclarations splits a declaration list on semicolons that sit
// outside parentheses, so url(data:image/png;base64,...) survives in
// one piece.
func splitDeclarations(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

var trailingImportantRe = regexp.MustCompile(`\s*!\s*important$`)

// filterStyle applies the per-declaration rewrite rules. Overflow
// scrolling is disallowed outright, absolute widths become a
// non-breaking upper bound, and a trailing !important suffix is
// stripped from the value. A dropped declaration comes back as two
// empty strings.
func filterStyle(property, value string) (string, string) {
	prop := strings.ToLower(property)
	if strings.HasPrefix(prop, "overflow") {
		switch strings.ToLower(value) {
		case "auto", "scroll":
			return "", ""
		}
	}
	if prop == "width" {
		prop = "max-width"
	}
	if strings.Contains(value, "important") {
		value = trailingImportantRe.ReplaceAllString(value, "")
	}
	return prop, value
}
