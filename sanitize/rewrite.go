package sanitize

import "regexp"

var (
	importantRe = regexp.MustCompile(`\s*!important`)
	overflowRe  = regexp.MustCompile(`(?i)overflow\s*:\s*(auto|scroll)\s*;?`)
)

// RewriteRules strips constructs the restricted renderer forbids from a
// stylesheet body: every `!important` literal, then every declaration
// setting overflow to auto or scroll. The substitutions are purely
// textual and apply everywhere in the input, CSS comments included;
// that imprecision is part of the contract and callers rely on it.
func RewriteRules(css string) string {
	if css == "" {
		return ""
	}
	css = importantRe.ReplaceAllString(css, "")
	css = overflowRe.ReplaceAllString(css, "")
	return css
}
