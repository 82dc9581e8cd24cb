package sanitize

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const classPrefix = "amp-wp-inline-"

// serializeDeclarations renders a declaration set in its canonical
// form. The same serialization feeds both the class name hash and the
// stored rule body, so identical sets collapse to one stylesheet entry.
func serializeDeclarations(decls []Declaration) string {
	pairs := make([]string, len(decls))
	for i, d := range decls {
		pairs[i] = d.Property + ":" + d.Value
	}
	return strings.Join(pairs, ";")
}

// ClassName derives the content-addressed selector name for a
// declaration set. Two sets that serialize identically always get the
// same name, which is what deduplicates structurally equal inline
// styles across unrelated elements.
func ClassName(decls []Declaration) string {
	sum := md5.Sum([]byte(serializeDeclarations(decls)))
	return classPrefix + hex.EncodeToString(sum[:])
}
