package sanitize

import "strings"

// Pack concatenates entries in order into one stylesheet, joined with a
// single space, skipping any entry whose inclusion would push the
// output past maxBytes. The joining space counts against the budget, so
// the returned CSS never exceeds maxBytes. Skipped keys come back in
// entry order, each exactly once.
//
// This is greedy-in-order on purpose: entry order reflects document
// order and is never rearranged to minimize skips.
func Pack(entries []Entry, maxBytes int) (string, []string) {
	var out strings.Builder
	var skipped []string
	total := 0
	for _, e := range entries {
		need := len(e.CSS)
		if out.Len() > 0 {
			need++
		}
		if total+need > maxBytes {
			skipped = append(skipped, e.Key)
			continue
		}
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(e.CSS)
		total += need
	}
	return out.String(), skipped
}
