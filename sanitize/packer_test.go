package sanitize

import (
	"reflect"
	"strings"
	"testing"
)

func TestPackOverflow(t *testing.T) {
	t.Parallel()
	entries := []Entry{
		{Key: "first", CSS: strings.Repeat("a", 600)},
		{Key: "second", CSS: strings.Repeat("b", 500)},
	}
	css, skipped := Pack(entries, 1000)
	if len(css) != 600 {
		t.Fatalf("expected 600 bytes of output, got %d", len(css))
	}
	if !reflect.DeepEqual(skipped, []string{"second"}) {
		t.Fatalf("skipped = %v, expected [second]", skipped)
	}
}

func TestPackJoinsWithSpace(t *testing.T) {
	t.Parallel()
	css, skipped := Pack([]Entry{{Key: "a", CSS: "a{}"}, {Key: "b", CSS: "b{}"}}, 100)
	if css != "a{} b{}" {
		t.Fatalf("packed css = %q", css)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
}

func TestPackSkipsDoNotStopLaterEntries(t *testing.T) {
	t.Parallel()
	entries := []Entry{
		{Key: "big", CSS: strings.Repeat("x", 50)},
		{Key: "small", CSS: "p{}"},
	}
	css, skipped := Pack(entries, 10)
	if css != "p{}" {
		t.Fatalf("packed css = %q, expected the small entry alone", css)
	}
	if !reflect.DeepEqual(skipped, []string{"big"}) {
		t.Fatalf("skipped = %v, expected [big]", skipped)
	}
}

func TestPackBudgetInvariant(t *testing.T) {
	t.Parallel()
	entries := []Entry{
		{Key: "a", CSS: strings.Repeat("a", 7)},
		{Key: "b", CSS: strings.Repeat("b", 13)},
		{Key: "c", CSS: strings.Repeat("c", 3)},
		{Key: "d", CSS: strings.Repeat("d", 21)},
	}
	for max := 0; max <= 50; max++ {
		css, skipped := Pack(entries, max)
		if len(css) > max {
			t.Fatalf("max=%d: output %d bytes exceeds budget", max, len(css))
		}
		seen := map[string]int{}
		for _, k := range skipped {
			seen[k]++
		}
		for k, n := range seen {
			if n != 1 {
				t.Fatalf("max=%d: key %q skipped %d times", max, k, n)
			}
		}
	}
}

func TestPackEmpty(t *testing.T) {
	t.Parallel()
	css, skipped := Pack(nil, 100)
	if css != "" || len(skipped) != 0 {
		t.Fatalf("Pack(nil) = (%q, %v)", css, skipped)
	}
}
