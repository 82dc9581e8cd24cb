package sanitize

import (
	"reflect"
	"testing"
)

// passthroughFilter hands the raw attribute through untouched, which
// keeps filter behaviour out of processor tests.
type passthroughFilter struct{}

func (passthroughFilter) FilterCSS(raw string) string { return raw }

func TestSplitDeclarationsParenAware(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"plain", "a:1;b:2", []string{"a:1", "b:2"}},
		{"trailing_semicolon", "a:1;", []string{"a:1"}},
		{"data_uri", "background: url(data:image/png;base64,AAA==); color: red;", []string{"background: url(data:image/png;base64,AAA==)", " color: red"}},
		{"unbalanced_close", "a:b); c:d", []string{"a:b)", " c:d"}},
		{"empty", "", nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := splitDeclarations(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("splitDeclarations(%q) = %#v, expected %#v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFilterStyle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		prop     string
		val      string
		wantProp string
		wantVal  string
	}{
		{"overflow_auto", "overflow", "auto", "", ""},
		{"overflow_caps", "OVERFLOW", "SCROLL", "", ""},
		{"overflow_x", "overflow-x", "scroll", "", ""},
		{"overflow_other_value", "overflow", "hidden", "overflow", "hidden"},
		{"width_rewrite", "width", "50%", "max-width", "50%"},
		{"max_width_untouched", "max-width", "50%", "max-width", "50%"},
		{"strip_important", "color", "red !important", "color", "red"},
		{"important_mid_value_kept", "font-family", "importantSans", "font-family", "importantSans"},
		{"lowercased", "COLOR", "Red", "color", "Red"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			prop, val := filterStyle(tc.prop, tc.val)
			if prop != tc.wantProp || val != tc.wantVal {
				t.Fatalf("filterStyle(%q, %q) = (%q, %q), expected (%q, %q)",
					tc.prop, tc.val, prop, val, tc.wantProp, tc.wantVal)
			}
		})
	}
}

func TestProcessInline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Declaration
	}{
		{
			name:     "sorted_and_filtered",
			input:    "width: 10px; color: red",
			expected: []Declaration{{"color", "red"}, {"max-width", "10px"}},
		},
		{
			name:     "overflow_dropped",
			input:    "overflow:auto;color:blue",
			expected: []Declaration{{"color", "blue"}},
		},
		{
			name:     "no_colon_discarded",
			input:    "color red; background: green",
			expected: []Declaration{{"background", "green"}},
		},
		{
			name:  "paren_guarded",
			input: "background: url(data:image/png;base64,AAA==); color: red;",
			expected: []Declaration{
				{"background", "url(data:image/png;base64,AAA==)"},
				{"color", "red"},
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ProcessInline(tc.input, passthroughFilter{})
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("ProcessInline(%q) = %#v, expected %#v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestProcessInlineDefaultFilter(t *testing.T) {
	t.Parallel()
	got := ProcessInline("color: red !important; width: 10px", nil)
	expected := []Declaration{{"color", "red"}, {"max-width", "10px"}}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("ProcessInline with default filter = %#v, expected %#v", got, expected)
	}

	if decls := ProcessInline("background: expression(alert(1))", nil); len(decls) != 0 {
		t.Fatalf("expected unsafe value to be filtered out, got %#v", decls)
	}
}
