package export

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Q3 Update/Report", "Q3 Update_Report"},
		{"plain title", "plain title"},
		{`a\b:c*d?e"f<g>h|i`, "a_b_c_d_e_f_g_h_i"},
		{"lots   of \t whitespace", "lots of whitespace"},
		{"trailing dots...", "trailing dots"},
		{"", "presentation"},
		{"///", "_"},
		{"..", "presentation"},
		{"报告 2026", "报告 2026"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// A sanitized title must always stay a single path segment: joining it
// under the data directory can never escape or nest.
func TestSanitizeFilename_SinglePathSegment(t *testing.T) {
	hostile := []string{
		"Q3 Update/Report",
		"../../etc/passwd",
		`..\..\windows`,
		"a/b/c/d",
		strings.Repeat("x/", 200),
	}
	for _, title := range hostile {
		name := SanitizeFilename(title)
		if filepath.Base(name) != name {
			t.Errorf("SanitizeFilename(%q) = %q is not a single segment", title, name)
		}
		if strings.ContainsAny(name, `/\`) {
			t.Errorf("SanitizeFilename(%q) = %q still contains separators", title, name)
		}
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("slide", 100)
	name := SanitizeFilename(long)
	if len([]rune(name)) > maxFilenameRunes {
		t.Errorf("sanitized name too long: %d runes", len([]rune(name)))
	}
}
