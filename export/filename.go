package export

import (
	"strings"
	"unicode"
)

// maxFilenameRunes bounds sanitized names well under common filesystem
// limits once an extension is appended.
const maxFilenameRunes = 120

// SanitizeFilename turns an arbitrary presentation title into a safe
// single path segment: path separators and characters illegal in
// filenames become underscores, whitespace collapses to single spaces,
// and trailing dots/spaces are trimmed. An empty result falls back to
// "presentation" so an export can never write outside its directory or
// create nested directories from a hostile title.
func SanitizeFilename(title string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range title {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
			lastSpace = false
		case unicode.IsControl(r):
			// dropped entirely
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	name := strings.Trim(b.String(), " .")
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = strings.Trim(string(runes[:maxFilenameRunes]), " .")
	}
	if name == "" {
		return "presentation"
	}
	return name
}
