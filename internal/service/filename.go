package service

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces an uploaded filename to a safe form for use in a
// storage key: path components are stripped and anything outside
// [A-Za-z0-9._-] is dropped (spaces become underscores). Returns "" when
// nothing safe remains.
func SanitizeFilename(name string) string {
	// Normalize Windows separators before taking the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	// A name of only dots/underscores (".", "..", "...") is not addressable.
	return strings.Trim(b.String(), "._")
}
