package usersrc

import (
	"strings"
	"unicode/utf8"
)

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\r", "&#xD;",
	"\n", "&#xA;",
)

// Escape makes s safe as both element text and a double-quoted attribute
// value. Line breaks become character references so every element stays on
// one line, and characters XML 1.0 cannot carry become U+FFFD.
func Escape(s string) string {
	if needsSanitizing(s) {
		s = strings.Map(func(r rune) rune {
			if !isXMLChar(r) {
				return utf8.RuneError
			}
			return r
		}, s)
	}
	return markupReplacer.Replace(s)
}

func needsSanitizing(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return true
		}
	}
	return false
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
// Invalid UTF-8 decodes to utf8.RuneError, which is allowed, so bad bytes
// end up replaced as well.
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
