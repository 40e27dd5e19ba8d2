// Package textutil utilidades de texto para identificadores generados (usernames).
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldASCII quita tildes y diacríticos ("Pérez" -> "Perez").
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SuggestUsername propone un usuario para un contacto: la parte local del email si existe;
// si no, inicial del nombre + último apellido ("Juan Pérez" -> "jperez").
func SuggestUsername(name, email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		if u := sanitize(email[:at]); u != "" {
			return u
		}
	}
	words := strings.Fields(FoldASCII(name))
	switch len(words) {
	case 0:
		return ""
	case 1:
		return sanitize(words[0])
	default:
		first := sanitize(words[0])
		last := sanitize(words[len(words)-1])
		if first == "" {
			return last
		}
		return first[:1] + last
	}
}

// sanitize deja solo [a-z0-9._-] en minúscula.
func sanitize(s string) string {
	s = strings.ToLower(FoldASCII(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
