package pdf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeName turns a document title into a portable file name stem:
// accents are stripped, anything outside [A-Za-z0-9._-] becomes "_", and
// runs of "_" collapse. An empty result becomes "document".
func SanitizeName(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}

	var b strings.Builder
	underscore := false
	for _, r := range s {
		ok := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-')
		if ok {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}

	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "document"
	}
	return out
}

// FileName returns SanitizeName(title) with a ".pdf" extension.
func FileName(title string) string {
	return SanitizeName(title) + ".pdf"
}
