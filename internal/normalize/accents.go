package normalize

import (
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents transliterates s to ASCII. unidecode handles the general
// case (including characters NFD decomposition alone won't reduce to
// ASCII); the NFD+strip-Mn pass runs first since it's exact for the
// overwhelmingly common case of a Latin letter plus a combining accent.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isCombiningMark), norm.NFC)
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}
	return unidecode.Unidecode(decomposed)
}

func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
