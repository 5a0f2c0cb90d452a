package gazetteer

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes s (NFD) and drops combining marks, used when
// mining catalog title words for the location-token exclusion set: a title
// like "Médico" must fold to "medico" before it can shadow a location
// gazetteer entry.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
