package normalize

import "strings"

// stemSuffixes is a small RSLP-style suffix table, tried longest first.
// This is not a full RSLP implementation; it covers the common
// noun/adjective suffixes likely to appear in job titles.
var stemSuffixes = []string{
	"amento", "imento", "issimo", "ezinho", "zinho",
	"mente", "inho",
	"agem", "ismo", "ista", "ante", "avel", "ivel", "oso", "osa",
	"ico", "ica", "ivo", "iva",
}

// stem applies the longest matching suffix rule, leaving a token of at
// least 3 runes.
func stem(token string) string {
	for _, suf := range stemSuffixes {
		if strings.HasSuffix(token, suf) && len([]rune(token))-len([]rune(suf)) >= 3 {
			return strings.TrimSuffix(token, suf)
		}
	}
	return token
}
