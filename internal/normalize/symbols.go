package normalize

import (
	"regexp"
	"strings"
)

// separatorChars are replaced with a single space (step 4). The hyphen is
// last so that it stays a literal inside the regexp character class.
const separatorChars = ":,;.\u2013\t-"

// specialSymbols are dropped outright (step 5).
const specialSymbols = "\\()[]{}&#*+<>'\"/?!|^~@$%=`´¨_"

var (
	separatorRE  = regexp.MustCompile("[" + regexp.QuoteMeta(separatorChars) + "]")
	whitespaceRE = regexp.MustCompile(`\s+`)
)

func replaceSeparators(s string) string {
	s = separatorRE.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

func stripSpecialSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(specialSymbols, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
