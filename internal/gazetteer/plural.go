package gazetteer

import (
	"bufio"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

const falsePluralTag = "--"

// pluralRule is one ordered suffix-rewrite: a token ending in Suffix has
// that suffix replaced by Replacement. Order matters; the first rule whose
// suffix matches wins.
type pluralRule struct {
	Replacement string
	Suffix      string
	pattern     *regexp.Regexp
}

// PluralRules holds the ordered suffix table plus the false-plural
// exemption set.
type PluralRules struct {
	rules        []pluralRule
	falsePlurals map[string]bool
}

// loadPluralRules reads plural.csv ("replacement,suffix" per line, ordered)
// and false_plurals.txt (one exempt token per line).
func loadPluralRules(fsys fs.FS, rulesPath, falsePluralsPath string) (PluralRules, error) {
	f, err := fsys.Open(rulesPath)
	if err != nil {
		return PluralRules{}, fmt.Errorf("gazetteer: open %s: %w", rulesPath, err)
	}
	defer f.Close()

	var rules []pluralRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		replacement := strings.TrimSpace(parts[0])
		suffix := strings.TrimSpace(parts[1])
		if suffix == "" {
			continue
		}
		rules = append(rules, pluralRule{
			Replacement: replacement,
			Suffix:      suffix,
			pattern:     regexp.MustCompile(`^(.+)` + regexp.QuoteMeta(suffix) + `$`),
		})
	}
	if err := scanner.Err(); err != nil {
		return PluralRules{}, fmt.Errorf("gazetteer: read %s: %w", rulesPath, err)
	}

	falsePlurals, err := loadWordSet(fsys, falsePluralsPath)
	if err != nil {
		return PluralRules{}, err
	}

	return PluralRules{rules: rules, falsePlurals: falsePlurals}, nil
}

// Apply runs the false-plural tag/strip dance and the ordered suffix table
// against a single token.
func (p PluralRules) Apply(token string) string {
	tagged := token
	if p.falsePlurals[token] {
		tagged = token + falsePluralTag
	}
	for _, r := range p.rules {
		if r.pattern.MatchString(tagged) {
			tagged = r.pattern.ReplaceAllString(tagged, "${1}"+r.Replacement)
			break
		}
	}
	return strings.TrimSuffix(tagged, falsePluralTag)
}
