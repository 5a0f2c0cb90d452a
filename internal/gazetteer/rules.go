// Package gazetteer loads the immutable rewrite tables and the role catalog
// that the rest of the engine is built on: stopwords, thesaurus, gender,
// plural and conjugation rules, location tokens, and the catalog itself.
// Everything here is read once at startup and never mutated again.
package gazetteer

import (
	"bufio"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Rule is one compiled ordered-rewrite-table entry: every surface form in
// Variants is folded to Canonical wherever it appears as a whole token (or
// token run, for multi-word variants) in the input.
type Rule struct {
	Canonical string
	Variants  []string
	Pattern   *regexp.Regexp
}

// Apply rewrites occurrences of a variant in s with the rule's canonical
// form. A match consumes the space that follows it, so of two occurrences
// separated by a single space only the first is rewritten.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, "${1}"+r.Canonical+"${3}")
}

// loadRuleFile reads a gazetteer rule file: comma-separated values per
// line, "#" comments, blank lines skipped. The first token on a line is the
// canonical form, the rest are variants that fold into it. Lines with fewer
// than two tokens are warned about and skipped (design notes, §9).
func loadRuleFile(fsys fs.FS, path string, logger *zap.Logger) ([]Rule, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	var rules []Rule
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitCSVLine(line)
		if len(fields) < 2 {
			logger.Warn("gazetteer: malformed rule line, skipping",
				zap.String("file", path), zap.Int("line", lineNo), zap.String("text", line))
			continue
		}
		canonical := fields[0]
		variants := append([]string{}, fields[1:]...)
		rules = append(rules, Rule{
			Canonical: canonical,
			Variants:  variants,
			Pattern:   compileAlternationPattern(variants),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gazetteer: read %s: %w", path, err)
	}
	return rules, nil
}

func splitCSVLine(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// compileAlternationPattern builds "( |^)(alt1|alt2|...)( |$)" with variants
// sorted by descending word count, so a multi-word variant is tried before
// any of its single-word prefixes can shadow it. The engine is RE2-backed
// (regexp/syntax, linear time), so no alternation here can backtrack
// catastrophically regardless of input.
func compileAlternationPattern(variants []string) *regexp.Regexp {
	sorted := append([]string{}, variants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return wordCount(sorted[i]) > wordCount(sorted[j])
	})
	escaped := make([]string, len(sorted))
	for i, v := range sorted {
		escaped[i] = regexp.QuoteMeta(v)
	}
	pattern := `(^| )(` + strings.Join(escaped, "|") + `)( |$)`
	return regexp.MustCompile(pattern)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
