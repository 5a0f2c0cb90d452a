package gazetteer

import (
	"bufio"
	"fmt"
	"io/fs"
	"strings"
)

// loadConjugationMap reads "infinitive,conjugated1,conjugated2,..." lines
// and flattens them into conjugated_form -> infinitive, the token-wise
// lookup used by step 11 of normalization.
func loadConjugationMap(fsys fs.FS, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitCSVLine(line)
		if len(fields) < 2 {
			continue
		}
		base := fields[0]
		for _, conjugated := range fields[1:] {
			out[conjugated] = base
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gazetteer: read %s: %w", path, err)
	}
	return out, nil
}
