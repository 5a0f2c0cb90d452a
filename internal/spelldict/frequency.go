// Package spelldict builds the domain dictionary and the symmetric-delete
// spell index used by the title normalizer's typo-correction step.
package spelldict

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

//go:embed data
var embeddedData embed.FS

// DefaultFS returns the shipped pt-BR frequency list and English word list.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		panic(fmt.Sprintf("spelldict: embedded data missing: %v", err))
	}
	return sub
}

func loadFrequencyList(fsys fs.FS, path string) (map[string]int, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spelldict: open %s: %w", path, err)
	}
	defer f.Close()

	freq := make(map[string]int)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			continue
		}
		freq[strings.TrimSpace(fields[0])] += n
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spelldict: read %s: %w", path, err)
	}
	return freq, nil
}

func loadWordList(fsys fs.FS, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spelldict: open %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spelldict: read %s: %w", path, err)
	}
	return words, nil
}
