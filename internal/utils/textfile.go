package utils

import (
	"bufio"
	"os"
	"slices"
	"strings"
)

// ReadListFile reads a one-entry-per-line file such as a prompt INDEX.txt.
// Blank lines and # comments, whole-line or trailing, are dropped. An entry
// listed twice keeps its first position.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		entry, _, _ := strings.Cut(s.Text(), "#")
		entry = strings.TrimSpace(entry)
		if entry == "" || slices.Contains(entries, entry) {
			continue
		}
		entries = append(entries, entry)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
