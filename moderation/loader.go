package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Dictionary is the merged content of every word list found in a directory.
type Dictionary struct {
	Words     []string
	Languages []string
}

// LoadDictionary reads every .txt file of dir in fsys, one word per line.
// The file name without extension is taken as the language ("fr.txt" -> "fr").
// Blank lines are ignored and words are deduplicated.
func LoadDictionary(fsys fs.FS, dir string) (Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return Dictionary{}, err
	}

	var languages []string
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return Dictionary{}, err
		}
		// Scanner copes with both \n and \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return Dictionary{}, err
		}
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	sort.Strings(words)
	return Dictionary{Words: words, Languages: languages}, nil
}
