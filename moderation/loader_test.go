package moderation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadDictionary(t *testing.T) {
	req := require.New(t)

	// Given two word lists, a nested folder and a non-text file
	fsys := fstest.MapFS{
		"censored/en.txt":         {Data: []byte("badger\r\nweasel\n\n  ferret  \n")},
		"censored/fr.txt":         {Data: []byte("blaireau\nbadger\n")},
		"censored/README.md":      {Data: []byte("not a word list")},
		"censored/old/legacy.txt": {Data: []byte("stoat")},
	}

	// When the directory is loaded
	dict, err := LoadDictionary(fsys, "censored")

	// Then words are trimmed, merged and deduplicated
	req.NoError(err)
	req.Equal([]string{"badger", "blaireau", "ferret", "weasel"}, dict.Words)
	req.ElementsMatch([]string{"en", "fr"}, dict.Languages)
}

func TestLoadDictionary_MissingDirectory(t *testing.T) {
	_, err := LoadDictionary(fstest.MapFS{}, "censored")
	require.Error(t, err)
}
