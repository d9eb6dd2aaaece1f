// Package moderation masks forbidden words in message content before it is stored.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Moderator censors configured words using an Aho-Corasick automaton built
// over a normalized form of the dictionary. Matching ignores case, spacing,
// punctuation and common leet substitutions, while the replacement is applied
// to the original runes so the rest of the text is left intact.
// A Moderator built from an empty dictionary never changes its input.
type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

// textMapping ties every normalized rune to its index in the original text.
type textMapping struct {
	normalized []rune
	origIdx    []int
}

func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	patterns := lo.FilterMap(censoredWords, func(word string, _ int) ([]rune, bool) {
		normalized := normalize([]rune(word)).normalized
		return normalized, len(normalized) > 0
	})
	mod := &Moderator{censoredChar: censoredChar, log: log}
	if len(patterns) == 0 {
		log.Debug("No censored words configured, moderation disabled")
		return mod, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	mod.matcher = m
	log.Debug("Moderation dictionary loaded", "words", len(patterns))
	return mod, nil
}

// Censor replaces every forbidden word found in original with the censor
// rune and returns the words that were hit, in order of appearance.
func (m *Moderator) Censor(original string) (string, []string) {
	if m.matcher == nil || original == "" {
		return original, nil
	}
	origRunes := []rune(original)
	mapping := normalize(origRunes)
	if len(mapping.normalized) == 0 {
		return original, nil
	}

	terms := m.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(terms) == 0 {
		return original, nil
	}

	var words []string
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(mapping.origIdx) {
			continue
		}
		// Noise between the first and last matched rune is masked too.
		for i := mapping.origIdx[start]; i <= mapping.origIdx[end-1]; i++ {
			origRunes[i] = m.censoredChar
		}
		words = append(words, string(term.Word))
	}
	return string(origRunes), words
}

func normalize(input []rune) textMapping {
	mapping := textMapping{
		normalized: make([]rune, 0, len(input)),
		origIdx:    make([]int, 0, len(input)),
	}
	for i, r := range input {
		clean := unleet(r)
		if isNoise(clean) {
			continue
		}
		mapping.normalized = append(mapping.normalized, unicode.ToLower(clean))
		mapping.origIdx = append(mapping.origIdx, i)
	}
	return mapping
}

// unleet maps common leet speak characters back to letters.
func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
