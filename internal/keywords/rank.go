// Package keywords implements the built-in, deterministic keyword ranker used
// to suggest tags from document text.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/hyperifyio/goautotags/internal/extract"
)

const (
	// MaxCandidates caps the number of tags Rank returns.
	MaxCandidates = 10
	// MinTokenRunes is the shortest token, in code points, that can become a tag.
	MinTokenRunes = 4
)

// entry is one row of the per-call frequency table.
type entry struct {
	word  string
	count int
}

// Rank turns raw content into at most MaxCandidates keywords ordered by
// descending frequency. Ties keep the order in which tokens first appeared.
// Rank is a pure function: it performs no I/O and holds no state between calls.
func Rank(content string) []string {
	table := frequencies(Tokenize(content))

	kept := table[:0]
	for _, e := range table {
		if IsStopWord(e.word) || utf8.RuneCountInString(e.word) < MinTokenRunes {
			continue
		}
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].count > kept[j].count })

	if len(kept) > MaxCandidates {
		kept = kept[:MaxCandidates]
	}
	out := make([]string, 0, len(kept))
	for _, e := range kept {
		out = append(out, e.word)
	}
	return out
}

// Tokenize strips markup, folds case and splits content into maximal runs of
// word characters (letters, digits, combining marks and underscore).
func Tokenize(content string) []string {
	text := extract.PlainText(content)
	// Casers are stateful; a fresh one per call keeps Rank reentrant.
	text = cases.Lower(language.Und).String(norm.NFC.String(text))
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// frequencies counts tokens, keeping rows in order of first appearance.
func frequencies(tokens []string) []entry {
	index := make(map[string]int, len(tokens))
	table := make([]entry, 0, len(tokens))
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			table[i].count++
			continue
		}
		index[tok] = len(table)
		table = append(table, entry{word: tok, count: 1})
	}
	return table
}
