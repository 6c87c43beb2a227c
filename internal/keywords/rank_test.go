package keywords

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRank_Examples(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"frequency order", "testing testing testing coding coding sample", []string{"testing", "coding", "sample"}},
		{"ties keep first appearance", "zebra zebra yoga yoga", []string{"zebra", "yoga"}},
		{"only stop words and short words", "the it is a to", []string{}},
		{"empty", "", []string{}},
		{"case folded", "Golang GOLANG golang", []string{"golang"}},
		{"markup removed", `<p class="intro">Kubernetes <em>clusters</em></p><p>kubernetes</p>`, []string{"kubernetes", "clusters"}},
		{"punctuation delimits", "data-driven, data; driven!", []string{"data", "driven"}},
		{"underscore and digits are word chars", "snake_case v1234 snake_case", []string{"snake_case", "v1234"}},
		{"title text counted", "<title>Zebra zebra</title> yoga yoga yoga", []string{"yoga", "zebra"}},
		{"title holds the most frequent word", "<title>Gardening gardening</title><p>gardening tools</p>", []string{"gardening", "tools"}},
		{"stop words of four letters dropped", "there there which which tags", []string{"tags"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rank(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Rank(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRank_CapsAtTen(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"}
	got := Rank(strings.Join(words, " "))
	if len(got) != MaxCandidates {
		t.Fatalf("expected %d candidates, got %d: %v", MaxCandidates, len(got), got)
	}
	// All frequency 1, so the first ten in order of appearance win.
	if !reflect.DeepEqual(got, words[:MaxCandidates]) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRank_LengthCountsCodePoints(t *testing.T) {
	// "café" is four code points but five bytes; "çà" is two code points but four bytes.
	got := Rank("café café çàçà çà")
	want := []string{"café", "çàçà"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestRank_Properties(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog while the other foxes sleep soundly",
		"<h1>Release notes</h1><p>Release 2.0 adds search, search filters and search history.</p>",
		"one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen",
		"ÜBER über Über straße STRASSE",
		"____ ____ 1234 1234 1234",
	}
	for _, in := range inputs {
		got := Rank(in)
		if len(got) > MaxCandidates {
			t.Fatalf("too many candidates for %q: %d", in, len(got))
		}
		seen := map[string]bool{}
		for _, w := range got {
			if seen[w] {
				t.Fatalf("duplicate candidate %q for %q", w, in)
			}
			seen[w] = true
			if utf8.RuneCountInString(w) < MinTokenRunes {
				t.Fatalf("candidate %q shorter than %d runes", w, MinTokenRunes)
			}
			if IsStopWord(w) {
				t.Fatalf("stop word %q returned", w)
			}
		}
		again := Rank(in)
		if !reflect.DeepEqual(got, again) {
			t.Fatalf("Rank not deterministic for %q: %v vs %v", in, got, again)
		}
	}
}

func TestTokenize_NoPunctuationInsideTokens(t *testing.T) {
	for _, tok := range Tokenize("Hello, world! It's a-test (really).") {
		if strings.ContainsAny(tok, ",.!'-() ") {
			t.Fatalf("token %q contains a delimiter", tok)
		}
	}
}

func TestStopWords_LowerCaseAndSized(t *testing.T) {
	list := StopWords()
	if len(list) < 60 || len(list) > 90 {
		t.Fatalf("unexpected stop word count %d", len(list))
	}
	for _, w := range list {
		if w != strings.ToLower(w) {
			t.Fatalf("stop word %q not lower case", w)
		}
	}
}
