/*
Package segment splits joined pinyin readings into tokens.

Word dictionaries carry readings of multi-character words in joined form,
e.g. "zhangsan" or "xi'an". To be usable for search, these have to be
re-segmented into the same tokens as single characters.

Typical Usage

   vocab := segment.NewVocabulary(table.Vocabulary())
   tokens, fallback := segment.Split("xi'an", vocab)  // "xi an", false

How it works

Input is scanned left to right. Blanks and apostrophes separate syllables and
are never part of a token. At every position the segmenter tries the known
tokens from the longest length down to the shortest and accepts the first
match. There is no backtracking: once a token is accepted it is final.

If no token matches, the segmenter falls back to consuming a run of letters
(at least one character), and emits it verbatim. Clients are told that a
fallback occurred, but splitting never fails.
*/
package segment

import (
	"sort"
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pinyindata"
	"github.com/npillmayer/pinyindata/tone"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// Vocabulary is the set of tokens words may be split into.
// For pinyin, these are full syllables and bare vowels, but never bare
// initials: a complete word does not decompose into an initial.
type Vocabulary struct {
	tokens  map[string]struct{}
	lengths []int // distinct token lengths in runes, descending
}

// NewVocabulary creates a vocabulary from a list of tokens. Empty tokens are ignored.
func NewVocabulary(tokens []string) *Vocabulary {
	v := &Vocabulary{tokens: make(map[string]struct{}, len(tokens))}
	seen := make(map[int]bool)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		v.tokens[token] = struct{}{}
		l := len([]rune(token))
		if !seen[l] {
			seen[l] = true
			v.lengths = append(v.lengths, l)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(v.lengths)))
	return v
}

// Contains returns true if token is part of the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// Size returns the number of tokens in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Lengths returns the distinct token lengths, longest first.
func (v *Vocabulary) Lengths() []int {
	return append([]int(nil), v.lengths...)
}

// Split segments a joined reading into tokens from vocabulary v.
// It returns the tokens joined by single blanks, and a flag telling whether
// any part of the input had to be emitted as an unknown run of characters.
func Split(joined string, v *Vocabulary) (string, bool) {
	text := tone.PrepareJoined(joined)
	if text == "" {
		return "", false
	}
	sc := pinyindata.NewPooledScratch()
	defer sc.Release()
	sc.Runes = append(sc.Runes, []rune(text)...)
	input := sc.Runes
	fallback := false
	for i := 0; i < len(input); {
		if isSeparator(input[i]) {
			i++
			continue
		}
		if l := v.longestMatch(input, i); l > 0 {
			sc.Tokens = append(sc.Tokens, string(input[i:i+l]))
			i += l
			continue
		}
		j := i + 1
		for j < len(input) && unicode.IsLetter(input[j]) {
			j++
		}
		CT().Debugf("segment: no token matches %q at %d in %q", string(input[i:j]), i, joined)
		sc.Tokens = append(sc.Tokens, string(input[i:j]))
		fallback = true
		i = j
	}
	return strings.Join(sc.Tokens, " "), fallback
}

// longestMatch returns the length of the longest token matching the input at
// position i, or 0.
func (v *Vocabulary) longestMatch(input []rune, i int) int {
	if v == nil {
		return 0
	}
	for _, l := range v.lengths {
		if i+l > len(input) {
			continue
		}
		if v.Contains(string(input[i : i+l])) {
			return l
		}
	}
	return 0
}

func isSeparator(r rune) bool {
	return r == '\'' || unicode.IsSpace(r)
}
