/*
Package tone normalizes raw pinyin readings to canonical ASCII tokens.

Source data is inconsistent about how tone marks are encoded. Some readings
carry precomposed characters ("wǒ"), some combining marks, some vendor
specific markers ("lu:"). Two strategies are provided to strip tones:

   - a table driven one, replacing single decorated characters with their
     plain equivalents from a substitution table (pinyin-data's ok.json)
   - a decomposition driven one, applying Unicode NFKD and dropping all
     combining marks

Both end up in the same canonical alphabet: lower-case a–z, "v" for ü,
and the apostrophe.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tone

import (
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Normalizer converts a raw reading for one character into a canonical
// token. An empty result means there is nothing usable in raw.
type Normalizer interface {
	Normalize(raw string) string
}

// Alphabet is the range table of runes allowed in canonical tokens.
var Alphabet = makeAlphabet()

func makeAlphabet() *unicode.RangeTable {
	rs := []rune{'\''}
	for r := 'a'; r <= 'z'; r++ {
		rs = append(rs, r)
	}
	return rangetable.New(rs...)
}

// combining holds every kind of combining mark. Tone marks are Mn, but
// we do not want anything else to slip through either.
var combining = rangetable.Merge(unicode.Mn, unicode.Mc, unicode.Me)

const (
	umlautU        = 'ü'
	combDiaeresis  = '\u0308' // COMBINING DIAERESIS
	rightQuoteMark = '\u2019' // RIGHT SINGLE QUOTATION MARK
)

var substitutions = strings.NewReplacer(
	"u:", "v",
	string(umlautU), "v",
	string(rightQuoteMark), "'",
)

// PrepareJoined lower-cases and trims s and replaces the vendor specific
// ü spellings and typographic quotes. Other characters are left in place.
func PrepareJoined(s string) string {
	return substitutions.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Canonicalize applies the ü and quote substitutions to an already tone
// stripped reading and removes every rune not in Alphabet.
func Canonicalize(s string) string {
	s = substitutions.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.Is(Alphabet, r) {
			return r
		}
		return -1
	}, s)
}

// ForTable selects the strategy to use for a whole build. A non-empty
// substitution table selects the table strategy; otherwise decomposition is used.
func ForTable(subst map[rune]string) Normalizer {
	if len(subst) > 0 {
		T().Debugf("tone: using substitution table with %d entries", len(subst))
		return NewTableNormalizer(subst)
	}
	T().Debugf("tone: using Unicode decomposition")
	return NewDecompositionNormalizer()
}

// --- Table strategy --------------------------------------------------------

// TableNormalizer replaces decorated characters by table lookup.
type TableNormalizer struct {
	subst map[rune]string
}

// NewTableNormalizer creates a normalizer from a substitution table.
// The table is not copied and must not be modified afterwards.
func NewTableNormalizer(subst map[rune]string) *TableNormalizer {
	return &TableNormalizer{subst: subst}
}

// Normalize is part of interface Normalizer.
func (tn *TableNormalizer) Normalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := tn.subst[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return Canonicalize(b.String())
}

// --- Decomposition strategy ------------------------------------------------

// DecompositionNormalizer strips tone marks by compatibility decomposition.
type DecompositionNormalizer struct {
	stripMarks transform.Transformer
}

// NewDecompositionNormalizer creates a normalizer using Unicode NFKD.
func NewDecompositionNormalizer() *DecompositionNormalizer {
	return &DecompositionNormalizer{
		stripMarks: runes.Remove(runes.In(combining)),
	}
}

// Normalize is part of interface Normalizer.
func (dn *DecompositionNormalizer) Normalize(raw string) string {
	text := norm.NFKD.String(strings.ToLower(strings.TrimSpace(raw)))
	text = foldUmlaut(text)
	out, _, err := transform.String(dn.stripMarks, text)
	if err != nil {
		T().Errorf("tone: cannot strip marks from %q: %v", raw, err)
		return ""
	}
	return Canonicalize(out)
}

// foldUmlaut maps a decomposed ü, i.e. 'u' followed by a combining
// diaeresis, to 'v'. Tone marks may sit between the two, as in "ǘ".
func foldUmlaut(s string) string {
	if !strings.ContainsRune(s, combDiaeresis) {
		return s
	}
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if rs[i] != 'u' {
			out = append(out, rs[i])
			continue
		}
		j := i + 1
		for j < len(rs) && unicode.Is(combining, rs[j]) && rs[j] != combDiaeresis {
			j++
		}
		if j < len(rs) && rs[j] == combDiaeresis {
			out = append(out, 'v')
			out = append(out, rs[i+1:j]...)
			i = j
			continue
		}
		out = append(out, rs[i])
	}
	return string(out)
}
