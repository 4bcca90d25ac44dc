/*
Package tokens classifies canonical pinyin tokens.

Every token is one of three categories:

   FullSyllable   a complete syllable like "zhang" or "an"
   Initial        a consonant (cluster) a syllable starts with, like "zh" or "b"
   Vowel          one of the bare vowels a, e, i, o, u

The category of a token depends on nothing but its content. The initials form
a closed list of 24 entries, digraphs first. They are always part of a token
table, even if no character is read as a bare initial, because downstream
consumers use them for prefix queries.
*/
package tokens

import (
	"strconv"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// TC traces to the core-tracer.
func TC() tracing.Trace {
	return gtrace.CoreTracer
}

// Category is the category of a token. Its numeric value is the category
// code used in token tables.
type Category int8

// Token categories
const (
	FullSyllable Category = 1
	Initial      Category = 2
	Vowel        Category = 3
)

func (c Category) String() string {
	switch c {
	case FullSyllable:
		return "FullSyllable"
	case Initial:
		return "Initial"
	case Vowel:
		return "Vowel"
	}
	return "Category(" + strconv.Itoa(int(c)) + ")"
}

// Valid returns true if c is one of the three token categories.
func (c Category) Valid() bool {
	return c >= FullSyllable && c <= Vowel
}

var initials = [...]string{
	"zh", "ch", "sh",
	"b", "c", "d", "f", "g", "h", "j", "k", "l", "m",
	"n", "p", "q", "r", "s", "t", "v", "w", "x", "y", "z",
}

var initialSet = makeSet(initials[:])

var vowelSet = makeSet([]string{"a", "e", "i", "o", "u"})

func makeSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// Initials returns the list of initials, in declaration order.
// Clients are free to modify the returned slice.
func Initials() []string {
	inits := make([]string, len(initials))
	copy(inits, initials[:])
	return inits
}

// IsInitial returns true if token is one of the fixed initials.
func IsInitial(token string) bool {
	_, ok := initialSet[token]
	return ok
}

// IsVowel returns true if token is a bare vowel.
func IsVowel(token string) bool {
	_, ok := vowelSet[token]
	return ok
}

// CategoryOf returns the category of a token.
func CategoryOf(token string) Category {
	if IsInitial(token) {
		return Initial
	}
	if IsVowel(token) {
		return Vowel
	}
	return FullSyllable
}

// --- Token tables ----------------------------------------------------------

// Row is a single entry of a token table.
type Row struct {
	Token    string
	Category Category
}

// Table is an ordered token table: full syllables, longer ones first and
// equal lengths sorted lexicographically, then the vowels sorted
// lexicographically, then all initials in declaration order.
type Table []Row

// Source is a collection of tokens per character, as loaded by package chartable.
type Source interface {
	Each(func(r rune, tokens []string))
}

// Classify creates the token table for all tokens used in src.
func Classify(src Source) Table {
	observed := hashset.New()
	if src != nil {
		src.Each(func(r rune, tokens []string) {
			for _, token := range tokens {
				observed.Add(token)
			}
		})
	}
	full := treeset.NewWith(bySpecificity)
	vowels := arraylist.New()
	for _, v := range observed.Values() {
		token := v.(string)
		switch CategoryOf(token) {
		case FullSyllable:
			full.Add(token)
		case Vowel:
			vowels.Add(token)
		}
	}
	vowels.Sort(utils.StringComparator)
	table := make(Table, 0, full.Size()+vowels.Size()+len(initials))
	for _, v := range full.Values() {
		table = append(table, Row{Token: v.(string), Category: FullSyllable})
	}
	for _, v := range vowels.Values() {
		table = append(table, Row{Token: v.(string), Category: Vowel})
	}
	for _, token := range initials {
		table = append(table, Row{Token: token, Category: Initial})
	}
	TC().Debugf("tokens: %d full syllables, %d vowels, %d initials",
		full.Size(), vowels.Size(), len(initials))
	return table
}

// bySpecificity orders longer tokens first, then lexicographically.
func bySpecificity(a, b interface{}) int {
	s1, s2 := a.(string), b.(string)
	if len(s1) != len(s2) {
		return len(s2) - len(s1)
	}
	return utils.StringComparator(s1, s2)
}

// Vocabulary returns the tokens a complete word may be split into, i.e. the
// full syllables and the vowels, in table order.
func (t Table) Vocabulary() []string {
	var vocab []string
	for _, row := range t {
		if row.Category == FullSyllable || row.Category == Vowel {
			vocab = append(vocab, row.Token)
		}
	}
	return vocab
}

// Count returns the number of rows of category c.
func (t Table) Count(c Category) int {
	n := 0
	for _, row := range t {
		if row.Category == c {
			n++
		}
	}
	return n
}
