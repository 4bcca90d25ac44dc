/*
Package chartable loads the character to pinyin table.

The source is a pinyin.txt file from the pinyin-data project, optionally
accompanied by a tone-substitution table ok.json in the same directory.
Every reading is normalized to a canonical token (see package tone); a
character ends up with its distinct tokens in the order of their first
appearance.

   tab, err := chartable.Load("third_party/pinyin-data")
   ...
   tab.Each(func(r rune, tokens []string) { ... })

Iteration is always in ascending code point order.
*/
package chartable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pinyindata/internal/pinyinparse"
	"github.com/npillmayer/pinyindata/tone"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// File names within a pinyin-data source directory.
const (
	PinyinFile        = "pinyin.txt"
	SubstitutionsFile = "ok.json"
)

// ErrEmptyTable is returned when a source does not yield a single usable entry.
var ErrEmptyTable = errors.New("no pinyin character mapping loaded from source")

// Table maps characters to their canonical tokens.
type Table struct {
	entries *treemap.Map // rune -> []string
}

// New creates an empty table.
func New() *Table {
	return &Table{entries: treemap.NewWith(utils.RuneComparator)}
}

// Put sets the tokens for character r, replacing any previous entry.
func (t *Table) Put(r rune, tokens []string) {
	t.entries.Put(r, tokens)
}

// Len returns the number of characters in the table.
func (t *Table) Len() int {
	return t.entries.Size()
}

// Tokens returns a copy of the tokens for character r, or nil.
func (t *Table) Tokens(r rune) []string {
	v, found := t.entries.Get(r)
	if !found {
		return nil
	}
	tokens := v.([]string)
	return append([]string(nil), tokens...)
}

// Each calls f for every character, in ascending code point order.
// f must not modify tokens.
func (t *Table) Each(f func(r rune, tokens []string)) {
	it := t.entries.Iterator()
	for it.Next() {
		f(it.Key().(rune), it.Value().([]string))
	}
}

// Parse reads a pinyin.txt formatted input, normalizing readings with n.
// If no line yields a usable entry, ErrEmptyTable is returned.
//
// A character defined more than once keeps the entry of its last definition.
func Parse(r io.Reader, n tone.Normalizer) (*Table, error) {
	t := New()
	err := pinyinparse.Parse(r, func(token *pinyinparse.Token) {
		tokens := distinct(token.Readings, n)
		if len(tokens) == 0 {
			tracer().Debugf("chartable: no usable reading for %#U", token.CodePoint)
			return
		}
		if _, dup := t.entries.Get(token.CodePoint); dup {
			tracer().Debugf("chartable: line %d redefines %#U", token.LineNo, token.CodePoint)
		}
		t.Put(token.CodePoint, tokens)
	})
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// distinct normalizes readings and drops empty and duplicate tokens,
// preserving first-seen order.
func distinct(readings []string, n tone.Normalizer) []string {
	set := linkedhashset.New()
	for _, pron := range readings {
		if token := n.Normalize(pron); token != "" {
			set.Add(token)
		}
	}
	tokens := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		tokens = append(tokens, v.(string))
	}
	return tokens
}

// Load reads a character table from a pinyin-data source directory.
// If the directory contains a substitution table, tone marks are replaced
// using that table; otherwise Unicode decomposition is used.
func Load(dir string) (*Table, error) {
	subst, err := tone.LoadSubstitutions(filepath.Join(dir, SubstitutionsFile))
	if err != nil {
		return nil, err
	}
	n := tone.ForTable(subst)
	path := filepath.Join(dir, PinyinFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %v: %w", path, err)
	}
	defer f.Close()
	t, err := Parse(f, n)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	tracer().Infof("chartable: loaded %d characters from %s", t.Len(), path)
	return t, nil
}
