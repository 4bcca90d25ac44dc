/*
Package wordtable builds the word to tokens table.

Input is a word dictionary with rows of the form

   word,joined reading

e.g. "西安,xi'an". Every joined reading is re-segmented into tokens of a
vocabulary (see package segment). Word data is optional enrichment: malformed
rows are skipped, later duplicates of a word are dropped, and readings which
cannot be segmented completely are kept as well as possible.
*/
package wordtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pinyindata/segment"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Table maps words to space separated tokens, in the order words have been
// seen first.
type Table struct {
	words     *linkedhashmap.Map // string -> string
	fallbacks int
}

// New creates an empty word table.
func New() *Table {
	return &Table{words: linkedhashmap.New()}
}

// Len returns the number of words kept.
func (t *Table) Len() int {
	return t.words.Size()
}

// Fallbacks returns the number of words where segmentation had to fall back to
// unknown character runs.
func (t *Table) Fallbacks() int {
	return t.fallbacks
}

// Get returns the tokens for a word.
func (t *Table) Get(word string) (string, bool) {
	v, found := t.words.Get(word)
	if !found {
		return "", false
	}
	return v.(string), true
}

// Each calls f for every word, in first-seen order.
func (t *Table) Each(f func(word, tokens string)) {
	it := t.words.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(string))
	}
}

// Add segments joined and stores the result for word. It returns false if the
// row has been dropped, i.e. if word or joined is empty, word is already
// present, or segmentation yields no tokens.
func (t *Table) Add(word, joined string, v *segment.Vocabulary) bool {
	word, joined = strings.TrimSpace(word), strings.TrimSpace(joined)
	if word == "" || joined == "" {
		return false
	}
	if _, found := t.words.Get(word); found {
		tracer().Debugf("wordtable: dropping duplicate %q", word)
		return false
	}
	tokens, fallback := segment.Split(joined, v)
	if tokens == "" {
		return false
	}
	if fallback {
		t.fallbacks++
	}
	t.words.Put(word, tokens)
	return true
}

// Build reads a word dictionary in CSV format and segments its readings with
// vocabulary v. Rows with fewer than two fields or with a syntax error are skipped.
func Build(r io.Reader, v *segment.Vocabulary) (*Table, error) {
	t := New()
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true
	for {
		record, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				tracer().Debugf("wordtable: skipping row: %v", err)
				continue
			}
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		t.Add(record[0], record[1], v)
	}
	return t, nil
}

// Load reads a word dictionary from a file. The dictionary is optional: if the
// file does not exist, Load returns an empty table.
func Load(path string, v *segment.Vocabulary) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			tracer().Infof("wordtable: no word dictionary at %s", path)
			return New(), nil
		}
		return nil, fmt.Errorf("failed to open %v: %w", path, err)
	}
	defer f.Close()
	t, err := Build(f, v)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", path, err)
	}
	tracer().Infof("wordtable: %d words (fallback segmentation: %d)", t.Len(), t.Fallbacks())
	return t, nil
}
