/*
Package emit writes the derived pinyin tables as CSV.

Three tables are produced:

   mapping   我,|wo|             one row per character, ascending code point
   token     wo,1                token and category code (1, 2 or 3)
   words     西安,xi an          one row per word, in first-seen order

Rows are terminated by a single line feed. Fields are quoted only if they
contain a separator, a quote or a line break.

For consumers of the tables, and for checking outputs on disk, ReadMapping and
ReadTokens parse the mapping and token tables back.
*/
package emit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/pinyindata/chartable"
	"github.com/npillmayer/pinyindata/tokens"
	"github.com/npillmayer/pinyindata/wordtable"
)

// JoinTokens formats the tokens of a character as |token1|token2|...|.
func JoinTokens(toks []string) string {
	return "|" + strings.Join(toks, "|") + "|"
}

// SplitTokens is the inverse of JoinTokens.
func SplitTokens(field string) ([]string, error) {
	if len(field) < 2 || field[0] != '|' || field[len(field)-1] != '|' {
		return nil, fmt.Errorf("malformed token list %q", field)
	}
	inner := field[1 : len(field)-1]
	if inner == "" {
		return []string{}, nil
	}
	return strings.Split(inner, "|"), nil
}

// WriteMapping writes the character mapping table.
func WriteMapping(w io.Writer, t *chartable.Table) error {
	cw := csv.NewWriter(w)
	var err error
	t.Each(func(r rune, toks []string) {
		if err == nil {
			err = cw.Write([]string{string(r), JoinTokens(toks)})
		}
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteTokens writes the token table.
func WriteTokens(w io.Writer, table tokens.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range table {
		if err := cw.Write([]string{row.Token, strconv.Itoa(int(row.Category))}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWords writes the word table.
func WriteWords(w io.Writer, t *wordtable.Table) error {
	cw := csv.NewWriter(w)
	var err error
	t.Each(func(word, toks string) {
		if err == nil {
			err = cw.Write([]string{word, toks})
		}
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Render calls write on an in-memory buffer and returns the result.
func Render(write func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to a file, creating its parent directories if necessary.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %v: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}

// --- Reading tables back ---------------------------------------------------

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true
	return cr
}

// ReadMapping parses a mapping table as written by WriteMapping.
func ReadMapping(r io.Reader) (*chartable.Table, error) {
	cr := newReader(r)
	t := chartable.New()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		c, size := utf8.DecodeRuneInString(record[0])
		if c == utf8.RuneError || size != len(record[0]) {
			return nil, fmt.Errorf("line %d: expected a single character, have %q", line, record[0])
		}
		toks, err := SplitTokens(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.Put(c, toks)
	}
}

// ReadTokens parses a token table as written by WriteTokens.
func ReadTokens(r io.Reader) (tokens.Table, error) {
	cr := newReader(r)
	var table tokens.Table
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(1)
		code, err := strconv.Atoi(record[1])
		if err != nil || !tokens.Category(code).Valid() {
			return nil, fmt.Errorf("line %d: invalid token category %q", line, record[1])
		}
		table = append(table, tokens.Row{Token: record[0], Category: tokens.Category(code)})
	}
}
