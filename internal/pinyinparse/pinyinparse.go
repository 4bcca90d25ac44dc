/* Package pinyinparse provides a line-level scanner for pinyin-data files.

The format of pinyin.txt, as published by the pinyin-data project
(https://github.com/mozillazg/pinyin-data), mixes metadata comments and data
lines. A data line looks like

   U+4E2D: zhōng,zhòng  # 中

i.e., a code point in UCD notation, a colon, a comma separated list of
readings, and an optional trailing comment. Lines not matching this shape are
skipped.
*/
package pinyinparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

var lineRE = regexp.MustCompile(`^U\+([0-9A-F]+):\s*([^#]+?)\s*(?:#.*)?$`)

// maxLineLength limits the size of a single input line.
const maxLineLength = 1024 * 1024

// Token subsumes the properties of a data line of a pinyin-data file.
type Token struct {
	LineNo    int      // line number within the input source, starting at 1
	CodePoint rune     // the character the readings belong to
	Readings  []string // raw readings, untrimmed, in source order
	Comment   string   // rest-of-line comment, if any
}

func (token *Token) String() string {
	return fmt.Sprintf("token[at %d %#U %v]", token.LineNo, token.CodePoint, token.Readings)
}

// Reading gets reading #i (1…n) from the token.
func (token *Token) Reading(i int) string {
	if i > 0 && i <= len(token.Readings) {
		return token.Readings[i-1]
	}
	return ""
}

// Scanner reads data lines from a pinyin-data file. Its interface is similar
// to bufio.Scanner: successive calls to Next step through the data lines,
// skipping anything else.
type Scanner struct {
	lines   *bufio.Scanner
	lineNo  int
	skipped int
	token   *Token
	err     error
}

// New creates a scanner for an input reader.
func New(inputReader io.Reader) (*Scanner, error) {
	if inputReader == nil {
		return nil, errors.New("no input present")
	}
	lines := bufio.NewScanner(inputReader)
	lines.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &Scanner{lines: lines}, nil
}

// Parse iterates over each data line of the input and calls callback f on it.
func Parse(r io.Reader, f func(token *Token)) error {
	sc, err := New(r)
	if err != nil {
		return err
	}
	for sc.Next() {
		f(sc.Token())
	}
	return sc.Err()
}

// Next advances the scanner to the next data line. It returns false at the end of
// input or on a read error.
func (sc *Scanner) Next() bool {
	for sc.lines.Scan() {
		sc.lineNo++
		line := strings.TrimSpace(sc.lines.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		token, ok := scanLine(line)
		if !ok {
			tracer().Debugf("pinyinparse: skipping line %d: %q", sc.lineNo, line)
			sc.skipped++
			continue
		}
		token.LineNo = sc.lineNo
		sc.token = token
		return true
	}
	sc.token = nil
	sc.err = sc.lines.Err()
	return false
}

// Token returns the token produced by the most recent call to Next.
func (sc *Scanner) Token() *Token {
	return sc.token
}

// Skipped returns the number of non-blank, non-comment lines which did not
// carry valid data.
func (sc *Scanner) Skipped() int {
	return sc.skipped
}

// Err returns the first error encountered while reading input.
func (sc *Scanner) Err() error {
	return sc.err
}

func scanLine(line string) (*Token, bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	r, ok := decodeCodePoint(m[1])
	if !ok {
		return nil, false
	}
	token := &Token{
		CodePoint: r,
		Readings:  strings.Split(m[2], ","),
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		token.Comment = strings.TrimSpace(line[i+1:])
	}
	return token, true
}

func decodeCodePoint(hex string) (rune, bool) {
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		tracer().Debugf("pinyinparse: hex decoding error: %v", err)
		return 0, false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
