/*
Package generate runs the complete table generation.

A run reads a pinyin-data source directory and an optional word dictionary,
and writes the mapping, token and word tables. All tables are computed before
the first file is written, so a failing precondition never leaves partial
output behind. Identical inputs reproduce byte-identical outputs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pinyindata/chartable"
	"github.com/npillmayer/pinyindata/emit"
	"github.com/npillmayer/pinyindata/segment"
	"github.com/npillmayer/pinyindata/tokens"
	"github.com/npillmayer/pinyindata/wordtable"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// WordsFile is the name of the word dictionary within a source directory.
const WordsFile = "hanzi_pinyin_words.csv"

// ErrNoSource is returned if the source directory does not exist.
var ErrNoSource = errors.New("source directory does not exist")

// Config holds the paths for a run.
type Config struct {
	SourceDir        string // pinyin-data directory with pinyin.txt and optional ok.json
	MappingOut       string // output path of the mapping table
	TokenOut         string // output path of the token table
	WordsOut         string // output path of the word table
	WordsSource      string // explicit word dictionary; empty for SourceDir/WordsFile
	LegacyMappingOut string // compatibility copy of the mapping table
	LegacyTokenOut   string // compatibility copy of the token table
	LegacyCopy       bool   // write the compatibility copies?
}

// DefaultConfig returns a configuration with the default paths, relative to the
// root of a repository.
func DefaultConfig() Config {
	return Config{
		SourceDir:        "third_party/pinyin-data",
		MappingOut:       "sql/data/pinyin_mapping.csv",
		TokenOut:         "sql/data/pinyin_token.csv",
		WordsOut:         "sql/data/pinyin_words.csv",
		LegacyMappingOut: "sql_patent/pinyin_mapping.csv",
		LegacyTokenOut:   "sql_patent/pinyin_token.csv",
		LegacyCopy:       true,
	}
}

// WordsPath returns the path of the word dictionary to use.
func (cfg Config) WordsPath() string {
	if cfg.WordsSource != "" {
		return cfg.WordsSource
	}
	return filepath.Join(cfg.SourceDir, WordsFile)
}

// Summary reports the outcome of a run.
type Summary struct {
	Characters    int      // number of characters in the mapping table
	TokenRows     int      // number of rows in the token table
	Words         int      // number of words kept
	Fallbacks     int      // number of words with fallback segmentation
	WordsSource   string   // word dictionary consulted
	Written       []string // output files
	LegacyWritten []string // compatibility copies
}

// Report prints a human readable summary to w.
func (s *Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "[ok] characters: %d\n", s.Characters)
	fmt.Fprintf(w, "[ok] token rows: %d\n", s.TokenRows)
	fmt.Fprintf(w, "[ok] words source: %s\n", s.WordsSource)
	fmt.Fprintf(w, "[ok] words: %d (fallback segmentation: %d)\n", s.Words, s.Fallbacks)
	fmt.Fprintf(w, "[ok] wrote: %s\n", strings.Join(s.Written, ", "))
	if len(s.LegacyWritten) > 0 {
		fmt.Fprintf(w, "[ok] legacy copies: %s\n", strings.Join(s.LegacyWritten, ", "))
	}
}

// output is a rendered table, waiting to be written.
type output struct {
	path   string
	data   []byte
	legacy bool
}

// Run generates all tables as configured.
func Run(cfg Config) (*Summary, error) {
	summary, outputs, err := render(cfg)
	if err != nil {
		return nil, err
	}
	for _, out := range outputs {
		if err := emit.WriteFile(out.path, out.data); err != nil {
			return nil, err
		}
		tracer().Debugf("generate: wrote %d bytes to %s", len(out.data), out.path)
		if out.legacy {
			summary.LegacyWritten = append(summary.LegacyWritten, out.path)
		} else {
			summary.Written = append(summary.Written, out.path)
		}
	}
	return summary, nil
}

// Check generates all tables in memory and compares them with the files on disk.
// It returns the paths of outputs which are missing or differ.
func Check(cfg Config) ([]string, error) {
	_, outputs, err := render(cfg)
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, out := range outputs {
		onDisk, err := os.ReadFile(out.path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %v: %w", out.path, err)
			}
			stale = append(stale, out.path)
			continue
		}
		if !bytes.Equal(onDisk, out.data) {
			stale = append(stale, out.path)
		}
	}
	return stale, nil
}

func render(cfg Config) (*Summary, []output, error) {
	if fi, err := os.Stat(cfg.SourceDir); err != nil || !fi.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoSource, cfg.SourceDir)
	}
	chars, err := chartable.Load(cfg.SourceDir)
	if err != nil {
		return nil, nil, err
	}
	table := tokens.Classify(chars)
	vocab := segment.NewVocabulary(table.Vocabulary())
	words, err := wordtable.Load(cfg.WordsPath(), vocab)
	if err != nil {
		return nil, nil, err
	}
	mapping, err := emit.Render(func(w io.Writer) error { return emit.WriteMapping(w, chars) })
	if err != nil {
		return nil, nil, err
	}
	tokenData, err := emit.Render(func(w io.Writer) error { return emit.WriteTokens(w, table) })
	if err != nil {
		return nil, nil, err
	}
	wordData, err := emit.Render(func(w io.Writer) error { return emit.WriteWords(w, words) })
	if err != nil {
		return nil, nil, err
	}
	outputs := []output{
		{path: cfg.MappingOut, data: mapping},
		{path: cfg.TokenOut, data: tokenData},
		{path: cfg.WordsOut, data: wordData},
	}
	if cfg.LegacyCopy {
		outputs = append(outputs,
			output{path: cfg.LegacyMappingOut, data: mapping, legacy: true},
			output{path: cfg.LegacyTokenOut, data: tokenData, legacy: true},
		)
	}
	summary := &Summary{
		Characters:  chars.Len(),
		TokenRows:   len(table),
		Words:       words.Len(),
		Fallbacks:   words.Fallbacks(),
		WordsSource: cfg.WordsPath(),
	}
	return summary, outputs, nil
}
