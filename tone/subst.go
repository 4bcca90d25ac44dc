package tone

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DecodeSubstitutions reads a substitution table from r. The table is a flat
// key-value document, where keys are single decorated characters and values
// are their plain replacements, e.g.
//
//    { "ā": "a", "á": "a", "ǖ": "v" }
//
// JSON is a subset of YAML, so both formats are accepted. Keys consisting of more
// than one character can never match and are skipped. An empty document results
// in an empty table.
func DecodeSubstitutions(r io.Reader) (map[rune]string, error) {
	var doc map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[rune]string{}, nil
		}
		return nil, fmt.Errorf("cannot decode substitution table: %w", err)
	}
	subst := make(map[rune]string, len(doc))
	for k, v := range doc {
		if utf8.RuneCountInString(k) != 1 {
			T().Debugf("tone: skipping substitution key %q", k)
			continue
		}
		r, _ := utf8.DecodeRuneInString(k)
		subst[r] = v
	}
	return subst, nil
}

// LoadSubstitutions reads a substitution table from a file. The table is
// optional: if the file does not exist, LoadSubstitutions returns a nil table
// and no error.
func LoadSubstitutions(path string) (map[rune]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			T().Infof("tone: no substitution table at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %v: %w", path, err)
	}
	defer f.Close()
	subst, err := DecodeSubstitutions(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return subst, nil
}
