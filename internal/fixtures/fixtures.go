// Package fixtures locates the pinyin-data fixtures used by tests.
package fixtures

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Fixture file names, as found in a pinyin-data checkout.
const (
	PinyinFile   = "pinyin.txt"
	OkFile       = "ok.json"
	WordsFile    = "hanzi_pinyin_words.csv"
	NoWordsDir   = "no-words"
	EmptyDataDir = "empty"
)

// Reader returns a reader for the given fixture file.
func Reader(file string) (io.Reader, error) {
	data, err := os.ReadFile(Path(file))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Path returns the path for the given fixture file.
func Path(file string) string {
	return filepath.Join(Dir(), file)
}

// Dir returns the fixture directory, laid out like a pinyin-data checkout.
// Sub-directories hold variants of it (see NoWordsDir and EmptyDataDir).
func Dir() string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}
	return filepath.Join(filepath.Dir(pkgdir), "pinyin-data")
}
