package generate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/pinyindata/chartable"
	"github.com/npillmayer/pinyindata/emit"
	"github.com/npillmayer/pinyindata/internal/fixtures"
	"github.com/npillmayer/pinyindata/tokens"
)

func configFor(source, out string) Config {
	return Config{
		SourceDir:        source,
		MappingOut:       filepath.Join(out, "sql", "data", "pinyin_mapping.csv"),
		TokenOut:         filepath.Join(out, "sql", "data", "pinyin_token.csv"),
		WordsOut:         filepath.Join(out, "sql", "data", "pinyin_words.csv"),
		LegacyMappingOut: filepath.Join(out, "sql_patent", "pinyin_mapping.csv"),
		LegacyTokenOut:   filepath.Join(out, "sql_patent", "pinyin_token.csv"),
		LegacyCopy:       true,
	}
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	cfg := configFor(fixtures.Dir(), t.TempDir())
	summary, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Characters != 12 || summary.TokenRows != 41 {
		t.Errorf("expected 12 characters and 41 token rows, have %d and %d",
			summary.Characters, summary.TokenRows)
	}
	if summary.Words != 5 || summary.Fallbacks != 2 {
		t.Errorf("expected 5 words and 2 fallbacks, have %d and %d", summary.Words, summary.Fallbacks)
	}
	if len(summary.Written) != 3 || len(summary.LegacyWritten) != 2 {
		t.Errorf("unexpected outputs %v / %v", summary.Written, summary.LegacyWritten)
	}
	mapping := `〇,|ling|yuan|xing|
三,|san|
中,|zhong|
哦,|o|e|
唔,|wu|n|m|
女,|nv|ru|
安,|an|
张,|zhang|
我,|wo|
西,|xi|
重,|zhong|chong|tong|
阿,|a|e|
`
	if got := readFile(t, cfg.MappingOut); got != mapping {
		t.Errorf("unexpected mapping table:\n%s", got)
	}
	toks := readFile(t, cfg.TokenOut)
	head := "chong,1\nzhang,1\nzhong,1\nling,1\ntong,1\nxing,1\nyuan,1\nsan,1\n" +
		"an,1\nnv,1\nru,1\nwo,1\nwu,1\nxi,1\na,3\ne,3\no,3\nzh,2\nch,2\nsh,2\nb,2\n"
	if !strings.HasPrefix(toks, head) || !strings.HasSuffix(toks, "y,2\nz,2\n") {
		t.Errorf("unexpected token table:\n%s", toks)
	}
	words := "西安,xi an\n张三,zhang san\n中国,zhong guo\n阿女,an v\n重重,chong chong\n"
	if got := readFile(t, cfg.WordsOut); got != words {
		t.Errorf("unexpected word table:\n%s", got)
	}
	if readFile(t, cfg.LegacyMappingOut) != mapping {
		t.Error("legacy mapping copy differs from mapping table")
	}
	if readFile(t, cfg.LegacyTokenOut) != toks {
		t.Error("legacy token copy differs from token table")
	}
	var buf bytes.Buffer
	summary.Report(&buf)
	if !strings.Contains(buf.String(), "[ok] words: 5 (fallback segmentation: 2)") {
		t.Errorf("unexpected report:\n%s", buf.String())
	}
}

func TestIdempotence(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg1 := configFor(fixtures.Dir(), t.TempDir())
	cfg2 := configFor(fixtures.Dir(), t.TempDir())
	if _, err := Run(cfg1); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(cfg2); err != nil {
		t.Fatal(err)
	}
	pairs := [][2]string{
		{cfg1.MappingOut, cfg2.MappingOut},
		{cfg1.TokenOut, cfg2.TokenOut},
		{cfg1.WordsOut, cfg2.WordsOut},
	}
	for _, p := range pairs {
		if readFile(t, p[0]) != readFile(t, p[1]) {
			t.Errorf("outputs %s and %s differ", p[0], p[1])
		}
	}
}

func TestEndToEndSingleLine(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, chartable.PinyinFile), []byte("U+6211: wo3 # 我\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := configFor(src, t.TempDir())
	cfg.LegacyCopy = false
	summary, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, cfg.MappingOut); got != "我,|wo|\n" {
		t.Errorf("expected mapping row '我,|wo|', have %q", got)
	}
	if got := readFile(t, cfg.TokenOut); !strings.HasPrefix(got, "wo,1\n") {
		t.Errorf("expected token row 'wo,1' first, have %q", got)
	}
	// missing word dictionary: empty, but written
	if got := readFile(t, cfg.WordsOut); got != "" {
		t.Errorf("expected empty word table, have %q", got)
	}
	if summary.Words != 0 || len(summary.LegacyWritten) != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if _, err := os.Stat(cfg.LegacyMappingOut); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("legacy copy must not be written, stat = %v", err)
	}
}

func TestWordsSource(t *testing.T) {
	cfg := configFor(filepath.Join(fixtures.Dir(), fixtures.NoWordsDir), t.TempDir())
	if cfg.WordsPath() != filepath.Join(cfg.SourceDir, WordsFile) {
		t.Errorf("unexpected default words path %s", cfg.WordsPath())
	}
	cfg.WordsSource = fixtures.Path(fixtures.WordsFile)
	summary, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Words != 5 || summary.WordsSource != cfg.WordsSource {
		t.Errorf("expected explicit word source to be used, have %+v", summary)
	}
}

func TestFatal(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	out := t.TempDir()
	cfg := configFor(filepath.Join(out, "does-not-exist"), out)
	if _, err := Run(cfg); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, have %v", err)
	}
	cfg = configFor(filepath.Join(fixtures.Dir(), fixtures.EmptyDataDir), out)
	if _, err := Run(cfg); !errors.Is(err, chartable.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, have %v", err)
	}
	if _, err := os.Stat(cfg.MappingOut); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no output may be written on fatal errors, stat = %v", err)
	}
}

func TestCheck(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := configFor(fixtures.Dir(), t.TempDir())
	stale, err := Check(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 5 {
		t.Errorf("expected all 5 outputs to be missing, have %v", stale)
	}
	if _, err := Run(cfg); err != nil {
		t.Fatal(err)
	}
	if stale, _ = Check(cfg); len(stale) != 0 {
		t.Errorf("expected outputs to be up to date after run, have %v", stale)
	}
	if err := os.WriteFile(cfg.TokenOut, []byte("wo,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if stale, _ = Check(cfg); len(stale) != 1 || stale[0] != cfg.TokenOut {
		t.Errorf("expected token table to be stale, have %v", stale)
	}
}

func TestReadBack(t *testing.T) {
	cfg := configFor(fixtures.Dir(), t.TempDir())
	if _, err := Run(cfg); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(cfg.TokenOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	table, err := emit.ReadTokens(f)
	if err != nil {
		t.Fatal(err)
	}
	chars, err := chartable.Load(cfg.SourceDir)
	if err != nil {
		t.Fatal(err)
	}
	fresh := tokens.Classify(chars)
	if len(table) != len(fresh) {
		t.Fatalf("expected %d token rows, read %d", len(fresh), len(table))
	}
	for i := range fresh {
		if table[i] != fresh[i] {
			t.Errorf("row %d: expected %v, read %v", i, fresh[i], table[i])
		}
	}
}
