package pinyinparse

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseLine(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	input := strings.NewReader("U+4E2D: zhōng,zhòng  # 中")
	sc, err := New(input)
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Next() {
		t.Fatalf("expected a data line, have none (err = %v)", sc.Err())
	}
	token := sc.Token()
	t.Logf("token = %v", token)
	if token.CodePoint != 0x4E2D {
		t.Errorf("expected code point U+4E2D, is %#U", token.CodePoint)
	}
	if token.Reading(1) != "zhōng" || token.Reading(2) != "zhòng" {
		t.Errorf("expected readings zhōng and zhòng, are %v", token.Readings)
	}
	if token.Reading(3) != "" {
		t.Errorf("expected reading #3 to be empty, is %q", token.Reading(3))
	}
	if token.Comment != "中" {
		t.Errorf("expected comment '中', is %q", token.Comment)
	}
	if sc.Next() {
		t.Errorf("expected end of input, have %v", sc.Token())
	}
}

func TestSkipNoise(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	input := `# version: 0.10.2
# source: https://github.com/mozillazg/pinyin-data

U+3007: líng,yuán,xīng  # 〇
not a data line
U+ZZZZ: wǒ
U+110000: a
u+6211: wǒ
U+D800: a
  U+6211: wǒ  # 我
`
	var tokens []*Token
	err := Parse(strings.NewReader(input), func(token *Token) {
		tokens = append(tokens, token)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 data lines, have %d: %v", len(tokens), tokens)
	}
	if tokens[0].CodePoint != 0x3007 || len(tokens[0].Readings) != 3 {
		t.Errorf("unexpected first token %v", tokens[0])
	}
	if tokens[1].CodePoint != '我' || tokens[1].LineNo != 10 {
		t.Errorf("unexpected second token %v", tokens[1])
	}
}

func TestReadingsWithoutComment(t *testing.T) {
	sc, _ := New(strings.NewReader("U+597D: hǎo , hào"))
	if !sc.Next() {
		t.Fatal("expected a data line")
	}
	if len(sc.Token().Readings) != 2 || sc.Token().Comment != "" {
		t.Errorf("unexpected token %v", sc.Token())
	}
	if sc.Skipped() != 0 {
		t.Errorf("expected no skipped lines, have %d", sc.Skipped())
	}
}

func TestNoInput(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for missing input")
	}
}
