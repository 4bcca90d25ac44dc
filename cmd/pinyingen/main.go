/*
Command pinyingen generates the dictionary tables for pinyin search.

It reads a checkout of the pinyin-data project (pinyin.txt, and optionally
ok.json and hanzi_pinyin_words.csv) and writes three CSV tables: the
character mapping, the token table and the word table.

Usage

   pinyingen [-v] [-check] [-source-dir dir] [-no-legacy-copy] ...

With -check, nothing is written; instead pinyingen lists outputs which are
missing or out of date and exits with status 1 if there are any.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pinyindata/generate"
)

var logger = log.New(os.Stderr, "pinyingen: ", log.LstdFlags)

// flag: verbose output ?
var verbose bool

func parseFlags(args []string) (generate.Config, bool, error) {
	cfg := generate.DefaultConfig()
	fs := flag.NewFlagSet("pinyingen", flag.ContinueOnError)
	fs.StringVar(&cfg.SourceDir, "source-dir", cfg.SourceDir, "path to pinyin-data repository")
	fs.StringVar(&cfg.MappingOut, "mapping-out", cfg.MappingOut, "output path for character mapping CSV")
	fs.StringVar(&cfg.TokenOut, "token-out", cfg.TokenOut, "output path for token CSV")
	fs.StringVar(&cfg.WordsOut, "words-out", cfg.WordsOut, "output path for word mapping CSV")
	fs.StringVar(&cfg.WordsSource, "words-source", "", "optional explicit hanzi_pinyin_words.csv path")
	fs.StringVar(&cfg.LegacyMappingOut, "legacy-mapping-out", cfg.LegacyMappingOut, "legacy output path for mapping CSV")
	fs.StringVar(&cfg.LegacyTokenOut, "legacy-token-out", cfg.LegacyTokenOut, "legacy output path for token CSV")
	noLegacy := fs.Bool("no-legacy-copy", false, "disable writing compatibility copies")
	check := fs.Bool("check", false, "only check if outputs are up to date")
	fs.BoolVar(&verbose, "v", false, "verbose output mode")
	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}
	cfg.LegacyCopy = !*noLegacy
	return cfg, *check, nil
}

func main() {
	cfg, check, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		return
	} else if err != nil {
		os.Exit(2)
	}
	gtrace.CoreTracer = gologadapter.New()
	if verbose {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	} else {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
	if check {
		runCheck(cfg)
		return
	}
	defer timeTrack(time.Now(), "table generation")
	summary, err := generate.Run(cfg)
	checkFatal(err)
	summary.Report(os.Stdout)
}

func runCheck(cfg generate.Config) {
	stale, err := generate.Check(cfg)
	checkFatal(err)
	for _, path := range stale {
		logger.Printf("out of date: %s", path)
	}
	if len(stale) > 0 {
		os.Exit(1)
	}
	if verbose {
		logger.Printf("all outputs up to date")
	}
}

// --- Util -------------------------------------------------------------

func timeTrack(start time.Time, name string) {
	if verbose {
		elapsed := time.Since(start)
		logger.Printf("timing: %s took %s\n", name, elapsed)
	}
}

func checkFatal(err error) {
	_, file, line, _ := runtime.Caller(1)
	if err != nil {
		if verbose {
			logger.Fatalln(":", file, ":", line, "-", err)
		}
		logger.Fatalln(err)
	}
}
