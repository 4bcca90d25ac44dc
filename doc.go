/*
Package pinyindata is about compiling reference tables for pinyin search.

Description

A phonetic search over Chinese text needs to know how every Han character
may be pronounced, which romanized units ("tokens") exist at all, and how
multi-character words are read. The raw material comes from the
pinyin-data project: a line-oriented file of the form

   U+6211: wǒ  # 我

plus an optional tone-substitution table and an optional dictionary of
words with their joined readings (e.g. "xi'an" or "zhangsan").
Package pinyindata and its sub-packages turn these into three derived
tables:

   mapping   character -> |token1|token2|...|
   token     token -> category (1 = full syllable, 2 = initial, 3 = vowel)
   words     word -> space separated tokens

Search engines consuming these tables are not part of this module.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

Contents

The pipeline is split into sub-packages, leaves first:

   tone       normalizes a single raw reading to a canonical ASCII token
   chartable  loads the character -> tokens table from pinyin.txt
   tokens     classifies tokens into full syllables, vowels and initials
   segment    splits joined word readings into tokens (greedy longest match)
   wordtable  applies the segmenter to a word dictionary
   emit       writes (and reads back) the CSV tables
   generate   wires all of the above into a single run

Command pinyingen (in cmd/pinyingen) is a thin command-line front end to
package generate.

Tracing

All packages trace to the schuko core tracer. Clients may set
gtrace.CoreTracer to any tracing.Trace implementation before calling into
the pipeline; the command-line tool installs a Go log adapter.
*/
package pinyindata

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
