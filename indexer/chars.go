// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package indexer

import (
	"unicode/utf8"

	"github.com/justanothercell/lithia/source"
)

// Char is one decoded code point of source text plus the byte span it
// occupies (1 byte for ASCII, more for multi-byte UTF-8).
type Char struct {
	Rune rune
	Span source.Span
}

// Chars is the Indexable backing a character Indexer: the full source text,
// pre-decoded into runes with their byte spans.
type Chars struct {
	items []Char
}

// NewChars decodes src's text into a Chars sequence.
func NewChars(src *source.Source) Chars {
	text := src.Text()
	items := make([]Char, 0, len(text))
	offset := 0
	for offset < len(text) {
		r, size := utf8.DecodeRune(text[offset:])
		items = append(items, Char{Rune: r, Span: source.NewSpan(src, offset, offset+size)})
		offset += size
	}
	return Chars{items: items}
}

func (c Chars) Get(i int) Char              { return c.items[i] }
func (c Chars) LocAt(i int) source.Span     { return c.items[i].Span }
func (c Chars) Len() int                    { return len(c.items) }

// NewCharIndexer builds an Indexer[Char] directly from a Source.
func NewCharIndexer(src *source.Source) *Indexer[Char] {
	return New[Char](NewChars(src))
}
