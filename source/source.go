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

// Package source owns the raw text of a compilation unit and derives spans,
// code points, and line/column positions from it. It has no knowledge of
// tokens, grammar, or types; everything above it addresses source text only
// through a Source and the Spans it mints.
package source

import "fmt"

// Source is the immutable text of one compilation unit, plus an origin tag
// used for diagnostics. A Source is shared (by pointer) with every Span cut
// from it; it is never mutated after construction.
type Source struct {
	name string
	text []byte
	// lines[i] is the byte offset at which line i+1 (1-based) begins.
	// lines[0] is always 0.
	lines []int
}

// New builds a Source for a named origin, typically a file path.
func New(name string, text []byte) *Source {
	s := &Source{name: name, text: text}
	s.indexLines()
	return s
}

// Literal builds a Source with no file origin, for in-memory or generated
// snippets (e.g. a REPL line or a test fixture).
func Literal(text []byte) *Source {
	return New("<literal>", text)
}

func (s *Source) indexLines() {
	s.lines = []int{0}
	for i, b := range s.text {
		if b == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
}

// Name returns the origin tag for this source (a file path, or "<literal>").
func (s *Source) Name() string { return s.name }

// Text returns the full source text. Callers must not mutate the slice.
func (s *Source) Text() []byte { return s.text }

// Len returns the number of bytes in the source text.
func (s *Source) Len() int { return len(s.text) }

// lineCol converts a byte offset into a 1-based (line, column) pair. Column
// is a byte offset within the line, not a rune count.
func (s *Source) lineCol(offset int) (line, col int) {
	// binary search for the last line start <= offset
	lo, hi := 0, len(s.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - s.lines[lo] + 1
}

func (s *Source) String() string {
	return fmt.Sprintf("%s (%d bytes)", s.name, len(s.text))
}
