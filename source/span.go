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

package source

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, End) in a Source. Spans from
// different Sources must never be combined; ExtendTo panics if asked to.
type Span struct {
	Source *Source
	Start  int
	End    int
}

// NewSpan builds a Span without clamping: start must be <= end and end must
// lie within src's text, or NewSpan panics.
func NewSpan(src *Source, start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span: start %d > end %d", start, end))
	}
	if end > src.Len() {
		panic(fmt.Sprintf("invalid span: end %d exceeds source length %d", end, src.Len()))
	}
	return Span{Source: src, Start: start, End: end}
}

// Dummy returns a zero-width span with no source, used for synthesized AST
// nodes that have no corresponding source text (e.g. an implicit empty else
// block).
func Dummy() Span {
	return Span{}
}

// IsDummy reports whether this span has no backing source.
func (s Span) IsDummy() bool {
	return s.Source == nil
}

// ExtendTo returns the smallest span covering both s and other. Both spans
// must share the same Source.
func (s Span) ExtendTo(other Span) Span {
	if s.IsDummy() {
		return other
	}
	if other.IsDummy() {
		return s
	}
	if s.Source != other.Source {
		panic("cannot combine spans from different sources")
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Source: s.Source, Start: start, End: end}
}

// Len returns the byte length of the span.
func (s Span) Len() int { return s.End - s.Start }

// Bytes returns the source text covered by the span.
func (s Span) Bytes() []byte {
	if s.IsDummy() {
		return nil
	}
	return s.Source.Text()[s.Start:s.End]
}

// String satisfies fmt.Stringer by rendering a "file:line:col" coordinate
// for the start of the span.
func (s Span) String() string {
	if s.IsDummy() {
		return "<no location>"
	}
	line, col := s.Source.lineCol(s.Start)
	return fmt.Sprintf("%s:%d:%d", s.Source.Name(), line, col)
}

// Render produces a human-readable rendering of the span in its source
// context: `context` lines of surrounding text plus a caret underline
// beneath the offending range.
func (s Span) Render(context int) string {
	if s.IsDummy() {
		return ""
	}
	startLine, startCol := s.Source.lineCol(s.Start)
	endLine, _ := s.Source.lineCol(max(s.Start, s.End-1))

	firstLine := max(1, startLine-context)
	lastLine := min(len(s.Source.lines), endLine+context)

	var b strings.Builder
	for line := firstLine; line <= lastLine; line++ {
		text := s.lineText(line)
		fmt.Fprintf(&b, "%5d | %s\n", line, text)
		if line == startLine {
			pad := strings.Repeat(" ", startCol-1)
			underlineLen := s.caretWidth(line, startCol)
			fmt.Fprintf(&b, "      | %s%s\n", pad, strings.Repeat("^", underlineLen))
		}
	}
	return b.String()
}

func (s Span) lineText(line int) string {
	lines := s.Source.lines
	start := lines[line-1]
	var end int
	if line < len(lines) {
		end = lines[line] - 1 // exclude the newline
	} else {
		end = s.Source.Len()
	}
	if end < start {
		end = start
	}
	return strings.TrimSuffix(string(s.Source.Text()[start:end]), "\r")
}

func (s Span) caretWidth(line, col int) int {
	lineLen := len(s.lineText(line))
	avail := lineLen - (col - 1)
	width := s.Len()
	if width <= 0 {
		width = 1
	}
	if width > avail && avail > 0 {
		width = avail
	}
	if width <= 0 {
		width = 1
	}
	return width
}
