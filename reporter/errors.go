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

// Package reporter implements the single error model shared by the
// tokenizer, parser, and emitter: a closed set of error kinds, each carrying
// zero or more source spans and an ordered "while ..." context chain.
//
// Every error produced by this pipeline is terminal for that pipeline stage;
// there is no recovery protocol. Handler (see handler.go) exists only so a
// caller that wants to keep parsing after reporting an error - to surface
// more diagnostics in one pass, the way IDE tooling wants to - has a place
// to plug that decision in. Nothing in the CORE calls it; every stage stops
// at its first error.
package reporter

import (
	"fmt"
	"strings"

	"github.com/justanothercell/lithia/source"
)

// Kind identifies which of the closed set of error categories an Error
// belongs to.
type Kind int

const (
	// EOF means the input ended where more was required.
	EOF Kind = iota
	// IOError wraps an underlying I/O failure (reading source, etc).
	IOError
	// TokenizationError is a lexical failure: bad char literal, unterminated
	// string/comment, and the like.
	TokenizationError
	// LiteralError is a malformed numeric/char/string literal, including
	// radix/suffix/float-ness mismatches.
	LiteralError
	// ParsingError means no grammar rule matched at the current position.
	ParsingError
	// AlreadyDefinedError is a name collision at module scope.
	AlreadyDefinedError
	// VariableNotFound means a scope lookup failed.
	VariableNotFound
	// TypeError means a type failed to satisfy another at the required
	// level (see package types).
	TypeError
	// CastError means a cast is not permitted at any satisfiability level.
	CastError
	// TagError means an attribute was used somewhere it is not allowed.
	TagError
	// UnsafeError means an unsafe construct was used outside an unsafe
	// context.
	UnsafeError
	// CompilationError is the residual catch-all for semantic failures that
	// don't fit a more specific kind.
	CompilationError
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IOError:
		return "IO Error"
	case TokenizationError:
		return "Tokenization Error"
	case LiteralError:
		return "Literal Error"
	case ParsingError:
		return "Parsing Error"
	case AlreadyDefinedError:
		return "Multiple Definitions Error"
	case VariableNotFound:
		return "Name Error"
	case TypeError:
		return "Type Error"
	case CastError:
		return "Cast Error"
	case TagError:
		return "Compiler Flag Error"
	case UnsafeError:
		return "Unsafe Context Error"
	case CompilationError:
		return "Compilation Error"
	default:
		return "Error"
	}
}

// Error is the single error record used throughout the pipeline: a kind, a
// message, zero or more spans (for multi-site diagnostics such as "already
// defined here; redefined here"), and an ordered context chain built up as
// the error bubbles through named parser/emitter productions.
type Error struct {
	kind    Kind
	msg     string
	spans   []source.Span
	context []string
}

// New creates an Error of the given kind with a formatted message and no
// spans attached yet. Call At or Ats to attach location information.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// At attaches a single span to the error, replacing any spans already set.
func (e *Error) At(span source.Span) *Error {
	e.spans = []source.Span{span}
	return e
}

// Ats attaches multiple spans to the error (used for "previously defined
// here" style diagnostics), replacing any spans already set.
func (e *Error) Ats(spans ...source.Span) *Error {
	e.spans = spans
	return e
}

// AtAdd appends an additional span without discarding the ones already
// attached.
func (e *Error) AtAdd(span source.Span) *Error {
	e.spans = append(e.spans, span)
	return e
}

// When pushes a context frame describing the production or operation being
// attempted when the error occurred. Context frames render most-recent-last,
// matching the order in which they were pushed as the error bubbled up.
func (e *Error) When(reason string) *Error {
	e.context = append(e.context, reason)
	return e
}

// Kind returns the error's category.
func (e *Error) Kind() Kind { return e.kind }

// Spans returns the spans attached to the error, in attachment order.
func (e *Error) Spans() []source.Span { return e.spans }

// Error implements the error interface, rendering the format described in
// spec §6: a top line of "<Kind>:\n    <msg>", then "while ..." context
// lines most-recent-last, then each span rendered with source context.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n    %s", e.kind, e.msg)
	for _, c := range e.context {
		fmt.Fprintf(&b, "\n    while %s", c)
	}
	for _, sp := range e.spans {
		fmt.Fprintf(&b, "\n%s\n%s", sp, sp.Render(2))
	}
	return b.String()
}

// Is lets errors.Is match two *Error values by Kind, so tests can write
// errors.Is(err, reporter.New(reporter.EOF, "")) without comparing messages
// or spans.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

// When wraps err (if non-nil) with an additional context frame. It is a free
// function so call sites that only have a plain error can still participate
// in the context chain: reporter.When(err, "compiling constant").
func When(err error, reason string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe.When(reason)
	}
	return New(CompilationError, "%s", err.Error()).When(reason)
}

// At wraps err (if non-nil) with a location, for call sites that receive a
// plain error (e.g. from an io.Reader) and need to attach a span.
func At(err error, span source.Span) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe.At(span)
	}
	return New(IOError, "%s", err.Error()).At(span)
}

// FromIO wraps a plain I/O error as an Error of kind IOError.
func FromIO(err error) *Error {
	return New(IOError, "%s", err.Error()).When("doing IO operation")
}
