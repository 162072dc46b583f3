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

// Package combinator is the parser combinator framework: composable,
// back-trackable consumers over a token Indexer, with a late-binding holder
// (Latent) for recursive grammars.
//
// A Consumer is simply a function from a token cursor to (Out, error): Go's
// function values already give it the "invoked through a narrow consume
// operation" dispatch the design calls for, so no consumer interface or
// boxed trait object is needed. Combinators are themselves ordinary
// higher-order functions that build and return new Consumers; grammar.go
// builds the language's grammar by composing them.
package combinator

import (
	"github.com/justanothercell/lithia/indexer"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// Iter is the cursor every Consumer operates over.
type Iter = indexer.Indexer[token.Token]

// Consumer mutates iter on success (and may mutate it on partial failure -
// combinators that need a clean rollback are responsible for cloning iter
// themselves before speculating).
type Consumer[Out any] func(iter *Iter) (Out, error)

// Void is the result type of combinators that care only about
// success/failure, not a value (Succeed, Fail, Both, predicate arms of
// Match/While/Optional/Or).
type Void struct{}

// Option is the result of Optional: a value that may or may not be present.
type Option[T any] struct {
	Value T
	Some  bool
}

// Satisfy consumes the current token if pred accepts it, advancing the
// cursor; otherwise it fails with a ParsingError naming what was expected.
// It is the basic token-consuming combinator that the grammar's primitives
// are built from.
func Satisfy(what string, pred func(token.Token) bool) Consumer[token.Token] {
	return func(iter *Iter) (token.Token, error) {
		tok, err := iter.This()
		if err != nil {
			return token.Token{}, reporter.When(err, "expecting "+what)
		}
		if !pred(tok) {
			return token.Token{}, reporter.New(reporter.ParsingError,
				"expected %s, found %s", what, tok).At(tok.Span)
		}
		iter.Next()
		return tok, nil
	}
}

// Discard adapts any Consumer into a Consumer[Void], discarding its output.
// It exists so a value-producing Consumer (Satisfy, item, a literal parser)
// can be used directly as a Match/While/Optional predicate without a
// separate boolean-returning twin.
func Discard[Out any](c Consumer[Out]) Consumer[Void] {
	return func(iter *Iter) (Void, error) {
		_, err := c(iter)
		return Void{}, err
	}
}

// Named decorates c's errors with "while parsing <name>", matching the
// context-chain behavior of reporter.Error.When.
func Named[Out any](name string, c Consumer[Out]) Consumer[Out] {
	return func(iter *Iter) (Out, error) {
		out, err := c(iter)
		if err != nil {
			return out, reporter.When(err, "parsing "+name)
		}
		return out, nil
	}
}

// Map transforms a successful Consumer's output, also receiving the span of
// everything it consumed (if it consumed nothing, the span of the token at
// the cursor, or a dummy span at end of input).
func Map[A, B any](c Consumer[A], f func(A, source.Span) B) Consumer[B] {
	mapped := MapRes(c, func(a A, span source.Span) (B, error) {
		return f(a, span), nil
	})
	return mapped
}

// MapRes is the fallible form of Map: f may itself report an error, which is
// attached to the span of what was consumed.
func MapRes[A, B any](c Consumer[A], f func(A, source.Span) (B, error)) Consumer[B] {
	return func(iter *Iter) (B, error) {
		var zero B
		start := iter.Here()
		startIdx := iter.Index
		a, err := c(iter)
		if err != nil {
			return zero, err
		}
		span := start
		if iter.Index > startIdx {
			if last, lerr := iter.PeekN(-1); lerr == nil {
				span = start.ExtendTo(last.Span)
			}
		}
		b, err := f(a, span)
		if err != nil {
			return zero, reporter.At(err, span)
		}
		return b, nil
	}
}

// Pair is the output of Seq2 and the building block every higher-arity Seq
// nests into.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq2 runs a then b in order; a failure of either aborts before the other
// runs (for b) or without rolling a back (tuple composition never rolls
// back - callers needing backtracking wrap the whole sequence in a cloned
// attempt, e.g. via Match or Optional).
func Seq2[A, B any](a Consumer[A], b Consumer[B]) Consumer[Pair[A, B]] {
	return func(iter *Iter) (Pair[A, B], error) {
		var out Pair[A, B]
		av, err := a(iter)
		if err != nil {
			return out, err
		}
		bv, err := b(iter)
		if err != nil {
			return out, err
		}
		out.First, out.Second = av, bv
		return out, nil
	}
}

// Seq3 composes three consumers in order.
func Seq3[A, B, C any](a Consumer[A], b Consumer[B], c Consumer[C]) Consumer[Pair[Pair[A, B], C]] {
	return Seq2(Seq2(a, b), c)
}

// Seq4 composes four consumers in order.
func Seq4[A, B, C, D any](a Consumer[A], b Consumer[B], c Consumer[C], d Consumer[D]) Consumer[Pair[Pair[Pair[A, B], C], D]] {
	return Seq2(Seq3(a, b, c), d)
}

// While repeatedly checks pred against a clone of the cursor; on success it
// runs body against the real cursor (advancing it) and records the result;
// it stops the first time pred fails on the clone. Returns the (possibly
// empty) slice of collected results.
func While[P, Out any](pred Consumer[P], body Consumer[Out]) Consumer[[]Out] {
	return func(iter *Iter) ([]Out, error) {
		var out []Out
		for {
			probe := iter.Clone()
			if _, err := pred(probe); err != nil {
				break
			}
			v, err := body(iter)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Case is one arm of a Match: a predicate tried against a clone of the
// cursor, and the body run against the real cursor if the predicate
// accepted.
type Case[Out any] struct {
	Pred Consumer[Void]
	Body Consumer[Out]
}

// Match tries each case's predicate in turn against a clone of the cursor;
// the first whose predicate succeeds has its body run against the real
// cursor. If no case matches, it fails with a ParsingError at the starting
// position.
func Match[Out any](cases ...Case[Out]) Consumer[Out] {
	return func(iter *Iter) (Out, error) {
		var zero Out
		start := iter.Here()
		for _, c := range cases {
			probe := iter.Clone()
			if _, err := c.Pred(probe); err == nil {
				return c.Body(iter)
			}
		}
		what := "end of input"
		if tok, err := iter.This(); err == nil {
			what = tok.String()
		}
		return zero, reporter.New(reporter.ParsingError, "could not match to any branch, found %s", what).At(start)
	}
}

// Optional behaves like a single-iteration While: if pred succeeds against a
// clone of the cursor, body runs against the real cursor and its result is
// returned as Some; otherwise the cursor is untouched and None is returned.
func Optional[P, Out any](pred Consumer[P], body Consumer[Out]) Consumer[Option[Out]] {
	return func(iter *Iter) (Option[Out], error) {
		probe := iter.Clone()
		if _, err := pred(probe); err != nil {
			return Option[Out]{}, nil
		}
		v, err := body(iter)
		if err != nil {
			return Option[Out]{}, err
		}
		return Option[Out]{Value: v, Some: true}, nil
	}
}

// Or is Optional with a default: if pred fails against a clone of the
// cursor, elseValue is returned and the cursor is untouched; otherwise
// then's result is returned.
func Or[P, Out any](pred Consumer[P], then Consumer[Out], elseValue Out) Consumer[Out] {
	return func(iter *Iter) (Out, error) {
		probe := iter.Clone()
		if _, err := pred(probe); err != nil {
			return elseValue, nil
		}
		return then(iter)
	}
}

// Succeed runs p against the real cursor and discards its output; if p
// fails, p's error is dropped and Succeed fails with a new "pattern expected
// to pass" ParsingError at the starting position.
func Succeed[Out any](p Consumer[Out]) Consumer[Void] {
	return func(iter *Iter) (Void, error) {
		start := iter.Here()
		if _, err := p(iter); err != nil {
			return Void{}, reporter.New(reporter.ParsingError, "pattern expected to pass").At(start)
		}
		return Void{}, nil
	}
}

// Fail inverts p's outcome: it succeeds (without advancing the cursor) iff p
// fails, and fails iff p succeeds. p always runs against a clone, so unlike
// Succeed/IsOk, a successful Fail never advances the cursor - this is a
// deliberate reading of "does not advance on success": were p run against
// the live cursor, a partially-matching p could still leave the cursor
// advanced even though Fail itself succeeded.
func Fail[Out any](p Consumer[Out]) Consumer[Void] {
	return func(iter *Iter) (Void, error) {
		start := iter.Here()
		probe := iter.Clone()
		if _, err := p(probe); err == nil {
			return Void{}, reporter.New(reporter.ParsingError, "pattern expected to fail").At(start)
		}
		return Void{}, nil
	}
}

// IsOk runs p against the real cursor and reports whether it succeeded,
// never itself failing.
func IsOk[Out any](p Consumer[Out]) Consumer[bool] {
	return func(iter *Iter) (bool, error) {
		_, err := p(iter)
		return err == nil, nil
	}
}

// Both succeeds iff a and b both succeed, each tried against its own clone
// of the cursor; Both never advances the real cursor itself.
func Both[A, B any](a Consumer[A], b Consumer[B]) Consumer[Void] {
	return func(iter *Iter) (Void, error) {
		ca := iter.Clone()
		if _, err := a(ca); err != nil {
			return Void{}, err
		}
		cb := iter.Clone()
		if _, err := b(cb); err != nil {
			return Void{}, err
		}
		return Void{}, nil
	}
}
