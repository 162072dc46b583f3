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

// Package grammar builds the language's grammar - items, types, tags,
// expressions, statements, functions, constants, and module content - out of
// the combinator framework, producing ast nodes.
package grammar

import (
	"fmt"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/combinator"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// tokToIdent turns a token-matching Consumer into one producing an
// ast.Ident, carrying the matched span.
func tokToIdent(c combinator.Consumer[token.Token]) combinator.Consumer[ast.Ident] {
	return combinator.Map(c, func(t token.Token, span source.Span) ast.Ident {
		return ast.Ident{Name: t.Ident, Span: span}
	})
}

// expectIdent matches a specific reserved-word spelling, e.g. "fn" or "let".
func expectIdent(word string) combinator.Consumer[ast.Ident] {
	return tokToIdent(combinator.Satisfy("'"+word+"'", func(t token.Token) bool {
		return t.Kind == token.KindIdent && t.Ident == word
	}))
}

// getIdent matches any identifier that is not one of the reserved words.
var reservedWords = map[string]bool{
	"fn": true, "let": true, "mut": true, "const": true,
	"if": true, "else": true, "return": true, "as": true,
}

func getIdent() combinator.Consumer[ast.Ident] {
	return tokToIdent(combinator.Satisfy("identifier", func(t token.Token) bool {
		return t.Kind == token.KindIdent && !reservedWords[t.Ident]
	}))
}

// expectParticle matches a single particle character, whether or not it is
// glued to the previous particle.
func expectParticle(ch rune) combinator.Consumer[token.Token] {
	return combinator.Satisfy(fmt.Sprintf("%q", ch), func(t token.Token) bool {
		return t.Kind == token.KindParticle && t.Particle == ch
	})
}

// expectGluedParticle matches a particle character that must immediately
// follow the previous particle with no whitespace, used to build multi-char
// operators like `::`, `->`, `==`.
func expectGluedParticle(ch rune) combinator.Consumer[token.Token] {
	return combinator.Satisfy(fmt.Sprintf("%q", ch), func(t token.Token) bool {
		return t.Kind == token.KindParticle && t.Particle == ch && t.Glued
	})
}

// getLiteral matches any literal token (string, char, number, bool).
func getLiteral() combinator.Consumer[ast.AstLiteral] {
	return func(iter *combinator.Iter) (ast.AstLiteral, error) {
		tok, err := iter.This()
		if err != nil {
			return ast.AstLiteral{}, reporter.When(err, "expecting literal")
		}
		var lit ast.AstLiteral
		switch tok.Kind {
		case token.KindString:
			lit = ast.NewStringLiteral(tok.Str, tok.Span)
		case token.KindChar:
			lit = ast.NewCharLiteral(tok.Char, tok.Span)
		case token.KindNumber:
			lit = ast.NewNumberLiteral(tok.Num, tok.Span)
		case token.KindBool:
			lit = ast.NewBoolLiteral(tok.Bool, tok.Span)
		default:
			return ast.AstLiteral{}, reporter.New(reporter.ParsingError, "expected literal, found %s", tok).At(tok.Span)
		}
		iter.Next()
		return lit, nil
	}
}
