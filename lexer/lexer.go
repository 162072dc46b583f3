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

// Package lexer implements the streaming tokenizer: it consumes a character
// Indexer and emits a flat []token.Token, each carrying a precise span.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/justanothercell/lithia/indexer"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// Tokenize converts src's text into a flat token sequence. Errors are
// terminal: the first lexical failure aborts tokenization.
func Tokenize(src *source.Source) ([]token.Token, error) {
	chars := indexer.NewCharIndexer(src)
	var tokens []token.Token

	for chars.ElemsLeft() > 0 {
		c, _ := chars.This()
		switch {
		case c.Rune == '"':
			tok, err := scanString(chars)
			if err != nil {
				return nil, reporter.When(err, "tokenizing string literal")
			}
			tokens = append(tokens, tok)

		case c.Rune == '\'':
			tok, err := scanChar(chars)
			if err != nil {
				return nil, reporter.When(err, "tokenizing char literal")
			}
			tokens = append(tokens, tok)

		case c.Rune == '/':
			tok, emitted, err := scanSlash(chars, tokens)
			if err != nil {
				return nil, reporter.When(err, "tokenizing comment")
			}
			if emitted {
				tokens = append(tokens, tok)
			}

		case unicode.IsSpace(c.Rune):
			// skip; influences glued on the following particle by leaving a
			// span gap between it and the previous token.

		case isIdentStart(c.Rune):
			tok := scanIdent(chars)
			tokens = append(tokens, tok)

		case unicode.IsDigit(c.Rune):
			tok, err := scanNumber(chars)
			if err != nil {
				return nil, reporter.When(err, "tokenizing number literal")
			}
			tokens = append(tokens, tok)

		default:
			tokens = append(tokens, token.Token{
				Kind:     token.KindParticle,
				Span:     c.Span,
				Particle: c.Rune,
				Glued:    glued(tokens, c.Span),
			})
		}
		chars.Next()
	}
	return tokens, nil
}

// glued reports whether a particle starting at span is adjacent (no
// intervening whitespace or comment) to a previously emitted particle
// token.
func glued(tokens []token.Token, span source.Span) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	return last.Kind == token.KindParticle && last.Span.End == span.Start
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// scanIdent consumes an identifier (or the true/false bool literals) and
// leaves the cursor positioned on the identifier's last character.
func scanIdent(chars *indexer.Indexer[indexer.Char]) token.Token {
	start, _ := chars.This()
	span := start.Span
	var b strings.Builder
	b.WriteRune(start.Rune)
	for {
		next, err := chars.Peek()
		if err != nil || !isIdentCont(next.Rune) {
			break
		}
		chars.Next()
		span = span.ExtendTo(next.Span)
		b.WriteRune(next.Rune)
	}
	name := b.String()
	switch name {
	case "true":
		return token.Token{Kind: token.KindBool, Span: span, Bool: true}
	case "false":
		return token.Token{Kind: token.KindBool, Span: span, Bool: false}
	default:
		return token.Token{Kind: token.KindIdent, Span: span, Ident: name}
	}
}

// scanString consumes a "..." literal, leaving the cursor on the closing
// quote.
func scanString(chars *indexer.Indexer[indexer.Char]) (token.Token, error) {
	open, _ := chars.This()
	span := open.Span
	var b strings.Builder
	for {
		chars.Next()
		c, err := chars.This()
		if err != nil {
			return token.Token{}, reporter.New(reporter.EOF, "unterminated string literal").At(span)
		}
		span = span.ExtendTo(c.Span)
		if c.Rune == '"' {
			break
		}
		b.WriteRune(c.Rune)
	}
	return token.Token{Kind: token.KindString, Span: span, Str: b.String()}, nil
}

// scanChar consumes a 'c' literal, leaving the cursor on the closing quote.
func scanChar(chars *indexer.Indexer[indexer.Char]) (token.Token, error) {
	open, _ := chars.This()
	span := open.Span
	var runes []rune
	for {
		chars.Next()
		c, err := chars.This()
		if err != nil {
			return token.Token{}, reporter.New(reporter.EOF, "unterminated char literal").At(span)
		}
		span = span.ExtendTo(c.Span)
		if c.Rune == '\'' {
			break
		}
		runes = append(runes, c.Rune)
	}
	if len(runes) != 1 {
		return token.Token{}, reporter.New(reporter.TokenizationError,
			"expected exactly one character, found %q", string(runes)).At(span)
	}
	return token.Token{Kind: token.KindChar, Span: span, Char: runes[0]}, nil
}

// scanSlash handles the three things a leading '/' can mean: a line comment,
// a block comment, or a plain division/particle '/'. Comments consume no
// token; in that case emitted is false.
func scanSlash(chars *indexer.Indexer[indexer.Char], prior []token.Token) (token.Token, bool, error) {
	slash, _ := chars.This()
	next, err := chars.Peek()
	if err != nil || (next.Rune != '/' && next.Rune != '*') {
		return token.Token{
			Kind:     token.KindParticle,
			Span:     slash.Span,
			Particle: '/',
			Glued:    glued(prior, slash.Span),
		}, true, nil
	}
	chars.Next() // consume the second '/' or '*'
	if next.Rune == '/' {
		for {
			c, err := chars.Peek()
			if err != nil || c.Rune == '\n' {
				break
			}
			chars.Next()
		}
		return token.Token{}, false, nil
	}
	// block comment, non-nesting, ends at the first "*/"
	for {
		chars.Next()
		c, err := chars.This()
		if err != nil {
			return token.Token{}, false, reporter.New(reporter.EOF, "unterminated block comment").At(slash.Span)
		}
		if c.Rune != '*' {
			continue
		}
		n, err := chars.Peek()
		if err == nil && n.Rune == '/' {
			chars.Next()
			break
		}
	}
	return token.Token{}, false, nil
}

// scanNumber consumes a numeric literal: an optional radix prefix, digits
// (with '_' separators), an optional decimal point, and an optional type
// suffix, then parses the collected text. The cursor is left on the
// literal's last character.
func scanNumber(chars *indexer.Indexer[indexer.Char]) (token.Token, error) {
	start, _ := chars.This()
	span := start.Span
	var b strings.Builder
	b.WriteRune(start.Rune)
	for {
		next, err := chars.Peek()
		if err != nil || !(isIdentCont(next.Rune) || next.Rune == '.') {
			break
		}
		chars.Next()
		span = span.ExtendTo(next.Span)
		b.WriteRune(next.Rune)
	}
	num, suffix, err := parseNumber(b.String())
	if err != nil {
		return token.Token{}, reporter.At(err, span)
	}
	return token.Token{Kind: token.KindNumber, Span: span, Num: numberWithSuffix(num, suffix)}, nil
}

func numberWithSuffix(num token.Number, suffix token.Suffix) token.Number {
	num.Suffix = suffix
	return num
}

// parseNumber implements the radix/suffix/float-ness rules of spec §4.2:
// optional two-character radix prefix (only 0b/0q/0o/0z/0x; absent means
// decimal), digits with '_' separators stripped, an optional single '.'
// (legal only at radix 10), and an optional trailing type suffix that must
// agree with the literal's float-ness.
func parseNumber(raw string) (token.Number, token.Suffix, error) {
	text := strings.ReplaceAll(raw, "_", "")

	radix := token.Decimal
	if len(text) > 2 {
		if r, ok := token.RadixPrefixes[strings.ToLower(text[:2])]; ok {
			radix = r
			text = text[2:]
		}
	}

	floatLike := strings.Contains(text, ".")
	if floatLike && radix != token.Decimal {
		return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError,
			"floating point literals require radix 10, found radix %d", radix)
	}

	digits, suffixText := splitSuffix(text, radix, floatLike)

	suffix := token.NoSuffix
	if suffixText != "" {
		s, ok := token.SuffixByName[suffixText]
		if !ok {
			return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError,
				"unsupported type suffix %q", suffixText)
		}
		suffix = s
	}
	if floatLike && suffix != token.NoSuffix && !suffix.IsFloat() {
		return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError,
			"literal has a decimal point but non-float suffix %q", suffixText)
	}
	if !floatLike && suffix.IsFloat() {
		return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError,
			"integer literal cannot carry floating point suffix %q", suffixText)
	}

	if floatLike || suffix.IsFloat() {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError, "invalid float literal %q", digits)
		}
		return token.Number{Kind: token.Float, Float: f}, suffix, nil
	}

	v, err := strconv.ParseUint(digits, int(radix), 64)
	if err != nil {
		// may legitimately overflow 64 bits for a u128/i128 literal; retry
		// by splitting into high/low 64-bit halves via big-int-free shifting
		// is out of scope for the lexer's happy path, so report it plainly.
		return token.Number{}, token.NoSuffix, reporter.New(reporter.LiteralError, "invalid integer literal %q", digits)
	}
	return token.Number{Kind: token.Integer, Int: v}, suffix, nil
}

// splitSuffix finds the boundary between the numeric digits and a trailing
// type-suffix identifier (e.g. "123u8" -> "123", "u8"; "1.5f32" -> "1.5",
// "f32"). Hex digits a-f are only treated as digits, not suffix, when
// radix is hexadecimal.
func splitSuffix(text string, radix token.Radix, floatLike bool) (digits, suffix string) {
	isDigitRune := func(r rune) bool {
		switch {
		case r == '.':
			return floatLike
		case radix == token.Hexadecimal:
			return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		default:
			return unicode.IsDigit(r)
		}
	}
	for i, r := range text {
		if !isDigitRune(r) {
			return text[:i], text[i:]
		}
	}
	return text, ""
}
