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

package ast

import (
	"strconv"

	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// LiteralKind discriminates the shapes an AstLiteral can take.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitChar
	LitNumber
	LitBool
)

// Literal is the closed sum of literal values a token.Literal token can
// carry into the AST.
type Literal struct {
	Kind   LiteralKind
	Str    string
	Ch     rune
	Num    token.Number
	Bool   bool
}

// AstLiteral pairs a Literal with the span it was parsed from.
type AstLiteral struct {
	Value Literal
	Span  source.Span
}

func (n AstLiteral) NodeSpan() source.Span { return n.Span }

func NewStringLiteral(s string, span source.Span) AstLiteral {
	return AstLiteral{Value: Literal{Kind: LitString, Str: s}, Span: span}
}

func NewCharLiteral(r rune, span source.Span) AstLiteral {
	return AstLiteral{Value: Literal{Kind: LitChar, Ch: r}, Span: span}
}

func NewNumberLiteral(n token.Number, span source.Span) AstLiteral {
	return AstLiteral{Value: Literal{Kind: LitNumber, Num: n}, Span: span}
}

func NewBoolLiteral(b bool, span source.Span) AstLiteral {
	return AstLiteral{Value: Literal{Kind: LitBool, Bool: b}, Span: span}
}

func (l Literal) String() string {
	switch l.Kind {
	case LitString:
		return strconv.Quote(l.Str)
	case LitChar:
		return strconv.QuoteRune(l.Ch)
	case LitNumber:
		return l.Num.String()
	case LitBool:
		return strconv.FormatBool(l.Bool)
	default:
		return "<invalid literal>"
	}
}

// TagValueKind discriminates the shapes a TagValue can take.
type TagValueKind int

const (
	TagValueLiteral TagValueKind = iota
	TagValueIdent
	TagValueTag
)

// TagValue is one argument passed to a Tag, e.g. the `4` in `#[align(4)]`,
// the identifier `cold` in `#[attr(cold)]`, or the nested tag
// `inline(always)` in `#[attr(inline(always))]`.
type TagValue struct {
	Kind    TagValueKind
	Literal AstLiteral
	Ident   Ident
	Tag     Tag
	Span    source.Span
}

func (n TagValue) NodeSpan() source.Span { return n.Span }

func NewLiteralTagValue(lit AstLiteral) TagValue {
	return TagValue{Kind: TagValueLiteral, Literal: lit, Span: lit.Span}
}

func NewIdentTagValue(id Ident) TagValue {
	return TagValue{Kind: TagValueIdent, Ident: id, Span: id.Span}
}

func NewTagTagValue(tag Tag) TagValue {
	return TagValue{Kind: TagValueTag, Tag: tag, Span: tag.Span}
}

// Tag is a single `#[name(values...)]` attribute attached to a declaration
// or expression.
type Tag struct {
	Name   Ident
	Values []TagValue
	Span   source.Span
}

func (n Tag) NodeSpan() source.Span { return n.Span }

// Tags is the name -> Tag map a declaration or expression carries; the
// grammar rejects duplicate tag names outright, so there is never more than
// one Tag per name.
type Tags map[string]Tag

// Has reports whether tag name is present.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

const (
	TagUnsafe  = "unsafe"
	TagExtern  = "extern"
	TagVararg  = "vararg"
)
