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

// Package token defines the flat token sequence produced by the tokenizer:
// particles, identifiers, and literals, each carrying a precise span.
package token

import (
	"fmt"

	"github.com/justanothercell/lithia/source"
)

// Suffix is the optional type suffix on a numeric literal (u8, i32, f64...).
type Suffix int

const (
	NoSuffix Suffix = iota
	U8
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
	F32
	F64
)

var suffixNames = map[Suffix]string{
	NoSuffix: "", U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", F32: "f32", F64: "f64",
}

// SuffixByName maps a lowercase suffix spelling to its Suffix value.
var SuffixByName = func() map[string]Suffix {
	m := make(map[string]Suffix, len(suffixNames))
	for s, n := range suffixNames {
		if n != "" {
			m[n] = s
		}
	}
	return m
}()

func (s Suffix) String() string { return suffixNames[s] }

// IsFloat reports whether the suffix denotes a floating-point type.
func (s Suffix) IsFloat() bool { return s == F32 || s == F64 }

// Radix is the numeric base a number literal was written in.
type Radix int

const (
	Binary      Radix = 2
	Quaternary  Radix = 4
	Octal       Radix = 8
	Duodecimal  Radix = 12
	Hexadecimal Radix = 16
	Decimal     Radix = 10
)

// RadixPrefixes maps the two-character radix prefix to its Radix, excluding
// the no-prefix (decimal) case.
var RadixPrefixes = map[string]Radix{
	"0b": Binary,
	"0q": Quaternary,
	"0o": Octal,
	"0z": Duodecimal,
	"0x": Hexadecimal,
}

// NumKind distinguishes an integer-valued numeric literal from a
// float-valued one.
type NumKind int

const (
	Integer NumKind = iota
	Float
)

// Number is the value of a numeric literal: either an integer (represented
// with enough range for a 128-bit unsigned value) or a 64-bit float, plus
// the optional type suffix attached to it.
type Number struct {
	Kind   NumKind
	Int    uint64 // low 64 bits; high bits only matter for i128/u128 literals
	IntHi  uint64 // high 64 bits of a 128-bit integer value
	Float  float64
	Suffix Suffix
}

func (n Number) String() string {
	if n.Kind == Float {
		return fmt.Sprintf("%g%s", n.Float, n.Suffix)
	}
	if n.IntHi != 0 {
		return fmt.Sprintf("%d:%020d%s", n.IntHi, n.Int, n.Suffix)
	}
	return fmt.Sprintf("%d%s", n.Int, n.Suffix)
}

// Kind identifies the category of a Token.
type Kind int

const (
	// KindParticle is a single non-identifier, non-literal character.
	KindParticle Kind = iota
	// KindIdent is an identifier: [A-Za-z_][A-Za-z0-9_]*.
	KindIdent
	// KindString is a "..." string literal.
	KindString
	// KindChar is a 'c' character literal.
	KindChar
	// KindNumber is a numeric literal.
	KindNumber
	// KindBool is the `true`/`false` reserved literal.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "particle"
	case KindIdent:
		return "identifier"
	case KindString:
		return "string literal"
	case KindChar:
		return "char literal"
	case KindNumber:
		return "number literal"
	case KindBool:
		return "bool literal"
	default:
		return "token"
	}
}

// Token is one lexeme of source text: a Kind-specific payload plus the span
// it occupies.
type Token struct {
	Kind Kind
	Span source.Span

	// Particle payload.
	Particle rune
	Glued    bool // true iff immediately preceded by another Particle, no whitespace between

	// Ident payload.
	Ident string

	// String/Char payload.
	Str  string
	Char rune

	// Number payload.
	Num Number

	// Bool payload.
	Bool bool
}

// Text returns the token's source text.
func (t Token) Text() string {
	return string(t.Span.Bytes())
}

func (t Token) String() string {
	switch t.Kind {
	case KindParticle:
		return fmt.Sprintf("%q", t.Particle)
	case KindIdent:
		return t.Ident
	case KindString:
		return fmt.Sprintf("%q", t.Str)
	case KindChar:
		return fmt.Sprintf("'%c'", t.Char)
	case KindNumber:
		return t.Text()
	case KindBool:
		return fmt.Sprintf("%t", t.Bool)
	default:
		return "<token>"
	}
}
