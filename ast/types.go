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
	"strings"

	"github.com/justanothercell/lithia/source"
)

// TyKind discriminates the closed set of type shapes a Type can have.
type TyKind int

const (
	TySingle TyKind = iota
	TyRawPointer
	TyPointer
	TyArray
	TySlice
	TyTuple
	TySignature
)

// Ty is the type algebra's surface syntax: a single tagged struct with only
// the fields relevant to Kind populated, rather than a variant hierarchy.
type Ty struct {
	Kind TyKind

	// TySingle
	Generics []Type
	Base     Item

	// TyPointer, TyArray, TySlice
	Elem *Type

	// TyArray
	Length uint64

	// TyTuple
	Elems []Type

	// TySignature
	Args     []Type
	Ret      *Type
	IsUnsafe bool
	IsVararg bool
}

// Type pairs a Ty with the span of source text it was parsed from.
type Type struct {
	Ty   Ty
	Span source.Span
}

func (t Type) NodeSpan() source.Span { return t.Span }

// NewSingleType builds a named type with no generics (the CORE only admits
// empty generics lists, per spec §4.5).
func NewSingleType(base Item, span source.Span) Type {
	return Type{Ty: Ty{Kind: TySingle, Base: base}, Span: span}
}

// NewRawPointerType builds the untyped `&` (no target type) pointer type.
func NewRawPointerType(span source.Span) Type {
	return Type{Ty: Ty{Kind: TyRawPointer}, Span: span}
}

// NewPointerType builds `&T`.
func NewPointerType(elem Type, span source.Span) Type {
	return Type{Ty: Ty{Kind: TyPointer, Elem: &elem}, Span: span}
}

// NewArrayType builds `[T; length]`.
func NewArrayType(elem Type, length uint64, span source.Span) Type {
	return Type{Ty: Ty{Kind: TyArray, Elem: &elem, Length: length}, Span: span}
}

// NewSliceType builds `[T]`.
func NewSliceType(elem Type, span source.Span) Type {
	return Type{Ty: Ty{Kind: TySlice, Elem: &elem}, Span: span}
}

// NewTupleType builds `(T1, T2, ...)`; an empty Elems is the unit/void type.
func NewTupleType(elems []Type, span source.Span) Type {
	return Type{Ty: Ty{Kind: TyTuple, Elems: elems}, Span: span}
}

// UnitType is the canonical empty-tuple (void) type at a given span.
func UnitType(span source.Span) Type {
	return NewTupleType(nil, span)
}

// NewSignatureType builds a function signature type.
func NewSignatureType(args []Type, ret Type, isUnsafe, isVararg bool, span source.Span) Type {
	return Type{Ty: Ty{Kind: TySignature, Args: args, Ret: &ret, IsUnsafe: isUnsafe, IsVararg: isVararg}, Span: span}
}

// IsUnit reports whether t is the empty tuple (void) type.
func (t Type) IsUnit() bool {
	return t.Ty.Kind == TyTuple && len(t.Ty.Elems) == 0
}

// String renders the type for diagnostics and the pretty printer. Named,
// pointer, array and slice types render in the syntax the parser accepts;
// tuple (including unit) and signature types have no type syntax in the
// grammar and render in a readable `(...)` / `fn(...) -> ret` form.
func (t Type) String() string {
	switch t.Ty.Kind {
	case TySingle:
		return t.Ty.Base.String()
	case TyRawPointer:
		return "&"
	case TyPointer:
		return "&" + t.Ty.Elem.String()
	case TyArray:
		return "[" + t.Ty.Elem.String() + "; " + strconv.FormatUint(t.Ty.Length, 10) + "]"
	case TySlice:
		return "[" + t.Ty.Elem.String() + "]"
	case TyTuple:
		parts := make([]string, len(t.Ty.Elems))
		for i, e := range t.Ty.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TySignature:
		parts := make([]string, len(t.Ty.Args))
		for i, a := range t.Ty.Args {
			parts[i] = a.String()
		}
		args := strings.Join(parts, ", ")
		if t.Ty.IsVararg {
			if args != "" {
				args += ", "
			}
			args += "..."
		}
		prefix := "fn"
		if t.Ty.IsUnsafe {
			prefix = "unsafe fn"
		}
		return prefix + "(" + args + ") -> " + t.Ty.Ret.String()
	default:
		return "<invalid type>"
	}
}
