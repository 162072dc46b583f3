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

// Package types implements the type satisfiability lattice that governs
// casts, assignment, call arguments, and return values: a 4-level
// TySat = No < CastUnsafe < Cast < Yes, computed structurally from
// ast.Type per §4.5.
package types

import (
	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/reporter"
)

// Sat is one level of the type satisfiability lattice.
type Sat int

const (
	No Sat = iota
	CastUnsafe
	Cast
	Yes
)

func (s Sat) String() string {
	switch s {
	case No:
		return "no"
	case CastUnsafe:
		return "unsafe cast"
	case Cast:
		return "cast"
	case Yes:
		return "yes"
	default:
		return "?"
	}
}

// min is the lattice meet, used to combine element-wise checks (tuples,
// signatures): the whole only satisfies at the weakest level any one part
// does.
func min(a, b Sat) Sat {
	if a < b {
		return a
	}
	return b
}

// uptrName is the pointer-sized unsigned integer primitive; it has special
// CastUnsafe interop with Pointer and RawPointer (see §4.5).
const uptrName = "uptr"

func isUptr(t ast.Type) bool {
	return t.Ty.Kind == ast.TySingle && t.Ty.Base.Single() && t.Ty.Base.String() == uptrName
}

// Satisfies computes the greatest Sat level at which self can be used where
// other is expected, per the rules of §4.5 (highest matching rule wins).
func Satisfies(self, other ast.Type) Sat {
	if structurallyEqual(self, other) {
		return Yes
	}

	selfK, otherK := self.Ty.Kind, other.Ty.Kind

	switch {
	case selfK == ast.TySingle && otherK == ast.TySingle:
		if self.Ty.Base.String() == other.Ty.Base.String() {
			return Yes
		}
		return Cast

	case selfK == ast.TyRawPointer && otherK == ast.TyRawPointer:
		return Yes

	case selfK == ast.TyPointer && otherK == ast.TyPointer:
		return Satisfies(*self.Ty.Elem, *other.Ty.Elem)

	case selfK == ast.TyPointer && otherK == ast.TyRawPointer:
		return Yes

	case selfK == ast.TyRawPointer && otherK == ast.TyPointer:
		return CastUnsafe

	case (selfK == ast.TyPointer || selfK == ast.TyRawPointer) && isUptr(other):
		return CastUnsafe

	case isUptr(self) && (otherK == ast.TyPointer || otherK == ast.TyRawPointer):
		return CastUnsafe

	case selfK == ast.TyArray && otherK == ast.TyArray:
		if self.Ty.Length != other.Ty.Length {
			return No
		}
		return Satisfies(*self.Ty.Elem, *other.Ty.Elem)

	case selfK == ast.TyArray && otherK == ast.TySlice:
		return Satisfies(*self.Ty.Elem, *other.Ty.Elem)

	case selfK == ast.TySlice && otherK == ast.TyArray:
		return min(Satisfies(*self.Ty.Elem, *other.Ty.Elem), CastUnsafe)

	case selfK == ast.TySlice && otherK == ast.TySlice:
		return Satisfies(*self.Ty.Elem, *other.Ty.Elem)

	case selfK == ast.TyTuple && otherK == ast.TyTuple:
		return satisfiesAll(self.Ty.Elems, other.Ty.Elems)

	case selfK == ast.TySignature && otherK == ast.TySignature:
		return satisfiesSignature(self.Ty, other.Ty)
	}

	return No
}

func satisfiesAll(selfs, others []ast.Type) Sat {
	if len(selfs) != len(others) {
		return No
	}
	level := Yes
	for i := range selfs {
		level = min(level, Satisfies(selfs[i], others[i]))
		if level == No {
			return No
		}
	}
	return level
}

func satisfiesSignature(self, other ast.Ty) Sat {
	if !(len(self.Args) == len(other.Args) && self.IsVararg == other.IsVararg || other.IsVararg) {
		return No
	}
	n := len(self.Args)
	if other.IsVararg && len(other.Args) < n {
		n = len(other.Args)
	}
	level := Yes
	for i := 0; i < n; i++ {
		level = min(level, Satisfies(self.Args[i], other.Args[i]))
		if level == No {
			return No
		}
	}
	level = min(level, Satisfies(*self.Ret, *other.Ret))
	if level == No {
		return No
	}
	if self.IsUnsafe != other.IsUnsafe && other.IsUnsafe {
		return No
	}
	return level
}

// structurallyEqual reports whether two types are identical in shape, the
// highest-priority rule of §4.5.
func structurallyEqual(a, b ast.Type) bool {
	if a.Ty.Kind != b.Ty.Kind {
		return false
	}
	switch a.Ty.Kind {
	case ast.TySingle:
		return a.Ty.Base.String() == b.Ty.Base.String() && len(a.Ty.Generics) == 0 && len(b.Ty.Generics) == 0
	case ast.TyRawPointer:
		return true
	case ast.TyPointer, ast.TySlice:
		return structurallyEqual(*a.Ty.Elem, *b.Ty.Elem)
	case ast.TyArray:
		return a.Ty.Length == b.Ty.Length && structurallyEqual(*a.Ty.Elem, *b.Ty.Elem)
	case ast.TyTuple:
		if len(a.Ty.Elems) != len(b.Ty.Elems) {
			return false
		}
		for i := range a.Ty.Elems {
			if !structurallyEqual(a.Ty.Elems[i], b.Ty.Elems[i]) {
				return false
			}
		}
		return true
	case ast.TySignature:
		if a.Ty.IsUnsafe != b.Ty.IsUnsafe || a.Ty.IsVararg != b.Ty.IsVararg || len(a.Ty.Args) != len(b.Ty.Args) {
			return false
		}
		for i := range a.Ty.Args {
			if !structurallyEqual(a.Ty.Args[i], b.Ty.Args[i]) {
				return false
			}
		}
		return structurallyEqual(*a.Ty.Ret, *b.Ty.Ret)
	default:
		return false
	}
}

// SatisfiesOrErr requires self to satisfy other at least at required; it
// reports a TypeError spanning both types' sites otherwise.
func SatisfiesOrErr(self, other ast.Type, required Sat) error {
	if Satisfies(self, other) >= required {
		return nil
	}
	return reporter.New(reporter.TypeError, "expected type %s, found %s", other, self).Ats(self.Span, other.Span)
}

// EqualsOrErr requires self to satisfy other at Yes.
func EqualsOrErr(self, other ast.Type) error {
	return SatisfiesOrErr(self, other, Yes)
}
