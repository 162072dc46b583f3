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

package emit

import (
	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/reporter"
)

// pointerWidth is the target's pointer size in bits; the CORE always
// targets a 64-bit native executable (spec §1), so uptr/iptr are fixed at
// 64 bits rather than queried from the backend's data layout.
const pointerWidth = 64

// primitiveBits maps a Single type's base name to its integer width. uptr
// and iptr (pointer-sized integers) share pointerWidth; bool is a 1-bit
// int, matching the backend's boolean representation.
var primitiveBits = map[string]int{
	"u8": 8, "i8": 8,
	"u16": 16, "i16": 16,
	"u32": 32, "i32": 32,
	"u64": 64, "i64": 64,
	"u128": 128, "i128": 128,
	"uptr": pointerWidth, "iptr": pointerWidth,
	"bool": 1,
}

// LlvmType resolves an ast.Type to the backend Type handle it lowers to.
func (e *Env) LlvmType(t ast.Type) (Type, error) {
	switch t.Ty.Kind {
	case ast.TySingle:
		if len(t.Ty.Generics) > 0 {
			return nil, reporter.New(reporter.CompilationError, "generics are not supported").At(t.Span)
		}
		name := t.Ty.Base.String()
		if name == "char" {
			return e.Backend.IntType(8), nil
		}
		if name == "f32" {
			return e.Backend.FloatType(), nil
		}
		if name == "f64" {
			return e.Backend.DoubleType(), nil
		}
		bits, ok := primitiveBits[name]
		if !ok {
			return nil, reporter.New(reporter.CompilationError, "unknown primitive type %q", name).At(t.Span)
		}
		return e.Backend.IntType(bits), nil

	case ast.TyRawPointer:
		return e.Backend.PointerType(e.Backend.IntType(8)), nil

	case ast.TyPointer:
		elem, err := e.LlvmType(*t.Ty.Elem)
		if err != nil {
			return nil, err
		}
		return e.Backend.PointerType(elem), nil

	case ast.TyArray:
		elem, err := e.LlvmType(*t.Ty.Elem)
		if err != nil {
			return nil, err
		}
		return e.Backend.ArrayType(elem, t.Ty.Length), nil

	case ast.TySlice:
		// The CORE has no dynamically-sized slice representation; a Slice
		// lowers to a zero-length array of its element type, whatever the
		// length of the array it was built from.
		elem, err := e.LlvmType(*t.Ty.Elem)
		if err != nil {
			return nil, err
		}
		return e.Backend.ArrayType(elem, 0), nil

	case ast.TyTuple:
		if t.IsUnit() {
			return e.Backend.VoidType(), nil
		}
		return nil, reporter.New(reporter.CompilationError, "non-empty tuple types are not supported").At(t.Span)

	case ast.TySignature:
		params := make([]Type, len(t.Ty.Args))
		for i, a := range t.Ty.Args {
			pt, err := e.LlvmType(a)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := e.LlvmType(*t.Ty.Ret)
		if err != nil {
			return nil, err
		}
		return e.Backend.FunctionType(ret, params, t.Ty.IsVararg), nil

	default:
		return nil, reporter.New(reporter.CompilationError, "unsupported type %s", t).At(t.Span)
	}
}

// integerBits reports the bit width of t if it is an integer Single type.
func integerBits(t ast.Type) (int, bool) {
	if t.Ty.Kind != ast.TySingle || len(t.Ty.Generics) > 0 {
		return 0, false
	}
	bits, ok := primitiveBits[t.Ty.Base.String()]
	return bits, ok
}
