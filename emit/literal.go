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
	"github.com/justanothercell/lithia/token"
)

// charType is the fixed 8-bit int type chars and string bytes lower to.
func (e *Env) charType() Type { return e.Backend.IntType(8) }

// isSignedSuffix reports whether a numeric suffix denotes a signed integer
// type (i8..i128, iptr), defaulting unsuffixed literals (i32, see
// literalType) to signed as well.
func isSignedSuffix(s token.Suffix) bool {
	switch s {
	case token.I8, token.I16, token.I32, token.I64, token.I128, token.NoSuffix:
		return true
	default:
		return false
	}
}

// literalType infers the intrinsic ast.Type of a literal, per spec §4.7:
// string -> array of u8 (the NUL-terminated byte sequence); char -> u8;
// integer -> the suffix's primitive, defaulting to i32 when unsuffixed;
// bool -> bool.
func literalType(lit ast.AstLiteral) ast.Type {
	switch lit.Value.Kind {
	case ast.LitString:
		u8 := ast.NewSingleType(ast.NewItem(ast.Ident{Name: "u8", Span: lit.Span}), lit.Span)
		return ast.NewArrayType(u8, uint64(len(lit.Value.Str))+1, lit.Span)
	case ast.LitChar:
		return ast.NewSingleType(ast.NewItem(ast.Ident{Name: "u8", Span: lit.Span}), lit.Span)
	case ast.LitNumber:
		name := lit.Value.Num.Suffix.String()
		if name == "" {
			if lit.Value.Num.Kind == token.Float {
				name = "f64"
			} else {
				name = "i32"
			}
		}
		return ast.NewSingleType(ast.NewItem(ast.Ident{Name: name, Span: lit.Span}), lit.Span)
	case ast.LitBool:
		return ast.NewSingleType(ast.NewItem(ast.Ident{Name: "bool", Span: lit.Span}), lit.Span)
	default:
		return ast.UnitType(lit.Span)
	}
}

// EmitLiteral lowers a literal to a constant value of its intrinsic type.
func (e *Env) EmitLiteral(lit ast.AstLiteral) (Variable, error) {
	astType := literalType(lit)
	llvmType, err := e.LlvmType(astType)
	if err != nil {
		return Variable{}, reporter.When(err, "emitting literal")
	}

	var val Value
	switch lit.Value.Kind {
	case ast.LitString:
		bytes := append([]byte(lit.Value.Str), 0)
		elems := make([]Value, len(bytes))
		for i, b := range bytes {
			elems[i] = e.Backend.ConstInt(e.charType(), uint64(b), false)
		}
		val = e.Backend.ConstArray(e.charType(), elems)

	case ast.LitChar:
		val = e.Backend.ConstInt(e.charType(), uint64(lit.Value.Ch), false)

	case ast.LitNumber:
		if lit.Value.Num.Kind == token.Float {
			val = e.Backend.ConstFloat(llvmType, lit.Value.Num.Float)
		} else {
			val = e.Backend.ConstInt(llvmType, lit.Value.Num.Int, isSignedSuffix(lit.Value.Num.Suffix))
		}

	case ast.LitBool:
		b := uint64(0)
		if lit.Value.Bool {
			b = 1
		}
		val = e.Backend.ConstInt(llvmType, b, false)

	default:
		return Variable{}, reporter.New(reporter.CompilationError, "unsupported literal").At(lit.Span)
	}

	return Variable{AstType: astType, LlvmType: llvmType, LlvmValue: val}, nil
}
