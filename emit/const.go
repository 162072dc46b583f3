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
	"github.com/justanothercell/lithia/types"
)

// EmitConstant implements spec §4.8: the declared type must be Pointer(T)
// or Slice(T), the initializer must be `&<literal>`; the literal's value
// becomes a module-level global, registered in Globals as immutable with
// the constant's declared (not the literal's raw) ast.Type.
func (e *Env) EmitConstant(c *ast.Const) error {
	var storageAstType ast.Type
	switch c.Type.Ty.Kind {
	case ast.TyPointer:
		storageAstType = *c.Type.Ty.Elem
	case ast.TySlice:
		storageAstType = ast.NewArrayType(*c.Type.Ty.Elem, 0, c.Type.Span)
	default:
		return reporter.New(reporter.TypeError, "constant can only be Pointer or Slice, found %s", c.Type).At(c.Type.Span)
	}
	storageLlvm, err := e.LlvmType(storageAstType)
	if err != nil {
		return err
	}

	outer := c.Value.Expr
	if outer.Kind != ast.ExprPoint || outer.Inner.Expr.Kind != ast.ExprLiteral {
		return reporter.New(reporter.CompilationError, "constant %q can only be initialized by a literal pointer (&literal)", c.Name.Name).At(c.Value.Span)
	}
	litVar, err := e.EmitLiteral(outer.Inner.Expr.Literal)
	if err != nil {
		return reporter.When(err, "emitting constant "+c.Name.Name)
	}

	valAstType := ast.NewPointerType(litVar.AstType, c.Value.Span)
	if err := types.SatisfiesOrErr(valAstType, c.Type, types.Yes); err != nil {
		return reporter.When(err, "emitting constant "+c.Name.Name)
	}

	global := e.Backend.AddGlobal(e.Module, c.Name.Name, storageLlvm)
	e.Backend.SetInitializer(global, litVar.LlvmValue)
	e.Globals[c.Name.Name] = Variable{AstType: c.Type, LlvmType: storageLlvm, LlvmValue: global}
	return nil
}
