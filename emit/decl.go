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
	"sort"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/types"
)

// BuildModule implements spec §4.10's module build order: constants first,
// then every function signature is registered (so forward references and
// mutual recursion resolve), then each function body is built. Submodules
// recurse in the same order after their parent completes.
func (e *Env) BuildModule(mod *ast.Module) error {
	for _, name := range sortedKeys(mod.Constants) {
		if err := e.EmitConstant(mod.Constants[name]); err != nil {
			return reporter.When(err, "building constant "+name)
		}
	}

	fnNames := sortedKeys(mod.Functions)
	for _, name := range fnNames {
		if err := e.registerFunction(mod.Functions[name]); err != nil {
			return reporter.When(err, "registering function "+name)
		}
	}
	for _, name := range fnNames {
		f := mod.Functions[name]
		if f.IsExtern() {
			continue
		}
		if err := e.buildFunction(f); err != nil {
			return reporter.When(err, "building function "+name)
		}
	}

	for _, name := range sortedKeys(mod.Modules) {
		if err := e.BuildModule(mod.Modules[name]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func functionSigType(f *ast.Func) ast.Type {
	args := make([]ast.Type, len(f.Args))
	for i, p := range f.Args {
		args[i] = p.Type
	}
	return ast.NewSignatureType(args, f.Ret, f.IsUnsafe(), f.IsVararg(), f.Span)
}

// registerFunction validates the #[extern]/#[unsafe]/body-presence rules of
// spec §4.10 and declares the function's llvm.Value in Globals ahead of any
// body being built, so calls anywhere in the module can resolve it.
func (e *Env) registerFunction(f *ast.Func) error {
	if f.IsExtern() {
		if !f.IsUnsafe() {
			return reporter.New(reporter.TagError, "extern function %q must also be #[unsafe]", f.Name.Name).At(f.Span)
		}
		if f.Body != nil {
			return reporter.New(reporter.CompilationError, "extern function %q may not have a body", f.Name.Name).At(f.Span)
		}
	} else if f.Body == nil {
		return reporter.New(reporter.CompilationError, "function %q has no body and is not #[extern]", f.Name.Name).At(f.Span)
	}

	sigType := functionSigType(f)
	fnLlvmType, err := e.LlvmType(sigType)
	if err != nil {
		return err
	}
	fnVal := e.Backend.AddFunction(e.Module, f.Name.Name, fnLlvmType)
	e.Globals[f.Name.Name] = Variable{AstType: sigType, LlvmType: fnLlvmType, LlvmValue: fnVal}
	return nil
}

// buildFunction implements the function-build half of spec §4.10: entry
// block, opaque frame, argument variables, the body as a single Block, and
// the return-value determination from the join of variable/return_t per
// §4.7 - a fallen-through block value becomes the return, a missing one
// requires the declared return type to be unit.
func (e *Env) buildFunction(f *ast.Func) error {
	sig := e.Globals[f.Name.Name]
	fnVal := sig.LlvmValue

	outerFn, outerFnType, outerBuilder := e.Function, e.FnType, e.Builder

	entry := e.Backend.AppendBasicBlock(fnVal, "entry")
	builder := e.Backend.CreateBuilder()
	e.Backend.PositionAtEnd(builder, entry)
	e.Function, e.FnType, e.Builder = &fnVal, sig.LlvmType, builder

	e.Stack.Push(true, f.IsUnsafe())
	for i, p := range f.Args {
		paramLlvm, err := e.LlvmType(p.Type)
		if err != nil {
			e.Stack.Pop()
			return err
		}
		e.Declare(p.Name.Name, Variable{AstType: p.Type, LlvmType: paramLlvm, LlvmValue: e.Backend.Param(fnVal, i)})
	}

	bodyRI, err := e.emitBlock(*f.Body, "")
	if err == nil && bodyRI.Return == nil {
		switch {
		case bodyRI.Variable != nil:
			if serr := types.SatisfiesOrErr(bodyRI.Variable.AstType, f.Ret, types.Yes); serr != nil {
				err = serr
			} else {
				e.Backend.BuildRet(e.Builder, bodyRI.Variable.LlvmValue)
			}
		case f.Ret.IsUnit():
			e.Backend.BuildRetVoid(e.Builder)
		default:
			err = reporter.New(reporter.TypeError, "function %q must return %s but no value was produced", f.Name.Name, f.Ret).At(f.Span)
		}
	}

	e.Stack.Pop()
	e.Backend.DisposeBuilder(builder)
	e.Function, e.FnType, e.Builder = outerFn, outerFnType, outerBuilder
	return err
}
