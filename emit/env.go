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
	"github.com/justanothercell/lithia/scope"
	"github.com/justanothercell/lithia/source"
)

// Variable is a named value: its source type, the backend type and value
// handles, and whether it is held behind an alloca (mutable) or carries its
// value directly (immutable), per spec §4.6.
type Variable struct {
	AstType   ast.Type
	LlvmType  Type
	LlvmValue Value
	Mutable   bool
}

// Env is the emitter's whole mutable state: the module handle, global
// scope, lexical frame stack, and the function/builder currently being
// built into.
type Env struct {
	Backend Builder
	Module  Module

	Globals map[string]Variable
	Stack   *scope.Stack

	Function *Value // nil when no function is currently being built
	FnType   Type
	Builder  BuilderHandle
}

// NewEnv creates an Env with an empty global scope over the named module.
func NewEnv(b Builder, moduleName string) *Env {
	return &Env{
		Backend: b,
		Module:  b.CreateModule(moduleName),
		Globals: map[string]Variable{},
		Stack:   scope.NewStack(),
	}
}

// Lookup resolves name per spec §4.6: innermost frame first, halting at the
// first opaque frame, then globals.
func (e *Env) Lookup(name string, at source.Span) (Variable, error) {
	if v, ok := e.Stack.Lookup(name); ok {
		return v.(Variable), nil
	}
	if v, ok := e.Globals[name]; ok {
		return v, nil
	}
	return Variable{}, reporter.New(reporter.VariableNotFound, "%q not found", name).At(at)
}

// Declare records a local variable in the innermost frame.
func (e *Env) Declare(name string, v Variable) {
	e.Stack.Declare(name, v)
}

// UnsafeCtx reports whether unsafe constructs are currently permitted.
func (e *Env) UnsafeCtx() bool {
	return e.Stack.UnsafeCtx()
}

// requireUnsafe reports an UnsafeError at at unless the environment is
// currently in an unsafe context.
func (e *Env) requireUnsafe(what string, at source.Span) error {
	if e.UnsafeCtx() {
		return nil
	}
	return reporter.New(reporter.UnsafeError, "%s requires an unsafe context", what).At(at)
}
