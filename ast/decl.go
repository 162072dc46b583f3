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

import "github.com/justanothercell/lithia/source"

// Param is a single (name, type) function argument.
type Param struct {
	Name Ident
	Type Type
}

// Func is a function declaration. Body is nil iff the function carries
// #[extern] (enforced by the grammar/checker, not by this type).
type Func struct {
	Tags Tags
	Name Ident
	Args []Param
	Ret  Type
	Body *Block
	Span source.Span
}

func (n Func) NodeSpan() source.Span { return n.Span }

// IsExtern reports whether the function is declared #[extern].
func (f Func) IsExtern() bool { return f.Tags.Has(TagExtern) }

// IsUnsafe reports whether the function is declared #[unsafe].
func (f Func) IsUnsafe() bool { return f.Tags.Has(TagUnsafe) }

// IsVararg reports whether the function is declared #[vararg].
func (f Func) IsVararg() bool { return f.Tags.Has(TagVararg) }

// Const is a module-level constant. Its declared Type must be a Pointer or
// Slice (see the emitter's constant-lowering rules).
type Const struct {
	Name  Ident
	Type  Type
	Value Expression
	Span  source.Span
}

func (n Const) NodeSpan() source.Span { return n.Span }

// Module is a named collection of sub-modules, functions, and constants.
// Names are unique across Funcs and Consts within a single Module.
type Module struct {
	Name      string
	Modules   map[string]*Module
	Functions map[string]*Func
	Constants map[string]*Const
	Span      source.Span
}

func (n Module) NodeSpan() source.Span { return n.Span }

// NewModule builds an empty Module ready to be populated by the grammar.
func NewModule(name string, span source.Span) *Module {
	return &Module{
		Name:      name,
		Modules:   map[string]*Module{},
		Functions: map[string]*Func{},
		Constants: map[string]*Const{},
		Span:      span,
	}
}
