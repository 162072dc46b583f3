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

// Package ast defines the typed abstract syntax tree produced by the
// parser: idents, paths, the type algebra's surface syntax, tags
// (attributes), expressions, statements, functions, constants, and modules.
//
// Every node is a closed sum type - a concrete Go struct with a Kind-style
// enum field where a node has variants, never a deep interface hierarchy -
// and every node carries the source.Span it was parsed from. Nodes are
// produced once by the parser and are immutable afterward, with one
// exception: module_content installs parsed tags onto function
// declarations after both have been parsed (see Func.Tags).
package ast

import "github.com/justanothercell/lithia/source"

// Node is implemented by every AST node: it reports the span of source text
// the node was parsed from.
type Node interface {
	NodeSpan() source.Span
}
