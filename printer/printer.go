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

// Package printer renders an AST back to source text, for diagnostics and
// for the round-trip property (print then tokenize+parse again yields a
// structurally equivalent tree). Every node type here mirrors the
// original's CodePrinter trait one method at a time; indent is carried as
// a plain prefix string rather than a trait default method, since Go has
// no equivalent of print_indented as a provided trait method.
package printer

import (
	"sort"
	"strings"

	"github.com/justanothercell/lithia/ast"
)

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}

// Module renders an entire module, recursing into submodules. The grammar
// has no `mod name { ... }` production, so only the rendered contents
// (constants and functions) parse back.
func Module(m *ast.Module) string {
	return "mod " + m.Name + " {\n" + indent(moduleContent(m)) + "\n}"
}

func moduleContent(m *ast.Module) string {
	var parts []string
	for _, name := range sortedKeys(m.Constants) {
		parts = append(parts, Const(m.Constants[name]))
	}
	for _, name := range sortedKeys(m.Functions) {
		parts = append(parts, Func(m.Functions[name]))
	}
	for _, name := range sortedKeys(m.Modules) {
		parts = append(parts, Module(m.Modules[name]))
	}
	return strings.Join(parts, "\n\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Const renders `const name: type = value;`.
func Const(c *ast.Const) string {
	return "const " + c.Name.Name + ": " + c.Type.String() + " = " + Expression(c.Value) + ";"
}

// Func renders a function declaration, with its tags on the line above and
// a trailing `;` in place of a body for `#[extern]` functions.
func Func(f *ast.Func) string {
	var b strings.Builder
	if len(f.Tags) > 0 {
		b.WriteString(Tags(f.Tags))
		b.WriteString("\n")
	}
	b.WriteString("fn ")
	b.WriteString(f.Name.Name)
	b.WriteString("(")
	args := make([]string, len(f.Args))
	for i, p := range f.Args {
		args[i] = p.Name.Name + ": " + p.Type.String()
	}
	b.WriteString(strings.Join(args, ", "))
	b.WriteString(")")
	if !f.Ret.IsUnit() {
		b.WriteString(" -> ")
		b.WriteString(f.Ret.String())
	}
	if f.Body != nil {
		b.WriteString(" ")
		b.WriteString(Block(*f.Body))
	} else {
		b.WriteString(";")
	}
	return b.String()
}

// Tags renders a declaration's or expression's attribute set, one
// `#[name(values...)]` per line, in a stable (sorted) order so output is
// deterministic despite Tags being a map.
func Tags(tags ast.Tags) string {
	names := sortedKeys(tags)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "#[" + Tag(tags[name]) + "]"
	}
	return strings.Join(parts, "\n")
}

func Tag(t ast.Tag) string {
	if len(t.Values) == 0 {
		return t.Name.Name
	}
	vals := make([]string, len(t.Values))
	for i, v := range t.Values {
		vals[i] = TagValue(v)
	}
	return t.Name.Name + "(" + strings.Join(vals, ", ") + ")"
}

func TagValue(v ast.TagValue) string {
	switch v.Kind {
	case ast.TagValueLiteral:
		return v.Literal.Value.String()
	case ast.TagValueIdent:
		return v.Ident.Name
	case ast.TagValueTag:
		return Tag(v.Tag)
	default:
		return "<invalid tag value>"
	}
}

// Block renders `{}` for an empty block, or a braced, indented statement
// list otherwise.
func Block(b ast.Block) string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	stmts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = Statement(s)
	}
	return "{\n" + indent(strings.Join(stmts, "\n")) + "\n}"
}

func Statement(s ast.Statement) string {
	out := Expression(s.Expression)
	if s.Terminated {
		out += ";"
	}
	return out
}

// Expression renders a tagged expression: its tags (if any) on a line
// above, then the underlying Expr.
func Expression(e ast.Expression) string {
	body := exprBody(e.Expr)
	if len(e.Tags) == 0 {
		return body
	}
	return Tags(e.Tags) + "\n" + body
}

func exprBody(x ast.Expr) string {
	switch x.Kind {
	case ast.ExprLiteral:
		return x.Literal.Value.String()
	case ast.ExprVariable:
		return x.Variable.Name
	case ast.ExprBlock:
		return Block(x.Block)
	case ast.ExprParen:
		return "(" + Expression(*x.Inner) + ")"
	case ast.ExprFuncCall:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = Expression(a)
		}
		return x.Callee.String() + "(" + strings.Join(args, ", ") + ")"
	case ast.ExprPoint:
		return "&" + Expression(*x.Inner)
	case ast.ExprDeref:
		return "*" + Expression(*x.Inner)
	case ast.ExprCast:
		return Expression(*x.Inner) + " as " + x.CastTo.String()
	case ast.ExprBinaryOp:
		return "(" + Expression(*x.Left) + " " + x.BinOp.String() + " " + Expression(*x.Right) + ")"
	case ast.ExprUnaryOp:
		return x.BinOp.String() + Expression(*x.Left)
	case ast.ExprVarCreate:
		out := "let "
		if x.CreateMutable {
			out += "mut "
		}
		out += x.CreateName.Name
		if x.CreateType != nil {
			out += ": " + x.CreateType.String()
		}
		return out + " = " + Expression(*x.CreateValue)
	case ast.ExprVarAssign:
		if x.AssignOp != nil {
			return x.AssignName.Name + " " + x.AssignOp.String() + "= " + Expression(*x.AssignValue)
		}
		return x.AssignName.Name + " = " + Expression(*x.AssignValue)
	case ast.ExprIf:
		return "if " + Expression(*x.Cond) + " " + Block(x.Then) + " else " + Block(x.Else)
	case ast.ExprReturn:
		if x.ReturnValue != nil {
			return "return " + Expression(*x.ReturnValue)
		}
		return "return"
	default:
		return "<invalid expr>"
	}
}
