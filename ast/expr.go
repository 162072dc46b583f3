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

// Op is a binary or unary operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	And    // &
	Or     // |
	BinAnd // &&
	BinOr  // ||
	Not
	LShift
	RShift
	LT
	LE
	GT
	GE
	EQ
	NE
)

var opNames = map[Op]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/",
	And: "&", Or: "|", BinAnd: "&&", BinOr: "||", Not: "!",
	LShift: "<<", RShift: ">>",
	LT: "<", LE: "<=", GT: ">", GE: ">=", EQ: "==", NE: "!=",
}

func (o Op) String() string { return opNames[o] }

// OpByName maps an operator's source spelling to its Op value.
var OpByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for o, n := range opNames {
		m[n] = o
	}
	return m
}()

// ExprKind discriminates the closed set of expression shapes.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprBlock
	ExprParen
	ExprFuncCall
	ExprPoint
	ExprDeref
	ExprCast
	ExprBinaryOp
	ExprUnaryOp
	ExprVarCreate
	ExprVarAssign
	ExprIf
	ExprReturn
)

// Expr is the inner, untagged shape of an expression; Expression wraps it
// with tags and a span.
type Expr struct {
	Kind ExprKind

	// ExprLiteral
	Literal AstLiteral

	// ExprVariable
	Variable Ident

	// ExprBlock
	Block Block

	// ExprParen, ExprPoint, ExprDeref, ExprCast (operand)
	Inner *Expression

	// ExprFuncCall
	Callee Item
	Args   []Expression

	// ExprCast
	CastTo Type

	// ExprBinaryOp, ExprUnaryOp (UnaryOp uses Left only, as its operand)
	BinOp Op
	Left  *Expression
	Right *Expression

	// ExprVarCreate
	CreateName    Ident
	CreateMutable bool
	CreateType    *Type // nil when no annotation was given
	CreateValue   *Expression

	// ExprVarAssign
	AssignName Ident
	AssignOp   *Op // nil for plain `=`
	AssignValue *Expression

	// ExprIf
	Cond     *Expression
	Then     Block
	Else     Block

	// ExprReturn
	ReturnValue *Expression // nil for a bare `return`
}

// Expression is a tagged, spanned Expr: every expression in the language may
// carry attributes (e.g. `#[unsafe] { ... }`).
type Expression struct {
	Tags Tags
	Expr Expr
	Span source.Span
}

func (n Expression) NodeSpan() source.Span { return n.Span }

func NewExpression(tags Tags, expr Expr, span source.Span) Expression {
	if tags == nil {
		tags = Tags{}
	}
	return Expression{Tags: tags, Expr: expr, Span: span}
}

// Statement is a single expression statement, optionally semicolon
// terminated.
type Statement struct {
	Expression Expression
	Terminated bool
	Span       source.Span
}

func (n Statement) NodeSpan() source.Span { return n.Span }

// Block is a sequence of statements delimited by `{`/`}`.
type Block struct {
	Statements []Statement
	Span       source.Span
}

func (n Block) NodeSpan() source.Span { return n.Span }

// EmptyBlock builds a Block with no statements at span (used as the
// synthesized `else` of an if-expression with no else clause).
func EmptyBlock(span source.Span) Block {
	return Block{Span: span}
}
