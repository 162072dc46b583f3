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

package grammar

import (
	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/combinator"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// spanUpTo returns the span from start through the last token the iterator
// has consumed, matching the span-combining logic MapRes performs
// internally, for the hand-written productions below that don't go through
// MapRes.
func spanUpTo(iter *combinator.Iter, start source.Span) source.Span {
	if last, err := iter.PeekN(-1); err == nil {
		return start.ExtendTo(last.Span)
	}
	return start
}

// peeks reports whether c would succeed at iter's current position, without
// consuming anything - the lookahead primitive every Match arm below is
// built on.
func peeks[T any](iter *combinator.Iter, c combinator.Consumer[T]) bool {
	probe := iter.Clone()
	_, err := c(probe)
	return err == nil
}

// buildStatement builds `statement: expression ;?`.
func buildStatement(expr combinator.Consumer[ast.Expression]) combinator.Consumer[ast.Statement] {
	return combinator.Named("statement", func(iter *combinator.Iter) (ast.Statement, error) {
		start := iter.Here()
		e, err := expr(iter)
		if err != nil {
			return ast.Statement{}, err
		}
		terminated, err := combinator.IsOk(expectParticle(';'))(iter)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Expression: e, Terminated: terminated, Span: spanUpTo(iter, start)}, nil
	})
}

// buildBlock builds `block: { statement* }`.
func buildBlock(stmt combinator.Consumer[ast.Statement]) combinator.Consumer[ast.Block] {
	return combinator.Named("block", combinator.MapRes(
		combinator.Seq3(expectParticle('{'), combinator.While(combinator.Fail(expectParticle('}')), stmt), expectParticle('}')),
		func(p combinator.Pair[combinator.Pair[token.Token, []ast.Statement], token.Token], span source.Span) (ast.Block, error) {
			return ast.Block{Statements: p.First.Second, Span: span}, nil
		},
	))
}

// buildLetCreate builds `let_create: let mut? Ident (: type)? = expression`.
func buildLetCreate(typeRef combinator.Consumer[ast.Type], expr combinator.Consumer[ast.Expression]) combinator.Consumer[ast.Expr] {
	return combinator.Named("variable creation", func(iter *combinator.Iter) (ast.Expr, error) {
		if _, err := expectIdent("let")(iter); err != nil {
			return ast.Expr{}, err
		}
		mutable := peeks(iter, expectIdent("mut"))
		if mutable {
			if _, err := expectIdent("mut")(iter); err != nil {
				return ast.Expr{}, err
			}
		}
		name, err := getIdent()(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		var declType *ast.Type
		if peeks(iter, expectParticle(':')) {
			if _, err := expectParticle(':')(iter); err != nil {
				return ast.Expr{}, err
			}
			t, err := typeRef(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			declType = &t
		}
		if _, err := expectParticle('=')(iter); err != nil {
			return ast.Expr{}, err
		}
		value, err := expr(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.Expr{Kind: ast.ExprVarCreate, CreateName: name, CreateMutable: mutable, CreateType: declType, CreateValue: &value}, nil
	})
}

// isVarAssignStart tests the `var_assign` lookahead: an Ident followed by an
// optional compound operator and then `=`. Trying buildOperator and failing
// (as happens on a bare `=`, which is not itself in the Op table) just
// means there is no compound operator; the bare `=` is then required
// directly.
func isVarAssignStart(opProd combinator.Consumer[ast.Op]) combinator.Consumer[combinator.Void] {
	return func(iter *combinator.Iter) (combinator.Void, error) {
		if _, err := getIdent()(iter); err != nil {
			return combinator.Void{}, err
		}
		if peeks(iter, opProd) {
			if _, err := opProd(iter); err != nil {
				return combinator.Void{}, err
			}
		}
		if _, err := expectParticle('=')(iter); err != nil {
			return combinator.Void{}, err
		}
		return combinator.Void{}, nil
	}
}

// buildVarAssign builds `var_assign: Ident (op =? | =) expression`.
func buildVarAssign(opProd combinator.Consumer[ast.Op], expr combinator.Consumer[ast.Expression]) combinator.Consumer[ast.Expr] {
	return combinator.Named("variable assignment", func(iter *combinator.Iter) (ast.Expr, error) {
		name, err := getIdent()(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		var opPtr *ast.Op
		if peeks(iter, opProd) {
			op, err := opProd(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			opPtr = &op
		}
		if _, err := expectParticle('=')(iter); err != nil {
			return ast.Expr{}, reporter.When(err, "parsing variable assignment")
		}
		value, err := expr(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.Expr{Kind: ast.ExprVarAssign, AssignName: name, AssignOp: opPtr, AssignValue: &value}, nil
	})
}

// buildIfExpr builds `if_expr: if expression block (else block)?`.
func buildIfExpr(expr combinator.Consumer[ast.Expression], block combinator.Consumer[ast.Block]) combinator.Consumer[ast.Expr] {
	return combinator.Named("if expression", func(iter *combinator.Iter) (ast.Expr, error) {
		if _, err := expectIdent("if")(iter); err != nil {
			return ast.Expr{}, err
		}
		cond, err := expr(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		thenBlock, err := block(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		elseBlock := ast.EmptyBlock(iter.Here())
		if peeks(iter, expectIdent("else")) {
			if _, err := expectIdent("else")(iter); err != nil {
				return ast.Expr{}, err
			}
			elseBlock, err = block(iter)
			if err != nil {
				return ast.Expr{}, err
			}
		}
		return ast.Expr{Kind: ast.ExprIf, Cond: &cond, Then: thenBlock, Else: elseBlock}, nil
	})
}

// isFuncCallStart tests the `function_call` lookahead: an item immediately
// followed by `(`.
func isFuncCallStart(item combinator.Consumer[ast.Item]) combinator.Consumer[combinator.Void] {
	return func(iter *combinator.Iter) (combinator.Void, error) {
		if _, err := item(iter); err != nil {
			return combinator.Void{}, err
		}
		if _, err := expectParticle('(')(iter); err != nil {
			return combinator.Void{}, err
		}
		return combinator.Void{}, nil
	}
}

// buildFunctionCall builds `function_call: item ( args? )`.
func buildFunctionCall(item combinator.Consumer[ast.Item], expr combinator.Consumer[ast.Expression]) combinator.Consumer[ast.Expr] {
	return combinator.Named("function call", func(iter *combinator.Iter) (ast.Expr, error) {
		callee, err := item(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := expectParticle('(')(iter); err != nil {
			return ast.Expr{}, err
		}
		args, err := sepByUntilParticle(')', expr)(iter)
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := expectParticle(')')(iter); err != nil {
			return ast.Expr{}, err
		}
		return ast.Expr{Kind: ast.ExprFuncCall, Callee: callee, Args: args}, nil
	})
}

// buildExpression wires the Latent-driven expression core: tags prefix,
// primary by lookahead, zero or more `as` casts, then an optional trailing
// right-associative binary operator. It returns the expression Consumer
// plus the block Consumer built alongside it (function/constant bodies need
// the same block production).
func buildExpression(item combinator.Consumer[ast.Item], typeRef combinator.Consumer[ast.Type], tagsPat combinator.Consumer[ast.Tags], opProd combinator.Consumer[ast.Op]) (expr combinator.Consumer[ast.Expression], block combinator.Consumer[ast.Block]) {
	exprLatent := combinator.NewLatent[ast.Expression]()
	exprRef := exprLatent.Ref()

	statement := buildStatement(exprRef)
	blockProd := buildBlock(statement)
	letCreate := buildLetCreate(typeRef, exprRef)
	varAssign := buildVarAssign(opProd, exprRef)
	ifExpr := buildIfExpr(exprRef, blockProd)
	funcCall := buildFunctionCall(item, exprRef)
	assignStart := isVarAssignStart(opProd)
	callStart := isFuncCallStart(item)

	var primary func(iter *combinator.Iter) (ast.Expr, error)

	// unaryOperand parses the operand of a prefix `!`/`-` as a single
	// primary, so the operator binds tighter than `as` casts and binary ops.
	unaryOperand := func(iter *combinator.Iter) (ast.Expression, error) {
		start := iter.Here()
		inner, err := primary(iter)
		if err != nil {
			return ast.Expression{}, err
		}
		return ast.NewExpression(nil, inner, spanUpTo(iter, start)), nil
	}

	primary = func(iter *combinator.Iter) (ast.Expr, error) {
		switch {
		case peeks(iter, expectIdent("return")):
			if _, err := expectIdent("return")(iter); err != nil {
				return ast.Expr{}, err
			}
			var value *ast.Expression
			if peeks(iter, exprRef) {
				v, err := exprRef(iter)
				if err != nil {
					return ast.Expr{}, err
				}
				value = &v
			}
			return ast.Expr{Kind: ast.ExprReturn, ReturnValue: value}, nil

		case peeks(iter, expectIdent("if")):
			return ifExpr(iter)

		case peeks(iter, expectParticle('{')):
			b, err := blockProd(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprBlock, Block: b}, nil

		case peeks(iter, expectParticle('(')):
			if _, err := expectParticle('(')(iter); err != nil {
				return ast.Expr{}, err
			}
			inner, err := exprRef(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			if _, err := expectParticle(')')(iter); err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprParen, Inner: &inner}, nil

		case peeks(iter, assignStart):
			return varAssign(iter)

		case peeks(iter, callStart):
			return funcCall(iter)

		case peeks(iter, expectIdent("let")):
			return letCreate(iter)

		case peeks(iter, expectParticle('&')):
			if _, err := expectParticle('&')(iter); err != nil {
				return ast.Expr{}, err
			}
			operand, err := exprRef(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprPoint, Inner: &operand}, nil

		case peeks(iter, expectParticle('*')):
			if _, err := expectParticle('*')(iter); err != nil {
				return ast.Expr{}, err
			}
			operand, err := exprRef(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprDeref, Inner: &operand}, nil

		case peeks(iter, expectParticle('!')):
			if _, err := expectParticle('!')(iter); err != nil {
				return ast.Expr{}, err
			}
			operand, err := unaryOperand(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprUnaryOp, BinOp: ast.Not, Left: &operand}, nil

		case peeks(iter, expectParticle('-')):
			if _, err := expectParticle('-')(iter); err != nil {
				return ast.Expr{}, err
			}
			operand, err := unaryOperand(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprUnaryOp, BinOp: ast.Sub, Left: &operand}, nil

		case peeks(iter, getIdent()):
			id, err := getIdent()(iter)
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Kind: ast.ExprVariable, Variable: id}, nil

		default:
			lit, err := getLiteral()(iter)
			if err != nil {
				return ast.Expr{}, reporter.New(reporter.ParsingError, "expected expression").At(iter.Here())
			}
			return ast.Expr{Kind: ast.ExprLiteral, Literal: lit}, nil
		}
	}

	exprLatent.Finalize(combinator.Named("expression", func(iter *combinator.Iter) (ast.Expression, error) {
		start := iter.Here()
		tags, err := tagsPat(iter)
		if err != nil {
			return ast.Expression{}, err
		}

		primaryExpr, err := primary(iter)
		if err != nil {
			return ast.Expression{}, err
		}
		current := ast.NewExpression(tags, primaryExpr, spanUpTo(iter, start))

		for peeks(iter, expectIdent("as")) {
			if _, err := expectIdent("as")(iter); err != nil {
				return ast.Expression{}, err
			}
			castTo, err := typeRef(iter)
			if err != nil {
				return ast.Expression{}, err
			}
			inner := current
			current = ast.NewExpression(nil, ast.Expr{Kind: ast.ExprCast, Inner: &inner, CastTo: castTo}, spanUpTo(iter, start))
		}

		if peeks(iter, opProd) {
			op, err := opProd(iter)
			if err != nil {
				return ast.Expression{}, err
			}
			rhs, err := exprRef(iter)
			if err != nil {
				return ast.Expression{}, err
			}
			left := current
			current = ast.NewExpression(nil, ast.Expr{Kind: ast.ExprBinaryOp, BinOp: op, Left: &left, Right: &rhs}, spanUpTo(iter, start))
		}

		return current, nil
	}))

	return exprRef, blockProd
}
