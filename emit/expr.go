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
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/types"
)

// TypedReturn pairs a dynamically-returned value's ast.Type with its
// backend Type, per the `return_t: opt (Type, LlvmType)` of spec §4.7.
type TypedReturn struct {
	AstType  ast.Type
	LlvmType Type
}

// ReturnInfo is the result of emitting any expression: Variable is set when
// the expression produced a value at the current insertion point; Return is
// set when emitting it dynamically returned out of the current function.
// Both may be set or neither, per spec §4.7.
type ReturnInfo struct {
	Variable *Variable
	Return   *TypedReturn
	Span     source.Span
}

func boolType(span source.Span) ast.Type {
	return ast.NewSingleType(ast.NewItem(ast.Ident{Name: "bool", Span: span}), span)
}

// EmitExpression emits a tagged Expression: an `#[unsafe]` tag pushes an
// unsafe context frame for its duration, restored on exit (spec §4.7's
// last bullet), then delegates to the untagged Expr shape.
func (e *Env) EmitExpression(expr ast.Expression, resultName string) (ReturnInfo, error) {
	if expr.Tags.Has(ast.TagUnsafe) {
		e.Stack.Push(false, true)
		defer e.Stack.Pop()
	}
	return e.emitExpr(expr.Expr, expr.Span, resultName)
}

func (e *Env) emitExpr(x ast.Expr, span source.Span, resultName string) (ReturnInfo, error) {
	switch x.Kind {
	case ast.ExprLiteral:
		v, err := e.EmitLiteral(x.Literal)
		if err != nil {
			return ReturnInfo{}, err
		}
		return ReturnInfo{Variable: &v, Span: span}, nil

	case ast.ExprVariable:
		return e.emitVariableRef(x.Variable, resultName, span)

	case ast.ExprBlock:
		return e.emitBlock(x.Block, resultName)

	case ast.ExprParen:
		return e.EmitExpression(*x.Inner, resultName)

	case ast.ExprPoint:
		return e.emitPoint(*x.Inner, resultName, span)

	case ast.ExprDeref:
		return e.emitDeref(*x.Inner, resultName, span)

	case ast.ExprCast:
		return e.emitCast(*x.Inner, x.CastTo, resultName, span)

	case ast.ExprBinaryOp:
		return e.emitBinaryExpr(x, resultName, span)

	case ast.ExprUnaryOp:
		return e.emitUnaryExpr(x, resultName, span)

	case ast.ExprVarCreate:
		return e.emitVarCreate(x, span)

	case ast.ExprVarAssign:
		return e.emitVarAssign(x, span)

	case ast.ExprIf:
		return e.emitIf(x, resultName, span)

	case ast.ExprFuncCall:
		return e.emitFuncCall(x, resultName, span)

	case ast.ExprReturn:
		return e.emitReturn(x, span)

	default:
		return ReturnInfo{}, reporter.New(reporter.CompilationError, "unsupported expression").At(span)
	}
}

func (e *Env) emitVariableRef(id ast.Ident, resultName string, span source.Span) (ReturnInfo, error) {
	v, err := e.Lookup(id.Name, id.Span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if v.Mutable {
		loaded := e.Backend.BuildLoad(e.Builder, v.LlvmType, v.LlvmValue, resultName)
		v = Variable{AstType: v.AstType, LlvmType: v.LlvmType, LlvmValue: loaded}
	}
	return ReturnInfo{Variable: &v, Span: span}, nil
}

func requireValue(ri ReturnInfo, what string, span source.Span) (Variable, error) {
	if ri.Variable == nil {
		return Variable{}, reporter.New(reporter.CompilationError, "%s requires a value", what).At(span)
	}
	return *ri.Variable, nil
}

func (e *Env) emitPoint(inner ast.Expression, resultName string, span source.Span) (ReturnInfo, error) {
	ri, err := e.EmitExpression(inner, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "'&' operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	ptr := e.Backend.BuildAlloca(e.Builder, v.LlvmType, resultName)
	e.Backend.BuildStore(e.Builder, v.LlvmValue, ptr)
	astType := ast.NewPointerType(v.AstType, span)
	out := Variable{AstType: astType, LlvmType: e.Backend.PointerType(v.LlvmType), LlvmValue: ptr}
	return ReturnInfo{Variable: &out, Span: span}, nil
}

func (e *Env) emitDeref(inner ast.Expression, resultName string, span source.Span) (ReturnInfo, error) {
	ri, err := e.EmitExpression(inner, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "'*' operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if v.AstType.Ty.Kind != ast.TyPointer {
		return ReturnInfo{}, reporter.New(reporter.TypeError, "cannot dereference %s, expected a pointer", v.AstType).At(span)
	}
	elemAstType := *v.AstType.Ty.Elem
	elemLlvm, err := e.LlvmType(elemAstType)
	if err != nil {
		return ReturnInfo{}, err
	}
	loaded := e.Backend.BuildLoad(e.Builder, elemLlvm, v.LlvmValue, resultName)
	out := Variable{AstType: elemAstType, LlvmType: elemLlvm, LlvmValue: loaded}
	return ReturnInfo{Variable: &out, Span: span}, nil
}

// isAggregateReinterpret reports whether a cast between from and to crosses
// an Array/Slice shape, which LLVM cannot cast as a value instruction - it
// must round-trip through memory (see castViaMemory).
func isAggregateReinterpret(from, to ast.Type) bool {
	isAgg := func(t ast.Type) bool { return t.Ty.Kind == ast.TyArray || t.Ty.Kind == ast.TySlice }
	return isAgg(from) || isAgg(to)
}

func (e *Env) castViaMemory(v Variable, destType Type, name string) Value {
	slot := e.Backend.BuildAlloca(e.Builder, v.LlvmType, "")
	e.Backend.BuildStore(e.Builder, v.LlvmValue, slot)
	destPtr := e.Backend.BuildCast(e.Builder, CastBitCast, slot, e.Backend.PointerType(destType), "")
	return e.Backend.BuildLoad(e.Builder, destType, destPtr, name)
}

func isSignedPrimitive(t ast.Type) bool {
	if t.Ty.Kind != ast.TySingle {
		return false
	}
	switch t.Ty.Base.String() {
	case "i8", "i16", "i32", "i64", "i128", "iptr":
		return true
	default:
		return false
	}
}

func isPointerish(t ast.Type) bool {
	return t.Ty.Kind == ast.TyPointer || t.Ty.Kind == ast.TyRawPointer
}

func castOpcode(from, to ast.Type) (CastOp, error) {
	fromBits, fromIsInt := integerBits(from)
	toBits, toIsInt := integerBits(to)
	switch {
	case fromIsInt && toIsInt:
		switch {
		case fromBits == toBits:
			return CastBitCast, nil
		case fromBits < toBits:
			if isSignedPrimitive(from) {
				return CastSExt, nil
			}
			return CastZExt, nil
		default:
			return CastTrunc, nil
		}
	case isPointerish(from) && isPointerish(to):
		return CastBitCast, nil
	case isPointerish(from) && toIsInt:
		return CastPtrToInt, nil
	case fromIsInt && isPointerish(to):
		return CastIntToPtr, nil
	default:
		return 0, reporter.New(reporter.CastError, "no cast instruction connects %s to %s", from, to)
	}
}

// emitCast implements spec §4.7's Cast rule: satisfies(e, T) must be Cast
// or CastUnsafe (Yes is accepted too, as a redundant-but-allowed cast; No
// is rejected), and CastUnsafe additionally requires an unsafe context.
func (e *Env) emitCast(inner ast.Expression, to ast.Type, resultName string, span source.Span) (ReturnInfo, error) {
	ri, err := e.EmitExpression(inner, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "cast operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}

	sat := types.Satisfies(v.AstType, to)
	if sat == types.No {
		return ReturnInfo{}, reporter.New(reporter.TypeError, "%s cannot be cast to %s", v.AstType, to).Ats(v.AstType.Span, to.Span)
	}
	if sat == types.CastUnsafe {
		if err := e.requireUnsafe("this cast", span); err != nil {
			return ReturnInfo{}, err
		}
	}

	destLlvm, err := e.LlvmType(to)
	if err != nil {
		return ReturnInfo{}, err
	}

	var val Value
	if isAggregateReinterpret(v.AstType, to) {
		val = e.castViaMemory(v, destLlvm, resultName)
	} else {
		op, err := castOpcode(v.AstType, to)
		if err != nil {
			return ReturnInfo{}, reporter.When(err, "emitting cast").At(span)
		}
		val = e.Backend.BuildCast(e.Builder, op, v.LlvmValue, destLlvm, resultName)
	}

	out := Variable{AstType: to, LlvmType: destLlvm, LlvmValue: val}
	return ReturnInfo{Variable: &out, Span: span}, nil
}

var arithOpcode = map[ast.Op]Opcode{
	ast.Add: OpAdd, ast.Sub: OpSub, ast.Mul: OpMul, ast.Div: OpUDiv,
	ast.And: OpAnd, ast.Or: OpOr, ast.BinAnd: OpAnd, ast.BinOr: OpOr,
	ast.LShift: OpShl, ast.RShift: OpAShr,
}

var cmpPredicate = map[ast.Op]Predicate{
	ast.LT: PredSLT, ast.LE: PredSLE, ast.GT: PredSGT, ast.GE: PredSGE,
	ast.EQ: PredEQ, ast.NE: PredNE,
}

// emitBinaryOp implements spec §4.7's BinaryOp rule: operand types must
// match; arithmetic/logical ops yield the left operand's type, comparisons
// yield bool.
func (e *Env) emitBinaryOp(op ast.Op, lhs, rhs Variable, resultName string, span source.Span) (Variable, error) {
	if err := types.SatisfiesOrErr(rhs.AstType, lhs.AstType, types.Yes); err != nil {
		return Variable{}, reporter.When(err, "binary operator operand types must match")
	}
	if opc, ok := arithOpcode[op]; ok {
		val := e.Backend.BuildBinOp(e.Builder, opc, lhs.LlvmValue, rhs.LlvmValue, resultName)
		return Variable{AstType: lhs.AstType, LlvmType: lhs.LlvmType, LlvmValue: val}, nil
	}
	if pred, ok := cmpPredicate[op]; ok {
		val := e.Backend.BuildICmp(e.Builder, pred, lhs.LlvmValue, rhs.LlvmValue, resultName)
		bt := boolType(span)
		bLlvm, err := e.LlvmType(bt)
		if err != nil {
			return Variable{}, err
		}
		return Variable{AstType: bt, LlvmType: bLlvm, LlvmValue: val}, nil
	}
	return Variable{}, reporter.New(reporter.CompilationError, "%s is not a binary operator", op).At(span)
}

func (e *Env) emitBinaryExpr(x ast.Expr, resultName string, span source.Span) (ReturnInfo, error) {
	lri, err := e.EmitExpression(*x.Left, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	lv, err := requireValue(lri, "left operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	rri, err := e.EmitExpression(*x.Right, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	rv, err := requireValue(rri, "right operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	out, err := e.emitBinaryOp(x.BinOp, lv, rv, resultName, span)
	if err != nil {
		return ReturnInfo{}, err
	}
	return ReturnInfo{Variable: &out, Span: span}, nil
}

// emitUnaryExpr handles the two unary forms the grammar recognizes: `!`
// (logical/bitwise not, emitted as xor against an all-ones mask) and `-`
// (negation, emitted as `0 - operand`).
func (e *Env) emitUnaryExpr(x ast.Expr, resultName string, span source.Span) (ReturnInfo, error) {
	ri, err := e.EmitExpression(*x.Left, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "unary operand", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	bits, isInt := integerBits(v.AstType)
	if !isInt {
		return ReturnInfo{}, reporter.New(reporter.TypeError, "unary %s requires an integer operand, found %s", x.BinOp, v.AstType).At(span)
	}
	switch x.BinOp {
	case ast.Not:
		mask := allOnes(bits)
		ones := e.Backend.ConstInt(v.LlvmType, mask, false)
		val := e.Backend.BuildBinOp(e.Builder, OpXor, v.LlvmValue, ones, resultName)
		out := Variable{AstType: v.AstType, LlvmType: v.LlvmType, LlvmValue: val}
		return ReturnInfo{Variable: &out, Span: span}, nil
	case ast.Sub:
		zero := e.Backend.ConstInt(v.LlvmType, 0, false)
		val := e.Backend.BuildBinOp(e.Builder, OpSub, zero, v.LlvmValue, resultName)
		out := Variable{AstType: v.AstType, LlvmType: v.LlvmType, LlvmValue: val}
		return ReturnInfo{Variable: &out, Span: span}, nil
	default:
		return ReturnInfo{}, reporter.New(reporter.CompilationError, "%s is not a unary operator", x.BinOp).At(span)
	}
}

func allOnes(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// emitVarCreate implements spec §4.7's VarCreate rule: the initializer is
// emitted with the variable's own name for IR readability; a mutable
// binding is allocated and stored, an immutable one carries its value
// directly. The expression itself yields no value.
func (e *Env) emitVarCreate(x ast.Expr, span source.Span) (ReturnInfo, error) {
	name := x.CreateName.Name
	ri, err := e.EmitExpression(*x.CreateValue, name)
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "variable initializer", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if x.CreateType != nil {
		if err := types.SatisfiesOrErr(v.AstType, *x.CreateType, types.Yes); err != nil {
			return ReturnInfo{}, err
		}
	}
	if x.CreateMutable {
		slot := e.Backend.BuildAlloca(e.Builder, v.LlvmType, name)
		e.Backend.BuildStore(e.Builder, v.LlvmValue, slot)
		v = Variable{AstType: v.AstType, LlvmType: v.LlvmType, LlvmValue: slot, Mutable: true}
	}
	e.Declare(name, v)
	return ReturnInfo{Span: span}, nil
}

// emitVarAssign implements spec §4.7's VarAssign rule: the target must be a
// known mutable variable; a compound op desugars to
// BinaryOp(op, Variable(name), rhs) before the store.
func (e *Env) emitVarAssign(x ast.Expr, span source.Span) (ReturnInfo, error) {
	target, err := e.Lookup(x.AssignName.Name, x.AssignName.Span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if !target.Mutable {
		return ReturnInfo{}, reporter.New(reporter.CompilationError, "cannot assign to immutable variable %q", x.AssignName.Name).At(span)
	}

	ri, err := e.EmitExpression(*x.AssignValue, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	rhs, err := requireValue(ri, "assignment value", span)
	if err != nil {
		return ReturnInfo{}, err
	}

	if x.AssignOp != nil {
		cur := e.Backend.BuildLoad(e.Builder, target.LlvmType, target.LlvmValue, "")
		curVar := Variable{AstType: target.AstType, LlvmType: target.LlvmType, LlvmValue: cur}
		rhs, err = e.emitBinaryOp(*x.AssignOp, curVar, rhs, "", span)
		if err != nil {
			return ReturnInfo{}, err
		}
	}

	if err := types.SatisfiesOrErr(rhs.AstType, target.AstType, types.Yes); err != nil {
		return ReturnInfo{}, err
	}
	e.Backend.BuildStore(e.Builder, rhs.LlvmValue, target.LlvmValue)
	return ReturnInfo{Span: span}, nil
}

// emitReturn implements spec §4.7's Return rule: emit the value (or void)
// and a terminator, setting return_t.
func (e *Env) emitReturn(x ast.Expr, span source.Span) (ReturnInfo, error) {
	if x.ReturnValue == nil {
		e.Backend.BuildRetVoid(e.Builder)
		return ReturnInfo{Return: &TypedReturn{AstType: ast.UnitType(span), LlvmType: e.Backend.VoidType()}, Span: span}, nil
	}
	ri, err := e.EmitExpression(*x.ReturnValue, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	v, err := requireValue(ri, "return value", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	e.Backend.BuildRet(e.Builder, v.LlvmValue)
	return ReturnInfo{Return: &TypedReturn{AstType: v.AstType, LlvmType: v.LlvmType}, Span: span}, nil
}

// emitFuncCall implements spec §4.7's FuncCall rule.
func (e *Env) emitFuncCall(x ast.Expr, resultName string, span source.Span) (ReturnInfo, error) {
	if len(x.Callee.Path) != 1 {
		return ReturnInfo{}, reporter.New(reporter.CompilationError, "qualified calls are not supported in the CORE").At(span)
	}
	callee, err := e.Lookup(x.Callee.Last().Name, x.Callee.Span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if callee.AstType.Ty.Kind != ast.TySignature {
		return ReturnInfo{}, reporter.New(reporter.TypeError, "%s is not callable", x.Callee).At(span)
	}
	sig := callee.AstType.Ty
	if sig.IsUnsafe {
		if err := e.requireUnsafe("call to unsafe function "+x.Callee.String(), span); err != nil {
			return ReturnInfo{}, err
		}
	}

	if len(x.Args) < len(sig.Args) || (!sig.IsVararg && len(x.Args) != len(sig.Args)) {
		return ReturnInfo{}, reporter.New(reporter.CompilationError, "%s expects %d argument(s), found %d", x.Callee, len(sig.Args), len(x.Args)).At(span)
	}

	args := make([]Value, len(x.Args))
	for i, a := range x.Args {
		ri, err := e.EmitExpression(a, "")
		if err != nil {
			return ReturnInfo{}, err
		}
		av, err := requireValue(ri, "call argument", a.Span)
		if err != nil {
			return ReturnInfo{}, err
		}
		if i < len(sig.Args) {
			if err := types.SatisfiesOrErr(av.AstType, sig.Args[i], types.Yes); err != nil {
				return ReturnInfo{}, err
			}
		}
		args[i] = av.LlvmValue
	}

	val := e.Backend.BuildCall(e.Builder, callee.LlvmType, callee.LlvmValue, args, resultName)
	if sig.Ret.IsUnit() {
		return ReturnInfo{Span: span}, nil
	}
	retLlvm, err := e.LlvmType(*sig.Ret)
	if err != nil {
		return ReturnInfo{}, err
	}
	out := Variable{AstType: *sig.Ret, LlvmType: retLlvm, LlvmValue: val}
	return ReturnInfo{Variable: &out, Span: span}, nil
}
