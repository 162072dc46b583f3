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

// emitIf implements the nine-step if/else join-block protocol of spec
// §4.9: bodies are emitted first, into blocks appended off the function;
// only once both sides are known to agree does the alloca get inserted
// retroactively into the start block, so it dominates every store and the
// merged load, with the condbr remaining start's sole terminator.
func (e *Env) emitIf(x ast.Expr, resultName string, span source.Span) (ReturnInfo, error) {
	fn := *e.Function
	start := e.Backend.InsertBlock(e.Builder)

	// 1. Append blocks.
	thenBlock := e.Backend.AppendBasicBlock(fn, "then")
	elseBlock := e.Backend.AppendBasicBlock(fn, "else")
	contBlock := e.Backend.AppendBasicBlock(fn, "cont")

	// 2. Emit the condition in start.
	condRI, err := e.EmitExpression(*x.Cond, "")
	if err != nil {
		return ReturnInfo{}, err
	}
	if condRI.Return != nil {
		// The condition itself returned out of the function: start already
		// ended in a ret, so the appended blocks are unreachable dead
		// stubs. Give each a terminator so the module stays well-formed
		// and report the if as unconditionally returning.
		for _, b := range []Block{thenBlock, elseBlock, contBlock} {
			e.Backend.PositionAtEnd(e.Builder, b)
			e.Backend.BuildUnreachable(e.Builder)
		}
		return ReturnInfo{Return: condRI.Return, Span: span}, nil
	}
	condVar, err := requireValue(condRI, "if condition", span)
	if err != nil {
		return ReturnInfo{}, err
	}
	if err := types.SatisfiesOrErr(condVar.AstType, boolType(span), types.Yes); err != nil {
		return ReturnInfo{}, reporter.When(err, "if condition must be bool")
	}

	// 3. Position at then; emit then-block.
	e.Backend.PositionAtEnd(e.Builder, thenBlock)
	thenRI, err := e.emitBlock(x.Then, resultName)
	if err != nil {
		return ReturnInfo{}, err
	}
	thenTail := e.Backend.InsertBlock(e.Builder)

	// 4. Position at else; emit else-block.
	e.Backend.PositionAtEnd(e.Builder, elseBlock)
	elseRI, err := e.emitBlock(x.Else, resultName)
	if err != nil {
		return ReturnInfo{}, err
	}
	elseTail := e.Backend.InsertBlock(e.Builder)

	// 5. Join return_t.
	joinedReturn, err := joinReturn(thenRI.Return, elseRI.Return)
	if err != nil {
		return ReturnInfo{}, reporter.When(err, "joining if branches").At(span)
	}

	// 6. Join variable.
	joinedType, err := joinVariableType(thenRI.Variable, elseRI.Variable, span)
	if err != nil {
		return ReturnInfo{}, err
	}

	var joinedVar *Variable
	if joinedType != nil {
		// 7. Insert the alloca retroactively into start, store in each
		// non-returning branch's tail, then load in cont.
		e.Backend.PositionAtEnd(e.Builder, start)
		llvmType, err := e.LlvmType(*joinedType)
		if err != nil {
			return ReturnInfo{}, err
		}
		slot := e.Backend.BuildAlloca(e.Builder, llvmType, resultName+".slot")

		if thenRI.Return == nil {
			e.Backend.PositionAtEnd(e.Builder, thenTail)
			e.Backend.BuildStore(e.Builder, thenRI.Variable.LlvmValue, slot)
			e.Backend.BuildBr(e.Builder, contBlock)
		}
		if elseRI.Return == nil {
			e.Backend.PositionAtEnd(e.Builder, elseTail)
			e.Backend.BuildStore(e.Builder, elseRI.Variable.LlvmValue, slot)
			e.Backend.BuildBr(e.Builder, contBlock)
		}

		e.Backend.PositionAtEnd(e.Builder, contBlock)
		loaded := e.Backend.BuildLoad(e.Builder, llvmType, slot, resultName)
		joinedVar = &Variable{AstType: *joinedType, LlvmType: llvmType, LlvmValue: loaded}
	} else {
		// 8. Neither branch yields a value: just wire fallthroughs to cont.
		if thenRI.Return == nil {
			e.Backend.PositionAtEnd(e.Builder, thenTail)
			e.Backend.BuildBr(e.Builder, contBlock)
		}
		if elseRI.Return == nil {
			e.Backend.PositionAtEnd(e.Builder, elseTail)
			e.Backend.BuildBr(e.Builder, contBlock)
		}
		if thenRI.Return != nil && elseRI.Return != nil {
			e.Backend.PositionAtEnd(e.Builder, contBlock)
			e.Backend.BuildUnreachable(e.Builder)
		}
	}

	// 9. Reposition at start and emit the condbr; finish at cont.
	e.Backend.PositionAtEnd(e.Builder, start)
	e.Backend.BuildCondBr(e.Builder, condVar.LlvmValue, thenBlock, elseBlock)
	e.Backend.PositionAtEnd(e.Builder, contBlock)

	return ReturnInfo{Variable: joinedVar, Return: joinedReturn, Span: span}, nil
}

// joinReturn implements step 5: No-No=None; Some-None/None-Some=Some;
// Some-Some must match at Yes.
func joinReturn(a, b *TypedReturn) (*TypedReturn, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a != nil && b == nil:
		return a, nil
	case a == nil && b != nil:
		return b, nil
	default:
		if err := types.SatisfiesOrErr(a.AstType, b.AstType, types.Yes); err != nil {
			return nil, err
		}
		return a, nil
	}
}

// joinVariableType implements step 6: both-None has no value; exactly one
// producing a value is an error (an if with a missing matching branch can
// never produce a value); both producing requires their types to match at
// Yes.
func joinVariableType(a, b *Variable, span source.Span) (*ast.Type, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a != nil && b == nil:
		return nil, reporter.New(reporter.TypeError, "if resolves to %s but the else branch does not produce a value", a.AstType).At(span)
	case a == nil && b != nil:
		return nil, reporter.New(reporter.TypeError, "if resolves to %s but the then branch does not produce a value", b.AstType).At(span)
	default:
		if err := types.SatisfiesOrErr(b.AstType, a.AstType, types.Yes); err != nil {
			return nil, err
		}
		t := a.AstType
		return &t, nil
	}
}
