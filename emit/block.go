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
)

// emitBlock implements spec §4.7's Block rule: statements emit in source
// order in their own frame; the final non-terminated statement yields the
// block's value; an earlier unterminated statement is an error. Once a
// statement dynamically returns, the rest of the block is unreachable and
// is not emitted - LLVM permits no instructions after a block's terminator,
// and the language itself treats trailing dead code as merely unreachable,
// not a compile error.
func (e *Env) emitBlock(b ast.Block, resultName string) (ReturnInfo, error) {
	e.Stack.Push(false, false)
	defer e.Stack.Pop()

	var value *Variable
	var ret *TypedReturn

	for i, stmt := range b.Statements {
		isLast := i == len(b.Statements)-1
		if !stmt.Terminated && !isLast {
			return ReturnInfo{}, reporter.New(reporter.ParsingError, "statement must be terminated with ';'").At(stmt.Span)
		}

		name := ""
		if isLast {
			name = resultName
		}
		ri, err := e.EmitExpression(stmt.Expression, name)
		if err != nil {
			return ReturnInfo{}, err
		}

		if ri.Return != nil {
			ret = ri.Return
			break
		}
		if isLast && !stmt.Terminated {
			value = ri.Variable
		}
	}

	return ReturnInfo{Variable: value, Return: ret, Span: b.Span}, nil
}
