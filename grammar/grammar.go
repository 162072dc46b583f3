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
	"github.com/justanothercell/lithia/indexer"
	"github.com/justanothercell/lithia/token"
)

// Build constructs the full grammar once; the returned Parse function may
// be called for each source file's token stream.
func Build() func(tokens []token.Token, moduleName string) (*ast.Module, error) {
	item := buildItem()
	typeRef := buildType(item)
	_, tagsPat := buildTag()
	opProd := buildOperator()
	exprRef, block := buildExpression(item, typeRef, tagsPat, opProd)
	function := buildFunction(typeRef, block)
	constant := buildConstant(typeRef, exprRef)

	return func(tokens []token.Token, moduleName string) (*ast.Module, error) {
		idx := indexer.NewTokenIndexer(tokens)
		moduleContent := buildModuleContent(moduleName, tagsPat, function, constant)
		return moduleContent(idx)
	}
}
