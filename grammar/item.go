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
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// buildItem builds the `item` production: `Ident (:: Ident)*`.
func buildItem() combinator.Consumer[ast.Item] {
	pathSep := combinator.Seq2(expectParticle(':'), expectGluedParticle(':'))

	rest := combinator.Map(
		combinator.Seq2(pathSep, getIdent()),
		func(p combinator.Pair[combinator.Pair[token.Token, token.Token], ast.Ident], _ source.Span) ast.Ident {
			return p.Second
		},
	)

	full := combinator.Map(
		combinator.Seq2(getIdent(), combinator.While(pathSep, rest)),
		func(p combinator.Pair[ast.Ident, []ast.Ident], span source.Span) ast.Item {
			path := append([]ast.Ident{p.First}, p.Second...)
			return ast.Item{Path: path, Span: span}
		},
	)

	return combinator.Named("item", full)
}
