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

// arrayLengthOf validates and extracts the length literal of an Array type:
// it must be an unsuffixed integer literal (the spec's "no suffix or uptr"
// is read here as: the literal carries no type suffix at all).
func arrayLengthOf(lit ast.AstLiteral) (uint64, error) {
	if lit.Value.Kind != ast.LitNumber || lit.Value.Num.Kind != token.Integer {
		return 0, reporter.New(reporter.LiteralError, "expected an integer literal for array length, found %s", lit.Value).At(lit.Span)
	}
	if lit.Value.Num.Suffix != token.NoSuffix {
		return 0, reporter.New(reporter.LiteralError, "array length literal must have no suffix, found %s", lit.Value.Num.Suffix).At(lit.Span)
	}
	return lit.Value.Num.Int, nil
}

// buildType builds the `type` production as a Latent: Pointer/Array/Slice
// all recur into `type` itself. item is the already-built `item` production.
func buildType(item combinator.Consumer[ast.Item]) combinator.Consumer[ast.Type] {
	typeLatent := combinator.NewLatent[ast.Type]()
	typeRef := typeLatent.Ref()

	pointerArm := combinator.MapRes(
		combinator.Seq2(expectParticle('&'), combinator.Optional(combinator.Discard(typeRef), typeRef)),
		func(p combinator.Pair[token.Token, combinator.Option[ast.Type]], span source.Span) (ast.Type, error) {
			if p.Second.Some {
				return ast.NewPointerType(p.Second.Value, span), nil
			}
			return ast.NewRawPointerType(span), nil
		},
	)

	arrayLenSuffix := combinator.Optional(combinator.Discard(expectParticle(';')), combinator.Seq2(expectParticle(';'), getLiteral()))

	arrayOrSliceArm := combinator.MapRes(
		combinator.Seq4(expectParticle('['), typeRef, arrayLenSuffix, expectParticle(']')),
		func(p combinator.Pair[combinator.Pair[combinator.Pair[token.Token, ast.Type], combinator.Option[combinator.Pair[token.Token, ast.AstLiteral]]], token.Token], span source.Span) (ast.Type, error) {
			elem := p.First.First.Second
			lenOpt := p.First.Second
			if !lenOpt.Some {
				return ast.NewSliceType(elem, span), nil
			}
			length, err := arrayLengthOf(lenOpt.Value.Second)
			if err != nil {
				return ast.Type{}, reporter.When(err, "parsing array type")
			}
			return ast.NewArrayType(elem, length, span), nil
		},
	)

	singleArm := combinator.Map(item, func(it ast.Item, span source.Span) ast.Type {
		return ast.NewSingleType(it, span)
	})

	typeLatent.Finalize(combinator.Named("type", combinator.Match(
		combinator.Case[ast.Type]{Pred: combinator.Discard(expectParticle('&')), Body: pointerArm},
		combinator.Case[ast.Type]{Pred: combinator.Discard(expectParticle('[')), Body: arrayOrSliceArm},
		combinator.Case[ast.Type]{Pred: combinator.Discard(item), Body: singleArm},
	)))

	return typeRef
}
