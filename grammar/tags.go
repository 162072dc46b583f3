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

// buildTag builds the `tag` and `tags` productions. tag_arg is a Latent
// since it recurses into tag itself (`#[attr(inline(always))]` nests the
// tag-call `inline(always)` as one of its arguments; a bare identifier such
// as `cold` in `#[attr(cold)]` is an identifier value, not a nested tag).
func buildTag() (tag combinator.Consumer[ast.Tag], tags combinator.Consumer[ast.Tags]) {
	tagValueLatent := combinator.NewLatent[ast.TagValue]()
	tagValueRef := tagValueLatent.Ref()

	tagArgs := combinator.Optional(
		combinator.Discard(expectParticle('(')),
		combinator.Seq3(expectParticle('('), sepByUntilParticle(')', tagValueRef), expectParticle(')')),
	)

	tagPat := combinator.Map(
		combinator.Seq2(getIdent(), tagArgs),
		func(p combinator.Pair[ast.Ident, combinator.Option[combinator.Pair[combinator.Pair[token.Token, []ast.TagValue], token.Token]]], span source.Span) ast.Tag {
			var values []ast.TagValue
			if p.Second.Some {
				values = p.Second.Value.First.Second
			}
			return ast.Tag{Name: p.First, Values: values, Span: span}
		},
	)

	tagValueLatent.Finalize(combinator.Named("tag value", combinator.Match(
		combinator.Case[ast.TagValue]{
			Pred: combinator.Discard(getLiteral()),
			Body: combinator.Map(getLiteral(), func(lit ast.AstLiteral, _ source.Span) ast.TagValue { return ast.NewLiteralTagValue(lit) }),
		},
		combinator.Case[ast.TagValue]{
			Pred: combinator.Discard(combinator.Seq2(getIdent(), combinator.Discard(expectParticle('(')))),
			Body: combinator.Map(tagPat, func(t ast.Tag, _ source.Span) ast.TagValue { return ast.NewTagTagValue(t) }),
		},
		combinator.Case[ast.TagValue]{
			Pred: combinator.Discard(getIdent()),
			Body: combinator.Map(getIdent(), func(id ast.Ident, _ source.Span) ast.TagValue { return ast.NewIdentTagValue(id) }),
		},
	)))

	tagsPat := combinator.MapRes(
		combinator.While(
			combinator.Discard(expectParticle('#')),
			combinator.Seq3(expectParticle('#'), expectParticle('['), combinator.Seq2(tagPat, expectParticle(']'))),
		),
		func(entries []combinator.Pair[combinator.Pair[token.Token, token.Token], combinator.Pair[ast.Tag, token.Token]], _ source.Span) (ast.Tags, error) {
			out := ast.Tags{}
			for _, e := range entries {
				t := e.Second.First
				if existing, ok := out[t.Name.Name]; ok {
					return nil, reporter.New(reporter.TagError, "tag %q already given", t.Name.Name).Ats(existing.Span, t.Span)
				}
				out[t.Name.Name] = t
			}
			return out, nil
		},
	)

	return combinator.Named("tag", tagPat), tagsPat
}
