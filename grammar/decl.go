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
)

// buildParam builds a single `Ident: type` function parameter.
func buildParam(typeRef combinator.Consumer[ast.Type]) combinator.Consumer[ast.Param] {
	return func(iter *combinator.Iter) (ast.Param, error) {
		name, err := getIdent()(iter)
		if err != nil {
			return ast.Param{}, err
		}
		if _, err := expectParticle(':')(iter); err != nil {
			return ast.Param{}, err
		}
		ty, err := typeRef(iter)
		if err != nil {
			return ast.Param{}, err
		}
		return ast.Param{Name: name, Type: ty}, nil
	}
}

// buildFunction builds:
// `fn Ident ( (Ident: type)(, Ident: type)* ) (-> type)? (block | ;)`.
func buildFunction(typeRef combinator.Consumer[ast.Type], block combinator.Consumer[ast.Block]) combinator.Consumer[ast.Func] {
	param := buildParam(typeRef)
	return combinator.Named("function", func(iter *combinator.Iter) (ast.Func, error) {
		start := iter.Here()
		if _, err := expectIdent("fn")(iter); err != nil {
			return ast.Func{}, err
		}
		name, err := getIdent()(iter)
		if err != nil {
			return ast.Func{}, err
		}
		if _, err := expectParticle('(')(iter); err != nil {
			return ast.Func{}, err
		}
		args, err := sepByUntilParticle(')', param)(iter)
		if err != nil {
			return ast.Func{}, err
		}
		if _, err := expectParticle(')')(iter); err != nil {
			return ast.Func{}, err
		}

		ret := ast.UnitType(iter.Here())
		if peeks(iter, combinator.Seq2(expectParticle('-'), expectGluedParticle('>'))) {
			if _, err := expectParticle('-')(iter); err != nil {
				return ast.Func{}, err
			}
			if _, err := expectGluedParticle('>')(iter); err != nil {
				return ast.Func{}, err
			}
			ret, err = typeRef(iter)
			if err != nil {
				return ast.Func{}, err
			}
		}

		var body *ast.Block
		if peeks(iter, expectParticle('{')) {
			b, err := block(iter)
			if err != nil {
				return ast.Func{}, err
			}
			body = &b
		} else if _, err := expectParticle(';')(iter); err != nil {
			return ast.Func{}, reporter.New(reporter.ParsingError, "expected function body or ';'").At(iter.Here())
		}

		return ast.Func{Name: name, Args: args, Ret: ret, Body: body, Span: spanUpTo(iter, start)}, nil
	})
}

// buildConstant builds `const Ident : type = expression ;`.
func buildConstant(typeRef combinator.Consumer[ast.Type], expr combinator.Consumer[ast.Expression]) combinator.Consumer[ast.Const] {
	return combinator.Named("constant", func(iter *combinator.Iter) (ast.Const, error) {
		start := iter.Here()
		if _, err := expectIdent("const")(iter); err != nil {
			return ast.Const{}, err
		}
		name, err := getIdent()(iter)
		if err != nil {
			return ast.Const{}, err
		}
		if _, err := expectParticle(':')(iter); err != nil {
			return ast.Const{}, err
		}
		ty, err := typeRef(iter)
		if err != nil {
			return ast.Const{}, err
		}
		if _, err := expectParticle('=')(iter); err != nil {
			return ast.Const{}, err
		}
		value, err := expr(iter)
		if err != nil {
			return ast.Const{}, err
		}
		if _, err := expectParticle(';')(iter); err != nil {
			return ast.Const{}, err
		}
		return ast.Const{Name: name, Type: ty, Value: value, Span: spanUpTo(iter, start)}, nil
	})
}

// buildModuleContent builds `module_content`: a loop of optional tags then a
// fn/const declaration, installing tags into functions afterward (constants
// may not carry tags) and rejecting duplicate names across both maps.
func buildModuleContent(name string, tagsPat combinator.Consumer[ast.Tags], function combinator.Consumer[ast.Func], constant combinator.Consumer[ast.Const]) combinator.Consumer[*ast.Module] {
	return combinator.Named("module content", func(iter *combinator.Iter) (*ast.Module, error) {
		start := iter.Here()
		mod := ast.NewModule(name, start)

		for {
			if _, err := iter.This(); err != nil {
				break
			}
			tags, err := tagsPat(iter)
			if err != nil {
				return nil, err
			}

			switch {
			case peeks(iter, expectIdent("fn")):
				f, err := function(iter)
				if err != nil {
					return nil, err
				}
				f.Tags = tags
				if err := installDecl(mod, f.Name, nil, &f); err != nil {
					return nil, err
				}

			case peeks(iter, expectIdent("const")):
				if len(tags) != 0 {
					return nil, reporter.New(reporter.TagError, "constants may not carry tags").At(constTagSpan(tags))
				}
				c, err := constant(iter)
				if err != nil {
					return nil, err
				}
				if err := installDecl(mod, c.Name, &c, nil); err != nil {
					return nil, err
				}

			default:
				tok, _ := iter.This()
				return nil, reporter.New(reporter.ParsingError, "expected function or constant declaration, found %s", tok).At(iter.Here())
			}
		}

		mod.Span = spanUpTo(iter, start)
		return mod, nil
	})
}

// constTagSpan picks a representative span to blame for a stray tag set on
// a constant; any one of the offending tags will do.
func constTagSpan(tags ast.Tags) source.Span {
	for _, t := range tags {
		return t.Span
	}
	return source.Dummy()
}

// installDecl records a function or constant by name, failing with
// AlreadyDefinedError (carrying both the original and the conflicting
// span) if the name collides with an existing function or constant.
func installDecl(mod *ast.Module, name ast.Ident, c *ast.Const, f *ast.Func) error {
	if existing, ok := mod.Functions[name.Name]; ok {
		return reporter.New(reporter.AlreadyDefinedError, "%q already defined", name.Name).Ats(existing.Span, name.Span)
	}
	if existing, ok := mod.Constants[name.Name]; ok {
		return reporter.New(reporter.AlreadyDefinedError, "%q already defined", name.Name).Ats(existing.Span, name.Span)
	}
	if f != nil {
		mod.Functions[name.Name] = f
	}
	if c != nil {
		mod.Constants[name.Name] = c
	}
	return nil
}
