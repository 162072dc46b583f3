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
	"github.com/justanothercell/lithia/token"
)

// buildOperator builds the `operator` production: a particle, optionally
// glued to a second particle, looked up against the Op table. The second
// particle is only folded in when doing so yields a table hit - this is
// what keeps compound assignment (`+=`) from being swallowed as a single
// two-char operator: `+` alone is a hit, `+=` is not, so the `=` is left for
// var_assign to consume separately, while `==`, `<=`, `&&`, etc. *are* table
// hits and so are folded into one two-char operator.
func buildOperator() combinator.Consumer[ast.Op] {
	return combinator.Named("operator", func(iter *combinator.Iter) (ast.Op, error) {
		start := iter.Here()
		first, err := iter.This()
		if err != nil {
			return 0, reporter.When(err, "expecting operator")
		}
		if first.Kind != token.KindParticle {
			return 0, reporter.New(reporter.ParsingError, "expected operator, found %s", first).At(first.Span)
		}

		if second, serr := iter.PeekN(1); serr == nil && second.Kind == token.KindParticle && second.Glued {
			twoChar := string(first.Particle) + string(second.Particle)
			if op, ok := ast.OpByName[twoChar]; ok {
				iter.Next()
				iter.Next()
				return op, nil
			}
		}

		oneChar := string(first.Particle)
		op, ok := ast.OpByName[oneChar]
		if !ok {
			return 0, reporter.New(reporter.ParsingError, "unknown operator %q", oneChar).At(start)
		}
		iter.Next()
		return op, nil
	})
}
