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

import "github.com/justanothercell/lithia/combinator"

// sepByUntilParticle parses zero or more item, separated by `,`, stopping
// once closeCh is the next token (closeCh itself is left unconsumed). It is
// shared by function_call args, tag args, and function parameter lists,
// all of which share this `a (, a)*` shape.
func sepByUntilParticle[T any](closeCh rune, item combinator.Consumer[T]) combinator.Consumer[[]T] {
	return func(iter *combinator.Iter) ([]T, error) {
		var out []T
		probe := iter.Clone()
		if _, err := expectParticle(closeCh)(probe); err == nil {
			return out, nil
		}
		for {
			v, err := item(iter)
			if err != nil {
				return out, err
			}
			out = append(out, v)

			probe := iter.Clone()
			if _, err := expectParticle(',')(probe); err != nil {
				break
			}
			if _, err := expectParticle(',')(iter); err != nil {
				return out, err
			}
		}
		return out, nil
	}
}
