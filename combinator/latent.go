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

package combinator

// Latent is a one-time-installable Consumer holder that lets a recursive
// grammar (type, expression, tag argument) reference a production before
// that production's definition exists. Construct it empty, hand Ref() out
// to every downstream combinator that needs to call the not-yet-defined
// rule, then call Finalize exactly once after the real consumer has been
// built.
//
// Consuming through Ref before Finalize is a programming error - a bug in
// how the grammar was wired up, not a malformed-input condition - so it
// panics rather than returning an error.
type Latent[Out any] struct {
	inner Consumer[Out]
	ready bool
}

// NewLatent constructs an empty, not-yet-installed holder.
func NewLatent[Out any]() *Latent[Out] {
	return &Latent[Out]{}
}

// Finalize installs the real consumer. It may be called exactly once.
func (l *Latent[Out]) Finalize(inner Consumer[Out]) {
	if l.ready {
		panic("latent pattern already finalized")
	}
	l.inner = inner
	l.ready = true
}

// Ref returns a Consumer that forwards to the installed definition. It can
// be captured and shared before Finalize is called, as long as no one
// invokes it before then.
func (l *Latent[Out]) Ref() Consumer[Out] {
	return func(iter *Iter) (Out, error) {
		if !l.ready {
			panic("latent pattern consumed before being finalized")
		}
		return l.inner(iter)
	}
}
