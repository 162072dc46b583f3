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

// Package indexer implements the generic random-access cursor shared by the
// tokenizer (over characters) and the parser (over tokens). It knows
// nothing about what it indexes beyond the narrow Indexable contract.
package indexer

import (
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
)

// Indexable is the narrow contract an Indexer needs from its backing
// sequence: random-access element lookup, per-element span lookup (for
// diagnostics), and a length.
type Indexable[Item any] interface {
	Get(i int) Item
	LocAt(i int) source.Span
	Len() int
}

// Indexer is a cloneable, random-access cursor over an Indexable sequence.
// Parser combinators speculatively clone an Indexer, try to advance it, and
// discard the clone on failure; cloning is a cheap struct copy because the
// backing Indexable is itself expected to be a small value wrapping a
// slice.
type Indexer[Item any] struct {
	list  Indexable[Item]
	Index int
}

// New wraps list in an Indexer starting at position 0.
func New[Item any](list Indexable[Item]) *Indexer[Item] {
	return &Indexer[Item]{list: list}
}

// Len returns the total number of elements in the backing sequence.
func (ix *Indexer[Item]) Len() int { return ix.list.Len() }

// ElemsLeft returns how many elements remain at or after the current
// position.
func (ix *Indexer[Item]) ElemsLeft() int { return ix.list.Len() - ix.Index }

func (ix *Indexer[Item]) get(i int) (Item, error) {
	var zero Item
	if i < 0 || i >= ix.list.Len() {
		return zero, reporter.New(reporter.EOF, "reached end of input").At(ix.Here())
	}
	return ix.list.Get(i), nil
}

// This reads the element at the current index without advancing.
func (ix *Indexer[Item]) This() (Item, error) { return ix.get(ix.Index) }

// Peek reads the element one past the current index without advancing.
func (ix *Indexer[Item]) Peek() (Item, error) { return ix.get(ix.Index + 1) }

// PeekN reads the element offset by n from the current index (n may be
// negative) without advancing.
func (ix *Indexer[Item]) PeekN(n int) (Item, error) { return ix.get(ix.Index + n) }

// Next advances the cursor by one element.
func (ix *Indexer[Item]) Next() { ix.Index++ }

// Here returns the span of the element at the current index, or the span of
// the final element if the cursor has run past the end (so trailing-EOF
// errors still point somewhere in the source).
func (ix *Indexer[Item]) Here() source.Span {
	n := ix.list.Len()
	if n == 0 {
		return source.Dummy()
	}
	if ix.Index >= n {
		return ix.list.LocAt(n - 1)
	}
	return ix.list.LocAt(ix.Index)
}

// Clone returns an independent copy of the cursor sharing the same backing
// sequence. Advancing the clone does not affect the original.
func (ix *Indexer[Item]) Clone() *Indexer[Item] {
	c := *ix
	return &c
}
