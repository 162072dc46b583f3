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

// Package scope implements the emitter's lexical frame stack: a stack of
// name tables with opaque frame boundaries and propagated unsafe-context
// flags, per spec §4.6. Each frame's name table is an adaptive radix tree
// keyed on the identifier's bytes, the same structure the teacher uses for
// its symbol lookups.
package scope

import (
	art "github.com/kralicky/go-adaptive-radix-tree"
)

// Table is a name -> value lookup for one frame, backed by an adaptive
// radix tree. Values are stored as any; callers type-assert back to their
// own Variable type.
type Table struct {
	tree art.Tree
}

// NewTable builds an empty name table.
func NewTable() *Table {
	return &Table{tree: art.New()}
}

// Insert records name -> value, reporting whether it replaced an existing
// entry under the same name.
func (t *Table) Insert(name string, value any) (old any, replaced bool) {
	return t.tree.Insert(art.Key(name), value)
}

// Get looks up name in this frame only.
func (t *Table) Get(name string) (value any, found bool) {
	return t.tree.Search(art.Key(name))
}

// Frame is one lexical scope level.
type Frame struct {
	Vars *Table
	// Opaque halts a Stack.Lookup search: true for function-body frames,
	// which may not see past themselves into an enclosing function's locals.
	Opaque bool
	// UnsafeCtx is the effective unsafe context for code emitted while this
	// frame is on top: the frame's own forced value if it was pushed
	// unsafe, otherwise the value inherited at push time.
	UnsafeCtx bool
}

// Stack is the emitter's scope stack: globals are not part of it (Env keeps
// those separately) and are the fallback once Lookup exhausts the stack.
type Stack struct {
	frames []*Frame
}

// NewStack builds an empty scope stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push opens a new frame. forceUnsafe marks a frame pushed directly inside
// an `#[unsafe]` function or expression; otherwise the frame inherits the
// unsafe context active at the point of the push.
func (s *Stack) Push(opaque, forceUnsafe bool) *Frame {
	f := &Frame{Vars: NewTable(), Opaque: opaque, UnsafeCtx: forceUnsafe || s.UnsafeCtx()}
	s.frames = append(s.frames, f)
	return f
}

// Pop closes the innermost frame.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the innermost frame, or nil if the stack is empty.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// UnsafeCtx reports the effective unsafe context at the top of the stack.
func (s *Stack) UnsafeCtx() bool {
	if top := s.Top(); top != nil {
		return top.UnsafeCtx
	}
	return false
}

// Lookup searches innermost-first, stopping after consulting the first
// opaque frame - it never sees past a function body boundary.
func (s *Stack) Lookup(name string) (value any, found bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if v, ok := f.Vars.Get(name); ok {
			return v, true
		}
		if f.Opaque {
			break
		}
	}
	return nil, false
}

// Declare inserts name into the innermost frame.
func (s *Stack) Declare(name string, value any) {
	s.Top().Vars.Insert(name, value)
}
