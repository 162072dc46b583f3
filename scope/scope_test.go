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

package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justanothercell/lithia/scope"
)

func TestLookupFindsInnermostFirst(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, false)
	s.Declare("x", 1)
	s.Push(false, false)
	s.Declare("x", 2)

	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLookupFallsThroughTransparentFrame(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, false)
	s.Declare("x", 1)
	s.Push(false, false) // transparent block frame

	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLookupHaltsAtOpaqueFrame(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, false)
	s.Declare("outer", 1)
	s.Push(true, false) // function body boundary

	_, ok := s.Lookup("outer")
	assert.False(t, ok)
}

func TestUnsafeCtxPropagatesAcrossTransparentFrames(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, true) // #[unsafe] fn
	assert.True(t, s.UnsafeCtx())
	s.Push(false, false) // nested block, no forceUnsafe
	assert.True(t, s.UnsafeCtx())
}

func TestUnsafeCtxDoesNotLeakOutward(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, false)
	assert.False(t, s.UnsafeCtx())
	s.Push(false, true) // an `#[unsafe] { ... }` block
	assert.True(t, s.UnsafeCtx())
	s.Pop()
	assert.False(t, s.UnsafeCtx())
}

func TestPopRestoresPreviousFrame(t *testing.T) {
	t.Parallel()
	s := scope.NewStack()
	s.Push(false, false)
	s.Declare("x", 1)
	s.Push(true, false)
	s.Declare("y", 2)
	s.Pop()

	_, ok := s.Lookup("y")
	assert.False(t, ok)
	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
