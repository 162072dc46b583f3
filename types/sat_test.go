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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/types"
)

func single(name string) ast.Type {
	return ast.NewSingleType(ast.NewItem(ast.Ident{Name: name}), source.Dummy())
}

func TestSatisfiesIdenticalPrimitivesIsYes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, types.Yes, types.Satisfies(single("i32"), single("i32")))
}

func TestSatisfiesDistinctPrimitivesIsCast(t *testing.T) {
	t.Parallel()
	assert.Equal(t, types.Cast, types.Satisfies(single("i32"), single("u8")))
	assert.Equal(t, types.Cast, types.Satisfies(single("f32"), single("f64")))
}

func TestSatisfiesPointerToRawPointerIsYes(t *testing.T) {
	t.Parallel()
	p := ast.NewPointerType(single("i32"), source.Dummy())
	raw := ast.NewRawPointerType(source.Dummy())
	assert.Equal(t, types.Yes, types.Satisfies(p, raw))
}

func TestSatisfiesRawPointerToPointerIsCastUnsafe(t *testing.T) {
	t.Parallel()
	p := ast.NewPointerType(single("i32"), source.Dummy())
	raw := ast.NewRawPointerType(source.Dummy())
	assert.Equal(t, types.CastUnsafe, types.Satisfies(raw, p))
}

func TestSatisfiesUptrPointerInterop(t *testing.T) {
	t.Parallel()
	p := ast.NewPointerType(single("i32"), source.Dummy())
	uptr := single("uptr")
	assert.Equal(t, types.CastUnsafe, types.Satisfies(p, uptr))
	assert.Equal(t, types.CastUnsafe, types.Satisfies(uptr, p))
}

func TestSatisfiesArrayLengthMismatchIsNo(t *testing.T) {
	t.Parallel()
	a := ast.NewArrayType(single("u8"), 4, source.Dummy())
	b := ast.NewArrayType(single("u8"), 8, source.Dummy())
	assert.Equal(t, types.No, types.Satisfies(a, b))
}

func TestSatisfiesArrayToSliceIgnoresLength(t *testing.T) {
	t.Parallel()
	a := ast.NewArrayType(single("u8"), 4, source.Dummy())
	s := ast.NewSliceType(single("u8"), source.Dummy())
	assert.Equal(t, types.Yes, types.Satisfies(a, s))
}

func TestSatisfiesSliceToArrayIsAtMostCastUnsafe(t *testing.T) {
	t.Parallel()
	s := ast.NewSliceType(single("u8"), source.Dummy())
	a := ast.NewArrayType(single("u8"), 4, source.Dummy())
	assert.Equal(t, types.CastUnsafe, types.Satisfies(s, a))
}

func TestSatisfiesSignatureRequiresMatchingUnsafe(t *testing.T) {
	t.Parallel()
	unsafeSig := ast.NewSignatureType(nil, ast.UnitType(source.Dummy()), true, false, source.Dummy())
	safeSig := ast.NewSignatureType(nil, ast.UnitType(source.Dummy()), false, false, source.Dummy())
	assert.Equal(t, types.No, types.Satisfies(safeSig, unsafeSig))
	assert.Equal(t, types.Yes, types.Satisfies(unsafeSig, safeSig))
}

func TestSatisfiesOrErrReportsBothSpans(t *testing.T) {
	t.Parallel()
	err := types.SatisfiesOrErr(single("i32"), single("u8"), types.Yes)
	assert.Error(t, err)
	if spanned, ok := err.(interface{ Spans() []source.Span }); assert.True(t, ok) {
		assert.Len(t, spanned.Spans(), 2)
	}
}

func TestEqualsOrErrAcceptsIdentical(t *testing.T) {
	t.Parallel()
	assert.NoError(t, types.EqualsOrErr(single("bool"), single("bool")))
}
