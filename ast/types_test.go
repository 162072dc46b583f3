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

package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/source"
)

// ignoreSpans drops the Span field of every ast.Type before comparison: two
// independently constructed types can carry different spans, so only the Ty
// shape itself should participate in equality. Spans on Ident and Item are
// still compared; the helpers here leave them zero.
var ignoreSpans = cmpopts.IgnoreFields(ast.Type{}, "Span")

func single(name string) ast.Type {
	return ast.NewSingleType(ast.NewItem(ast.Ident{Name: name}), source.Dummy())
}

func TestTypeEqualityIgnoresSpan(t *testing.T) {
	t.Parallel()
	a := ast.NewPointerType(single("i32"), source.Dummy())
	b := ast.NewPointerType(single("i32"), source.NewSpan(source.New("other.li", []byte("x")), 0, 1))

	if diff := cmp.Diff(a, b, ignoreSpans); diff != "" {
		t.Fatalf("types differ (-want +got):\n%s", diff)
	}
}

func TestTypeEqualityDetectsLengthMismatch(t *testing.T) {
	t.Parallel()
	a := ast.NewArrayType(single("u8"), 4, source.Dummy())
	b := ast.NewArrayType(single("u8"), 8, source.Dummy())

	assert.NotEmpty(t, cmp.Diff(a, b, ignoreSpans))
}

func TestSignatureTypeEquality(t *testing.T) {
	t.Parallel()
	ret := ast.UnitType(source.Dummy())
	a := ast.NewSignatureType([]ast.Type{single("i32"), single("i32")}, ret, true, false, source.Dummy())
	b := ast.NewSignatureType([]ast.Type{single("i32"), single("i32")}, ret, true, false, source.Dummy())

	if diff := cmp.Diff(a, b, ignoreSpans); diff != "" {
		t.Fatalf("signatures differ (-want +got):\n%s", diff)
	}
}

func TestUnitTypeIsUnit(t *testing.T) {
	t.Parallel()
	assert.True(t, ast.UnitType(source.Dummy()).IsUnit())
	assert.False(t, single("i32").IsUnit())
}

func TestTypeStringRendering(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		ty   ast.Type
		want string
	}{
		{"single", single("i32"), "i32"},
		{"pointer", ast.NewPointerType(single("u8"), source.Dummy()), "&u8"},
		{"array", ast.NewArrayType(single("u8"), 4, source.Dummy()), "[u8; 4]"},
		{"slice", ast.NewSliceType(single("u8"), source.Dummy()), "[u8]"},
		{"unit", ast.UnitType(source.Dummy()), "()"},
		{
			"signature",
			ast.NewSignatureType([]ast.Type{single("i32")}, single("bool"), false, true, source.Dummy()),
			"fn(i32, ...) -> bool",
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, c.want, c.ty.String())
		})
	}
}
