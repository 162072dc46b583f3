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

package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/grammar"
	"github.com/justanothercell/lithia/lexer"
	"github.com/justanothercell/lithia/printer"
	"github.com/justanothercell/lithia/source"
)

func parse(t *testing.T, text string) *ast.Module {
	t.Helper()
	src := source.New("test.li", []byte(text))
	tokens, err := lexer.Tokenize(src)
	require.NoError(t, err)
	mod, err := grammar.Build()(tokens, "test")
	require.NoError(t, err)
	return mod
}

func TestFuncRoundTrip(t *testing.T) {
	t.Parallel()
	mod := parse(t, `fn add(a: i32, b: i32) -> i32 { a + b }`)
	out := printer.Func(mod.Functions["add"])
	assert.Equal(t, "fn add(a: i32, b: i32) -> i32 {\n    (a + b)\n}", out)

	reparsed := parse(t, out)
	assert.Equal(t, mod.Functions["add"].Name.Name, reparsed.Functions["add"].Name.Name)
}

func TestExternFuncHasNoBody(t *testing.T) {
	t.Parallel()
	mod := parse(t, `#[extern] #[unsafe] fn puts(s: &u8);`)
	out := printer.Func(mod.Functions["puts"])
	assert.Contains(t, out, "#[extern]")
	assert.Contains(t, out, "#[unsafe]")
	assert.True(t, out[len(out)-1] == ';')
}

func TestConstRoundTrip(t *testing.T) {
	t.Parallel()
	mod := parse(t, `const greeting: &[u8] = &"hi";`)
	out := printer.Const(mod.Constants["greeting"])
	assert.Equal(t, `const greeting: &[u8] = &"hi";`, out)
}

func TestIfExpressionPrinting(t *testing.T) {
	t.Parallel()
	mod := parse(t, `fn choose(c: bool) -> i32 { if c { 1 } else { 2 } }`)
	out := printer.Func(mod.Functions["choose"])
	assert.Contains(t, out, "if c {")
	assert.Contains(t, out, "} else {")
}

func TestEmptyBlockPrintsBraces(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "{}", printer.Block(ast.Block{}))
}
