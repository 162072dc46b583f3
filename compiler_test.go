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

package lithia

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCompileFilesSingle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.li", `
const greeting: &[u8] = &"hi";
fn add(a: i32, b: i32) -> i32 {
	a + b
}
`)

	c := &Compiler{}
	mod, err := c.CompileFiles(context.Background(), "test", path)
	require.NoError(t, err)
	assert.Contains(t, mod.Functions, "add")
	assert.Contains(t, mod.Constants, "greeting")
}

func TestCompileFilesMergesAcrossFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.li", `fn one() -> i32 { 1 }`)
	b := writeTemp(t, dir, "b.li", `fn two() -> i32 { 2 }`)

	c := &Compiler{}
	mod, err := c.CompileFiles(context.Background(), "test", a, b)
	require.NoError(t, err)
	assert.Contains(t, mod.Functions, "one")
	assert.Contains(t, mod.Functions, "two")
}

func TestCompileFilesDuplicateFunctionIsAnError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.li", `fn dup() -> i32 { 1 }`)
	b := writeTemp(t, dir, "b.li", `fn dup() -> i32 { 2 }`)

	c := &Compiler{}
	_, err := c.CompileFiles(context.Background(), "test", a, b)
	require.Error(t, err)
}

func TestCompileFilesNoPaths(t *testing.T) {
	t.Parallel()
	c := &Compiler{}
	mod, err := c.CompileFiles(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, mod.Functions)
}

func TestCompileFilesParseError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeTemp(t, dir, "bad.li", `fn broken( {`)

	c := &Compiler{}
	_, err := c.CompileFiles(context.Background(), "test", path)
	require.Error(t, err)
}
