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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justanothercell/lithia/lexer"
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

func tokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(source.New("test.li", []byte(text)))
	require.NoError(t, err)
	return tokens
}

func TestTokenizeIdentAndKeywordLiterals(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "foo true false _bar9")
	require.Len(t, tokens, 4)
	assert.Equal(t, token.KindIdent, tokens[0].Kind)
	assert.Equal(t, "foo", tokens[0].Ident)
	assert.Equal(t, token.KindBool, tokens[1].Kind)
	assert.True(t, tokens[1].Bool)
	assert.Equal(t, token.KindBool, tokens[2].Kind)
	assert.False(t, tokens[2].Bool)
	assert.Equal(t, token.KindIdent, tokens[3].Kind)
	assert.Equal(t, "_bar9", tokens[3].Ident)
}

func TestTokenizeStringLiteral(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, `"hello world"`)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.KindString, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Str)
}

func TestTokenizeCharLiteral(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, `'x'`)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.KindChar, tokens[0].Kind)
	assert.Equal(t, 'x', tokens[0].Char)
}

func TestTokenizeCharLiteralRejectsMultipleRunes(t *testing.T) {
	t.Parallel()
	_, err := lexer.Tokenize(source.New("test.li", []byte(`'xy'`)))
	assert.Error(t, err)
}

func TestTokenizeUnterminatedStringIsError(t *testing.T) {
	t.Parallel()
	_, err := lexer.Tokenize(source.New("test.li", []byte(`"unterminated`)))
	assert.Error(t, err)
}

func TestTokenizeLineCommentIsSkipped(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "a // comment\nb")
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Ident)
	assert.Equal(t, "b", tokens[1].Ident)
}

func TestTokenizeGluedParticles(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "&&")
	require.Len(t, tokens, 2)
	assert.False(t, tokens[0].Glued)
	assert.True(t, tokens[1].Glued)
}

func TestTokenizeWhitespaceBreaksGluing(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "& &")
	require.Len(t, tokens, 2)
	assert.False(t, tokens[1].Glued)
}

func TestTokenizeSuffixedNumber(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "42u8")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.KindNumber, tokens[0].Kind)
	assert.Equal(t, token.U8, tokens[0].Num.Suffix)
	assert.EqualValues(t, 42, tokens[0].Num.Int)
}

func TestTokenizeFloatLiteral(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "3.5")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Float, tokens[0].Num.Kind)
	assert.InDelta(t, 3.5, tokens[0].Num.Float, 0.0001)
}
