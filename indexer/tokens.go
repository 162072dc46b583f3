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

package indexer

import (
	"github.com/justanothercell/lithia/source"
	"github.com/justanothercell/lithia/token"
)

// Tokens is the Indexable backing a token Indexer: the flat token sequence
// produced once by the tokenizer and consumed once by the parser.
type Tokens struct {
	items []token.Token
}

// NewTokens wraps a token slice for indexing.
func NewTokens(items []token.Token) Tokens { return Tokens{items: items} }

func (t Tokens) Get(i int) token.Token     { return t.items[i] }
func (t Tokens) LocAt(i int) source.Span   { return t.items[i].Span }
func (t Tokens) Len() int                  { return len(t.items) }

// TokenIndexer is the cursor type the parser combinators operate over.
type TokenIndexer = Indexer[token.Token]

// NewTokenIndexer builds a TokenIndexer over a flat token slice.
func NewTokenIndexer(items []token.Token) *TokenIndexer {
	return New[token.Token](NewTokens(items))
}
