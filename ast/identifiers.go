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

package ast

import (
	"strings"

	"github.com/justanothercell/lithia/source"
)

// Ident is a single, unqualified name.
type Ident struct {
	Name string
	Span source.Span
}

func (n Ident) NodeSpan() source.Span { return n.Span }

// Item is a non-empty `::`-separated path of Idents, such as `std::io::puts`
// or a bare `puts`.
type Item struct {
	Path []Ident
	Span source.Span
}

func (n Item) NodeSpan() source.Span { return n.Span }

// Single returns true for an unqualified, single-component item.
func (n Item) Single() bool { return len(n.Path) == 1 }

// First returns the item's first path component. Every Item is non-empty by
// construction.
func (n Item) First() Ident { return n.Path[0] }

// Last returns the item's final path component.
func (n Item) Last() Ident { return n.Path[len(n.Path)-1] }

func (n Item) String() string {
	parts := make([]string, len(n.Path))
	for i, id := range n.Path {
		parts[i] = id.Name
	}
	return strings.Join(parts, "::")
}

// NewItem builds an Item from a single Ident.
func NewItem(id Ident) Item {
	return Item{Path: []Ident{id}, Span: id.Span}
}
