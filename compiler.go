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

// Package lithia ties the front-end packages together: reading source
// files, tokenizing and parsing each one concurrently, and merging the
// per-file module contents into a single ast.Module ready for emit.Env to
// build. Linking across separately-compiled modules is out of scope (see
// spec.md's Non-goals), so unlike the teacher this Compiler never needs a
// Resolver, a symbol table, or incremental invalidation - every file is
// independent until the merge step.
package lithia

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/justanothercell/lithia/ast"
	"github.com/justanothercell/lithia/grammar"
	"github.com/justanothercell/lithia/lexer"
	"github.com/justanothercell/lithia/reporter"
	"github.com/justanothercell/lithia/source"
)

// Compiler tokenizes, parses, and merges a set of source files into one
// ast.Module. The zero value is ready to use.
type Compiler struct {
	// MaxParallelism caps how many files are tokenized/parsed concurrently.
	// If zero or negative, min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is
	// used, matching the teacher's default.
	MaxParallelism int
}

// parsedFile is one source file's result, kept alongside its path so
// CompileFiles can report errors and merge deterministically.
type parsedFile struct {
	path   string
	module *ast.Module
}

// CompileFiles reads, tokenizes, and parses every named file concurrently,
// then merges their top-level declarations into a single ast.Module named
// moduleName. The first error encountered (by path, not completion order)
// is returned; ctx cancellation stops outstanding work early.
func (c *Compiler) CompileFiles(ctx context.Context, moduleName string, paths ...string) (*ast.Module, error) {
	if len(paths) == 0 {
		return ast.NewModule(moduleName, source.Dummy()), nil
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)

	results := make([]parsedFile, len(paths))
	errs := make([]error, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mod, err := c.compileFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = parsedFile{path: path, module: mod}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := ast.NewModule(moduleName, source.Dummy())
	for _, r := range results {
		if err := mergeModule(merged, r.module); err != nil {
			return nil, reporter.When(err, "merging "+r.path)
		}
	}
	return merged, nil
}

// compileFile tokenizes and parses a single file. Each file becomes its own
// anonymous top-level ast.Module (named after its path) before being merged
// by the caller - the grammar itself has no notion of a file spanning
// multiple compilation units.
func (c *Compiler) compileFile(path string) (*ast.Module, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src := source.New(path, text)

	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, reporter.When(err, "tokenizing "+path)
	}

	parse := grammar.Build()
	mod, err := parse(tokens, path)
	if err != nil {
		return nil, reporter.When(err, "parsing "+path)
	}
	return mod, nil
}

// mergeModule copies src's functions, constants, and submodules into dst,
// reporting a reporter.AlreadyDefinedError on any name collision - names
// must be unique across every compiled file, the same rule ast.Module
// documents for a single file.
func mergeModule(dst, src *ast.Module) error {
	for name, fn := range src.Functions {
		if existing, ok := dst.Functions[name]; ok {
			return reporter.New(reporter.AlreadyDefinedError, "function %q already defined", name).Ats(existing.Span, fn.Span)
		}
		if existing, ok := dst.Constants[name]; ok {
			return reporter.New(reporter.AlreadyDefinedError, "%q already defined as a constant", name).Ats(existing.Span, fn.Span)
		}
		dst.Functions[name] = fn
	}
	for name, c := range src.Constants {
		if existing, ok := dst.Constants[name]; ok {
			return reporter.New(reporter.AlreadyDefinedError, "constant %q already defined", name).Ats(existing.Span, c.Span)
		}
		if existing, ok := dst.Functions[name]; ok {
			return reporter.New(reporter.AlreadyDefinedError, "%q already defined as a function", name).Ats(existing.Span, c.Span)
		}
		dst.Constants[name] = c
	}
	for name, sub := range src.Modules {
		existing, ok := dst.Modules[name]
		if !ok {
			dst.Modules[name] = sub
			continue
		}
		if err := mergeModule(existing, sub); err != nil {
			return err
		}
	}
	return nil
}
