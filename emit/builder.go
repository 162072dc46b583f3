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

// Package emit performs semantic analysis and LLVM IR emission in a single
// AST traversal, per spec §4.6-§4.10: environment model, expression and
// constant emission, the if/else join-block protocol, and function/module
// build. It depends only on the narrow Builder interface below - never on
// a concrete IR library - so the emitter is testable against a fake and
// swappable onto any backend; see emit/backend for the real binding.
package emit

// Module, Type, Value and Block are opaque handles owned by the concrete
// Builder implementation. The emitter never inspects them; it only ever
// passes handles it was handed back to the same Builder.
type Module any
type Type any
type Value any
type Block any
type BuilderHandle any

// Opcode selects an integer binary instruction.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpUDiv
	OpAnd
	OpOr
	OpShl
	OpAShr
	OpXor
)

// Predicate selects an integer comparison instruction.
type Predicate int

const (
	PredSLT Predicate = iota
	PredSLE
	PredSGT
	PredSGE
	PredEQ
	PredNE
)

// CastOp selects a cast instruction.
type CastOp int

const (
	CastTrunc CastOp = iota
	CastZExt
	CastSExt
	CastFPTrunc
	CastFPExt
	CastPtrToInt
	CastIntToPtr
	CastBitCast
)

// Builder is the narrow, language-neutral LLVM interface the emitter
// drives, per spec §6: module creation, type construction, function/global
// registration, block-structured instruction emission, and module
// finalization. No method here knows anything about the source language -
// every caller supplies fully-resolved Types and Values.
type Builder interface {
	CreateModule(name string) Module

	IntType(bits int) Type
	FloatType() Type
	DoubleType() Type
	VoidType() Type
	PointerType(elem Type) Type
	ArrayType(elem Type, length uint64) Type
	FunctionType(ret Type, params []Type, vararg bool) Type

	AddFunction(mod Module, name string, fnType Type) Value
	AddGlobal(mod Module, name string, ty Type) Value
	SetInitializer(global, init Value)
	Param(fn Value, i int) Value

	AppendBasicBlock(fn Value, name string) Block
	// InsertBlock returns the block the builder is currently positioned at
	// - the "previous-block retrieval" of spec §6, used by the if/else
	// join protocol (§4.9) to remember a block to return to later.
	InsertBlock(b BuilderHandle) Block

	CreateBuilder() BuilderHandle
	PositionAtEnd(b BuilderHandle, block Block)
	DisposeBuilder(b BuilderHandle)

	BuildAlloca(b BuilderHandle, ty Type, name string) Value
	BuildLoad(b BuilderHandle, ty Type, ptr Value, name string) Value
	BuildStore(b BuilderHandle, val, ptr Value)
	BuildBr(b BuilderHandle, dest Block)
	BuildCondBr(b BuilderHandle, cond Value, then_, else_ Block)
	BuildRetVoid(b BuilderHandle)
	BuildRet(b BuilderHandle, val Value)
	BuildUnreachable(b BuilderHandle)
	BuildCall(b BuilderHandle, fnType Type, fn Value, args []Value, name string) Value
	BuildBinOp(b BuilderHandle, op Opcode, lhs, rhs Value, name string) Value
	BuildICmp(b BuilderHandle, pred Predicate, lhs, rhs Value, name string) Value
	BuildCast(b BuilderHandle, op CastOp, val Value, destTy Type, name string) Value

	ConstInt(ty Type, val uint64, signExtend bool) Value
	ConstFloat(ty Type, val float64) Value
	ConstArray(elemTy Type, elems []Value) Value

	WriteBitcodeToFile(mod Module, path string) error
	DumpModule(mod Module) string
	DisposeModule(mod Module)
}
