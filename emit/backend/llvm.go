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

// Package backend binds emit.Builder to tinygo.org/x/go-llvm, the only
// concrete IR library in the corpus. Every method here does nothing but
// type-assert the opaque emit.Module/Type/Value/Block/BuilderHandle handles
// back to their real llvm.* type and forward the call - no source-language
// knowledge lives here, matching the emitter's own narrow-interface
// boundary (emit/builder.go).
package backend

import (
	"fmt"
	"os"

	"github.com/justanothercell/lithia/emit"
	"tinygo.org/x/go-llvm"
)

// LLVM implements emit.Builder against a single llvm.Context, matching the
// one-context-per-compilation-unit convention go-llvm's docs recommend.
type LLVM struct {
	ctx llvm.Context
}

// New creates a backend with a fresh LLVM context.
func New() *LLVM {
	return &LLVM{ctx: llvm.NewContext()}
}

// Dispose releases the underlying LLVM context.
func (l *LLVM) Dispose() {
	l.ctx.Dispose()
}

func mod(m emit.Module) llvm.Module         { return m.(llvm.Module) }
func ty(t emit.Type) llvm.Type              { return t.(llvm.Type) }
func val(v emit.Value) llvm.Value           { return v.(llvm.Value) }
func blk(b emit.Block) llvm.BasicBlock      { return b.(llvm.BasicBlock) }
func bld(b emit.BuilderHandle) llvm.Builder { return b.(llvm.Builder) }

func (l *LLVM) CreateModule(name string) emit.Module {
	return l.ctx.ModuleCreateWithName(name)
}

func (l *LLVM) IntType(bits int) emit.Type        { return l.ctx.IntType(bits) }
func (l *LLVM) FloatType() emit.Type              { return l.ctx.FloatType() }
func (l *LLVM) DoubleType() emit.Type             { return l.ctx.DoubleType() }
func (l *LLVM) VoidType() emit.Type               { return l.ctx.VoidType() }
func (l *LLVM) PointerType(elem emit.Type) emit.Type {
	return llvm.PointerType(ty(elem), 0)
}
func (l *LLVM) ArrayType(elem emit.Type, length uint64) emit.Type {
	return llvm.ArrayType(ty(elem), int(length))
}
func (l *LLVM) FunctionType(ret emit.Type, params []emit.Type, vararg bool) emit.Type {
	ps := make([]llvm.Type, len(params))
	for i, p := range params {
		ps[i] = ty(p)
	}
	return llvm.FunctionType(ty(ret), ps, vararg)
}

func (l *LLVM) AddFunction(m emit.Module, name string, fnType emit.Type) emit.Value {
	return llvm.AddFunction(mod(m), name, ty(fnType))
}
func (l *LLVM) AddGlobal(m emit.Module, name string, t emit.Type) emit.Value {
	return llvm.AddGlobal(mod(m), ty(t), name)
}
func (l *LLVM) SetInitializer(global, init emit.Value) {
	val(global).SetInitializer(val(init))
}
func (l *LLVM) Param(fn emit.Value, i int) emit.Value {
	return val(fn).Param(i)
}

func (l *LLVM) AppendBasicBlock(fn emit.Value, name string) emit.Block {
	return llvm.AddBasicBlock(val(fn), name)
}
func (l *LLVM) InsertBlock(b emit.BuilderHandle) emit.Block {
	return bld(b).GetInsertBlock()
}

func (l *LLVM) CreateBuilder() emit.BuilderHandle {
	return l.ctx.NewBuilder()
}
func (l *LLVM) PositionAtEnd(b emit.BuilderHandle, block emit.Block) {
	bld(b).SetInsertPointAtEnd(blk(block))
}
func (l *LLVM) DisposeBuilder(b emit.BuilderHandle) {
	bld(b).Dispose()
}

func (l *LLVM) BuildAlloca(b emit.BuilderHandle, t emit.Type, name string) emit.Value {
	return bld(b).CreateAlloca(ty(t), name)
}
func (l *LLVM) BuildLoad(b emit.BuilderHandle, t emit.Type, ptr emit.Value, name string) emit.Value {
	return bld(b).CreateLoad(ty(t), val(ptr), name)
}
func (l *LLVM) BuildStore(b emit.BuilderHandle, v, ptr emit.Value) {
	bld(b).CreateStore(val(v), val(ptr))
}
func (l *LLVM) BuildBr(b emit.BuilderHandle, dest emit.Block) {
	bld(b).CreateBr(blk(dest))
}
func (l *LLVM) BuildCondBr(b emit.BuilderHandle, cond emit.Value, then_, else_ emit.Block) {
	bld(b).CreateCondBr(val(cond), blk(then_), blk(else_))
}
func (l *LLVM) BuildRetVoid(b emit.BuilderHandle) {
	bld(b).CreateRetVoid()
}
func (l *LLVM) BuildRet(b emit.BuilderHandle, v emit.Value) {
	bld(b).CreateRet(val(v))
}
func (l *LLVM) BuildUnreachable(b emit.BuilderHandle) {
	bld(b).CreateUnreachable()
}
func (l *LLVM) BuildCall(b emit.BuilderHandle, fnType emit.Type, fn emit.Value, args []emit.Value, name string) emit.Value {
	as := make([]llvm.Value, len(args))
	for i, a := range args {
		as[i] = val(a)
	}
	return bld(b).CreateCall(ty(fnType), val(fn), as, name)
}

var opcodeBuilders = map[emit.Opcode]func(llvm.Builder, llvm.Value, llvm.Value, string) llvm.Value{
	emit.OpAdd:  llvm.Builder.CreateAdd,
	emit.OpSub:  llvm.Builder.CreateSub,
	emit.OpMul:  llvm.Builder.CreateMul,
	emit.OpUDiv: llvm.Builder.CreateUDiv,
	emit.OpAnd:  llvm.Builder.CreateAnd,
	emit.OpOr:   llvm.Builder.CreateOr,
	emit.OpShl:  llvm.Builder.CreateShl,
	emit.OpAShr: llvm.Builder.CreateAShr,
	emit.OpXor:  llvm.Builder.CreateXor,
}

func (l *LLVM) BuildBinOp(b emit.BuilderHandle, op emit.Opcode, lhs, rhs emit.Value, name string) emit.Value {
	f, ok := opcodeBuilders[op]
	if !ok {
		panic(fmt.Sprintf("backend: unknown opcode %v", op))
	}
	return f(bld(b), val(lhs), val(rhs), name)
}

var predicates = map[emit.Predicate]llvm.IntPredicate{
	emit.PredSLT: llvm.IntSLT,
	emit.PredSLE: llvm.IntSLE,
	emit.PredSGT: llvm.IntSGT,
	emit.PredSGE: llvm.IntSGE,
	emit.PredEQ:  llvm.IntEQ,
	emit.PredNE:  llvm.IntNE,
}

func (l *LLVM) BuildICmp(b emit.BuilderHandle, pred emit.Predicate, lhs, rhs emit.Value, name string) emit.Value {
	p, ok := predicates[pred]
	if !ok {
		panic(fmt.Sprintf("backend: unknown predicate %v", pred))
	}
	return bld(b).CreateICmp(p, val(lhs), val(rhs), name)
}

var castOps = map[emit.CastOp]llvm.Opcode{
	emit.CastTrunc:    llvm.Trunc,
	emit.CastZExt:     llvm.ZExt,
	emit.CastSExt:     llvm.SExt,
	emit.CastFPTrunc:  llvm.FPTrunc,
	emit.CastFPExt:    llvm.FPExt,
	emit.CastPtrToInt: llvm.PtrToInt,
	emit.CastIntToPtr: llvm.IntToPtr,
	emit.CastBitCast:  llvm.BitCast,
}

func (l *LLVM) BuildCast(b emit.BuilderHandle, op emit.CastOp, v emit.Value, destTy emit.Type, name string) emit.Value {
	o, ok := castOps[op]
	if !ok {
		panic(fmt.Sprintf("backend: unknown cast op %v", op))
	}
	return bld(b).CreateCast(o, val(v), ty(destTy), name)
}

func (l *LLVM) ConstInt(t emit.Type, v uint64, signExtend bool) emit.Value {
	return llvm.ConstInt(ty(t), v, signExtend)
}
func (l *LLVM) ConstFloat(t emit.Type, v float64) emit.Value {
	return llvm.ConstFloat(ty(t), v)
}
func (l *LLVM) ConstArray(elemTy emit.Type, elems []emit.Value) emit.Value {
	vs := make([]llvm.Value, len(elems))
	for i, e := range elems {
		vs[i] = val(e)
	}
	return llvm.ConstArray(ty(elemTy), vs)
}

func (l *LLVM) WriteBitcodeToFile(m emit.Module, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return llvm.WriteBitcodeToFile(mod(m), f)
}
func (l *LLVM) DumpModule(m emit.Module) string {
	return mod(m).String()
}
func (l *LLVM) DisposeModule(m emit.Module) {
	mod(m).Dispose()
}
