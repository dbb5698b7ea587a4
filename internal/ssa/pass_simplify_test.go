/*
 * Copyright 2024 Lumen Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ssa

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func applyPreopt(t *testing.T, fn *Func) {
	t.Helper()
	Preopt{}.Apply(fn)
	fn.Verify()
}

func defOf(fn *Func, v Value) *Instr {
	return fn.DefinitionOf(fn.ResolveAlias(v))
}

func TestSimplify_ConstOperandFolds(t *testing.T) {
	b := CreateBuilder("folds")
	bb := b.Block(I64)
	x := bb.Params[0]
	c2 := b.Iconst(I64, 2)
	add := b.Binary(OpIadd, x, c2)
	com := b.Binary(OpIadd, c2, x)
	sub := b.Binary(OpIsub, x, c2)
	rsb := b.Binary(OpIsub, c2, x)
	and := b.Binary(OpBand, x, c2)
	shl := b.Binary(OpIshl, x, c2)
	cmp0 := b.Icmp(IntLt, x, c2)
	flag := b.Bint(I64, cmp0)
	b.Return(add, com, sub, rsb, and, shl, flag)

	fn := b.Func()
	applyPreopt(t, fn)

	p := defOf(fn, add)
	require.Equal(t, OpIaddImm, p.Op)
	require.Equal(t, x, p.V)
	require.Equal(t, int64(2), p.Imm)

	p = defOf(fn, com)
	require.Equal(t, OpIaddImm, p.Op)
	require.Equal(t, x, p.V)
	require.Equal(t, int64(2), p.Imm)

	p = defOf(fn, sub)
	require.Equal(t, OpIaddImm, p.Op)
	require.Equal(t, int64(-2), p.Imm)

	p = defOf(fn, rsb)
	require.Equal(t, OpIrsubImm, p.Op)
	require.Equal(t, x, p.V)
	require.Equal(t, int64(2), p.Imm)

	require.Equal(t, OpBandImm, defOf(fn, and).Op)
	require.Equal(t, OpIshlImm, defOf(fn, shl).Op)

	p = defOf(fn, cmp0)
	require.Equal(t, OpIcmpImm, p.Op)
	require.Equal(t, IntLt, p.Cc)
	require.Equal(t, int64(2), p.Imm)

	/* a second sweep must find nothing left to do */
	before := fn.String()
	applyPreopt(t, fn)
	require.Empty(t, cmp.Diff(before, fn.String()))
}

func TestSimplify_FoldsPreserveSemantics(t *testing.T) {
	build := func() *Func {
		b := CreateBuilder("folds_sem")
		bb := b.Block(I64)
		x := bb.Params[0]
		c := b.Iconst(I64, 1000)
		add := b.Binary(OpIadd, x, c)
		sub := b.Binary(OpIsub, c, add)
		xor := b.Binary(OpBxor, sub, c)
		b.Return(xor)
		return b.Func()
	}
	checkEquivalence(t, build, [][]uint64{
		{0}, {1}, {1000}, {^uint64(0)}, {uint64(1) << 63},
	})
}

func TestSimplify_IaddImmCancellation(t *testing.T) {
	b := CreateBuilder("cancel")
	bb := b.Block(I64)
	x := bb.Params[0]
	t1 := b.BinaryImm(OpIaddImm, x, 42)
	t2 := b.BinaryImm(OpIaddImm, t1, -42)
	b.Return(t2)

	fn := b.Func()
	applyPreopt(t, fn)

	/* the pair cancels to the original operand, the second instruction is
	 * neutralized and the return reads through the forwarding */
	require.Equal(t, x, fn.ResolveAlias(t2))
	require.Equal(t, []Value{x}, fn.Entry().Term().Vs)

	nops := 0
	for p := fn.Entry().First(); p != nil; p = p.Next() {
		if p.Op == OpNop {
			nops++
		}
	}
	require.Equal(t, 1, nops)
}

func TestSimplify_CancellationAfterFold(t *testing.T) {
	b := CreateBuilder("cancel_folded")
	bb := b.Block(I64)
	x := bb.Params[0]
	t1 := b.BinaryImm(OpIaddImm, x, 7)
	c := b.Iconst(I64, -7)
	t2 := b.Binary(OpIadd, t1, c)
	b.Return(t2)

	fn := b.Func()
	applyPreopt(t, fn)
	require.Equal(t, x, fn.ResolveAlias(t2))
}

func TestSimplify_NoCancellationWhenShared(t *testing.T) {
	b := CreateBuilder("cancel_shared")
	bb := b.Block(I64)
	x := bb.Params[0]
	t1 := b.BinaryImm(OpIaddImm, x, 42)
	t2 := b.BinaryImm(OpIaddImm, t1, -42)
	b.Return(t1, t2)

	fn := b.Func()
	applyPreopt(t, fn)

	/* the intermediate is returned as well, the pair must stay */
	require.Equal(t, t2, fn.ResolveAlias(t2))
	require.Equal(t, OpIaddImm, defOf(fn, t2).Op)
}

func TestSimplify_NoCancellationOnMinImm(t *testing.T) {
	for _, tc := range []struct {
		name string
		ty   Type
		imm  int64
	}{
		{"i8", I8, math.MinInt8},
		{"i32", I32, math.MinInt32},
		{"i64", I64, math.MinInt64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := CreateBuilder("cancel_min_" + tc.name)
			bb := b.Block(tc.ty)
			x := bb.Params[0]
			t1 := b.BinaryImm(OpIaddImm, x, tc.imm)
			t2 := b.BinaryImm(OpIaddImm, t1, tc.imm)
			b.Return(t2)

			fn := b.Func()
			applyPreopt(t, fn)

			/* the most negative immediate is its own negation, the guard
			 * must keep the pair */
			require.Equal(t, t2, fn.ResolveAlias(t2))
			require.Equal(t, OpIaddImm, defOf(fn, t2).Op)
		})
	}
}

func TestSimplify_DivisionByZeroKept(t *testing.T) {
	b := CreateBuilder("div_zero")
	bb := b.Block(I64)
	x := bb.Params[0]
	z := b.Iconst(I64, 0)
	q := b.Binary(OpUdiv, x, z)
	b.Return(q)

	fn := b.Func()
	applyPreopt(t, fn)

	/* the fold to the immediate form happens, the expansion then leaves
	 * the instruction alone so it still traps at run time */
	p := defOf(fn, q)
	require.Equal(t, OpUdivImm, p.Op)
	require.Equal(t, int64(0), p.Imm)
}
