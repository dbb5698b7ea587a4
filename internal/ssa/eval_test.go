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
	"math/bits"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

// A reference interpreter for the IR, used to check that rewrites preserve
// the observable behavior of a function. Values are stored masked to their
// width, signed operations reinterpret via sign extension.

const _MaxEvalSteps = 1 << 16

type evalState struct {
	t   *testing.T
	fn  *Func
	env map[Value]uint64
}

func newEvalState(t *testing.T, fn *Func) *evalState {
	return &evalState{t: t, fn: fn, env: make(map[Value]uint64)}
}

func maskOf(ty Type) uint64 {
	return ^uint64(0) >> (64 - ty.Bits())
}

func sext(x uint64, w int) int64 {
	return int64(x<<(64-w)) >> (64 - w)
}

func (self *evalState) get(v Value) uint64 {
	v = self.fn.ResolveAlias(v)
	x, ok := self.env[v]
	require.True(self.t, ok, "read of undefined value %s", v)
	return x
}

func (self *evalState) set(v Value, x uint64) {
	self.env[v] = x & maskOf(v.Type())
}

func evalCond(cc IntCC, x uint64, y uint64, w int) bool {
	sx, sy := sext(x, w), sext(y, w)
	switch cc {
	case IntEq:
		return x == y
	case IntNe:
		return x != y
	case IntLt:
		return sx < sy
	case IntGe:
		return sx >= sy
	case IntLe:
		return sx <= sy
	case IntGt:
		return sx > sy
	case IntUlt:
		return x < y
	case IntUge:
		return x >= y
	case IntUle:
		return x <= y
	case IntUgt:
		return x > y
	default:
		panic("ssa: invalid condition code")
	}
}

func (self *evalState) binop(op Opcode, x uint64, y uint64, w int) uint64 {
	switch op {
	case OpIadd, OpIaddImm:
		return x + y
	case OpIsub:
		return x - y
	case OpIrsubImm:
		return y - x
	case OpImul, OpImulImm:
		return x * y
	case OpUdiv, OpUdivImm:
		require.NotZero(self.t, y, "unsigned division by zero")
		return x / y
	case OpSdiv, OpSdivImm:
		require.NotZero(self.t, sext(y, w), "signed division by zero")
		require.False(self.t, sext(x, w) == minInt(typeBits(int64(w))) && sext(y, w) == -1, "signed division overflow")
		return uint64(sext(x, w) / sext(y, w))
	case OpUrem, OpUremImm:
		require.NotZero(self.t, y, "unsigned division by zero")
		return x % y
	case OpSrem, OpSremImm:
		require.NotZero(self.t, sext(y, w), "signed division by zero")
		require.False(self.t, sext(x, w) == minInt(typeBits(int64(w))) && sext(y, w) == -1, "signed division overflow")
		return uint64(sext(x, w) % sext(y, w))
	case OpBand, OpBandImm:
		return x & y
	case OpBor, OpBorImm:
		return x | y
	case OpBxor, OpBxorImm:
		return x ^ y
	case OpIshl, OpIshlImm:
		return x << (y & uint64(w-1))
	case OpUshr, OpUshrImm:
		return x >> (y & uint64(w-1))
	case OpSshr, OpSshrImm:
		return uint64(sext(x, w) >> (y & uint64(w-1)))
	case OpRotl, OpRotlImm:
		k := y % uint64(w)
		return x<<k | x>>(uint64(w)-k)
	case OpRotr, OpRotrImm:
		k := y % uint64(w)
		return x>>k | x<<(uint64(w)-k)
	case OpUmulhi:
		if w == 64 {
			hi, _ := bits.Mul64(x, y)
			return hi
		}
		return (x * y) >> w
	case OpSmulhi:
		if w == 64 {
			hi, _ := bits.Mul64(x, y)
			if int64(x) < 0 {
				hi -= y
			}
			if int64(y) < 0 {
				hi -= x
			}
			return hi
		}
		return uint64((sext(x, w) * sext(y, w)) >> w)
	default:
		self.t.Fatalf("not a binary opcode: %s", op)
		return 0
	}
}

func (self *evalState) run(args []uint64) []uint64 {
	bb := self.fn.Entry()
	require.Equal(self.t, len(bb.Params), len(args), "entry argument count")
	for i, v := range bb.Params {
		self.set(v, args[i])
	}
	steps := 0
	for {
		var next *Edge
		for p := bb.head; p != nil; p = p.next {
			if steps++; steps > _MaxEvalSteps {
				self.t.Fatalf("evaluation of %s did not terminate", self.fn.Name)
			}
			switch p.Op {
			case OpNop:
				// skip
			case OpIconst:
				self.set(p.Ret, uint64(p.Imm))
			case OpIadd, OpIsub, OpImul, OpUdiv, OpSdiv, OpUrem, OpSrem,
				OpBand, OpBor, OpBxor, OpIshl, OpUshr, OpSshr, OpRotl, OpRotr,
				OpUmulhi, OpSmulhi:
				self.set(p.Ret, self.binop(p.Op, self.get(p.V), self.get(p.V2), p.Ty.Bits()))
			case OpIaddImm, OpIrsubImm, OpImulImm, OpUdivImm, OpSdivImm, OpUremImm, OpSremImm,
				OpBandImm, OpBorImm, OpBxorImm, OpIshlImm, OpUshrImm, OpSshrImm, OpRotlImm, OpRotrImm:
				self.set(p.Ret, self.binop(p.Op, self.get(p.V), uint64(p.Imm)&maskOf(p.Ty), p.Ty.Bits()))
			case OpIcmp:
				w := p.V.Type().Bits()
				if evalCond(p.Cc, self.get(p.V), self.get(p.V2), w) {
					self.set(p.Ret, 1)
				} else {
					self.set(p.Ret, 0)
				}
			case OpIcmpImm:
				w := p.V.Type().Bits()
				if evalCond(p.Cc, self.get(p.V), uint64(p.Imm)&maskOf(p.V.Type()), w) {
					self.set(p.Ret, 1)
				} else {
					self.set(p.Ret, 0)
				}
			case OpBint:
				self.set(p.Ret, self.get(p.V))
			case OpSelect:
				if self.get(p.V) != 0 {
					self.set(p.Ret, self.get(p.V2))
				} else {
					self.set(p.Ret, self.get(p.V3))
				}
			case OpIreduce:
				self.set(p.Ret, self.get(p.V))
			case OpUextend:
				self.set(p.Ret, self.get(p.V))
			case OpSextend:
				self.set(p.Ret, uint64(sext(self.get(p.V), p.V.Type().Bits())))
			case OpTrapz:
				require.NotZero(self.t, self.get(p.V), "trap %d raised", p.Imm)
			case OpJump:
				next = &p.To[0]
			case OpBrz:
				if self.get(p.V) == 0 {
					next = &p.To[0]
				} else {
					next = &p.To[1]
				}
			case OpBrnz:
				if self.get(p.V) != 0 {
					next = &p.To[0]
				} else {
					next = &p.To[1]
				}
			case OpReturn:
				ret := make([]uint64, len(p.Vs))
				for i, v := range p.Vs {
					ret[i] = self.get(v)
				}
				return ret
			default:
				self.t.Fatalf("cannot evaluate opcode: %s", p.Op)
			}
		}
		require.NotNil(self.t, next, "block %s fell off the end", bb)
		vals := make([]uint64, len(next.Args))
		for i, v := range next.Args {
			vals[i] = self.get(v)
		}
		bb = next.To
		require.Equal(self.t, len(bb.Params), len(vals), "edge argument count")
		for i, v := range bb.Params {
			self.set(v, vals[i])
		}
	}
}

func evalFunc(t *testing.T, fn *Func, args ...uint64) []uint64 {
	return newEvalState(t, fn).run(args)
}

// checkEquivalence builds the function twice with the same builder
// program, optimizes one copy, and checks both agree on every input.
func checkEquivalence(t *testing.T, build func() *Func, inputs [][]uint64) {
	ref := build()
	opt := build()
	Preopt{}.Apply(opt)
	opt.Verify()
	for _, in := range inputs {
		require.Equal(t, evalFunc(t, ref, in...), evalFunc(t, opt, in...), "input %v", in)
	}
}

func TestEval_Basics(t *testing.T) {
	b := CreateBuilder("basics")
	bb := b.Block(I64, I64)
	x, y := bb.Params[0], bb.Params[1]
	s := b.Binary(OpIadd, x, y)
	d := b.Binary(OpIsub, s, x)
	q := b.BinaryImm(OpSshrImm, d, 1)
	b.Return(q)

	fn := b.Func()
	require.Equal(t, []uint64{3}, evalFunc(t, fn, 10, 7))
	require.Equal(t, []uint64{^uint64(3)}, evalFunc(t, fn, 1, ^uint64(7)))
}

func TestEval_ControlFlow(t *testing.T) {
	b := CreateBuilder("abs")
	entry := b.Block(I64)
	x := entry.Params[0]
	negb := b.Func().NewBlock(I64)
	done := b.Func().NewBlock(I64)
	c := b.IcmpImm(IntLt, x, 0)
	b.Brnz(c, negb, []Value{x}, done, []Value{x})
	b.SetBlock(negb)
	n := b.BinaryImm(OpIrsubImm, negb.Params[0], 0)
	b.Jump(done, n)
	b.SetBlock(done)
	b.Return(done.Params[0])

	fn := b.Func()
	fn.Verify()
	require.Equal(t, []uint64{5}, evalFunc(t, fn, 5))
	require.Equal(t, []uint64{5}, evalFunc(t, fn, ^uint64(4)))
}

// The whole pass over a function exercising every rewrite family at once,
// against randomized inputs.
func TestPreopt_RandomizedEquivalence(t *testing.T) {
	gofakeit.Seed(0x1f2e3d4c)

	build := func() *Func {
		b := CreateBuilder("mixed")
		bb := b.Block(I64, I64)
		x, y := bb.Params[0], bb.Params[1]
		next := b.Func().NewBlock(I64)
		out := b.Func().NewBlock(I64)

		k := b.Iconst(I64, 13)
		a1 := b.Binary(OpIadd, x, k)
		a2 := b.BinaryImm(OpIaddImm, a1, -13)
		m := b.Iconst(I64, 3)
		p1 := b.Binary(OpImul, a2, m)
		q1 := b.BinaryImm(OpUdivImm, p1, 7)
		r1 := b.BinaryImm(OpSremImm, y, 5)
		sh := b.BinaryImm(OpIshlImm, q1, 32)
		tr := b.BinaryImm(OpUshrImm, sh, 32)
		c := b.Icmp(IntUlt, tr, y)
		ci := b.Bint(I64, c)
		b.Brz(ci, next, []Value{r1}, out, []Value{tr})

		b.SetBlock(next)
		s := b.Binary(OpIadd, next.Params[0], next.Params[0])
		b.Jump(out, s)

		b.SetBlock(out)
		b.Return(out.Params[0])
		return b.Func()
	}

	inputs := make([][]uint64, 0, 64)
	for i := 0; i < 64; i++ {
		inputs = append(inputs, []uint64{gofakeit.Uint64(), gofakeit.Uint64()})
	}
	inputs = append(inputs, []uint64{0, 0}, []uint64{^uint64(0), 1})
	checkEquivalence(t, build, inputs)
}
