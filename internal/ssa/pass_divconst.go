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
    `math`
    `math/bits`
)

// expandDivRem rewrites a division or remainder by a constant into a
// sequence of shifts, adds and multiply-highs. Only 32 and 64 bit widths
// are handled. Division by zero is left alone so that lowering still traps
// at run time, and so is signed division by -1 which can overflow. The
// return value reports whether the instruction was a div or rem by
// constant of a handled width, even when it was left unchanged.
func expandDivRem(fn *Func, p *Instr) bool {
    var signed bool
    var rem bool

    /* only the four immediate-operand division forms */
    switch p.Op {
        case OpUdivImm : signed, rem = false, false
        case OpSdivImm : signed, rem = true, false
        case OpUremImm : signed, rem = false, true
        case OpSremImm : signed, rem = true, true
        default        : return false
    }

    /* split by width and signedness, checking the immediate is in range
     * for the narrow width */
    switch {
        case !signed && p.Ty == I32: {
            if uint64(p.Imm) > math.MaxUint32 {
                return false
            }
            divRemU32(fn, p, p.V, uint32(p.Imm), rem)
            return true
        }
        case !signed && p.Ty == I64: {
            divRemU64(fn, p, p.V, uint64(p.Imm), rem)
            return true
        }
        case signed && p.Ty == I32: {
            if p.Imm < math.MinInt32 || p.Imm > math.MaxInt32 {
                return false
            }
            divRemS32(fn, p, p.V, int32(p.Imm), rem)
            return true
        }
        case signed && p.Ty == I64: {
            divRemS64(fn, p, p.V, p.Imm, rem)
            return true
        }
        default: {
            return false
        }
    }
}

/* forward the result of p to v and neutralize p */
func replaceWithValue(fn *Func, p *Instr, v Value) {
    fn.Alias(p.Ret, v)
    p.intoNop()
}

func divRemU32(fn *Func, p *Instr, n1 Value, d uint32, rem bool) {
    switch {
        /* division by zero traps at run time, leave it */
        case d == 0: {
            return
        }

        /* div by 1 is the identity, rem by 1 is zero */
        case d == 1: {
            if rem {
                p.intoIconst(0)
            } else {
                replaceWithValue(fn, p, n1)
            }
        }

        /* powers of two reduce to a mask or a shift */
        case d & (d - 1) == 0: {
            if k := bits.TrailingZeros32(d); rem {
                p.intoBinImm(OpBandImm, n1, int64(1) << k - 1)
            } else {
                p.intoBinImm(OpUshrImm, n1, int64(k))
            }
        }

        default: {
            m := magicU32(d)
            var qf Value
            q0 := fn.InsertIconst(p, I32, int64(m.mulBy))
            q1 := fn.InsertBinary(p, OpUmulhi, I32, n1, q0)
            if m.doAdd {
                t1 := fn.InsertBinary(p, OpIsub, I32, n1, q1)
                t2 := fn.InsertBinImm(p, OpUshrImm, I32, t1, 1)
                t3 := fn.InsertBinary(p, OpIadd, I32, t2, q1)
                qf  = fn.InsertBinImm(p, OpUshrImm, I32, t3, int64(m.shiftBy - 1))
            } else if m.shiftBy > 0 {
                qf = fn.InsertBinImm(p, OpUshrImm, I32, q1, int64(m.shiftBy))
            } else {
                qf = q1
            }
            if rem {
                tt := fn.InsertBinImm(p, OpImulImm, I32, qf, int64(d))
                p.intoBinary(OpIsub, n1, tt)
            } else {
                replaceWithValue(fn, p, qf)
            }
        }
    }
}

func divRemU64(fn *Func, p *Instr, n1 Value, d uint64, rem bool) {
    switch {
        case d == 0: {
            return
        }

        case d == 1: {
            if rem {
                p.intoIconst(0)
            } else {
                replaceWithValue(fn, p, n1)
            }
        }

        case d & (d - 1) == 0: {
            if k := bits.TrailingZeros64(d); rem {
                p.intoBinImm(OpBandImm, n1, int64(1) << k - 1)
            } else {
                p.intoBinImm(OpUshrImm, n1, int64(k))
            }
        }

        default: {
            m := magicU64(d)
            var qf Value
            q0 := fn.InsertIconst(p, I64, int64(m.mulBy))
            q1 := fn.InsertBinary(p, OpUmulhi, I64, n1, q0)
            if m.doAdd {
                t1 := fn.InsertBinary(p, OpIsub, I64, n1, q1)
                t2 := fn.InsertBinImm(p, OpUshrImm, I64, t1, 1)
                t3 := fn.InsertBinary(p, OpIadd, I64, t2, q1)
                qf  = fn.InsertBinImm(p, OpUshrImm, I64, t3, int64(m.shiftBy - 1))
            } else if m.shiftBy > 0 {
                qf = fn.InsertBinImm(p, OpUshrImm, I64, q1, int64(m.shiftBy))
            } else {
                qf = q1
            }
            if rem {
                tt := fn.InsertBinImm(p, OpImulImm, I64, qf, int64(d))
                p.intoBinary(OpIsub, n1, tt)
            } else {
                replaceWithValue(fn, p, qf)
            }
        }
    }
}

/* signedPow2_32 reports k and the sign when x is ±2^k */
func signedPow2_32(x int32) (neg bool, k int, ok bool) {
    if x == math.MinInt32 {
        return true, 31, true
    }
    ax := uint32(x)
    if x < 0 {
        ax = -ax
    }
    if ax != 0 && ax & (ax - 1) == 0 {
        return x < 0, bits.TrailingZeros32(ax), true
    }
    return false, 0, false
}

func signedPow2_64(x int64) (neg bool, k int, ok bool) {
    if x == math.MinInt64 {
        return true, 63, true
    }
    ax := uint64(x)
    if x < 0 {
        ax = -ax
    }
    if ax != 0 && ax & (ax - 1) == 0 {
        return x < 0, bits.TrailingZeros64(ax), true
    }
    return false, 0, false
}

func divRemS32(fn *Func, p *Instr, n1 Value, d int32, rem bool) {
    switch {
        /* zero traps, -1 can overflow, leave both */
        case d == 0 || d == -1: {
            return
        }

        case d == 1: {
            if rem {
                p.intoIconst(0)
            } else {
                replaceWithValue(fn, p, n1)
            }
        }

        default: {
            if neg, k, ok := signedPow2_32(d); ok {
                /* round toward zero, the shifted sign bits bias negative
                 * dividends before the arithmetic shift */
                t1 := n1
                if k != 1 {
                    t1 = fn.InsertBinImm(p, OpSshrImm, I32, n1, int64(k - 1))
                }
                t2 := fn.InsertBinImm(p, OpUshrImm, I32, t1, int64(32 - k))
                t3 := fn.InsertBinary(p, OpIadd, I32, n1, t2)
                if rem {
                    /* the sign of d does not matter for the remainder */
                    t4 := fn.InsertBinImm(p, OpBandImm, I32, t3, int64(-(int32(1) << k)))
                    p.intoBinary(OpIsub, n1, t4)
                } else if t4 := fn.InsertBinImm(p, OpSshrImm, I32, t3, int64(k)); neg {
                    p.intoBinImm(OpIrsubImm, t4, 0)
                } else {
                    replaceWithValue(fn, p, t4)
                }
            } else {
                m := magicS32(d)
                q0 := fn.InsertIconst(p, I32, int64(m.mulBy))
                q1 := fn.InsertBinary(p, OpSmulhi, I32, n1, q0)
                q2 := q1
                if d > 0 && m.mulBy < 0 {
                    q2 = fn.InsertBinary(p, OpIadd, I32, q1, n1)
                } else if d < 0 && m.mulBy > 0 {
                    q2 = fn.InsertBinary(p, OpIsub, I32, q1, n1)
                }
                q3 := q2
                if m.shiftBy != 0 {
                    q3 = fn.InsertBinImm(p, OpSshrImm, I32, q2, int64(m.shiftBy))
                }
                t1 := fn.InsertBinImm(p, OpUshrImm, I32, q3, 31)
                qf := fn.InsertBinary(p, OpIadd, I32, q3, t1)
                if rem {
                    tt := fn.InsertBinImm(p, OpImulImm, I32, qf, int64(d))
                    p.intoBinary(OpIsub, n1, tt)
                } else {
                    replaceWithValue(fn, p, qf)
                }
            }
        }
    }
}

func divRemS64(fn *Func, p *Instr, n1 Value, d int64, rem bool) {
    switch {
        case d == 0 || d == -1: {
            return
        }

        case d == 1: {
            if rem {
                p.intoIconst(0)
            } else {
                replaceWithValue(fn, p, n1)
            }
        }

        default: {
            if neg, k, ok := signedPow2_64(d); ok {
                t1 := n1
                if k != 1 {
                    t1 = fn.InsertBinImm(p, OpSshrImm, I64, n1, int64(k - 1))
                }
                t2 := fn.InsertBinImm(p, OpUshrImm, I64, t1, int64(64 - k))
                t3 := fn.InsertBinary(p, OpIadd, I64, n1, t2)
                if rem {
                    t4 := fn.InsertBinImm(p, OpBandImm, I64, t3, -(int64(1) << k))
                    p.intoBinary(OpIsub, n1, t4)
                } else if t4 := fn.InsertBinImm(p, OpSshrImm, I64, t3, int64(k)); neg {
                    p.intoBinImm(OpIrsubImm, t4, 0)
                } else {
                    replaceWithValue(fn, p, t4)
                }
            } else {
                m := magicS64(d)
                q0 := fn.InsertIconst(p, I64, m.mulBy)
                q1 := fn.InsertBinary(p, OpSmulhi, I64, n1, q0)
                q2 := q1
                if d > 0 && m.mulBy < 0 {
                    q2 = fn.InsertBinary(p, OpIadd, I64, q1, n1)
                } else if d < 0 && m.mulBy > 0 {
                    q2 = fn.InsertBinary(p, OpIsub, I64, q1, n1)
                }
                q3 := q2
                if m.shiftBy != 0 {
                    q3 = fn.InsertBinImm(p, OpSshrImm, I64, q2, int64(m.shiftBy))
                }
                t1 := fn.InsertBinImm(p, OpUshrImm, I64, q3, 63)
                qf := fn.InsertBinary(p, OpIadd, I64, q3, t1)
                if rem {
                    tt := fn.InsertBinImm(p, OpImulImm, I64, qf, d)
                    p.intoBinary(OpIsub, n1, tt)
                } else {
                    replaceWithValue(fn, p, qf)
                }
            }
        }
    }
}
