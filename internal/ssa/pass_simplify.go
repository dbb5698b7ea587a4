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

/* constOf reports the immediate of v's defining instruction when that
 * instruction is a constant materialization, v must be canonical */
func constOf(fn *Func, v Value) (int64, bool) {
    if def := fn.DefinitionOf(v); def != nil && def.Op == OpIconst {
        return def.Imm, true
    } else {
        return 0, false
    }
}

/* simplify folds constant operands into immediate-operand instruction
 * forms and cancels additions of negated immediates, operands of p must
 * already be canonical */
func simplify(fn *Func, p *Instr, refs []int32) {
    switch p.Op {
        case OpIadd: {
            if k, ok := constOf(fn, p.V2); ok {
                p.intoBinImm(OpIaddImm, p.V, k)
            } else if k, ok = constOf(fn, p.V); ok {
                p.intoBinImm(OpIaddImm, p.V2, k)
            }
        }

        /* a constant left operand turns the subtraction around, the
         * immediate form computes imm - arg */
        case OpIsub: {
            if k, ok := constOf(fn, p.V2); ok {
                p.intoBinImm(OpIaddImm, p.V, -k)
            } else if k, ok = constOf(fn, p.V); ok {
                p.intoBinImm(OpIrsubImm, p.V2, k)
            }
        }

        case OpImul, OpUdiv, OpSdiv, OpUrem, OpSrem,
             OpBand, OpBor , OpBxor,
             OpIshl, OpUshr, OpSshr, OpRotl, OpRotr: {
            if k, ok := constOf(fn, p.V2); ok {
                p.intoBinImm(_ImmForms[p.Op], p.V, k)
            }
        }

        case OpIcmp: {
            if k, ok := constOf(fn, p.V2); ok {
                p.intoIcmpImm(p.Cc, p.V, k)
            }
        }
    }

    /* the fold above may just have produced the iadd_imm */
    if p.Op == OpIaddImm {
        cancelIaddImm(fn, p, refs)
    }
}

/* iadd_imm k over iadd_imm -k of the same width cancels to the inner
 * operand, but only when the intermediate sum has no other consumer, and
 * never for the most negative immediate of the width since its negation
 * is itself */
func cancelIaddImm(fn *Func, p *Instr, refs []int32) {
    def := fn.DefinitionOf(p.V)
    if def == nil || def.Op != OpIaddImm || def.Ty != p.Ty {
        return
    }
    if refcount(refs, p.V) != 1 {
        return
    }
    if k := def.Imm; k == minInt(p.Ty) || p.Imm != -k {
        return
    }
    fn.Alias(p.Ret, fn.ResolveAlias(def.V))
    p.intoNop()
}
