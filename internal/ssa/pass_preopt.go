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

// Preopt is the pre-lowering rewrite pass. It makes exactly one forward
// sweep over every instruction of every block, in layout order, applying
// in this order at each instruction:
//
//   1. operand canonicalization, forwarded values are replaced by their
//      canonical resolution;
//   2. algebraic simplification, constant operands fold into the
//      immediate-operand instruction forms, and adjacent additions of
//      negated immediates cancel;
//   3. idiom recognition, a matched left/right shift pair becomes an
//      explicit truncate plus extension;
//   4. division and remainder by a constant expand into shift or
//      multiply-high sequences, when this fires the remaining rules are
//      skipped for the instruction;
//   5. branch and condition normalization, flag-to-integer conversions
//      are bypassed and conditional branch polarity is canonicalized.
//
// The sweep is not iterated to a fixpoint. A rewrite only ever exposes
// opportunities at instructions the sweep has not reached yet, earlier
// instructions are left as they are.
type Preopt struct{}

func (Preopt) Apply(fn *Func) {
    refs := countRefs(fn)
    for _, bb := range fn.Blocks {
        for p := bb.head; p != nil; p = p.next {
            fn.resolveOperands(p)
            simplify(fn, p, refs)
            narrowShiftPair(fn, p)
            if expandDivRem(fn, p) {
                continue
            }
            branchOpt(fn, p)
        }
    }
}

/* use counts per canonical value, indexed by value index */
func countRefs(fn *Func) []int32 {
    refs := make([]int32, fn.NumValues())
    addref := func(v Value) {
        if v.Valid() {
            refs[fn.ResolveAlias(v).Idx()]++
        }
    }
    for _, bb := range fn.Blocks {
        for p := bb.head; p != nil; p = p.next {
            addref(p.V)
            addref(p.V2)
            addref(p.V3)
            for _, v := range p.Vs {
                addref(v)
            }
            for i := range p.To {
                for _, v := range p.To[i].Args {
                    addref(v)
                }
            }
        }
    }
    return refs
}

/* values created after the prepass have no count, treat them as shared
 * so that rewrites gated on sole use stay conservative */
func refcount(refs []int32, v Value) int32 {
    if i := v.Idx(); i < len(refs) {
        return refs[i]
    } else {
        return 2
    }
}
