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

/* narrowShiftPair recognizes a left shift followed by a right shift of the
 * same width by the same amount, which keeps the low W-k bits and clears or
 * sign-fills the rest. When W-k is a register width the pair is a truncate
 * plus an extension, the right shift kind picks zero or sign extension.
 * The left shift stays in place, its other consumers keep it alive and it
 * is dropped later if the extension was the only one */
func narrowShiftPair(fn *Func, p *Instr) {
    var ext Opcode
    switch p.Op {
        case OpUshrImm : ext = OpUextend
        case OpSshrImm : ext = OpSextend
        default        : return
    }
    shl := fn.DefinitionOf(p.V)
    if shl == nil || shl.Op != OpIshlImm || shl.Ty != p.Ty {
        return
    }
    w, k := int64(p.Ty.Bits()), p.Imm
    if k != shl.Imm || k <= 0 || k >= w {
        return
    }
    nb := w - k
    if nb != 8 && nb != 16 && nb != 32 {
        return
    }
    red := fn.InsertBefore(p, OpIreduce, typeBits(nb), fn.ResolveAlias(shl.V))
    p.intoExtend(ext, red)
}
