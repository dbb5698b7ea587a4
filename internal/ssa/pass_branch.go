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

/* branchOpt normalizes condition consumers. A condition fed through a
 * flag-to-integer conversion reads the flag directly, the conversion stays
 * in place for its other consumers. Conditional branches are canonicalized
 * to branch-if-nonzero with the edges swapped to keep the semantics */
func branchOpt(fn *Func, p *Instr) {
    switch p.Op {
        case OpSelect, OpTrapz, OpBrz, OpBrnz: {
            if def := fn.DefinitionOf(p.V); def != nil && def.Op == OpBint {
                p.V = fn.ResolveAlias(def.V)
            }
        }
    }
    if p.Op == OpBrz {
        p.Op = OpBrnz
        p.To[0], p.To[1] = p.To[1], p.To[0]
    }
}
