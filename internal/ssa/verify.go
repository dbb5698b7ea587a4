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
    `fmt`

    `github.com/davecgh/go-spew/spew`
    `github.com/oleiade/lane`
)

// Verify checks the structural invariants the rewrite pass relies on:
// every block terminates exactly once, every operand resolves to a defined
// value, every alias chain terminates, and every edge target is a block of
// this function reachable from the entry. Violations abort compilation of
// the function with a panic, they are never downgraded.
func (self *Func) Verify() {
    if len(self.Blocks) == 0 {
        self.invalid(self.Name, "function has no blocks")
    }

    /* breadth-first over the control flow graph from the entry */
    seen := make(map[int]bool, len(self.Blocks))
    q := lane.NewQueue()
    for q.Enqueue(self.Entry()); !q.Empty(); {
        bb := q.Dequeue().(*BasicBlock)
        if seen[bb.Id] {
            continue
        }
        seen[bb.Id] = true
        self.verifyBlock(bb)
        for i := range bb.tail.To {
            if to := bb.tail.To[i].To; to != nil && !seen[to.Id] {
                q.Enqueue(to)
            }
        }
    }

    /* blocks the front end emitted but never wired still must be well formed */
    for _, bb := range self.Blocks {
        if !seen[bb.Id] {
            self.verifyBlock(bb)
        }
    }
}

func (self *Func) verifyBlock(bb *BasicBlock) {
    if bb.Term() == nil {
        self.invalid(bb, "block is not terminated")
    }
    for p := bb.head; p != nil; p = p.next {
        if p.Op.IsTerminator() && p != bb.tail {
            self.invalid(bb, "terminator in the middle of the block")
        }
        self.verifyOperands(p)
        if p.Ret.Valid() && self.DefinitionOf(p.Ret) != p {
            self.invalid(p, "result value is not bound to its instruction")
        }
    }
}

func (self *Func) verifyOperands(p *Instr) {
    check := func(v Value) {
        if !v.Valid() {
            return
        }
        if i := v.Idx(); i <= 0 || i >= len(self.values) {
            self.invalid(p, "operand "+v.String()+" has no record")
        }
        self.ResolveAlias(v)
    }
    check(p.V)
    check(p.V2)
    check(p.V3)
    for _, v := range p.Vs {
        check(v)
    }
    for i := range p.To {
        e := &p.To[i]
        if e.To == nil {
            if p.Op.isBranch() || (p.Op == OpJump && i == 0) {
                self.invalid(p, "branch edge without a target")
            }
            continue
        }
        if e.To.Id >= len(self.Blocks) || self.Blocks[e.To.Id] != e.To {
            self.invalid(p, "edge target is not a block of this function")
        }
        if len(e.Args) != len(e.To.Params) {
            self.invalid(p, fmt.Sprintf("edge to %s carries %d arguments for %d parameters", e.To, len(e.Args), len(e.To.Params)))
        }
        for _, v := range e.Args {
            check(v)
        }
    }
}

func (self *Func) invalid(subj interface{}, msg string) {
    spew.Config.SortKeys = true
    spew.Config.DisablePointerMethods = true
    panic(fmt.Sprintf("ssa: invalid IR in %s: %s: %s", self.Name, msg, spew.Sdump(subj)))
}
