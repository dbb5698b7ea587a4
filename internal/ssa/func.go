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
)

// Func owns every value, instruction and block of one function. Passes
// borrow exclusive mutable access to the whole container for the duration
// of a run.
type Func struct {
    Name   string
    Blocks []*BasicBlock
    values []_ValueData
}

func NewFunc(name string) *Func {
    return &Func {
        Name   : name,
        values : make([]_ValueData, 1),
    }
}

// NewBlock allocates an empty block with one parameter value per ty,
// appended to the layout order.
func (self *Func) NewBlock(tys ...Type) *BasicBlock {
    bb := &BasicBlock { Id: len(self.Blocks) }
    for _, ty := range tys {
        bb.Params = append(bb.Params, self.newValue(ty, nil))
    }
    self.Blocks = append(self.Blocks, bb)
    return bb
}

// Entry is the function's entry block.
func (self *Func) Entry() *BasicBlock {
    if len(self.Blocks) == 0 {
        panic("ssa: function has no blocks: " + self.Name)
    }
    return self.Blocks[0]
}

// NumValues is the size of the value arena, value indices are dense in
// [1, NumValues).
func (self *Func) NumValues() int {
    return len(self.values)
}

func (self *Func) newValue(ty Type, def *Instr) Value {
    v := mkvalue(ty, len(self.values))
    self.values = append(self.values, _ValueData { def: def })
    return v
}

func (self *Func) valueData(v Value) *_ValueData {
    if i := v.Idx(); i > 0 && i < len(self.values) {
        return &self.values[i]
    } else {
        panic(fmt.Sprintf("ssa: no record for value %s in %s", v, self.Name))
    }
}

// DefinitionOf resolves the provenance of v: the instruction that defines
// it, or nil if v is a block parameter. Aliases are not chased here, the
// caller resolves operands first.
func (self *Func) DefinitionOf(v Value) *Instr {
    return self.valueData(v).def
}

// ResolveAlias follows the forwarding chain of v to its canonical value.
// Chains are collapsed at registration time, so this is at most one hop at
// rest, the loop tolerates chains formed before collapsing.
func (self *Func) ResolveAlias(v Value) Value {
    for i := 0; ; i++ {
        if vd := self.valueData(v); !vd.alias.Valid() {
            return v
        } else if v = vd.alias; i >= len(self.values) {
            panic(fmt.Sprintf("ssa: alias chain of %s does not terminate in %s", v, self.Name))
        }
    }
}

// Alias redirects every future read of dst to src. The source chain is
// resolved first, which keeps chains one hop long and makes a cycle
// impossible unless dst would forward to itself.
func (self *Func) Alias(dst Value, src Value) {
    if src = self.ResolveAlias(src); src == dst {
        panic(fmt.Sprintf("ssa: aliasing %s to itself in %s", dst, self.Name))
    } else {
        self.valueData(dst).alias = src
    }
}

// InsertBefore creates a unary instruction immediately before pos with a
// freshly bound result value of type ty, and returns the new value.
func (self *Func) InsertBefore(pos *Instr, op Opcode, ty Type, v Value) Value {
    p := &Instr { Op: op, Ty: ty, V: v }
    p.Ret = self.newValue(ty, p)
    pos.blk.insertBefore(pos, p)
    return p.Ret
}

// InsertBinImm creates an immediate-operand binary instruction immediately
// before pos with a freshly bound result value of type ty.
func (self *Func) InsertBinImm(pos *Instr, op Opcode, ty Type, v Value, imm int64) Value {
    p := &Instr { Op: op, Ty: ty, V: v, Imm: imm }
    p.Ret = self.newValue(ty, p)
    pos.blk.insertBefore(pos, p)
    return p.Ret
}

// InsertBinary creates a two-operand binary instruction immediately before
// pos with a freshly bound result value of type ty.
func (self *Func) InsertBinary(pos *Instr, op Opcode, ty Type, x Value, y Value) Value {
    p := &Instr { Op: op, Ty: ty, V: x, V2: y }
    p.Ret = self.newValue(ty, p)
    pos.blk.insertBefore(pos, p)
    return p.Ret
}

// InsertIconst creates a constant materialization immediately before pos.
func (self *Func) InsertIconst(pos *Instr, ty Type, imm int64) Value {
    p := &Instr { Op: OpIconst, Ty: ty, Imm: imm }
    p.Ret = self.newValue(ty, p)
    pos.blk.insertBefore(pos, p)
    return p.Ret
}

/* rewrite every operand of p to its canonical resolution */
func (self *Func) resolveOperands(p *Instr) {
    if p.V.Valid() {
        p.V = self.ResolveAlias(p.V)
    }
    if p.V2.Valid() {
        p.V2 = self.ResolveAlias(p.V2)
    }
    if p.V3.Valid() {
        p.V3 = self.ResolveAlias(p.V3)
    }
    for i, v := range p.Vs {
        p.Vs[i] = self.ResolveAlias(v)
    }
    for i := range p.To {
        for j, v := range p.To[i].Args {
            p.To[i].Args[j] = self.ResolveAlias(v)
        }
    }
}
