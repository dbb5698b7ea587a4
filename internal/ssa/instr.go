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

// Edge is one successor of a control-transfer instruction, it carries its
// own argument list binding the target block's parameters.
type Edge struct {
    To   *BasicBlock
    Args []Value
}

// Instr is a single IR instruction. Instructions are linked in layout order
// within their block, rewrites mutate the opcode, operands and immediate in
// place and never unlink the node.
type Instr struct {
    Op   Opcode
    Ty   Type
    Cc   IntCC
    Ret  Value
    V    Value
    V2   Value
    V3   Value
    Vs   []Value
    Imm  int64
    To   [2]Edge
    blk  *BasicBlock
    prev *Instr
    next *Instr
}

func (self *Instr) Prev() *Instr {
    return self.prev
}

func (self *Instr) Next() *Instr {
    return self.next
}

func (self *Instr) Block() *BasicBlock {
    return self.blk
}

/* neutralize into a no-op marker, the node keeps its layout position so
 * that position-dependent bookkeeping in later stages stays valid */
func (self *Instr) intoNop() {
    self.Op  = OpNop
    self.Ty  = Void
    self.Cc  = 0
    self.Ret = ValueInvalid
    self.V   = ValueInvalid
    self.V2  = ValueInvalid
    self.V3  = ValueInvalid
    self.Vs  = nil
    self.Imm = 0
}

/* rewrite into an immediate-operand binary form, keeping the result binding */
func (self *Instr) intoBinImm(op Opcode, x Value, imm int64) {
    self.Op  = op
    self.V   = x
    self.V2  = ValueInvalid
    self.Imm = imm
}

/* rewrite into an immediate-operand comparison, keeping the result binding */
func (self *Instr) intoIcmpImm(cc IntCC, x Value, imm int64) {
    self.Op  = OpIcmpImm
    self.Cc  = cc
    self.V   = x
    self.V2  = ValueInvalid
    self.Imm = imm
}

/* rewrite into a two-operand binary form, keeping the result binding */
func (self *Instr) intoBinary(op Opcode, x Value, y Value) {
    self.Op  = op
    self.V   = x
    self.V2  = y
    self.Imm = 0
}

/* rewrite into a width extension from the narrow value, keeping the
 * result binding and the original result width */
func (self *Instr) intoExtend(op Opcode, narrow Value) {
    self.Op  = op
    self.V   = narrow
    self.V2  = ValueInvalid
    self.Imm = 0
}

/* rewrite into a constant materialization, keeping the result binding */
func (self *Instr) intoIconst(imm int64) {
    self.Op  = OpIconst
    self.V   = ValueInvalid
    self.V2  = ValueInvalid
    self.Imm = imm
}
