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

// Builder appends instructions to a function under construction. It is the
// facade used by the front end and by tests, the rewrite pass itself only
// uses the container's insertion and mutation primitives.
type Builder struct {
    fn  *Func
    cur *BasicBlock
}

func CreateBuilder(name string) *Builder {
    return &Builder { fn: NewFunc(name) }
}

// Func hands out the constructed function.
func (self *Builder) Func() *Func {
    return self.fn
}

// Block allocates a new block with the given parameter types and makes it
// the insertion target.
func (self *Builder) Block(tys ...Type) *BasicBlock {
    self.cur = self.fn.NewBlock(tys...)
    return self.cur
}

// SetBlock switches the insertion target to bb.
func (self *Builder) SetBlock(bb *BasicBlock) {
    self.cur = bb
}

func (self *Builder) emit(p *Instr) *Instr {
    if self.cur == nil {
        panic("ssa: no insertion block in " + self.fn.Name)
    }
    self.cur.append(p)
    return p
}

func (self *Builder) emitValue(p *Instr) Value {
    p.Ret = self.fn.newValue(p.Ty, p)
    self.emit(p)
    return p.Ret
}

func (self *Builder) Iconst(ty Type, v int64) Value {
    return self.emitValue(&Instr { Op: OpIconst, Ty: ty, Imm: v })
}

func (self *Builder) Binary(op Opcode, x Value, y Value) Value {
    return self.emitValue(&Instr { Op: op, Ty: x.Type(), V: x, V2: y })
}

func (self *Builder) BinaryImm(op Opcode, x Value, imm int64) Value {
    return self.emitValue(&Instr { Op: op, Ty: x.Type(), V: x, Imm: imm })
}

func (self *Builder) Icmp(cc IntCC, x Value, y Value) Value {
    return self.emitValue(&Instr { Op: OpIcmp, Ty: B1, Cc: cc, V: x, V2: y })
}

func (self *Builder) IcmpImm(cc IntCC, x Value, imm int64) Value {
    return self.emitValue(&Instr { Op: OpIcmpImm, Ty: B1, Cc: cc, V: x, Imm: imm })
}

// Bint materializes a flag into a 0/1 integer of type ty.
func (self *Builder) Bint(ty Type, flag Value) Value {
    return self.emitValue(&Instr { Op: OpBint, Ty: ty, V: flag })
}

func (self *Builder) Select(cond Value, x Value, y Value) Value {
    return self.emitValue(&Instr { Op: OpSelect, Ty: x.Type(), V: cond, V2: x, V3: y })
}

func (self *Builder) Ireduce(ty Type, v Value) Value {
    return self.emitValue(&Instr { Op: OpIreduce, Ty: ty, V: v })
}

func (self *Builder) Uextend(ty Type, v Value) Value {
    return self.emitValue(&Instr { Op: OpUextend, Ty: ty, V: v })
}

func (self *Builder) Sextend(ty Type, v Value) Value {
    return self.emitValue(&Instr { Op: OpSextend, Ty: ty, V: v })
}

// Trapz aborts execution with the given trap code when cond is zero.
func (self *Builder) Trapz(cond Value, code int64) *Instr {
    return self.emit(&Instr { Op: OpTrapz, V: cond, Imm: code })
}

func (self *Builder) Jump(to *BasicBlock, args ...Value) *Instr {
    return self.emit(&Instr {
        Op: OpJump,
        To: [2]Edge {{ To: to, Args: args }},
    })
}

// Brz branches to then when cond is zero, and falls through to els
// otherwise. Each edge owns its argument list.
func (self *Builder) Brz(cond Value, then *BasicBlock, thenArgs []Value, els *BasicBlock, elsArgs []Value) *Instr {
    return self.emit(&Instr {
        Op: OpBrz,
        V:  cond,
        To: [2]Edge {
            { To: then, Args: thenArgs },
            { To: els, Args: elsArgs },
        },
    })
}

// Brnz branches to then when cond is nonzero, and falls through to els
// otherwise.
func (self *Builder) Brnz(cond Value, then *BasicBlock, thenArgs []Value, els *BasicBlock, elsArgs []Value) *Instr {
    return self.emit(&Instr {
        Op: OpBrnz,
        V:  cond,
        To: [2]Edge {
            { To: then, Args: thenArgs },
            { To: els, Args: elsArgs },
        },
    })
}

func (self *Builder) Return(vals ...Value) *Instr {
    return self.emit(&Instr { Op: OpReturn, Vs: vals })
}
