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

// BasicBlock is a straight-line instruction sequence with parameter values
// for its live-in bindings, terminated by one control-transfer instruction.
// Instructions are kept as a doubly-linked list so insertion and in-place
// rewrites never shift layout positions.
type BasicBlock struct {
    Id     int
    Params []Value
    head   *Instr
    tail   *Instr
}

func (self *BasicBlock) First() *Instr {
    return self.head
}

func (self *BasicBlock) Last() *Instr {
    return self.tail
}

// Term returns the block's terminator, or nil if the block is not yet
// terminated.
func (self *BasicBlock) Term() *Instr {
    if self.tail != nil && self.tail.Op.IsTerminator() {
        return self.tail
    } else {
        return nil
    }
}

func (self *BasicBlock) String() string {
    return fmt.Sprintf("bb_%d", self.Id)
}

func (self *BasicBlock) append(p *Instr) {
    if self.tail != nil && self.tail.Op.IsTerminator() {
        panic("ssa: appending past the terminator of " + self.String())
    }
    p.blk  = self
    p.prev = self.tail
    p.next = nil
    if self.tail == nil {
        self.head = p
    } else {
        self.tail.next = p
    }
    self.tail = p
}

/* link p immediately before pos, preserving layout order */
func (self *BasicBlock) insertBefore(pos *Instr, p *Instr) {
    if pos.blk != self {
        panic("ssa: insertion point is not in " + self.String())
    }
    p.blk  = self
    p.next = pos
    p.prev = pos.prev
    if pos.prev == nil {
        self.head = p
    } else {
        pos.prev.next = p
    }
    pos.prev = p
}
