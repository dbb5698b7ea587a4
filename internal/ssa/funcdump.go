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
    `strings`
)

/* deterministic textual listing, the test harness compares these before
 * and after a pass run */

func (self *Instr) String() string {
    switch self.Op {
        default: {
            panic("ssa: cannot format opcode " + self.Op.String())
        }

        /* no-op marker left behind by rewrites */
        case OpNop: {
            return "nop"
        }

        /* constant materialization */
        case OpIconst: {
            return fmt.Sprintf("%s = iconst.%s %d", self.Ret, self.Ty, self.Imm)
        }

        /* two-operand binaries */
        case OpIadd, OpIsub, OpImul, OpUdiv, OpSdiv, OpUrem, OpSrem,
             OpBand, OpBor, OpBxor, OpIshl, OpUshr, OpSshr, OpRotl, OpRotr,
             OpUmulhi, OpSmulhi: {
            return fmt.Sprintf("%s = %s %s, %s", self.Ret, self.Op, self.V, self.V2)
        }

        /* immediate-operand binaries */
        case OpIaddImm, OpIrsubImm, OpImulImm, OpUdivImm, OpSdivImm,
             OpUremImm, OpSremImm, OpBandImm, OpBorImm, OpBxorImm,
             OpIshlImm, OpUshrImm, OpSshrImm, OpRotlImm, OpRotrImm: {
            return fmt.Sprintf("%s = %s %s, %d", self.Ret, self.Op, self.V, self.Imm)
        }

        /* comparisons */
        case OpIcmp: {
            return fmt.Sprintf("%s = icmp %s %s, %s", self.Ret, self.Cc, self.V, self.V2)
        }

        case OpIcmpImm: {
            return fmt.Sprintf("%s = icmp_imm %s %s, %d", self.Ret, self.Cc, self.V, self.Imm)
        }

        /* flag materialization and width changes */
        case OpBint, OpIreduce, OpUextend, OpSextend: {
            return fmt.Sprintf("%s = %s.%s %s", self.Ret, self.Op, self.Ty, self.V)
        }

        /* two-way select on a truth-tested condition */
        case OpSelect: {
            return fmt.Sprintf("%s = select %s, %s, %s", self.Ret, self.V, self.V2, self.V3)
        }

        /* trap-on-zero guard */
        case OpTrapz: {
            return fmt.Sprintf("trapz %s, %d", self.V, self.Imm)
        }

        /* control transfers */
        case OpJump: {
            return fmt.Sprintf("jump %s", self.To[0])
        }

        case OpBrz, OpBrnz: {
            return fmt.Sprintf("%s %s, %s, %s", self.Op, self.V, self.To[0], self.To[1])
        }

        case OpReturn: {
            if len(self.Vs) == 0 {
                return "return"
            }
            return "return " + joinValues(self.Vs)
        }
    }
}

func (self Edge) String() string {
    return fmt.Sprintf("%s(%s)", self.To, joinValues(self.Args))
}

func (self *BasicBlock) dump(buf *strings.Builder) {
    args := make([]string, 0, len(self.Params))
    for _, v := range self.Params {
        args = append(args, fmt.Sprintf("%s: %s", v, v.Type()))
    }
    fmt.Fprintf(buf, "%s(%s):\n", self, strings.Join(args, ", "))
    for p := self.head; p != nil; p = p.next {
        fmt.Fprintf(buf, "    %s\n", p)
    }
}

func (self *Func) String() string {
    var buf strings.Builder
    fmt.Fprintf(&buf, "fn %s {\n", self.Name)
    for i, bb := range self.Blocks {
        if i != 0 {
            buf.WriteByte('\n')
        }
        bb.dump(&buf)
    }
    buf.WriteString("}")
    return buf.String()
}

func joinValues(vs []Value) string {
    ret := make([]string, 0, len(vs))
    for _, v := range vs {
        ret = append(ret, v.String())
    }
    return strings.Join(ret, ", ")
}
