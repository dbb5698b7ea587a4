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

// Opcode is the closed set of instruction tags, rule dispatch in the
// rewrite pass is an exhaustive switch over these.
type Opcode uint8

const (
    OpNop Opcode = iota
    OpIconst
    OpIadd
    OpIsub
    OpImul
    OpUdiv
    OpSdiv
    OpUrem
    OpSrem
    OpBand
    OpBor
    OpBxor
    OpIshl
    OpUshr
    OpSshr
    OpRotl
    OpRotr
    OpUmulhi
    OpSmulhi
    OpIaddImm
    OpIrsubImm
    OpImulImm
    OpUdivImm
    OpSdivImm
    OpUremImm
    OpSremImm
    OpBandImm
    OpBorImm
    OpBxorImm
    OpIshlImm
    OpUshrImm
    OpSshrImm
    OpRotlImm
    OpRotrImm
    OpIcmp
    OpIcmpImm
    OpBint
    OpSelect
    OpIreduce
    OpUextend
    OpSextend
    OpTrapz
    OpJump
    OpBrz
    OpBrnz
    OpReturn
)

var _OpNames = [...]string {
    OpNop      : "nop",
    OpIconst   : "iconst",
    OpIadd     : "iadd",
    OpIsub     : "isub",
    OpImul     : "imul",
    OpUdiv     : "udiv",
    OpSdiv     : "sdiv",
    OpUrem     : "urem",
    OpSrem     : "srem",
    OpBand     : "band",
    OpBor      : "bor",
    OpBxor     : "bxor",
    OpIshl     : "ishl",
    OpUshr     : "ushr",
    OpSshr     : "sshr",
    OpRotl     : "rotl",
    OpRotr     : "rotr",
    OpUmulhi   : "umulhi",
    OpSmulhi   : "smulhi",
    OpIaddImm  : "iadd_imm",
    OpIrsubImm : "irsub_imm",
    OpImulImm  : "imul_imm",
    OpUdivImm  : "udiv_imm",
    OpSdivImm  : "sdiv_imm",
    OpUremImm  : "urem_imm",
    OpSremImm  : "srem_imm",
    OpBandImm  : "band_imm",
    OpBorImm   : "bor_imm",
    OpBxorImm  : "bxor_imm",
    OpIshlImm  : "ishl_imm",
    OpUshrImm  : "ushr_imm",
    OpSshrImm  : "sshr_imm",
    OpRotlImm  : "rotl_imm",
    OpRotrImm  : "rotr_imm",
    OpIcmp     : "icmp",
    OpIcmpImm  : "icmp_imm",
    OpBint     : "bint",
    OpSelect   : "select",
    OpIreduce  : "ireduce",
    OpUextend  : "uextend",
    OpSextend  : "sextend",
    OpTrapz    : "trapz",
    OpJump     : "jump",
    OpBrz      : "brz",
    OpBrnz     : "brnz",
    OpReturn   : "return",
}

/* binary opcode -> immediate-operand form, OpNop marks "no such form" */
var _ImmForms = [...]Opcode {
    OpIadd : OpIaddImm,
    OpImul : OpImulImm,
    OpUdiv : OpUdivImm,
    OpSdiv : OpSdivImm,
    OpUrem : OpUremImm,
    OpSrem : OpSremImm,
    OpBand : OpBandImm,
    OpBor  : OpBorImm,
    OpBxor : OpBxorImm,
    OpIshl : OpIshlImm,
    OpUshr : OpUshrImm,
    OpSshr : OpSshrImm,
    OpRotl : OpRotlImm,
    OpRotr : OpRotrImm,
}

func (self Opcode) String() string {
    if int(self) < len(_OpNames) && _OpNames[self] != "" {
        return _OpNames[self]
    } else {
        panic("ssa: invalid opcode")
    }
}

// IsTerminator reports whether the opcode transfers control out of a block.
func (self Opcode) IsTerminator() bool {
    switch self {
        case OpJump, OpBrz, OpBrnz, OpReturn : return true
        default                              : return false
    }
}

func (self Opcode) isBranch() bool {
    return self == OpBrz || self == OpBrnz
}

// IntCC is the condition code of an integer comparison.
type IntCC uint8

const (
    IntEq IntCC = iota
    IntNe
    IntLt
    IntGe
    IntLe
    IntGt
    IntUlt
    IntUge
    IntUle
    IntUgt
)

var _CondNames = [...]string {
    IntEq  : "eq",
    IntNe  : "ne",
    IntLt  : "slt",
    IntGe  : "sge",
    IntLe  : "sle",
    IntGt  : "sgt",
    IntUlt : "ult",
    IntUge : "uge",
    IntUle : "ule",
    IntUgt : "ugt",
}

func (self IntCC) String() string {
    if int(self) < len(_CondNames) {
        return _CondNames[self]
    } else {
        panic("ssa: invalid condition code")
    }
}
