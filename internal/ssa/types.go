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
    `math`
)

// Type is the class of an SSA value: a flag produced by comparisons,
// or an integer of a fixed width.
type Type uint8

const (
    Void Type = iota
    B1
    I8
    I16
    I32
    I64
)

func (self Type) Bits() int {
    switch self {
        case B1  : return 1
        case I8  : return 8
        case I16 : return 16
        case I32 : return 32
        case I64 : return 64
        default  : panic("ssa: invalid type class")
    }
}

func (self Type) String() string {
    switch self {
        case Void : return "void"
        case B1   : return "b1"
        case I8   : return "i8"
        case I16  : return "i16"
        case I32  : return "i32"
        case I64  : return "i64"
        default   : return fmt.Sprintf("t%d", uint8(self))
    }
}

func typeBits(nb int64) Type {
    switch nb {
        case 8  : return I8
        case 16 : return I16
        case 32 : return I32
        case 64 : return I64
        default : panic(fmt.Sprintf("ssa: no integer type of width %d", nb))
    }
}

// minInt is the smallest signed value representable at the width of ty.
func minInt(ty Type) int64 {
    switch ty {
        case I8  : return math.MinInt8
        case I16 : return math.MinInt16
        case I32 : return math.MinInt32
        case I64 : return math.MinInt64
        default  : panic("ssa: not an integer type: " + ty.String())
    }
}
