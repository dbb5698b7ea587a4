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

// Value is an immutable SSA name, packed as the type class in the upper
// bits and a dense index into the function's value arena in the lower bits.
type Value uint64

const (
    _B_type = 56
)

const (
    _M_type  = 0xff
    _M_index = (1 << _B_type) - 1
)

// ValueInvalid is the zero Value, it never names a defined value.
const ValueInvalid Value = 0

func mkvalue(ty Type, i int) Value {
    return Value(uint64(ty) << _B_type) | Value(uint64(i) & _M_index)
}

func (self Value) Type() Type {
    return Type((self >> _B_type) & _M_type)
}

func (self Value) Idx() int {
    return int(self & _M_index)
}

func (self Value) Valid() bool {
    return self != ValueInvalid
}

func (self Value) String() string {
    return fmt.Sprintf("v%d", self.Idx())
}

/* per-value record in the function arena: the defining instruction (nil for
 * block parameters) and the forwarding alias installed by rewrites */
type _ValueData struct {
    def   *Instr
    alias Value
}
