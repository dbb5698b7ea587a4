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

/* Magic number constructions for division by constants, following the
 * derivations in Hacker's Delight, chapter 10. A division by d becomes a
 * multiply-high by mulBy followed by a right shift of shiftBy, unsigned
 * divisors may additionally need a rounding add when the magic multiplier
 * does not fit in the width */

type _MagicU32 struct {
    mulBy   uint32
    doAdd   bool
    shiftBy int32
}

type _MagicU64 struct {
    mulBy   uint64
    doAdd   bool
    shiftBy int32
}

type _MagicS32 struct {
    mulBy   int32
    shiftBy int32
}

type _MagicS64 struct {
    mulBy   int64
    shiftBy int32
}

/* d must not be 0 or 1, those never reach the magic path */
func magicU32(d uint32) _MagicU32 {
    var doAdd bool
    p  := int32(31)
    nc := uint32(0xffffffff) - (-d) % d
    q1 := uint32(0x80000000) / nc
    r1 := uint32(0x80000000) - q1 * nc
    q2 := uint32(0x7fffffff) / d
    r2 := uint32(0x7fffffff) - q2 * d
    for {
        p++
        if r1 >= nc - r1 {
            q1 = q1 * 2 + 1
            r1 = r1 * 2 - nc
        } else {
            q1 = q1 * 2
            r1 = r1 * 2
        }
        if r2 + 1 >= d - r2 {
            if q2 >= 0x7fffffff {
                doAdd = true
            }
            q2 = q2 * 2 + 1
            r2 = r2 * 2 + 1 - d
        } else {
            if q2 >= 0x80000000 {
                doAdd = true
            }
            q2 = q2 * 2
            r2 = r2 * 2 + 1
        }
        if delta := d - 1 - r2; !(p < 64 && (q1 < delta || (q1 == delta && r1 == 0))) {
            break
        }
    }
    return _MagicU32 { mulBy: q2 + 1, doAdd: doAdd, shiftBy: p - 32 }
}

func magicU64(d uint64) _MagicU64 {
    var doAdd bool
    p  := int32(63)
    nc := uint64(0xffffffffffffffff) - (-d) % d
    q1 := uint64(0x8000000000000000) / nc
    r1 := uint64(0x8000000000000000) - q1 * nc
    q2 := uint64(0x7fffffffffffffff) / d
    r2 := uint64(0x7fffffffffffffff) - q2 * d
    for {
        p++
        if r1 >= nc - r1 {
            q1 = q1 * 2 + 1
            r1 = r1 * 2 - nc
        } else {
            q1 = q1 * 2
            r1 = r1 * 2
        }
        if r2 + 1 >= d - r2 {
            if q2 >= 0x7fffffffffffffff {
                doAdd = true
            }
            q2 = q2 * 2 + 1
            r2 = r2 * 2 + 1 - d
        } else {
            if q2 >= 0x8000000000000000 {
                doAdd = true
            }
            q2 = q2 * 2
            r2 = r2 * 2 + 1
        }
        if delta := d - 1 - r2; !(p < 128 && (q1 < delta || (q1 == delta && r1 == 0))) {
            break
        }
    }
    return _MagicU64 { mulBy: q2 + 1, doAdd: doAdd, shiftBy: p - 64 }
}

/* d must not be -1, 0 or 1 */
func magicS32(d int32) _MagicS32 {
    const two31 = uint32(0x80000000)
    p  := int32(31)
    ad := uint32(d)
    if d < 0 {
        ad = -ad
    }
    t   := two31 + (uint32(d) >> 31)
    anc := t - 1 - t % ad
    q1  := two31 / anc
    r1  := two31 - q1 * anc
    q2  := two31 / ad
    r2  := two31 - q2 * ad
    for {
        p++
        q1, r1 = q1 * 2, r1 * 2
        if r1 >= anc {
            q1, r1 = q1 + 1, r1 - anc
        }
        q2, r2 = q2 * 2, r2 * 2
        if r2 >= ad {
            q2, r2 = q2 + 1, r2 - ad
        }
        if delta := ad - r2; !(q1 < delta || (q1 == delta && r1 == 0)) {
            break
        }
    }
    m := q2 + 1
    if d < 0 {
        m = -m
    }
    return _MagicS32 { mulBy: int32(m), shiftBy: p - 32 }
}

func magicS64(d int64) _MagicS64 {
    const two63 = uint64(0x8000000000000000)
    p  := int32(63)
    ad := uint64(d)
    if d < 0 {
        ad = -ad
    }
    t   := two63 + (uint64(d) >> 63)
    anc := t - 1 - t % ad
    q1  := two63 / anc
    r1  := two63 - q1 * anc
    q2  := two63 / ad
    r2  := two63 - q2 * ad
    for {
        p++
        q1, r1 = q1 * 2, r1 * 2
        if r1 >= anc {
            q1, r1 = q1 + 1, r1 - anc
        }
        q2, r2 = q2 * 2, r2 * 2
        if r2 >= ad {
            q2, r2 = q2 + 1, r2 - ad
        }
        if delta := ad - r2; !(q1 < delta || (q1 == delta && r1 == 0)) {
            break
        }
    }
    m := q2 + 1
    if d < 0 {
        m = -m
    }
    return _MagicS64 { mulBy: int64(m), shiftBy: p - 64 }
}
