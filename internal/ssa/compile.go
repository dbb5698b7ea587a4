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
    `os`

    `github.com/lumen-lang/lumen/internal/opts`
)

type Pass interface {
    Apply(*Func)
}

type PassDescriptor struct {
    Pass Pass
    Name string
}

var Passes = [...]PassDescriptor {
    { Name: "Pre-Lowering Optimization", Pass: new(Preopt) },
}

// RunPasses applies every registered rewrite pass to fn in order. Passes
// signal malformed IR by panicking, the panic is recovered here and handed
// back as an error so a single bad function does not take down the caller.
func RunPasses(fn *Func, options opts.Options) (err error) {
    defer func() {
        if v := recover(); v != nil {
            err = fmt.Errorf("ssa: pass failed on %s: %v", fn.Name, v)
        }
    }()
    if options.CheckIR {
        fn.Verify()
    }
    for _, p := range Passes {
        p.Pass.Apply(fn)
        if options.DebugPasses {
            fmt.Fprintf(os.Stderr, "* SSA %s (%s)\n%s\n", p.Name, fn.Name, fn)
        }
        if options.CheckIR {
            fn.Verify()
        }
    }
    return
}

// Optimize runs the pass pipeline with defaults taken from the environment.
func Optimize(fn *Func) error {
    return RunPasses(fn, opts.GetDefaultOptions())
}
