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

package opts

// Options controls how the pass pipeline treats a function. The zero value
// disables all checking and tracing, GetDefaultOptions picks the defaults
// up from the environment instead.
type Options struct {
	CheckIR     bool
	DebugPasses bool
}

func GetDefaultOptions() Options {
	return Options{
		CheckIR:     CheckIR,
		DebugPasses: DebugPasses,
	}
}
