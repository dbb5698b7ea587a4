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

import (
	"os"
	"strconv"
)

var (
	CheckIR     = parseBoolOrDefault("LUMEN_CHECK_IR", false)
	DebugPasses = parseBoolOrDefault("LUMEN_DEBUG_PASSES", false)
)

func parseBoolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("lumen: invalid value for " + key)
	} else {
		return val
	}
}
