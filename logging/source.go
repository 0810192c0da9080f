// Copyright 2026 The LogModule Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"path/filepath"
	"runtime"
	"strings"
)

// UnknownSource tags entries when no caller outside this module can be
// identified.
const UnknownSource = "UnknownScript"

// modulePrefix identifies this module's own frames in the call stack so
// the facade never names itself as the originating source.
const modulePrefix = "github.com/JackXuCN/LogModule"

// resolveSource returns the logical source name for an entry, in
// priority order: per-call override, configured source name, the
// outermost caller's file name (extension stripped), then the
// UnknownSource placeholder. It never fails.
func (l *Logger) resolveSource(override string) string {
	if override != "" {
		return override
	}
	if l.sourceName != "" {
		return l.sourceName
	}
	return CallerSource()
}

// CallerSource walks the stack for the first frame outside this module
// and derives a source name from its file with the extension stripped,
// e.g. "/srv/app/main.go" becomes "main". It falls back to
// UnknownSource and never fails.
func CallerSource() string {
	pcs := make([]uintptr, 24)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return UnknownSource
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, modulePrefix) &&
			!strings.HasPrefix(frame.Function, "runtime.") {
			base := filepath.Base(frame.File)
			if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." {
				return name
			}
		}
		if !more {
			return UnknownSource
		}
	}
}
