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
	"fmt"
	"strings"
	"sync"
)

// ANSI control sequences.
const colorReset = "\033[0m"

// Color is a console color applied to an entry when explicitly requested.
// The zero value ColorDefault inherits the terminal's own styling.
type Color int

const (
	// ColorDefault inherits the terminal default.
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// foreground returns the ANSI foreground sequence, or "" for the default.
func (c Color) foreground() string {
	if c < ColorBlack || c > ColorWhite {
		return ""
	}
	return fmt.Sprintf("\033[%dm", 29+int(c))
}

// background returns the ANSI background sequence, or "" for the default.
func (c Color) background() string {
	if c < ColorBlack || c > ColorWhite {
		return ""
	}
	return fmt.Sprintf("\033[%dm", 39+int(c))
}

// consoleBuilderPool provides reusable [strings.Builder] instances for
// formatting console entries.
var consoleBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// writeConsole writes the raw message to the console writer.
//
// Console output is intentionally unstructured: no timestamp, no
// severity tag. Colors are emitted only when the call supplied them so
// unstyled entries inherit whatever the terminal is already doing.
func (l *Logger) writeConsole(message string, req *writeRequest) error {
	b := consoleBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer consoleBuilderPool.Put(b)

	styled := false
	if req.hasFg {
		if seq := req.foreground.foreground(); seq != "" {
			b.WriteString(seq)
			styled = true
		}
	}
	if req.hasBg {
		if seq := req.background.background(); seq != "" {
			b.WriteString(seq)
			styled = true
		}
	}

	b.WriteString(message)
	if styled {
		b.WriteString(colorReset)
	}
	if !req.noNewline {
		b.WriteString("\n")
	}

	if _, err := l.consoleOut.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("console write: %w", err)
	}
	return nil
}
