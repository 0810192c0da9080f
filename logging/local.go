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
	"os"
	"path/filepath"
)

// Timestamp layouts of the local file format.
const (
	lineTimeFormat = "2006-01-02 15:04:05.000" // local time, on every line
	fileDateFormat = "20060102"                // UTC date, in the file name
)

// writeLocal appends one formatted line to the current day's file for
// the entry's source, rotating first when the file exceeds the size
// threshold.
//
// File layout: <directory>/<source>_<UTC yyyyMMdd>.<extension>, one file
// per source per calendar day. Files are UTF-8, created on first write.
//
// The whole rotate-then-append sequence runs under l.mu so concurrent
// writers cannot both decide to append after only one of them rotated.
func (l *Logger) writeLocal(message string, req *writeRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := l.directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory %q: %w", dir, err)
	}

	source := l.resolveSource(req.source)
	name := fmt.Sprintf("%s_%s.%s", source, l.now().UTC().Format(fileDateFormat), l.fileExtension)
	path := filepath.Join(dir, name)

	// Rotation failure must never block the write that follows it.
	if err := l.checkAndRotate(path); err != nil {
		l.emitDebug("log rotation failed", "path", path, "error", err)
	}

	line := fmt.Sprintf("[%s] [%s] %s", l.now().Format(lineTimeFormat), req.severity, message)
	if !req.noNewline {
		line += "\n"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("appending to log file %q: %w", path, err)
	}
	return nil
}
