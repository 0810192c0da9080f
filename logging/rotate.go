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
)

// archiveTimeFormat names rotated files: <path>.<UTC yyyyMMdd_HHmmss>.
const archiveTimeFormat = "20060102_150405"

// maxArchiveCollisions bounds the counter suffix search; rotation gives
// up rather than scanning forever on a pathological directory.
const maxArchiveCollisions = 1000

// checkAndRotate archives path when its size exceeds the configured
// threshold, freeing the original path for fresh writes.
//
// A missing path or anything that is not a regular file is a no-op. A
// file at or under the threshold is a no-op. Two rotations within the
// same second would collide on the archive name; a numeric counter
// suffix (<path>.<timestamp>.1, .2, ...) disambiguates instead of
// overwriting the earlier archive.
//
// Callers must hold l.mu.
func (l *Logger) checkAndRotate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	if info.Size() <= l.maxFileSize {
		return nil
	}

	stamp := l.now().UTC().Format(archiveTimeFormat)
	archive := path + "." + stamp
	for n := 1; ; n++ {
		if _, err := os.Stat(archive); os.IsNotExist(err) {
			break
		}
		if n > maxArchiveCollisions {
			return fmt.Errorf("no free archive name for %q at %s", path, stamp)
		}
		archive = fmt.Sprintf("%s.%s.%d", path, stamp, n)
	}

	if err := os.Rename(path, archive); err != nil {
		return fmt.Errorf("archiving %q: %w", path, err)
	}
	return nil
}
