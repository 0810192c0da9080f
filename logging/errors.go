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

import "errors"

// Sentinel errors checked with [errors.Is].
var (
	// ErrInvalidSeverity indicates an unknown severity name was passed to
	// [ParseSeverity]. Valid names: Verbose, Debug, Information, Warning,
	// Error, Critical (case-insensitive).
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidMaxFileSize indicates a non-positive rotation threshold.
	ErrInvalidMaxFileSize = errors.New("max file size must be positive")

	// ErrNilConsoleOutput indicates a nil writer was provided to
	// [WithConsoleOutput]. This is a programmer error and is caught during
	// initialization.
	ErrNilConsoleOutput = errors.New("console output writer is nil")

	// ErrDirectoryNotFound is returned by [Logger.SetDirectory] when the
	// target directory does not exist and createIfMissing is false.
	ErrDirectoryNotFound = errors.New("log directory does not exist")
)
