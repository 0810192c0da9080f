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
)

// Severity is the ordered level attached to every log entry.
//
// Ordering: SeverityVerbose < SeverityDebug < SeverityInformation <
// SeverityWarning < SeverityError < SeverityCritical.
//
// The local file sink and the console sink record severities verbatim.
// The remote trace schema has no Debug level; the telemetry client maps
// SeverityDebug to SeverityVerbose for outgoing records only.
type Severity int

const (
	// SeverityVerbose is the most detailed level, normally disabled in production.
	SeverityVerbose Severity = iota
	// SeverityDebug is diagnostic detail for development.
	SeverityDebug
	// SeverityInformation is the default level for routine entries.
	SeverityInformation
	// SeverityWarning flags abnormal conditions that do not interrupt flow.
	SeverityWarning
	// SeverityError flags failures of an operation.
	SeverityError
	// SeverityCritical flags failures that threaten the whole process.
	SeverityCritical
)

// severityNames is indexed by Severity.
var severityNames = [...]string{
	"Verbose",
	"Debug",
	"Information",
	"Warning",
	"Error",
	"Critical",
}

// String returns the canonical name used in local file lines and remote
// trace records, e.g. "Information".
func (s Severity) String() string {
	if s < SeverityVerbose || s > SeverityCritical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity converts a case-insensitive severity name into a
// Severity. It returns ErrInvalidSeverity for unknown names.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(name, n) {
			return Severity(i), nil
		}
	}
	return SeverityInformation, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}
