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

// Package logging provides a multi-sink logging dispatcher with three
// independently toggleable outputs: an unstructured console writer with
// optional ANSI styling, a size-rotated per-source per-day local file
// writer, and a pluggable remote trace sink.
//
// A single Write call fans out to every enabled sink. Sinks are isolated
// from each other: a failure in one sink is reported through the
// configured EventHandler and never prevents the remaining sinks from
// running. Write never panics and never returns an error to its caller.
//
// Basic usage:
//
//	logger, err := logging.New(
//	    logging.WithDirectory("/var/log/myapp"),
//	    logging.WithSourceName("ingest-worker"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger.Write("service started")
//	logger.Write("cache miss", logging.WithSeverity(logging.SeverityWarning))
//	logger.Write("fatal disk error",
//	    logging.WithSeverity(logging.SeverityError),
//	    logging.WithForeground(logging.ColorRed),
//	)
//
// The remote sink is decoupled through the TraceSink interface so the
// telemetry client can be wired in without this package depending on it:
//
//	client, _ := telemetry.New()
//	logger, _ := logging.New(logging.WithTraceSink(client))
package logging
