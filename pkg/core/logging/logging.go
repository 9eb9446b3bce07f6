// Copyright 2025 Philipp Hossner
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

// Package logging configures log/slog for tools embedding the parser.
//
// Output is logfmt-style key=value text. String levels map to slog levels;
// TRACE sits below DEBUG for very verbose diagnostics such as per-line
// recognition traces.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is a log level below Debug, following the slog convention of
// 4-level gaps: TRACE=-8, DEBUG=-4, INFO=0, WARN=4, ERROR=8.
const LevelTrace = slog.Level(-8)

// NewLogger creates a logger writing logfmt text to stdout at the given
// string level. Supported levels (case-insensitive): ERROR, WARNING,
// INFO, DEBUG, TRACE. Invalid or empty levels default to INFO.
func NewLogger(level string) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter is NewLogger with an explicit destination, mainly
// for tests.
func NewLoggerWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel converts a string log level to a slog.Level, defaulting to
// INFO for anything it does not recognize.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR":
		return slog.LevelError
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "INFO":
		return slog.LevelInfo
	case "DEBUG":
		return slog.LevelDebug
	case "TRACE":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}
