// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is a
// terminal, uses slog.TextHandler for human-readable output. When w is
// piped or redirected (cron, CI, scripts), uses slog.JSONHandler for
// machine-parseable output.
//
// levelName is one of debug, info, warn, or error; empty means info.
func NewCommandLogger(w io.Writer, levelName string) (*slog.Logger, error) {
	var level slog.Level
	if levelName != "" {
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			return nil, fmt.Errorf("--log-level %q: want debug, info, warn, or error", levelName)
		}
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
