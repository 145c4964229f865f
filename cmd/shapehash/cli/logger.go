// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. Format
// "text" and "json" pick the handler directly. Format "auto" uses
// slog.TextHandler when w is a terminal and slog.JSONHandler when it is
// piped or redirected (CI, scripts), so machine consumers get
// parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr, level, "auto").With(
//	    "command", "check",
//	    "manifest", path,
//	)
func NewCommandLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if useText(w, format) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func useText(w io.Writer, format string) bool {
	switch format {
	case "text":
		return true
	case "json":
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
