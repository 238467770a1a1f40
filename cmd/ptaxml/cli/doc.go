// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for ptaxml.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/ptaxml/commands and dispatched via [Command.Execute], which handles
// flag parsing, subcommand routing, logger construction, and structured
// help output with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]. Embedding [JSONOutput] adds a --json flag. Every
// runnable command also accepts --log-level, which selects the level of
// the *slog.Logger passed to Run.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
package cli
