// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the ptaxml command tree: list, generate,
// cookies, and version.
//
// Commands that talk to PTA share the session flags in sessionParams:
// --config, --cookie, and the capture flags --record, --replay, and
// --compression. A recorded archive lets a later run reproduce the
// same document offline with --replay.
package commands
