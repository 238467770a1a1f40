// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the ptaxml
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When they are not injected, the VCS stamp that go build embeds is
// used instead, if there is one.
package version
