// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package contestxml builds the ICPC contest event document consumed by
// scoreboard and resolver tooling.
//
// A Document is an append-only tree under a single <contest> root. The
// exporter adds sections in the order the consumer expects:
//
//	info, region, judgement*, language*, problem*, team*, run*, finalized
//
// Every leaf is a text element; there are no attributes. Booleans are
// spelled the way the consumer reads them: "true"/"false" in judgement
// and run flags, "True"/"False" in the judged and started fields.
//
// Render turns a Document into bytes without touching it, and WriteFile
// puts those bytes on disk atomically so a failed export never leaves a
// half-written file behind.
package contestxml
