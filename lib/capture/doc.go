// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture records the HTTP exchanges of an export and replays
// them later without network access.
//
// A Recorder wraps the client's transport and keeps every response it
// sees. Saving it produces an archive file:
//
//	offset  size  field
//	0       8     magic "PTAXCAP1"
//	8       1     compression tag (0 none, 1 lz4, 2 zstd)
//	9       8     uncompressed payload length, big-endian
//	17      32    BLAKE3 digest of the uncompressed payload
//	49      ...   payload, compressed with the tagged algorithm
//
// The payload is a deterministic CBOR Archive (see lib/codec), so the
// same session always yields the same archive. Load verifies the length
// and digest before decoding.
//
// A Replayer answers requests from a loaded archive, matching on method
// and request target (path plus query). Repeated requests for the same
// target are answered in recorded order. An unrecorded request fails
// like a transport error.
package capture
