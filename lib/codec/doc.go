// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides ptaxml's standard CBOR encoding configuration.
//
// ptaxml uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: the PTA API, cookie files, and CLI
//     --json output.
//   - CBOR for its own on-disk state: capture archives written by
//     `ptaxml generate --record` and read back by --replay.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same recorded session always produces identical archive bytes, so an
// archive digest identifies its content.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that are only ever CBOR carry `cbor` struct tags. Never put both
// `cbor` and `json` tags on the same field.
package codec
