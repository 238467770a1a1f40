// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides age encryption and decryption for PTA session
// cookie files. It wraps filippo.io/age with the operations ptaxml
// needs: generate an X25519 identity, encrypt a cookie file to one or
// more recipients, and decrypt it again with identities read from an
// identity file.
//
// Sealed files use the binary age format, so they interoperate with the
// age command line tool: a file sealed here can be opened with
// "age -d -i key.txt" and vice versa.
//
// This package is used by:
//   - lib/config (decrypt cookies.file when it ends in .age)
//   - ptaxml cookies keygen and ptaxml cookies seal
package sealed
