// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// payloadDomainKey separates archive payload digests from document
// digests: the same bytes hash differently in the two roles. The key is
// the ASCII domain name, zero-padded to 32 bytes.
var payloadDomainKey = [32]byte{
	'p', 't', 'a', 'x', 'm', 'l', '.', 'c', 'a', 'p', 't', 'u', 'r', 'e', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd',
}

// Digest returns the hex BLAKE3-256 digest of data. The CLI logs it for
// every generated document so two runs can be compared at a glance.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func payloadDigest(data []byte) [32]byte {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("capture: " + err.Error())
	}
	hasher.Write(data)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}
