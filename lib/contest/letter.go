// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contest

// Letter returns the problem letter for a zero-based index: A through Z,
// then AA, AB, ... in spreadsheet column order. Negative indexes return
// the empty string.
func Letter(index int) string {
	if index < 0 {
		return ""
	}
	var buffer [16]byte
	position := len(buffer)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		position--
		buffer[position] = byte('A' + (n-1)%26)
	}
	return string(buffer[position:])
}
