// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/hbue-acm/ptaxml/lib/codec"
)

const (
	magic        = "PTAXCAP1"
	headerLength = len(magic) + 1 + 8 + 32

	// ArchiveVersion is the payload schema version written by Save.
	ArchiveVersion = 1
)

// ErrCorrupt reports an archive whose header, length, or digest does
// not check out.
var ErrCorrupt = errors.New("capture: archive is corrupt")

// Exchange is one recorded request and its response.
type Exchange struct {
	Method string `cbor:"method"`
	// Target is the request URI: path plus query.
	Target      string `cbor:"target"`
	Status      int    `cbor:"status"`
	ContentType string `cbor:"content_type,omitempty"`
	Body        []byte `cbor:"body,omitempty"`
}

// Archive is the decoded payload of an archive file.
type Archive struct {
	Version   int        `cbor:"version"`
	Exchanges []Exchange `cbor:"exchanges"`
}

// Encode serializes archive into the file format described in the
// package documentation. When the requested compression does not shrink
// the payload, it is stored uncompressed instead.
func Encode(archive *Archive, tag CompressionTag) ([]byte, error) {
	payload, err := codec.Marshal(archive)
	if err != nil {
		return nil, fmt.Errorf("capture: encoding archive: %w", err)
	}
	compressed, err := compress(payload, tag)
	if errors.Is(err, errIncompressible) {
		tag, compressed, err = CompressionNone, payload, nil
	}
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	digest := payloadDigest(payload)
	output := make([]byte, 0, headerLength+len(compressed))
	output = append(output, magic...)
	output = append(output, byte(tag))
	output = binary.BigEndian.AppendUint64(output, uint64(len(payload)))
	output = append(output, digest[:]...)
	output = append(output, compressed...)
	return output, nil
}

// Decode parses and verifies archive file bytes.
func Decode(data []byte) (*Archive, error) {
	if len(data) < headerLength || string(data[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: missing %s header", ErrCorrupt, magic)
	}
	position := len(magic)
	tag := CompressionTag(data[position])
	position++
	length := binary.BigEndian.Uint64(data[position:])
	position += 8
	var digest [32]byte
	copy(digest[:], data[position:position+32])
	position += 32

	if length > uint64(maxPayloadSize) {
		return nil, fmt.Errorf("%w: payload length %d exceeds limit", ErrCorrupt, length)
	}
	payload, err := decompress(data[position:], tag, int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if payloadDigest(payload) != digest {
		return nil, fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}

	var archive Archive
	if err := codec.Unmarshal(payload, &archive); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrCorrupt, err)
	}
	if archive.Version != ArchiveVersion {
		return nil, fmt.Errorf("capture: unsupported archive version %d", archive.Version)
	}
	return &archive, nil
}

// maxPayloadSize bounds the allocation made for a declared payload
// length before the digest can be checked.
const maxPayloadSize = 1 << 30

// Save writes archive to path.
func Save(path string, archive *Archive, tag CompressionTag) error {
	data, err := Encode(archive, tag)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("capture: writing %s: %w", path, err)
	}
	return nil
}

// Load reads and verifies the archive at path.
func Load(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: reading %s: %w", path, err)
	}
	archive, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return archive, nil
}
