// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O utilities for ptaxml.
//
// Response helpers (ReadResponse, DecodeResponse) bound all response body
// reads at MaxResponseSize to prevent unbounded memory allocation from a
// misbehaving upstream. Diagnostic helpers (Snippet, IsJSONContentType)
// support the error reporting in lib/pintia.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"
)

// MaxResponseSize is the bound on JSON API response body reads: 256 MB.
// The largest legitimate response is a submissions page of 100 entries,
// orders of magnitude smaller.
const MaxResponseSize int64 = 256 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// IsJSONContentType reports whether a Content-Type header value names
// application/json. Parameters such as charset are ignored. A header
// that does not parse as a media type falls back to a substring check,
// since some gateways emit sloppy values like "application/json;".
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json"
}

// Snippet returns at most limit runes of body with every newline and
// carriage return replaced by a space, for embedding an unexpected
// response (usually an HTML login page) in a one-line error message.
func Snippet(body []byte, limit int) string {
	text := string(body)
	runes := 0
	for index := range text {
		if runes == limit {
			text = text[:index]
			break
		}
		runes++
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
}
