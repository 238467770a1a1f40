// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"errors"
	"fmt"
	"strings"
)

// AuthError reports that PTA rejected the session (HTTP 401). The
// session cookies are missing or expired.
type AuthError struct {
	// URL is the request that was rejected.
	URL string

	// DumpPath is the absolute path of the debug dump holding the
	// response body, or empty if the dump could not be written.
	DumpPath string
}

func (err *AuthError) Error() string {
	return "pintia: authentication failed (HTTP 401): check the session cookies"
}

// APIError reports any other failed call: a non-200 response, a
// response that is not JSON, a JSON body that does not decode, or a
// transport failure that persisted through every retry.
type APIError struct {
	// StatusCode is the HTTP status of the final response, or zero
	// when no response was received.
	StatusCode int

	// URL is the request that failed.
	URL string

	// ContentType is the Content-Type of the final response.
	ContentType string

	// Snippet holds the start of a non-JSON body, newlines flattened.
	Snippet string

	// Message describes the failure.
	Message string

	// DumpPath is the absolute path of the debug dump, if one was
	// written.
	DumpPath string

	// Err is the underlying cause for transport and decoding failures.
	Err error
}

func (err *APIError) Error() string {
	var builder strings.Builder
	builder.WriteString("pintia: ")
	if err.StatusCode != 0 {
		fmt.Fprintf(&builder, "HTTP %d: ", err.StatusCode)
	}
	builder.WriteString(err.Message)
	if err.Snippet != "" {
		fmt.Fprintf(&builder, ": %s...", err.Snippet)
	}
	if err.Err != nil {
		fmt.Fprintf(&builder, ": %v", err.Err)
	}
	return builder.String()
}

func (err *APIError) Unwrap() error { return err.Err }

// IsAuth reports whether err is or wraps an *AuthError.
func IsAuth(err error) bool {
	var authError *AuthError
	return errors.As(err, &authError)
}

// IsAPI reports whether err is or wraps an *APIError.
func IsAPI(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError)
}
