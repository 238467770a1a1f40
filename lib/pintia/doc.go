// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package pintia provides a typed Go client for the admin JSON API of
// the PTA (pintia.cn) online judge.
//
// The API has no token authentication: requests ride on a browser
// session, so the client carries the session cookies (installed with
// SetCookies) and presents browser-like headers. Cookie acquisition is
// out of scope; see lib/config for the places cookies are loaded from.
//
// Every call retries 500/502/503/504 responses and transport failures
// with exponential backoff on the injected clock. A final response that
// is not a 200 with a JSON content type is fatal: its raw body is dumped
// to a debug file (usually the login page PTA serves once the session
// has expired) and the call returns an *AuthError for 401 or an
// *APIError otherwise.
//
// Pagination differs per resource and is exposed as it is on the wire:
// problem sets and roster members are page-numbered, submissions are
// cursor-paginated backward in time, and problems come in one call.
package pintia
