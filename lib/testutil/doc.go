// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for ptaxml packages.
//
// [FakeUpstream] is a scripted stand-in for the PTA API on an httptest
// server. Tests register canned responses per path (optionally narrowed
// by query parameters), point a pintia.Client at [FakeUpstream.BaseURL],
// and afterwards inspect the recorded [Request] list to assert on
// pagination cursors, headers, and cookies.
//
// Helpers call t.Fatalf on setup failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no ptaxml-internal dependencies.
package testutil
