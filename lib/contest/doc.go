// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package contest holds the vocabulary shared by the PTA client and the
// contest XML writer: judgement and language tables, the mapping from
// PTA verdicts and compiler names onto them, problem letters, and the
// time arithmetic for contest-relative submission times.
//
// Everything here is pure. Lookups are closed enumerations with an
// explicit default arm: an unrecognized verdict is reported as WA and an
// unrecognized compiler as language 1 (c).
package contest
