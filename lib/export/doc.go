// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package export converts one PTA problem set into a contest XML file.
//
// A Generator is bound to an organization and region (every team is
// filed under them) and a Source, normally a *pintia.Client. After a
// problem set is selected, Generate runs the pipeline strictly in order:
//
//  1. metadata: the problem-set record becomes <info> and fixes the
//     contest start used for relative times
//  2. static definitions: region, judgements, languages
//  3. problems: sequential ids and letters in listing order
//  4. roster: one <team> per member, names resolved through the
//     accumulated exam and student maps
//  5. submissions: walked backward by cursor, one <run> each
//  6. finalization
//
// The document is only rendered and written once every step has
// succeeded, so an error at any step leaves the output path untouched.
// Each Generate call starts from empty state; a Generator can be reused.
package export
