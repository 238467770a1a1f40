// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Ptaxml exports PTA (pintia.cn) problem sets as ICPC-style contest XML.
// It provides subcommands to list problem sets (list), write the contest
// document (generate), manage sealed session cookies (cookies), and
// print build information (version).
package main
