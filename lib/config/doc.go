// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration and session cookie loading
// for ptaxml.
//
// Configuration is loaded from a single file specified by either the
// PTAXML_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). Without either, [Default] applies. There is no
// ~/.config discovery and no automatic file search.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Session cookies come from several sources, merged by
// [Config.SessionCookies] so that later sources win:
//
//  1. the PTA_COOKIES entry of cookies.env_file (read with godotenv)
//  2. the PTA_COOKIES process environment variable
//  3. cookies.file, a JSON object with comments allowed, sealed with
//     age when its name ends in .age
//  4. explicit name=value pairs from --cookie flags
//
// Key exports:
//
//   - [Config] -- master struct with API and Cookies sections
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [ParseCookieHeader] -- parses "a=1; b=2" cookie strings
package config
