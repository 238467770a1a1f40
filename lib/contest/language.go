// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contest

import "strings"

// Language is one entry of the language definition table.
type Language struct {
	ID   string
	Name string
}

// Language IDs as they appear in <language> and <run> nodes.
const (
	LanguageC      = "1"
	LanguageCPP    = "2"
	LanguageJava   = "3"
	LanguagePython = "4"
)

var languages = []Language{
	{LanguageC, "c"},
	{LanguageCPP, "c++"},
	{LanguageJava, "java"},
	{LanguagePython, "python"},
}

// Languages returns the fixed language table in document order.
// The returned slice is a copy.
func Languages() []Language {
	result := make([]Language, len(languages))
	copy(result, languages)
	return result
}

// LanguageForCompiler maps a PTA compiler name to a language ID.
// Matching is case-insensitive. Unknown compilers map to LanguageC.
func LanguageForCompiler(compiler string) string {
	switch strings.ToUpper(compiler) {
	case "GCC", "CLANG":
		return LanguageC
	case "GXX", "CLANGXX", "C++":
		return LanguageCPP
	case "JAVA":
		return LanguageJava
	case "PYTHON3", "PYPY3":
		return LanguagePython
	default:
		return LanguageC
	}
}
