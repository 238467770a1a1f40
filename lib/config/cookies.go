// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/hbue-acm/ptaxml/lib/sealed"
)

// CookieVariable is the dotenv and process environment key holding a
// cookie header string.
const CookieVariable = "PTA_COOKIES"

// SessionCookies merges session cookies from every configured source. flags
// are name=value pairs and take precedence over everything else. The
// result may be empty; the caller decides whether that is fatal.
func (c *Config) SessionCookies(flags []string) (map[string]string, error) {
	cookies := make(map[string]string)

	if c.Cookies.EnvFile != "" {
		values, err := godotenv.Read(c.Cookies.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("reading cookies.env_file: %w", err)
		}
		if header, ok := values[CookieVariable]; ok {
			parsed, err := ParseCookieHeader(header)
			if err != nil {
				return nil, fmt.Errorf("%s in %s: %w", CookieVariable, c.Cookies.EnvFile, err)
			}
			maps.Copy(cookies, parsed)
		}
	}

	if header, ok := os.LookupEnv(CookieVariable); ok {
		parsed, err := ParseCookieHeader(header)
		if err != nil {
			return nil, fmt.Errorf("%s environment variable: %w", CookieVariable, err)
		}
		maps.Copy(cookies, parsed)
	}

	if c.Cookies.File != "" {
		parsed, err := c.readCookieFile()
		if err != nil {
			return nil, err
		}
		maps.Copy(cookies, parsed)
	}

	for _, flag := range flags {
		name, value, ok := strings.Cut(flag, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--cookie %q: want name=value", flag)
		}
		cookies[name] = value
	}

	return cookies, nil
}

func (c *Config) readCookieFile() (map[string]string, error) {
	var data []byte
	var err error
	if sealed.IsSealed(c.Cookies.File) {
		data, err = sealed.DecryptFile(c.Cookies.File, c.Cookies.IdentityFile)
	} else {
		data, err = os.ReadFile(c.Cookies.File)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cookies.file: %w", err)
	}
	return ParseCookieFile(data)
}

// ParseCookieFile parses a JSON object of cookie name to value.
// Comments and trailing commas are allowed.
func ParseCookieFile(data []byte) (map[string]string, error) {
	var cookies map[string]string
	if err := json.Unmarshal(jsonc.ToJSON(data), &cookies); err != nil {
		return nil, fmt.Errorf("parsing cookie file: %w", err)
	}
	if cookies == nil {
		cookies = make(map[string]string)
	}
	return cookies, nil
}

// ParseCookieHeader parses a Cookie header style string such as
// "PTASession=abc; JSESSIONID=def". Empty segments are skipped.
func ParseCookieHeader(header string) (map[string]string, error) {
	cookies := make(map[string]string)
	for segment := range strings.SplitSeq(header, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, ok := strings.Cut(segment, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed cookie %q", segment)
		}
		cookies[name] = strings.TrimSpace(value)
	}
	return cookies, nil
}
