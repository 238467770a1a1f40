// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDuration is the contest length used when neither the explicit
// duration nor the start/end window yields a positive value.
const DefaultDuration = 5 * time.Hour

// timestampLayouts are tried in order by ParseTimestamp. Layouts without
// a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a PTA ISO-8601 timestamp. Both "Z" and numeric
// offsets are accepted, fractional seconds are optional, and a value
// with no zone is read as UTC. The empty string is the Unix epoch. The
// result is always in UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Unix(0, 0).UTC(), nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// ResolveDuration picks the contest length in seconds. An explicit
// positive duration wins. Otherwise, when the end time is known and
// end-start is positive, that difference (truncated to whole seconds)
// is used. Anything else yields DefaultDuration.
func ResolveDuration(explicitSeconds int64, start, end time.Time, endKnown bool) int64 {
	if explicitSeconds > 0 {
		return explicitSeconds
	}
	if endKnown {
		if window := int64(end.Sub(start) / time.Second); window > 0 {
			return window
		}
	}
	return int64(DefaultDuration / time.Second)
}

// FormatLength renders seconds as H:MM:SS with an unpadded hour field
// that may exceed 23. Negative input is treated as zero.
func FormatLength(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds%60)
}

// RelativeSeconds returns whole seconds from start to at, truncated
// toward zero and clamped to zero.
func RelativeSeconds(start, at time.Time) int64 {
	seconds := int64(at.Sub(start) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}

// FormatUnix renders t as Unix seconds with a fixed number of decimals.
func FormatUnix(t time.Time, decimals int) string {
	return strconv.FormatFloat(unixSeconds(t), 'f', decimals, 64)
}

// FormatUnixShortest renders t as Unix seconds in the shortest decimal
// form that round-trips, always keeping at least one fractional digit
// ("1767225600.0", "1767225600.25").
func FormatUnixShortest(t time.Time) string {
	text := strconv.FormatFloat(unixSeconds(t), 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
