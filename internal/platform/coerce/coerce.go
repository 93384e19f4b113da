// Package coerce contains the defensive cell coercions used by the CSV
// importers. Optional numeric fields degrade to zero instead of failing a
// row; dates degrade to nil.
package coerce

import (
	"strconv"
	"strings"
	"time"
)

// Int strips every non-digit character and parses what remains.
// Empty or fully non-numeric input yields 0.
func Int(s string) int {
	return int(digitsOnly(s))
}

// Int64 is Int for wide values such as budgets.
func Int64(s string) int64 {
	return digitsOnly(s)
}

// CastInt parses the leading optionally-signed integer prefix of s, matching
// a plain numeric cast: "8.5" is 8, "-3" is -3, non-numeric input is 0.
func CastInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	i := 0
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i = 1
	}
	end := i
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == i {
		return 0
	}
	v, _ := strconv.Atoi(s[i:end])
	if neg {
		return -v
	}
	return v
}

// Money parses a currency amount from an interactive form field. Plain
// numerics are truncated to an integer; anything formatted ("1 234 567",
// "999.999 €") falls back to the digit-strip rule. Empty input yields 0.
// The bulk importer does not use this: dump files write market values with
// dot-as-thousands separators, which the digit-strip rule (Int64) handles.
func Money(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return digitsOnly(s)
}

// Overall parses a player rating. When the leading digit run is 1-2 digits
// long only that prefix counts, which handles ratings formatted like
// "88 (CB)". Otherwise the value is cast directly.
func Overall(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	run := 0
	for run < len(s) && s[run] >= '0' && s[run] <= '9' {
		run++
	}
	if run >= 1 && run <= 2 {
		v, _ := strconv.Atoi(s[:run])
		return v
	}
	return leadingInt(s)
}

// Float parses a decimal value such as an average age; unparseable input
// yields 0.
func Float(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return float64(leadingInt(s))
}

// DateMs parses a contract date cell to epoch milliseconds. A pure-digit
// string of length >= 12 is already epoch milliseconds and passes through
// unchanged. Otherwise the first 10 characters must parse strictly as
// YYYY-MM-DD, converted to midnight UTC. Any other shape yields nil.
func DateMs(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if len(s) >= 12 && allDigits(s) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return &v
	}

	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// MsToYMD formats epoch milliseconds back to YYYY-MM-DD in UTC.
func MsToYMD(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

func digitsOnly(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		// Longer than an int64; saturate rather than fail the row.
		return int64(^uint64(0) >> 1)
	}
	return v
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, _ := strconv.Atoi(s[:end])
	return v
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
