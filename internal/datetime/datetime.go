// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package datetime recognizes ISO 8601 / RFC 3339 date and time literals.
package datetime

import (
	"regexp"
	"time"
)

var (
	dateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timeRe     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d+)?(z|Z|[+-]\d{2}:\d{2})?$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[Tt ](.+)$`)
)

// IsDate reports whether s is a full date such as "2026-01-31".
func IsDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// IsTime reports whether s is a time of day such as "13:45:00" or
// "13:45:00.25+02:00".
func IsTime(s string) bool {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return validClock(m[1], m[2], m[3])
}

// IsDateTime reports whether s is an RFC 3339 date-time with an optional
// zone offset. A space is accepted in place of the "T" separator.
func IsDateTime(s string) bool {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return IsDate(m[1]) && IsTime(m[2])
}

func validClock(h, m, s string) bool {
	hh := atoi2(h)
	mm := atoi2(m)
	ss := atoi2(s)
	// 60 allows a leap second.
	return hh <= 23 && mm <= 59 && ss <= 60
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
