package model

import (
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

var (
	canonicalDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDate     = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`)
)

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// NormalizeDate returns s in canonical YYYY-MM-DD form. Canonical input is
// returned unchanged and YYYY/MM/DD input is rewritten with dashes. Anything
// else, including impossible calendar dates such as 2024-02-30, reports false.
func NormalizeDate(s string) (string, bool) {
	if _, ok := dateParts(s, canonicalDate); ok {
		return s, true
	}
	t, ok := dateParts(s, slashDate)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

// IsDateFixable reports whether s is a slash-form date that NormalizeDate
// would rewrite.
func IsDateFixable(s string) bool {
	n, ok := NormalizeDate(s)
	return ok && n != s
}

func dateParts(s string, pattern *regexp.Regexp) (time.Time, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	// time.Date normalizes overflowing days, so a round trip catches Feb 30.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
