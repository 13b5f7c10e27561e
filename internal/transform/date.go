package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
)

var (
	dmyDot   = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)
	dmySlash = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// DateDayMonthYear parses DD.MM.YYYY into an ISO calendar date.
// "31.12.2025" → "2025-12-31".
func DateDayMonthYear(raw string) (model.CanonicalValue, error) {
	m := dmyDot.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return model.CanonicalValue{}, fmt.Errorf("invalid date format (expected DD.MM.YYYY): %q", raw)
	}
	return isoDate(m[1], m[2], m[3])
}

// DateDayMonthYearSlash parses DD/MM/YYYY into an ISO calendar date.
func DateDayMonthYearSlash(raw string) (model.CanonicalValue, error) {
	m := dmySlash.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return model.CanonicalValue{}, fmt.Errorf("invalid date format (expected DD/MM/YYYY): %q", raw)
	}
	return isoDate(m[1], m[2], m[3])
}

// DateMonthDayYear parses MM/DD/YYYY into an ISO calendar date.
func DateMonthDayYear(raw string) (model.CanonicalValue, error) {
	m := dmySlash.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return model.CanonicalValue{}, fmt.Errorf("invalid date format (expected MM/DD/YYYY): %q", raw)
	}
	return isoDate(m[2], m[1], m[3])
}

// isoDate range-checks day and month and renders YYYY-MM-DD as a text value.
func isoDate(day, month, year string) (model.CanonicalValue, error) {
	d, _ := strconv.Atoi(day)
	if d < 1 || d > 31 {
		return model.CanonicalValue{}, fmt.Errorf("invalid day: %s", day)
	}
	m, _ := strconv.Atoi(month)
	if m < 1 || m > 12 {
		return model.CanonicalValue{}, fmt.Errorf("invalid month: %s", month)
	}
	return model.TextValue(year + "-" + month + "-" + day), nil
}
