package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

func hasContent(field string) bool {
	return strings.TrimSpace(field) != ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// fieldToNumber parses an ASCII decimal field into T.
func fieldToNumber[T constraints.Integer | constraints.Float](field string) (T, error) {
	field = strings.TrimSpace(field)
	var result T
	switch any(result).(type) {
	case float32, float64:
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return *new(T), fmt.Errorf("%w: %q", ErrInvalidNumber, field)
		}
		return T(f), nil
	default:
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return *new(T), fmt.Errorf("%w: %q", ErrInvalidNumber, field)
		}
		return T(n), nil
	}
}

// optionalNumber returns nil for an empty or unparsable field.
func optionalNumber[T constraints.Integer | constraints.Float](field string) *T {
	if !hasContent(field) {
		return nil
	}
	v, err := fieldToNumber[T](field)
	if err != nil {
		return nil
	}
	return &v
}

// parseTimeOfDay reads "HHMM" or "HHMMSS" with an optional fractional part
// into the offset since midnight.
func parseTimeOfDay(field string) (time.Duration, error) {
	field = strings.TrimSpace(field)
	base, frac, hasFrac := strings.Cut(field, ".")
	if !isDigits(base) || (len(base) != 4 && len(base) != 6) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, field)
	}
	hh, _ := strconv.Atoi(base[0:2])
	mm, _ := strconv.Atoi(base[2:4])
	ss := 0
	if len(base) == 6 {
		ss, _ = strconv.Atoi(base[4:6])
	}
	if hh > 23 || mm > 59 || ss > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, field)
	}
	d := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute + time.Duration(ss)*time.Second
	if hasFrac && frac != "" {
		if !isDigits(frac) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, field)
		}
		if len(frac) > 9 {
			frac = frac[:9]
		}
		ns, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
		d += time.Duration(ns)
	}
	return d, nil
}

// parseDateTime combines a "DDMMYY" date with a time of day. Two digit years
// are always taken to be 20YY.
func parseDateTime(dateField, timeField string) (time.Time, error) {
	dateField = strings.TrimSpace(dateField)
	if len(dateField) != 6 || !isDigits(dateField) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateField)
	}
	day, _ := strconv.Atoi(dateField[0:2])
	month, _ := strconv.Atoi(dateField[2:4])
	year, _ := strconv.Atoi(dateField[4:6])
	year += 2000
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateField)
	}
	tod, err := parseTimeOfDay(timeField)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Add(tod), nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func formatTimeOfDay(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if d > 0 {
		out += fmt.Sprintf(".%03d", d/time.Millisecond)
	}
	return out
}
