package policy

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrDurationFormat is returned by ParseDuration for strings outside the
	// {integer}{unit} grammar.
	ErrDurationFormat = errors.New("invalid duration format")

	// ErrSizeFormat is returned by ParseSize for strings outside the
	// {integer}{KB|MB|GB} grammar.
	ErrSizeFormat = errors.New("invalid size format")
)

const (
	day  = 24 * time.Hour
	year = 365 * day
)

var (
	durationPattern = regexp.MustCompile(`^([0-9]+)(min|hours|hour|h|days|day|d|years|year)$`)
	sizePattern     = regexp.MustCompile(`^([0-9]+)(KB|MB|GB)$`)
)

var durationUnits = map[string]time.Duration{
	"min":   time.Minute,
	"h":     time.Hour,
	"hour":  time.Hour,
	"hours": time.Hour,
	"d":     day,
	"day":   day,
	"days":  day,
	"year":  year,
	"years": year,
}

// Sizes use binary multiples.
var sizeUnits = map[string]int64{
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
}

// IsDuration reports whether s matches the duration grammar, e.g. "15min",
// "24h", "7d", "90days" or "3years".
func IsDuration(s string) bool {
	return durationPattern.MatchString(s)
}

// ParseDuration converts a policy duration string into a time.Duration.
// Years are 365 days.
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrDurationFormat, s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrDurationFormat, s, err)
	}
	unit := durationUnits[m[2]]
	if n > int64(1<<63-1)/int64(unit) {
		return 0, fmt.Errorf("%w: %q overflows", ErrDurationFormat, s)
	}
	return time.Duration(n) * unit, nil
}

// IsSize reports whether s matches the size grammar, e.g. "5MB".
func IsSize(s string) bool {
	return sizePattern.MatchString(s)
}

// ParseSize converts a size string into a byte count.
func ParseSize(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrSizeFormat, s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrSizeFormat, s, err)
	}
	unit := sizeUnits[m[2]]
	if n > (1<<63-1)/unit {
		return 0, fmt.Errorf("%w: %q overflows", ErrSizeFormat, s)
	}
	return n * unit, nil
}
