package types

import (
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// Resolution is a bar timeframe written as a multiplier followed by a unit:
// s (second), m (minute), h (hour), d (day), w (week) or M (month),
// e.g. "1m", "15m", "4h", "1d", "1w", "1M".
type Resolution string

const (
	ResolutionOneSecond      Resolution = "1s"
	ResolutionOneMinute      Resolution = "1m"
	ResolutionFiveMinutes    Resolution = "5m"
	ResolutionFifteenMinutes Resolution = "15m"
	ResolutionThirtyMinutes  Resolution = "30m"
	ResolutionOneHour        Resolution = "1h"
	ResolutionFourHours      Resolution = "4h"
	ResolutionOneDay         Resolution = "1d"
	ResolutionOneWeek        Resolution = "1w"
	ResolutionOneMonth       Resolution = "1M"
)

// nominal month length, used only to order resolutions
const monthDuration = 30 * 24 * time.Hour

// epochMonday is the first Monday on or after the Unix epoch.
var epochMonday = time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC)

// ParseResolution parses and validates a resolution string.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(s)
	if err := r.Validate(); err != nil {
		return "", err
	}

	return r, nil
}

// IsZero reports whether the resolution is unset.
func (r Resolution) IsZero() bool {
	return r == ""
}

// Validate checks the resolution syntax.
func (r Resolution) Validate() error {
	_, _, err := r.parts()

	return err
}

// Multiplier returns the numeric part of the resolution.
func (r Resolution) Multiplier() int {
	n, _, _ := r.parts()

	return n
}

// Unit returns the unit suffix of the resolution.
func (r Resolution) Unit() byte {
	_, unit, _ := r.parts()

	return unit
}

// Duration returns the nominal length of one bar. Months count as 30 days.
func (r Resolution) Duration() time.Duration {
	n, unit, err := r.parts()
	if err != nil {
		return 0
	}

	var base time.Duration

	switch unit {
	case 's':
		base = time.Second
	case 'm':
		base = time.Minute
	case 'h':
		base = time.Hour
	case 'd':
		base = 24 * time.Hour
	case 'w':
		base = 7 * 24 * time.Hour
	case 'M':
		base = monthDuration
	}

	return time.Duration(n) * base
}

// Ratio returns how many bars of the finer resolution fit in one bar of r,
// rounded down and never below 1.
func (r Resolution) Ratio(finer Resolution) int {
	fine := finer.Duration()
	if fine <= 0 {
		return 1
	}

	ratio := int(r.Duration() / fine)
	if ratio < 1 {
		return 1
	}

	return ratio
}

// Truncate returns the open time of the bar of this resolution containing t.
// Day, week and month bars are aligned to calendar boundaries in UTC; weeks
// start on Monday.
func (r Resolution) Truncate(t time.Time) time.Time {
	n, unit, err := r.parts()
	if err != nil {
		return t
	}

	t = t.UTC()

	switch unit {
	case 'd':
		days := floorDiv(t.Unix(), 24*3600)
		start := floorDiv(days, int64(n)) * int64(n)

		return time.Unix(start*24*3600, 0).UTC()
	case 'w':
		weeks := floorDiv(t.Unix()-epochMonday.Unix(), 7*24*3600)
		start := floorDiv(weeks, int64(n)) * int64(n)

		return epochMonday.Add(time.Duration(start) * 7 * 24 * time.Hour)
	case 'M':
		months := int64(t.Year())*12 + int64(t.Month()) - 1
		start := floorDiv(months, int64(n)) * int64(n)

		return time.Date(int(start/12), time.Month(start%12+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t.Truncate(r.Duration())
	}
}

func (r Resolution) parts() (int, byte, error) {
	s := string(r)
	if len(s) < 2 {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidResolution, "invalid resolution %q", s)
	}

	unit := s[len(s)-1]
	switch unit {
	case 's', 'm', 'h', 'd', 'w', 'M':
	default:
		return 0, 0, errors.Newf(errors.ErrCodeInvalidResolution, "invalid resolution unit in %q", s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidResolution, "invalid resolution multiplier in %q", s)
	}

	return n, unit, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
