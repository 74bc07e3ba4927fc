package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate finds and normalizes the first transaction timestamp in the
// message. It returns nil when no grammar matches or every match fails to
// parse: the date is optional information and its absence never blocks the
// rest of the record.
func ParseDate(text string) *time.Time {
	for _, p := range datePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var (
			t   time.Time
			err error
		)
		if len(m) == 2 {
			t, err = parseDateToken(m[1])
		} else {
			t, err = parseDateParts(m[1], m[2])
		}
		if err != nil {
			continue
		}
		return &t
	}
	return nil
}

// parseDateToken splits a combined "date time" token into its parts.
func parseDateToken(token string) (time.Time, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty date token")
	}
	timePart := "00:00"
	if len(fields) > 1 {
		timePart = fields[1]
	}
	return parseDateParts(fields[0], timePart)
}

// parseDateParts interprets a slash-separated date plus a clock.
//
// A 4-digit leading component greater than 12 cannot be a day or month, so
// the token is read year-first (Y/M/D, seconds required). Everything else
// is day-first (D/M/Y, no seconds), with 2-digit years expanded: values
// below 50 land in 2000+, the rest in 1900+.
func parseDateParts(datePart, timePart string) (time.Time, error) {
	comp := strings.Split(datePart, "/")
	if len(comp) != 3 {
		return time.Time{}, fmt.Errorf("unexpected date shape %q", datePart)
	}

	if first, err := strconv.Atoi(comp[0]); err == nil && len(comp[0]) == 4 && first > 12 {
		month, err := strconv.Atoi(comp[1])
		if err != nil {
			return time.Time{}, err
		}
		day, err := strconv.Atoi(comp[2])
		if err != nil {
			return time.Time{}, err
		}
		hour, min, sec, err := parseClock(timePart, true)
		if err != nil {
			return time.Time{}, err
		}
		return newDate(first, month, day, hour, min, sec)
	}

	day, err := strconv.Atoi(comp[0])
	if err != nil {
		return time.Time{}, err
	}
	month, err := strconv.Atoi(comp[1])
	if err != nil {
		return time.Time{}, err
	}
	year, err := strconv.Atoi(comp[2])
	if err != nil {
		return time.Time{}, err
	}
	if len(comp[2]) == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	hour, min, sec, err := parseClock(timePart, false)
	if err != nil {
		return time.Time{}, err
	}
	return newDate(year, month, day, hour, min, sec)
}

// parseClock reads "H:MM" or, when wantSeconds is set, "H:MM:SS". The shape
// must match exactly so a seconds-bearing clock is not silently truncated
// on the day-first path.
func parseClock(s string, wantSeconds bool) (hour, min, sec int, err error) {
	parts := strings.Split(s, ":")
	switch {
	case wantSeconds && len(parts) != 3:
		return 0, 0, 0, fmt.Errorf("clock %q: expected H:MM:SS", s)
	case !wantSeconds && len(parts) != 2:
		return 0, 0, 0, fmt.Errorf("clock %q: expected H:MM", s)
	}

	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if min, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if wantSeconds {
		if sec, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, err
		}
	}
	if hour > 23 || min > 59 || sec > 59 {
		return 0, 0, 0, fmt.Errorf("clock %q out of range", s)
	}
	return hour, min, sec, nil
}

// newDate builds a UTC timestamp, rejecting calendar overflow (time.Date
// would silently normalize 31/02 into March).
func newDate(year, month, day, hour, min, sec int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date %d/%d/%d out of range", day, month, year)
	}
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("date %d/%d/%d does not exist", day, month, year)
	}
	return t, nil
}
