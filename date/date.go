// Package date provides a day-granular calendar date with the calendar
// arithmetic used by recurring transactions and periodic reports.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// New returns a normalized Date for the given year, month, and day.
//
// Out of range values are normalized the way [time.Date] does: October 32
// becomes November 1.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the calendar day of t, in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current date.
func Today() Date { return Of(Now()) }

// Now is the clock read by Today and by relative dates.
var Now = time.Now

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of that day.
func (d Date) Time() time.Time { return d.time() }

// String format the date in its standard format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonths returns the date i calendar months later.
//
// A day of month past the end of the target month is clamped to its last
// day: January 31 plus one month is February 28 (or 29 in a leap year).
func (d Date) AddMonths(i int) Date { return d.clamp(d.y, d.m+time.Month(i)) }

// AddYears returns the date i calendar years later, clamped like AddMonths:
// February 29 plus one year is February 28.
func (d Date) AddYears(i int) Date { return d.clamp(d.y+i, d.m) }

// clamp returns the day d.d of the given month, or its last day if shorter.
func (d Date) clamp(year int, month time.Month) Date {
	last := New(year, month+1, 0)
	if d.d > last.d {
		return last
	}
	return New(year, month, d.d)
}

// DaysUntil returns the number of days from d to x, negative if x is before d.
func (d Date) DaysUntil(x Date) int { return int(x.time().Sub(d.time()).Hours() / 24) }

// MonthsUntil returns the number of full calendar months from d to x.
//
// A month is only counted once its day of month is reached, or the end of
// a shorter month: from January 30 to February 27 is 0 months, and from
// January 31 to February 28 is 1.
func (d Date) MonthsUntil(x Date) int {
	if x.Before(d) {
		return -x.MonthsUntil(d)
	}
	n := (x.y-d.y)*12 + int(x.m-d.m)
	if n > 0 && d.AddMonths(n).After(x) {
		n--
	}
	return n
}

var (
	relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmqy])$`)
	monthDayDateRE = regexp.MustCompile(`^(?:(\d+)-)?(\d+)$`)
)

// Parse parses a Date from a string.
//
// It is lenient and accepts:
//   - "0d" for today, and relative offsets like "-1d", "+2w", "-1m", "+1q" or "-1y";
//   - "DD" or "MM-DD" in the current year, day 0 meaning the last day of the previous month;
//   - ISO dates like "2025-07-01" or "2025-7-1";
//   - full ISO timestamps like "2025-07-01T10:00:00.000Z".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" {
		return Today(), nil
	}

	// Relative Duration Format (e.g., -1d, +2w) - sign is mandatory for non-zero
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return today.AddMonths(num), nil
		case "q":
			return today.AddMonths(num * 3), nil
		case "y":
			return today.AddYears(num), nil
		}
	}

	// [MM-]DD Format (e.g., 27, 8-27, 8-0)
	if match := monthDayDateRE.FindStringSubmatch(str); match != nil {
		day, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid day in date %q: %w", str, err)
		}
		today := Today()
		year, month := today.Year(), today.Month()
		if match[1] != "" {
			m, err := strconv.Atoi(match[1])
			if err != nil {
				return Date{}, fmt.Errorf("invalid month in date %q: %w", str, err)
			}
			if m == 0 {
				year--
				month = time.December
			} else {
				month = time.Month(m)
			}
		}
		return New(year, month, day), nil
	}

	return parseISO(str)
}

// parseISO parses the formats found in data files: plain ISO dates and full timestamps.
func parseISO(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		on, err = time.Parse(time.RFC3339Nano, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
//
// Data files only accept ISO dates and timestamps, never relative dates. An
// empty string is the zero Date.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*j = Date{}
		return nil
	}
	d, err := parseISO(str)
	if err != nil {
		return fmt.Errorf("invalid date in data file: %w", err)
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
