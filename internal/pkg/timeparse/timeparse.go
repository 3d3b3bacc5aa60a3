// Package timeparse normalizes the time-of-day strings stored on shift
// definitions. Shifts created through the admin API should already be clean
// 24-hour "HH:MM" values, but imported data also carries 12-hour forms like
// "9.30 pm" or "09:30:00 AM", so parsing is deliberately forgiving.
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day without a date.
type Clock struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// MinutesOfDay returns the clock position as minutes since midnight.
func (c Clock) MinutesOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Parse converts a time-of-day string in 24-hour ("HH:MM[:SS]") or
// 12-hour-with-AM/PM form into a Clock. Separators other than ':' are
// tolerated. AM 12 normalizes to hour 0; PM adds 12 except for 12 itself.
func Parse(s string) (Clock, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "" {
		return Clock{}, fmt.Errorf("empty time string")
	}

	isAM := strings.Contains(raw, "am")
	isPM := strings.Contains(raw, "pm")
	raw = strings.ReplaceAll(raw, "am", "")
	raw = strings.ReplaceAll(raw, "pm", "")

	// Split on any run of non-digit characters so "9.30", "9 30" and
	// "09:30:00" all tokenize the same way.
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(fields) == 0 {
		return Clock{}, fmt.Errorf("no digits in time string %q", s)
	}

	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}

	minute := 0
	if len(fields) > 1 {
		minute, err = strconv.Atoi(fields[1])
		if err != nil {
			return Clock{}, fmt.Errorf("invalid minute in %q: %w", s, err)
		}
	}

	if isAM && hour == 12 {
		hour = 0
	}
	if isPM && hour != 12 {
		hour += 12
	}

	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("hour out of range in %q", s)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("minute out of range in %q", s)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// ParseLenient behaves like Parse but degrades malformed input to midnight
// instead of failing. The attendance engine uses this variant so a bad shift
// row can never abort a punch; the admin API uses Parse to reject bad input
// at the door.
func ParseLenient(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		return Clock{}
	}
	return c
}
