// Package timefmt renders backend time and date strings for display.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// RangeSeparator joins start and end labels of a slot.
const RangeSeparator = " – "

// FormatTime converts a 24-hour "HH:MM" string to a 12-hour label such as
// "9:05 AM". Input that does not parse is returned unchanged.
func FormatTime(time24 string) string {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(time24), ":")
	if !ok {
		return time24
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return time24
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return time24
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, meridiem)
}

// FormatRange renders "10:00 AM – 11:00 AM".
func FormatRange(start, end string) string {
	return FormatTime(start) + RangeSeparator + FormatTime(end)
}

// LongDate renders an ISO date as "Monday, June 10, 2024".
func LongDate(date string) string {
	return layout(date, "Monday, January 2, 2006")
}

// ShortDate renders an ISO date as "Mon, Jun 10, 2024".
func ShortDate(date string) string {
	return layout(date, "Mon, Jan 2, 2006")
}

// DayParts splits an ISO date into the weekday, day-of-month and month
// labels shown on a date button. ok is false when date does not parse.
func DayParts(date string) (weekday, day, month string, ok bool) {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return "", "", "", false
	}
	return t.Format("Mon"), strconv.Itoa(t.Day()), t.Format("Jan"), true
}

func layout(date, format string) string {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}
	return t.Format(format)
}
