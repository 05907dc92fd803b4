// Package schedule holds the pure scheduling core: wall-clock arithmetic,
// busy-window collision detection, template expansion and the cancellation
// policy. Nothing here touches the database.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeToMinutes parses a bare "HH:mm" string into minutes since midnight.
// Fails closed: empty or malformed input yields 0. Callers that cannot
// tolerate the midnight fallback must validate the string first.
func TimeToMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0
	}
	return h*60 + m
}

// MinutesToTime renders minutes since midnight back into "HH:mm".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidHHMM reports whether s is a well-formed "HH:mm" value.
func ValidHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// AtTime places a "HH:mm" wall-clock time onto a calendar day, keeping the
// day's location. All arithmetic in this package is local wall-clock.
func AtTime(day time.Time, hhmm string) time.Time {
	minutes := TimeToMinutes(hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISOWeekday maps time.Weekday onto the 1-7 Monday-first numbering the
// weekly template uses (template items only ever carry 1-6, Mon-Sat).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
