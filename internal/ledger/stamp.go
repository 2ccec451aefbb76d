package ledger

import (
	"strconv"
	"strings"
	"time"
)

// Meridiem is the AM/PM half of a 12-hour clock time.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// Stamp is a parsed timestamp: a calendar date plus a 12-hour clock time
// with whole-minute precision.
//
// The zero Stamp is the parse-failure sentinel. It is not a valid instant
// (Valid reports false) and its ordinal is the minimum, so malformed
// timestamps sort before everything else instead of aborting a batch.
type Stamp struct {
	Year     int
	Month    time.Month
	Day      int
	Hour     int // 1..12
	Minute   int
	Meridiem Meridiem
}

// ParseStamp parses "YYYY-MM-DD H:MM AP". The hour may omit its leading
// zero; the meridiem is case-insensitive. On any failure the zero Stamp is
// returned - never an error. Callers that must distinguish valid input
// check Valid.
func ParseStamp(raw string) Stamp {
	parts := strings.SplitN(raw, " ", 3)
	if len(parts) < 3 {
		return Stamp{}
	}

	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return Stamp{}
	}

	var mer Meridiem
	switch strings.ToUpper(parts[2]) {
	case "AM":
		mer = AM
	case "PM":
		mer = PM
	default:
		return Stamp{}
	}

	clock := strings.Split(parts[1], ":")
	if len(clock) != 2 {
		return Stamp{}
	}
	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 1 || hour > 12 {
		return Stamp{}
	}
	if len(clock[1]) != 2 {
		return Stamp{}
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return Stamp{}
	}

	return Stamp{
		Year:     date.Year(),
		Month:    date.Month(),
		Day:      date.Day(),
		Hour:     hour,
		Minute:   minute,
		Meridiem: mer,
	}
}

// Valid reports whether the stamp is a real parsed instant rather than the
// failure sentinel.
func (s Stamp) Valid() bool {
	return s != Stamp{}
}

// hour24 normalizes the 12-hour clock: 12 AM is hour 0, 12 PM stays 12,
// other PM hours add 12.
func (s Stamp) hour24() int {
	h := s.Hour
	if s.Meridiem == PM && h != 12 {
		h += 12
	} else if s.Meridiem == AM && h == 12 {
		h = 0
	}
	return h
}

// Ordinal returns a totally ordered integer key for the stamp: minutes on a
// calendar-shaped number line. The zero Stamp maps to 0, the minimum.
func (s Stamp) Ordinal() int64 {
	if !s.Valid() {
		return 0
	}
	days := int64(s.Year)*372 + int64(s.Month-1)*31 + int64(s.Day)
	return days*1440 + int64(s.hour24())*60 + int64(s.Minute)
}

// Compare orders two stamps by instant. Sentinel stamps compare equal to
// each other and before every valid stamp.
func (s Stamp) Compare(other Stamp) int {
	a, b := s.Ordinal(), other.Ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether s orders strictly before other.
func (s Stamp) Before(other Stamp) bool {
	return s.Compare(other) < 0
}
