package ledger

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// StripHourZero renders a clock string without a leading zero on the hour.
// "01:23 PM" becomes "1:23 PM"; "12:36 PM" is never shortened. A trailing
// seconds field, if present, is dropped. Applied identically to live clock
// reads and to user-supplied times - this is a display rule, not parsing.
func StripHourZero(clock string) string {
	fields := strings.Fields(clock)
	if len(fields) == 0 {
		return clock
	}
	hm := strings.Split(fields[0], ":")
	hour := hm[0]
	if len(hour) == 2 && hour[0] == '0' {
		hour = hour[1:]
	}
	out := hour
	if len(hm) > 1 {
		out += ":" + hm[1]
	}
	if len(fields) > 1 {
		out += " " + fields[1]
	}
	return out
}

// DisplayDate converts "YYYY-MM-DD" to the abbreviated form used in rows,
// e.g. "2025-04-15" -> "Apr. 15" (no leading zero on the day). Unparseable
// input is returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan. 2")
}

// MonthYear converts "YYYY-MM-DD" to the sheet-heading token, e.g.
// "2025-11-20" -> "Nov '25". Unparseable input is returned unchanged.
func MonthYear(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan '06")
}

// Clock12 renders a wall-clock time in the ledger's 12-hour display form,
// no leading zero, no seconds.
func Clock12(t time.Time) string {
	return t.Format("3:04 PM")
}

// Timestamp renders a wall-clock time as a full stored timestamp.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02") + " " + Clock12(t)
}

// FromClock24 converts a 24-hour "HH:MM" (the HTML time-input format) into
// the 12-hour display form.
func FromClock24(clock string) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	return Clock12(t), nil
}

// legacyClock matches clock strings written by older versions, which kept
// seconds and a zero-padded hour: "05:01:22 PM".
var legacyClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})? ([APap][Mm])$`)

// NormalizeTimestamp rewrites a stored timestamp into the current form:
// seconds dropped, hour leading zero stripped. Reports whether the value
// changed. Timestamps it cannot recognize are returned unchanged.
func NormalizeTimestamp(timestamp string) (string, bool) {
	i := strings.IndexByte(timestamp, ' ')
	if i < 0 {
		return timestamp, false
	}
	date, clock := timestamp[:i], timestamp[i+1:]
	m := legacyClock.FindStringSubmatch(clock)
	if m == nil {
		return timestamp, false
	}
	normalized := date + " " + StripHourZero(m[1]+":"+m[2]+" "+strings.ToUpper(m[3]))
	return normalized, normalized != timestamp
}

// NormalizeName canonicalizes a submitted identity string: surrounding
// whitespace trimmed and Unicode NFC applied, so the same person typed from
// different keyboards buckets together.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
