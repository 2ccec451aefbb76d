package ledger

import "time"

// WeekRange returns the Monday and Friday of the working week containing
// the given "YYYY-MM-DD" date.
func WeekRange(date string) (monday, friday string, err error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", "", err
	}
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	mon := t.AddDate(0, 0, -offset)
	fri := mon.AddDate(0, 0, 4)
	return mon.Format("2006-01-02"), fri.Format("2006-01-02"), nil
}

// DateInRange reports whether date falls within [start, end] inclusive.
// Any unparseable argument makes the answer false.
func DateInRange(date, start, end string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	return !d.Before(s) && !d.After(e)
}

// DatesBetween lists every "YYYY-MM-DD" date from start to end inclusive.
// Returns nil when either bound is unparseable or end precedes start.
func DatesBetween(start, end string) []string {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
