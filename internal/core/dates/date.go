// Package dates resolves ambiguous date-like values into calendar dates
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date is a Gregorian calendar date with no time of day and no zone
// the zero value is not a valid date, build one with New or FromTime
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for y-m-d and false when the triple is not a real calendar day
func New(y int, m time.Month, d int) (Date, bool) {
	if m < time.January || m > time.December || d < 1 || d > daysIn(y, m) {
		return Date{}, false
	}
	return Date{year: y, month: m, day: d}, true
}

// MustNew is New for literals known to be valid, it panics otherwise
func MustNew(y int, m time.Month, d int) Date {
	dt, ok := New(y, m, d)
	if !ok {
		panic(fmt.Sprintf("dates: invalid date %04d-%02d-%02d", y, int(m), d))
	}
	return dt
}

// FromTime takes the wall-clock year, month and day of t in its own location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseISO parses "YYYY-MM-DD"
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("dates: parse %q: %w", s, err)
	}
	return FromTime(t), nil
}

// displayPattern is exactly what Display writes
var displayPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})$`)

// ParseDisplay reads back the DD-MM-YY form Display writes, day first, years 20YY
// It is for cells this tool rendered, where the order is known
func ParseDisplay(s string) (Date, bool) {
	m := displayPattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	return New(2000+y, time.Month(mo), d)
}

const (
	isoLayout     = "2006-01-02"
	displayLayout = "02-01-06"
)

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) IsZero() bool          { return d.month == 0 }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of d
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// ISO renders YYYY-MM-DD, sortable as text
func (d Date) ISO() string { return d.Time().Format(isoLayout) }

// Display renders DD-MM-YY with YY the year modulo 100
func (d Date) Display() string { return d.Time().Format(displayLayout) }

// MonthKey renders YYYY-MM for monthly buckets
func (d Date) MonthKey() string { return d.Time().Format("2006-01") }

func (d Date) String() string { return d.ISO() }

// DaysSince returns the signed number of calendar days from o to d
// Unix seconds keep spans past time.Duration's ~292 years exact
func (d Date) DaysSince(o Date) int {
	return int((d.Time().Unix() - o.Time().Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// AddDays shifts d by n calendar days
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.compare(o) == 0 }

func (d Date) compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func daysIn(y int, m time.Month) int {
	switch m {
	case time.February:
		if isLeap(y) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
