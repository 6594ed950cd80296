// Package busdays counts Monday to Friday days between calendar dates
// There is no holiday calendar
package busdays

import (
	"cmp"
	"encoding/json"
	"strconv"
	"time"

	"ordertrack/internal/core/dates"
)

// Between counts business days in [start, end): start counted, end not
// when end is before start the count is negative and covers (end, start]
func Between(start, end dates.Date) int {
	if end.Before(start) {
		return -count(end.AddDays(1), start.AddDays(1))
	}
	return count(start, end)
}

// count assumes from <= to
func count(from, to dates.Date) int {
	span := to.DaysSince(from)
	weeks, rest := span/7, span%7
	n := weeks * 5
	wd := from.Weekday()
	for i := 0; i < rest; i++ {
		if isBusiness(wd) {
			n++
		}
		wd = (wd + 1) % 7
	}
	return n
}

func isBusiness(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}

// Days is a nullable business day count
type Days struct {
	N     int
	Valid bool
}

// Count wraps n
func Count(n int) Days { return Days{N: n, Valid: true} }

// String renders the count, "" when null
func (d Days) String() string {
	if !d.Valid {
		return ""
	}
	return strconv.Itoa(d.N)
}

// MarshalJSON renders null for an absent count
func (d Days) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.N)
}

// CompareDesc orders larger counts first and nulls last, for slices.SortStableFunc
func CompareDesc(a, b Days) int {
	switch {
	case a.Valid && !b.Valid:
		return -1
	case !a.Valid && b.Valid:
		return 1
	case !a.Valid:
		return 0
	}
	return cmp.Compare(b.N, a.N)
}

// Since counts business days from start to end, or to today when end is unresolved
// an unresolved start yields null
func Since(start, end dates.Result, today dates.Date) Days {
	s, ok := start.Date()
	if !ok {
		return Days{}
	}
	e, ok := end.Date()
	if !ok {
		e = today
	}
	return Count(Between(s, e))
}

// Column applies Since row by row; ends may be shorter than starts or nil
func Column(starts, ends []dates.Result, today dates.Date) []Days {
	out := make([]Days, len(starts))
	for i, s := range starts {
		end := dates.Unresolvable
		if i < len(ends) {
			end = ends[i]
		}
		out[i] = Since(s, end, today)
	}
	return out
}
