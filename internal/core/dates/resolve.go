package dates

import (
	"regexp"
	"strconv"
	"time"
)

// shortPattern is <1-2 digits><sep><1-2 digits><sep><2 digits> with sep '-' or '/'
var shortPattern = regexp.MustCompile(`^\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2})\s*$`)

// futureSlack is how far ahead of today a day-first reading may land and still win without a hint
const futureSlack = -1

// Resolve turns v into a calendar date relative to today
//
// Short dates like "03-04-25" read as 2000+yy. When one leading component
// exceeds 12 the reading is fixed. Otherwise both the day-first and the
// month-first reading are built; with a hint the one whose elapsed days sit
// closest to it wins (day-first on ties), without one day-first wins unless it
// lands more than a day after today.
func Resolve(v Raw, h Hint, today Date) Result {
	switch v.kind {
	case KindMissing:
		return Unresolvable
	case KindTimestamp:
		return Resolved(FromTime(v.ts))
	}

	if m := shortPattern.FindStringSubmatch(v.text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		yy, _ := strconv.Atoi(m[3])
		return resolveShort(a, b, 2000+yy, h, today)
	}

	if d, ok := parseFreeform(v.text); ok {
		return Resolved(d)
	}
	return Unresolvable
}

func resolveShort(a, b, year int, h Hint, today Date) Result {
	switch {
	case a > 12 && b <= 12:
		return fromTriple(year, b, a)
	case a <= 12 && b > 12:
		return fromTriple(year, a, b)
	}

	dayFirst, dfOK := New(year, time.Month(b), a)
	monthFirst, mfOK := New(year, time.Month(a), b)

	switch {
	case !dfOK && !mfOK:
		return Unresolvable
	case !dfOK:
		return Resolved(monthFirst)
	case !mfOK:
		return Resolved(dayFirst)
	}

	if hint, ok := h.Get(); ok {
		best := dayFirst
		bestDiff := absInt(today.DaysSince(dayFirst) - hint)
		if diff := absInt(today.DaysSince(monthFirst) - hint); diff < bestDiff {
			best = monthFirst
		}
		return Resolved(best)
	}

	if today.DaysSince(dayFirst) >= futureSlack {
		return Resolved(dayFirst)
	}
	return Resolved(monthFirst)
}

func fromTriple(year, month, day int) Result {
	d, ok := New(year, time.Month(month), day)
	if !ok {
		return Unresolvable
	}
	return Resolved(d)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
