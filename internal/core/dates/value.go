package dates

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags what a Raw value carries
type Kind uint8

const (
	KindMissing Kind = iota
	KindTimestamp
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindText:
		return "text"
	}
	return "missing"
}

// Raw is a date-like value as a source delivered it
type Raw struct {
	kind Kind
	ts   time.Time
	text string
}

// Missing is an absent cell
func Missing() Raw { return Raw{} }

// Timestamp is a value the source already typed as a date or datetime
func Timestamp(t time.Time) Raw { return Raw{kind: KindTimestamp, ts: t} }

// Text is free text as found in the cell, blank text is still text
func Text(s string) Raw { return Raw{kind: KindText, text: s} }

func (r Raw) Kind() Kind { return r.kind }

// String renders the value the way it would be shown in a cell
func (r Raw) String() string {
	switch r.kind {
	case KindTimestamp:
		return r.ts.Format("2006-01-02 15:04:05")
	case KindText:
		return r.text
	}
	return ""
}

// Hint is an optional count of days elapsed since the date being resolved
// it only scores candidates and is never validated, negatives included
type Hint struct {
	days int
	set  bool
}

// NoHint is the absent hint
var NoHint = Hint{}

// DaysElapsed wraps n as a hint
func DaysElapsed(n int) Hint { return Hint{days: n, set: true} }

// ParseHint reads a hint from cell text, fractional values truncate toward zero
// blank or non numeric text yields NoHint
func ParseHint(s string) Hint {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoHint
	}
	if n, err := strconv.Atoi(s); err == nil {
		return DaysElapsed(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != f || f > 1e9 || f < -1e9 {
		return NoHint
	}
	return DaysElapsed(int(f))
}

// Get returns the hint and whether it is present
func (h Hint) Get() (int, bool) { return h.days, h.set }

// Result is either a resolved Date or Unresolvable
type Result struct {
	date Date
	ok   bool
}

// Unresolvable is the result for values no reading turns into a real date
var Unresolvable = Result{}

// Resolved wraps d
func Resolved(d Date) Result { return Result{date: d, ok: true} }

// Date returns the resolved date and true, or false when unresolvable
func (r Result) Date() (Date, bool) { return r.date, r.ok }

// OK reports whether the value resolved
func (r Result) OK() bool { return r.ok }

// ISO is the sortable form, "" when unresolvable
func (r Result) ISO() string {
	if !r.ok {
		return ""
	}
	return r.date.ISO()
}

// Display is the DD-MM-YY form, "" when unresolvable
func (r Result) Display() string {
	if !r.ok {
		return ""
	}
	return r.date.Display()
}
