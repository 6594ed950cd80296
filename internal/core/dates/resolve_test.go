package dates

import (
	"testing"
	"time"
)

var fixedToday = MustNew(2024, time.June, 1)

func TestResolve_ShortForms(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		hint  Hint
		today Date
		want  string // ISO, "" for unresolvable
	}{
		{name: "day first forced", in: "15-03-24", today: fixedToday, want: "2024-03-15"},
		{name: "month first forced", in: "03-15-24", today: fixedToday, want: "2024-03-15"},
		{name: "slash separator", in: "15/03/24", today: fixedToday, want: "2024-03-15"},
		{name: "mixed separators", in: "15/03-24", today: fixedToday, want: "2024-03-15"},
		{name: "single digits", in: "5-6-24", today: fixedToday, want: "2024-06-05"},
		{name: "surrounding spaces", in: "  15-03-24 ", today: fixedToday, want: "2024-03-15"},
		{name: "forced but invalid", in: "31-02-24", today: fixedToday, want: ""},
		{name: "leap day", in: "29-02-24", today: fixedToday, want: "2024-02-29"},
		{name: "no leap day", in: "29-02-23", today: fixedToday, want: ""},
		{name: "both above twelve", in: "15-20-24", today: fixedToday, want: ""},
		{name: "overflow components", in: "32-13-99", today: fixedToday, want: ""},
		{name: "zero components", in: "00-00-24", today: fixedToday, want: ""},
		{name: "ambiguous no hint past", in: "03-04-24", today: fixedToday, want: "2024-04-03"},
		{name: "ambiguous no hint tomorrow still day first", in: "02-06-24", today: fixedToday, want: "2024-06-02"},
		{name: "ambiguous no hint future flips", in: "05-06-24", today: fixedToday, want: "2024-05-06"},
		{name: "ambiguous future both ways falls to month first", in: "08-09-24", today: fixedToday, want: "2024-08-09"},
		{name: "ambiguous hint picks closest", in: "01-02-23", hint: DaysElapsed(400), today: fixedToday, want: "2023-02-01"},
		{name: "ambiguous hint favours month first", in: "01-02-23", hint: DaysElapsed(516), today: fixedToday, want: "2023-01-02"},
		{name: "negative hint used as is", in: "01-02-23", hint: DaysElapsed(-1000), today: fixedToday, want: "2023-02-01"},
		{name: "month first forced but invalid", in: "02-31-24", today: fixedToday, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(Text(tt.in), tt.hint, tt.today)
			if got.ISO() != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.in, got.ISO(), tt.want)
			}
		})
	}
}

func TestResolve_ExactMonthFirstHintWins(t *testing.T) {
	today := MustNew(2025, time.June, 1)
	monthFirst := MustNew(2025, time.March, 4)
	hint := today.DaysSince(monthFirst)

	noHint := Resolve(Text("03-04-25"), NoHint, today)
	if noHint.ISO() != "2025-04-03" {
		t.Fatalf("no hint default = %q, want day first 2025-04-03", noHint.ISO())
	}
	withHint := Resolve(Text("03-04-25"), DaysElapsed(hint), today)
	if withHint.ISO() != "2025-03-04" {
		t.Fatalf("with hint %d = %q, want month first 2025-03-04", hint, withHint.ISO())
	}
}

func TestResolve_TieGoesToDayFirst(t *testing.T) {
	// 01-02-23 candidates sit 486 and 516 days back, 501 is equidistant
	got := Resolve(Text("01-02-23"), DaysElapsed(501), fixedToday)
	if got.ISO() != "2023-02-01" {
		t.Fatalf("tie = %q, want 2023-02-01", got.ISO())
	}
}

func TestResolve_UnambiguousIgnoresHint(t *testing.T) {
	for _, in := range []string{"15-03-24", "03-15-24", "28-11-22", "11-28-22"} {
		base := Resolve(Text(in), NoHint, fixedToday)
		for _, h := range []int{-500, 0, 1, 90, 10000} {
			got := Resolve(Text(in), DaysElapsed(h), fixedToday)
			if got != base {
				t.Fatalf("Resolve(%q, %d) = %q, want %q", in, h, got.ISO(), base.ISO())
			}
		}
	}
}

func TestResolve_Timestamp(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	cases := []time.Time{
		time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC),
		time.Date(2023, time.December, 31, 0, 0, 0, 0, loc),
		time.Date(1999, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, ts := range cases {
		got, ok := Resolve(Timestamp(ts), DaysElapsed(3), fixedToday).Date()
		if !ok {
			t.Fatalf("timestamp %v unresolved", ts)
		}
		y, m, d := ts.Date()
		if got.Year() != y || got.Month() != m || got.Day() != d {
			t.Fatalf("timestamp %v resolved to %v", ts, got)
		}
	}
}

func TestResolve_Missing(t *testing.T) {
	if Resolve(Missing(), DaysElapsed(1), fixedToday).OK() {
		t.Fatalf("missing should be unresolvable")
	}
}

func TestResolve_Freeform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024-03-15 10:22:01", "2024-03-15"},
		{"2024-03-15T10:22:01Z", "2024-03-15"},
		{"2024/3/5", "2024-03-05"},
		{"20240315", "2024-03-15"},
		{"15/03/2024", "2024-03-15"},
		{"05/03/2024", "2024-03-05"},
		{"03/15/2024", "2024-03-15"},
		{"15.03.24", "2024-03-15"},
		{"15-03-24 08:00", "2024-03-15"},
		{"15 Mar 2024", "2024-03-15"},
		{"15-mar-2024", "2024-03-15"},
		{"15 de marzo de 2024", "2024-03-15"},
		{"Miércoles, 3 de abril de 2024", "2024-04-03"},
		{"March 15, 2024", "2024-03-15"},
		{"Mon, 15 Jan 2024 10:00:00 GMT", "2024-01-15"},
		{"1 sept 2023", "2023-09-01"},
		{"2024 Dic 24", "2024-12-24"},
		{"", ""},
		{"   ", ""},
		{"not-a-date", ""},
		{"pendiente", ""},
		{"31/04/2024", ""},
		{"15 marzo", ""},
		{"marzo abril 2024", ""},
	}
	for _, tt := range tests {
		got := Resolve(Text(tt.in), NoHint, fixedToday)
		if got.ISO() != tt.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tt.in, got.ISO(), tt.want)
		}
	}
}

func TestResult_SerializationEdge(t *testing.T) {
	r := Resolve(Text("07-11-23"), NoHint, fixedToday)
	if r.ISO() != "2023-11-07" || r.Display() != "07-11-23" {
		t.Fatalf("got (%q, %q)", r.ISO(), r.Display())
	}
	if Unresolvable.ISO() != "" || Unresolvable.Display() != "" {
		t.Fatalf("unresolvable must serialize empty")
	}
	if _, ok := Unresolvable.Date(); ok {
		t.Fatalf("unresolvable must not carry a date")
	}
}
