package dates

import (
	"testing"
	"time"
)

func TestNew_Validity(t *testing.T) {
	tests := []struct {
		y  int
		m  time.Month
		d  int
		ok bool
	}{
		{2024, time.February, 29, true},
		{2023, time.February, 29, false},
		{2000, time.February, 29, true},
		{2100, time.February, 29, false},
		{2024, time.April, 31, false},
		{2024, time.December, 31, true},
		{2024, 13, 1, false},
		{2024, 0, 1, false},
		{2024, time.May, 0, false},
	}
	for _, tt := range tests {
		if _, ok := New(tt.y, tt.m, tt.d); ok != tt.ok {
			t.Fatalf("New(%d, %d, %d) ok = %v, want %v", tt.y, tt.m, tt.d, ok, tt.ok)
		}
	}
}

func TestDate_Formats(t *testing.T) {
	d := MustNew(2007, time.March, 9)
	if d.ISO() != "2007-03-09" {
		t.Fatalf("ISO = %q", d.ISO())
	}
	if d.Display() != "09-03-07" {
		t.Fatalf("Display = %q", d.Display())
	}
	if d.MonthKey() != "2007-03" {
		t.Fatalf("MonthKey = %q", d.MonthKey())
	}
	if MonthLabel(d) != "MARZO 2007" {
		t.Fatalf("MonthLabel = %q", MonthLabel(d))
	}
}

func TestDate_Arithmetic(t *testing.T) {
	a := MustNew(2024, time.February, 28)
	b := a.AddDays(2)
	if b.ISO() != "2024-03-01" {
		t.Fatalf("AddDays = %v", b)
	}
	if b.DaysSince(a) != 2 || a.DaysSince(b) != -2 {
		t.Fatalf("DaysSince wrong: %d %d", b.DaysSince(a), a.DaysSince(b))
	}
	if !a.Before(b) || !b.After(a) || !a.Equal(MustNew(2024, time.February, 28)) {
		t.Fatalf("ordering broken")
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Fatalf("IsZero broken")
	}
}

func TestDate_DaysSinceLongSpans(t *testing.T) {
	today := MustNew(2024, time.June, 3)
	old, ok := Resolve(Text("1500-01-01"), NoHint, today).Date()
	if !ok {
		t.Fatal("1500-01-01 did not resolve")
	}
	if got := today.DaysSince(old); got != 191541 {
		t.Fatalf("DaysSince = %d, want 191541", got)
	}
	if got := old.DaysSince(today); got != -191541 {
		t.Fatalf("reversed DaysSince = %d", got)
	}
}

func TestParseISO(t *testing.T) {
	d, err := ParseISO("2024-06-01")
	if err != nil || !d.Equal(fixedToday) {
		t.Fatalf("ParseISO = %v, %v", d, err)
	}
	if _, err := ParseISO("01-06-2024"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		in  string
		n   int
		set bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"-3", -3, true},
		{"12.9", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		n, ok := ParseHint(tt.in).Get()
		if n != tt.n || ok != tt.set {
			t.Fatalf("ParseHint(%q) = (%d, %v), want (%d, %v)", tt.in, n, ok, tt.n, tt.set)
		}
	}
}

func TestParseDisplay(t *testing.T) {
	for _, d := range []Date{MustNew(2023, time.January, 10), MustNew(2024, time.December, 5)} {
		got, ok := ParseDisplay(d.Display())
		if !ok || got != d {
			t.Fatalf("ParseDisplay(%q) = %v %v", d.Display(), got, ok)
		}
	}
	for _, s := range []string{"31-02-24", "1-02-24", "2024-01-10", " 10-01-23", ""} {
		if _, ok := ParseDisplay(s); ok {
			t.Fatalf("ParseDisplay(%q) accepted", s)
		}
	}
}
