package time

import (
	"testing"
	"time"
)

func TestFixedAndIn(t *testing.T) {
	at := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	c := Fixed(at)
	if !c().Equal(at) {
		t.Fatalf("Fixed = %v", c())
	}
	ba := time.FixedZone("ART", -3*3600)
	local := In(c, ba)()
	if local.Day() != 31 || local.Month() != time.May {
		t.Fatalf("In = %v, want May 31 in ART", local)
	}
	if In(c, nil)().Location() != time.UTC {
		t.Fatalf("nil loc should keep clock")
	}
}

func TestLoadLocation(t *testing.T) {
	if LoadLocation("") != time.Local || LoadLocation("Nowhere/Nope") != time.Local {
		t.Fatalf("fallback should be Local")
	}
	if LoadLocation("UTC").String() != "UTC" {
		t.Fatalf("UTC not resolved")
	}
}
