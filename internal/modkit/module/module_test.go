package module

import (
	"strings"
	"testing"

	phttp "ordertrack/internal/platform/net/http"
	"ordertrack/internal/platform/testkit"
)

type LatestPort interface{ Latest() string }

type latest struct{ v string }

func (l latest) Latest() string { return l.v }

type stub struct{ ports any }

func (s stub) Name() string             { return "reports" }
func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }

var _ Module = stub{}

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Count  int
		Latest LatestPort
		hidden LatestPort
	}

	cases := []struct {
		name  string
		ports any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"direct", latest{"direct"}, "direct", true},
		{"struct field", bundle{Latest: latest{"field"}}, "field", true},
		{"pointer to struct", &bundle{Latest: latest{"ptr"}}, "ptr", true},
		{"unexported only", bundle{hidden: latest{"x"}}, "", false},
		{"scalar", 42, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[LatestPort](stub{ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok = %v want %v", ok, c.ok)
			}
			if ok && got.Latest() != c.want {
				t.Fatalf("Latest = %q want %q", got.Latest(), c.want)
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	if got := MustPortsOf[LatestPort](stub{ports: latest{"ok"}}); got.Latest() != "ok" {
		t.Fatalf("got %q", got.Latest())
	}
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "reports exposes no") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustPortsOf[LatestPort](stub{})
}

func TestRegistry(t *testing.T) {
	testkit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register("reports", latest{"r"})
	Register("meta", nil)

	if got, ok := PortsAs[LatestPort]("reports"); !ok || got.Latest() != "r" {
		t.Fatalf("PortsAs = %v %v", got, ok)
	}
	if _, ok := PortsAs[LatestPort]("meta"); ok {
		t.Fatal("nil ports should not register")
	}
	if _, ok := PortsAs[int]("reports"); ok {
		t.Fatal("wrong type should not assert")
	}
}
