package types

import "testing"

func TestLocationTypeUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want LocationType
	}{
		{"0", LocationStop},
		{"1", LocationStation},
		{"4", LocationBoardingArea},
		{"99", LocationTypeOther},
	}
	for _, c := range cases {
		var l LocationType
		if err := l.UnmarshalCSVField(c.in); err != nil {
			t.Fatalf("unexpected error for %s: %v", c.in, err)
		}
		if l != c.want {
			t.Errorf("%s: got %v, want %v", c.in, l, c.want)
		}
	}
}

func TestRouteTypeTiers(t *testing.T) {
	cases := []struct {
		in      string
		unknown bool
	}{
		{"3", false},   // classic bus
		{"2", false},   // classic rail
		{"200", false}, // extended railway service
		{"1702", false},
		{"9999", true},
	}
	for _, c := range cases {
		var r RouteType
		if err := r.UnmarshalCSVField(c.in); err != nil {
			t.Fatalf("unexpected error for %s: %v", c.in, err)
		}
		if r.Unknown != c.unknown {
			t.Errorf("%s: unknown=%v, want %v", c.in, r.Unknown, c.unknown)
		}
	}
}

func TestExceptionTypeDefaultsToOther(t *testing.T) {
	var e ExceptionType
	if err := e.UnmarshalCSVField("7"); err != nil {
		t.Fatal(err)
	}
	if e != ExceptionOther {
		t.Errorf("expected Other for out-of-range exception type, got %v", e)
	}
}

func TestTimepointDefault(t *testing.T) {
	var tp Timepoint
	if err := tp.UnmarshalCSVField("1"); err != nil {
		t.Fatal(err)
	}
	if tp != TimepointExact {
		t.Errorf("expected exact timepoint")
	}
}
