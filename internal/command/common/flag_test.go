package common

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	for _, tc := range []struct {
		Raw      string
		Expected string
	}{
		{Raw: "Jane@Example.NET", Expected: "jane@example.net"},
		{Raw: "  jane@example.net \n", Expected: "jane@example.net"},
		{Raw: "jane@example.net", Expected: "jane@example.net"},
		{Raw: "   ", Expected: ""},
	} {
		if e, g := tc.Expected, NormalizeEmail(tc.Raw); e != g {
			t.Errorf("NormalizeEmail(%q): expected %q, got %q", tc.Raw, e, g)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	checkIn, checkOut, err := ParseDateRange("2026-01-01", "2026-01-05")
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if e, g := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), checkIn; !e.Equal(g) {
		t.Errorf("checkIn: expected %s, got %s", e, g)
	}

	if e, g := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), checkOut; !e.Equal(g) {
		t.Errorf("checkOut: expected %s, got %s", e, g)
	}

	if _, _, err := ParseDateRange("2026-01-05", "2026-01-01"); err == nil {
		t.Errorf("expected an error on inverted range")
	}

	if _, _, err := ParseDateRange("2026-01-01", "2026-01-01"); err == nil {
		t.Errorf("expected an error on empty range")
	}

	if _, _, err := ParseDateRange("01/01/2026", "2026-01-05"); err == nil {
		t.Errorf("expected an error on malformed date")
	}
}
