package metrics

import (
	"testing"
)

func TestSnapshot(t *testing.T) {
	TotalSearches.Add(1)
	TotalBookings.Add(1)

	values, err := Snapshot()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	for _, name := range []string{NameTotalSearches, NameTotalBookings, NameTotalBookingConflicts} {
		full := Namespace + "_" + name
		if _, exists := values[full]; !exists {
			t.Errorf("values[%q] should exist", full)
		}
	}

	if g := values[Namespace+"_"+NameTotalSearches]; g < 1 {
		t.Errorf("values[%q]: expected at least 1, got %g", Namespace+"_"+NameTotalSearches, g)
	}
}
