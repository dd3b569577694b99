package utils

import (
	"errors"
	"testing"
)

func TestTickFaultsNilWhenEmpty(t *testing.T) {
	var faults TickFaults
	if faults.Err() != nil {
		t.Fatalf("expected nil error on empty TickFaults")
	}
}

func TestTickFaultsAggregatesMultiple(t *testing.T) {
	var faults TickFaults
	faults.Add("capture", errors.New("boom1"))
	faults.Add("collision", errors.New("boom2"))

	if faults.Err() == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestTickFaultsIgnoresNil(t *testing.T) {
	var faults TickFaults
	faults.Add("capture", nil)

	if faults.Err() != nil {
		t.Fatalf("expected nil error when only nil faults added")
	}
}
