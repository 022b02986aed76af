package domain

import "testing"

func TestFloatSnapshotRestoreRoundTrips(t *testing.T) {
	d := NewFloat(0, 1)
	snap := d.Snapshot()

	d.RemoveBelow(0.3)
	d.RemoveAbove(0.7)
	if d.Min() == snap.min && d.Max() == snap.max {
		t.Fatalf("tightening did not change the domain; test is vacuous")
	}

	d.Restore(snap)
	if d.Min() != snap.min || d.Max() != snap.max {
		t.Fatalf("restore did not reproduce (min,max) bit for bit: got (%v,%v), want (%v,%v)",
			d.Min(), d.Max(), snap.min, snap.max)
	}
}

func TestFloatIsFixedBelowThreshold(t *testing.T) {
	d := NewFloat(0, 1)
	if d.IsFixed() {
		t.Fatalf("wide domain must not report fixed")
	}
	d.RemoveBelow(0.5)
	d.RemoveAbove(0.5)
	if !d.IsFixed() {
		t.Fatalf("domain of width 0 must report fixed")
	}
}

func TestFloatContainsUsesStepTolerance(t *testing.T) {
	d := NewFloat(0, 1)
	if !d.Contains(d.Min()) || !d.Contains(d.Max()) {
		t.Fatalf("bounds must be members of their own domain")
	}
	if d.Contains(2) {
		t.Fatalf("value outside [min,max] must not be contained")
	}
}
