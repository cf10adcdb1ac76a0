package fixedpoint

import "testing"

func TestToFixedFromFixedRoundTrip(t *testing.T) {
	tests := []float64{0, 1, -1, 0.5, -0.5, 3.25, 127.0}
	for _, x := range tests {
		got := FromFixed(ToFixed(x))
		if got != x {
			t.Errorf("round trip %v -> %v", x, got)
		}
	}
}

func TestFixedMul(t *testing.T) {
	a := ToFixed(2.5)
	b := ToFixed(4.0)
	got := FromFixed(FixedMul(a, b))
	if got != 10.0 {
		t.Errorf("FixedMul(2.5,4.0) = %v, want 10.0", got)
	}
}

func TestFixedDivByZero(t *testing.T) {
	a := ToFixed(5.0)
	if got := FixedDiv(a, 0); got != 0 {
		t.Errorf("FixedDiv(5,0) = %v, want 0", got)
	}
}

func TestFixedDiv(t *testing.T) {
	a := ToFixed(10.0)
	b := ToFixed(4.0)
	got := FromFixed(FixedDiv(a, b))
	if got != 2.5 {
		t.Errorf("FixedDiv(10,4) = %v, want 2.5", got)
	}
}

func TestOneIsIdentityForMul(t *testing.T) {
	a := ToFixed(3.75)
	if got := FixedMul(a, One); got != a {
		t.Errorf("FixedMul(a, One) = %v, want %v", got, a)
	}
}
