package shade

import (
	"raycore/internal/fixedpoint"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp(-1,0,1) = %v, want 0", got)
	}
	if got := Clamp(2, 0, 1); got != 1 {
		t.Errorf("Clamp(2,0,1) = %v, want 1", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5,0,1) = %v, want 0.5", got)
	}
}

func TestAlphaFixedCloseSurfaceIsFullyLit(t *testing.T) {
	got := AlphaFixed(0, 10, false)
	if got != fixedpoint.One {
		t.Errorf("AlphaFixed(0,...) = %v, want One (fully lit)", got)
	}
}

func TestAlphaFixedFarSurfaceClampsAtPoint8(t *testing.T) {
	got := AlphaFixed(1000, 10, false)
	want := fixedpoint.One - fixedpoint.ToFixed(0.8)
	if got != want {
		t.Errorf("AlphaFixed far = %v, want %v", got, want)
	}
}

func TestAlphaFixedSideDoubledClampsAtPoint85(t *testing.T) {
	got := AlphaFixed(1000, 10, true)
	want := fixedpoint.One - fixedpoint.ToFixed(0.85)
	if got != want {
		t.Errorf("AlphaFixed side-doubled far = %v, want %v", got, want)
	}
}
