package texstore

import (
	"errors"
	"math"
	"testing"
)

func solidTexture(w, h int, r, g, b, a byte) *Texture {
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels[i*4] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = a
	}
	return &Texture{Width: w, Height: h, Pixels: pixels}
}

func TestRegisterAndLookup(t *testing.T) {
	s := New()
	tex := solidTexture(4, 4, 10, 20, 30, 255)
	s.Register("brick", 0, tex)

	got, err := s.Lookup("brick", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tex {
		t.Error("lookup returned a different texture")
	}
}

func TestLookupMissingReturnsTypedError(t *testing.T) {
	s := New()
	_, err := s.Lookup("ghost", 0)
	if err == nil {
		t.Fatal("expected error for missing texture")
	}
	var missing *MissingTextureError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingTextureError, got %T", err)
	}
	if missing.Type != "ghost" || missing.Angle != 0 {
		t.Errorf("missing = %+v", missing)
	}
}

func TestAnglesTracksHighestRegistered(t *testing.T) {
	s := New()
	tex := solidTexture(2, 2, 0, 0, 0, 255)
	s.Register("guard", 0, tex)
	s.Register("guard", 7, tex)
	if got := s.Angles("guard"); got != 8 {
		t.Errorf("Angles = %d, want 8", got)
	}
}

func TestTextureAtClampsOutOfRange(t *testing.T) {
	tex := solidTexture(2, 2, 1, 2, 3, 4)
	r, g, b, a := tex.At(-5, 99)
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("At out-of-range = (%d,%d,%d,%d), want (1,2,3,4)", r, g, b, a)
	}
}

func TestAngleIndexWrapsAndRounds(t *testing.T) {
	n := 8
	if got := AngleIndex(0, n); got != 0 {
		t.Errorf("AngleIndex(0,8) = %d, want 0", got)
	}
	if got := AngleIndex(math.Pi, n); got != 4 {
		t.Errorf("AngleIndex(pi,8) = %d, want 4", got)
	}
	if got := AngleIndex(-math.Pi/4, n); got != 7 {
		t.Errorf("AngleIndex(-pi/4,8) = %d, want 7", got)
	}
}

func TestAngleIndexZeroSlots(t *testing.T) {
	if got := AngleIndex(1.23, 0); got != 0 {
		t.Errorf("AngleIndex with n=0 = %d, want 0", got)
	}
}
