package sky

import (
	"testing"

	"raycore/internal/texstore"
)

func solidSource(w, h int, r, g, b byte) *texstore.Texture {
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels[i*4] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = 255
	}
	return &texstore.Texture{Width: w, Height: h, Pixels: pixels}
}

func TestNewPrescalesToTargetDimensions(t *testing.T) {
	src := solidSource(64, 16, 100, 150, 200)
	s := New(src, 320, 48)
	if s.tex.Width != 320 || s.tex.Height != 48 {
		t.Fatalf("prescaled size = %dx%d, want 320x48", s.tex.Width, s.tex.Height)
	}
}

func TestRenderFillsAboveHorizonOnly(t *testing.T) {
	src := solidSource(8, 8, 10, 20, 30)
	s := New(src, 16, 10)

	frameW, frameH := 16, 20
	frame := make([]byte, frameW*frameH*4)
	s.Render(nil, frame, frameW, frameH, 0, 0, 10)

	// A pixel above the horizon should be colored.
	i := (0*frameW + 0) * 4
	if frame[i+3] == 0 {
		t.Error("expected sky pixel above horizon to be opaque")
	}

	// A pixel below the horizon must be untouched (still zero).
	j := (15*frameW + 0) * 4
	if frame[j] != 0 || frame[j+1] != 0 || frame[j+2] != 0 || frame[j+3] != 0 {
		t.Error("expected pixel below horizon to be left untouched")
	}
}

func TestRenderShearsSourceRowByPitch(t *testing.T) {
	src := solidSource(4, 8, 1, 1, 1)
	// Paint source row 2 a distinct color so we can tell which row lands on
	// screen row 0 once pitch shifts the mapping.
	for x := 0; x < 4; x++ {
		i := (2*4 + x) * 4
		src.Pixels[i], src.Pixels[i+1], src.Pixels[i+2], src.Pixels[i+3] = 9, 8, 7, 255
	}
	s := New(src, 4, 8)

	frame := make([]byte, 4*8*4)
	// pitch=2 means screen row 0 samples source row 0-2=-2: out of range,
	// so it must be left untouched rather than wrapping or clamping.
	s.Render(nil, frame, 4, 8, 0, 2, 8)
	if frame[3] != 0 {
		t.Fatal("expected screen row 0 to be skipped when its source row is negative")
	}

	// Screen row 2 samples source row 2-2=0 (pitch shifts everything down
	// by 2 rows), not source row 2.
	i := (2*4 + 0) * 4
	if frame[i] == 9 {
		t.Fatal("expected pitch to shift the sampled row rather than leaving it at y")
	}

	// Screen row 4 samples source row 4-2=2, the painted row.
	j := (4*4 + 0) * 4
	if frame[j] != 9 || frame[j+1] != 8 || frame[j+2] != 7 {
		t.Fatalf("frame[4] = %d,%d,%d, want the painted source row 2 shifted down by pitch", frame[j], frame[j+1], frame[j+2])
	}
}

func TestRenderWrapsColumnsCyclically(t *testing.T) {
	src := solidSource(4, 4, 5, 5, 5)
	s := New(src, 4, 4)

	frame := make([]byte, 4*4*4)
	// A yaw of exactly one full turn should produce the same base column as yaw 0.
	s.Render(nil, frame, 4, 4, 0, 0, 4)
	frameA := append([]byte(nil), frame...)

	for i := range frame {
		frame[i] = 0
	}
	s.Render(nil, frame, 4, 4, 6.283185307179586, 0, 4)

	for i := range frame {
		if frame[i] != frameA[i] {
			t.Fatalf("render at yaw=2pi differs from yaw=0 at byte %d", i)
		}
	}
}
