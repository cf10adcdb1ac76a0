package spritecast

import (
	"testing"

	"raycore/internal/raygeom"
	"raycore/internal/scene"
	"raycore/internal/texstore"
)

func redTexture(w, h int) *texstore.Texture {
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels[i*4] = 255
		pixels[i*4+1] = 0
		pixels[i*4+2] = 0
		pixels[i*4+3] = 255
	}
	return &texstore.Texture{Width: w, Height: h, Pixels: pixels}
}

func testCamera() raygeom.Camera {
	return raygeom.Camera{
		X: 1.5, Y: 1.5,
		DirX: 0, DirY: 1,
		PlaneX: 0.66, PlaneY: 0,
		PlaneYInitial: 1,
	}
}

// spec.md §8 scenario 6: two sprites along the camera's forward axis; the
// near one must win in the overlapping center columns. The far sprite uses
// a blue texture so the center pixel shows which sprite was drawn last.
func TestCompositeNearSpriteWinsOverFarSprite(t *testing.T) {
	store := texstore.New()
	store.Register(texstore.NameForTypeID(6), 0, redTexture(16, 16))
	blue := redTexture(16, 16)
	for i := 0; i < len(blue.Pixels); i += 4 {
		blue.Pixels[i], blue.Pixels[i+2] = 0, 255
	}
	store.Register(texstore.NameForTypeID(9), 0, blue)

	cam := testCamera()
	sprites := []scene.Instance{
		scene.FromSeed(scene.Seed{X: 1.5, Y: 2.3, Type: 6, HeightPercent: 100}),
		scene.FromSeed(scene.Seed{X: 1.5, Y: 2.7, Type: 9, HeightPercent: 100}),
	}

	w, h := 64, 64
	frame := make([]byte, w*h*4)
	zbuffer := make([]float64, w)
	for i := range zbuffer {
		zbuffer[i] = 1e9
	}

	if err := Composite(nil, frame, w, h, zbuffer, cam, sprites, store, Options{Aspect: 1, LightRange: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	centerX, centerY := w/2, h/2
	i := (centerY*w + centerX) * 4
	if frame[i] < 200 || frame[i+1] != 0 || frame[i+2] != 0 || frame[i+3] != 255 {
		t.Errorf("center pixel = %v, want strongly (if distance-shaded) red", frame[i:i+4])
	}
}

func TestCompositeCullsSpriteBehindCamera(t *testing.T) {
	store := texstore.New()
	store.Register(texstore.NameForTypeID(6), 0, redTexture(4, 4))

	cam := testCamera()
	sprites := []scene.Instance{
		scene.FromSeed(scene.Seed{X: 1.5, Y: 0.5, Type: 6, HeightPercent: 100}), // behind camera (dir is +y)
	}

	w, h := 16, 16
	frame := make([]byte, w*h*4)
	zbuffer := make([]float64, w)
	for i := range zbuffer {
		zbuffer[i] = 1e9
	}

	if err := Composite(nil, frame, w, h, zbuffer, cam, sprites, store, Options{Aspect: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range frame {
		if v != 0 {
			t.Fatal("expected no pixels written for a sprite behind the camera")
		}
	}
}

func TestCompositeOcclusionTrimSkipsWhenFullyOccluded(t *testing.T) {
	store := texstore.New()
	store.Register(texstore.NameForTypeID(6), 0, redTexture(4, 4))

	cam := testCamera()
	sprites := []scene.Instance{
		scene.FromSeed(scene.Seed{X: 1.5, Y: 2.5, Type: 6, HeightPercent: 100}),
	}

	w, h := 16, 16
	frame := make([]byte, w*h*4)
	zbuffer := make([]float64, w) // all zeros: every column occluded by a near wall
	for i := range zbuffer {
		zbuffer[i] = 0
	}

	if err := Composite(nil, frame, w, h, zbuffer, cam, sprites, store, Options{Aspect: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range frame {
		if v != 0 {
			t.Fatal("expected sprite fully trimmed away by occluding z-buffer")
		}
	}
}
