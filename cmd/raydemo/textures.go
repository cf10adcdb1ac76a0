package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"raycore/internal/texstore"
)

// LoadTexture decodes a PNG file into a tightly packed RGBA texture, the
// format texstore.Texture and the rest of the rendering core expect
// (spec.md §6: "tightly packed, top-row-first, no stride padding").
func LoadTexture(path string) (*texstore.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}
	return &texstore.Texture{Width: w, Height: h, Pixels: pixels}, nil
}

// solidTexture builds a flat-color texture, used by BuildTextureStore as
// a fallback for any manifest entry the scene file leaves blank so the
// demo always has every referenced type registered (spec.md §7: missing
// textures are fatal for the frame).
func solidTexture(w, h int, r, g, b, a byte) *texstore.Texture {
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels[i*4] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = b
		pixels[i*4+3] = a
	}
	return &texstore.Texture{Width: w, Height: h, Pixels: pixels}
}

// BuildTextureStore registers every texture the manifest names, falling
// back to a flat placeholder color for any type left unconfigured so a
// minimal scene.yaml (as used by the bundled demo map) still renders.
func BuildTextureStore(manifest TextureManifest) (*texstore.Store, error) {
	store := texstore.New()

	load := func(typeName, path string, fallback [4]byte) error {
		if path == "" {
			store.Register(typeName, 0, solidTexture(16, 16, fallback[0], fallback[1], fallback[2], fallback[3]))
			return nil
		}
		tex, err := LoadTexture(path)
		if err != nil {
			return err
		}
		store.Register(typeName, 0, tex)
		return nil
	}

	if err := load(texstore.TypeWall, manifest.Wall, [4]byte{120, 100, 90, 255}); err != nil {
		return nil, err
	}
	if err := load(texstore.TypeFloor, manifest.Floor, [4]byte{60, 60, 60, 255}); err != nil {
		return nil, err
	}
	if err := load(texstore.TypeCeiling, manifest.Ceiling, [4]byte{40, 40, 50, 255}); err != nil {
		return nil, err
	}
	if err := load(texstore.TypeRoad, manifest.Road, [4]byte{80, 78, 70, 255}); err != nil {
		return nil, err
	}
	if err := load(texstore.TypeDoor, manifest.Door, [4]byte{110, 70, 40, 255}); err != nil {
		return nil, err
	}
	if err := load(texstore.TypeWindow, manifest.Window, [4]byte{150, 200, 220, 160}); err != nil {
		return nil, err
	}

	if len(manifest.Tree) == 0 {
		store.Register(texstore.TypeTree, 0, solidTexture(16, 32, 40, 120, 40, 255))
	} else {
		for i, path := range manifest.Tree {
			tex, err := LoadTexture(path)
			if err != nil {
				return nil, err
			}
			store.Register(texstore.TypeTree, i, tex)
		}
	}

	return store, nil
}

// LoadSkyTexture loads the panoramic sky source image, falling back to a
// flat gradient-free placeholder when the scene leaves it unconfigured.
func LoadSkyTexture(path string) (*texstore.Texture, error) {
	if path == "" {
		return solidTexture(64, 32, 90, 140, 200, 255), nil
	}
	return LoadTexture(path)
}
