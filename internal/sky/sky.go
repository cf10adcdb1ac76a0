// Package sky renders the panoramic sky strip described in spec.md §4.D.
// The source panorama is prescaled once, at construction time, to the
// render target's dimensions using golang.org/x/image/draw; the per-frame
// path is then a cheap cyclic row-slice copy with no filtering, preserving
// the "no texture filtering in hot loops" non-goal (SPEC_FULL.md Non-goals).
package sky

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"raycore/internal/texstore"
	"raycore/internal/workpool"
)

// Sky holds a panorama prescaled to exactly the caller's target width and
// height, ready for cyclic column slicing at render time.
type Sky struct {
	tex *texstore.Texture
}

// New prescales src to (width,height) using a Catmull-Rom resampler (the
// one expensive filtering pass the whole pipeline performs, done once).
func New(src *texstore.Texture, width, height int) *Sky {
	return &Sky{tex: prescale(src, width, height)}
}

func prescale(src *texstore.Texture, width, height int) *texstore.Texture {
	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: src.Width * 4,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
	dstImg := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	return &texstore.Texture{Width: width, Height: height, Pixels: dstImg.Pix}
}

// Render draws the sky into frame (a tightly packed RGBA buffer,
// frameWidth*frameHeight*4 bytes) above horizonRow, given the camera's
// current yaw (radians) and pitch (pixels, vertical shear). Each screen
// row y samples source row y-pitch, skipping rows that fall outside the
// prescaled strip (spec.md §4.E), and each screen column picks a cyclic
// slice of the panorama so a full turn wraps back to the starting
// column. Rows are independent of one another (spec.md §5), so a
// non-nil pool runs them in parallel.
func (s *Sky) Render(pool *workpool.Pool, frame []byte, frameWidth, frameHeight int, yaw, pitch float64, horizonRow int) {
	if s.tex.Width == 0 {
		return
	}
	const twoPi = 2 * math.Pi
	norm := math.Mod(yaw, twoPi)
	if norm < 0 {
		norm += twoPi
	}
	baseCol := int(norm / twoPi * float64(s.tex.Width))

	if horizonRow > frameHeight {
		horizonRow = frameHeight
	}

	workpool.ParallelRows(pool, 0, horizonRow, func(y int) {
		srcY := int(float64(y) - pitch)
		if srcY < 0 || srcY >= s.tex.Height {
			return
		}
		for x := 0; x < frameWidth; x++ {
			col := (baseCol + x) % s.tex.Width
			if col < 0 {
				col += s.tex.Width
			}
			r, g, b, a := s.tex.At(col, srcY)
			writeRGBA(frame, frameWidth, x, y, r, g, b, a)
		}
	})
}

func writeRGBA(frame []byte, frameWidth, x, y int, r, g, b, a byte) {
	i := (y*frameWidth + x) * 4
	frame[i] = r
	frame[i+1] = g
	frame[i+2] = b
	frame[i+3] = a
}
