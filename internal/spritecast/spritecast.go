// Package spritecast composites billboard sprites and window portals onto
// the frame buffer, occluded against the wall z-buffer, per spec.md §4.D.
// Grounded on the teacher's drawAllSpritesSorted for the sort-then-trim
// pipeline shape, generalized from ebiten.Image draw calls to direct RGBA
// byte blending.
package spritecast

import (
	"math"
	"sort"

	"raycore/internal/fixedpoint"
	"raycore/internal/raygeom"
	"raycore/internal/scene"
	"raycore/internal/shade"
	"raycore/internal/texstore"
	"raycore/internal/workpool"
)

// Options configures one compositing pass.
type Options struct {
	Aspect     float64
	LightRange float64
}

// Composite sorts sprites far-to-near and draws each into frame, trimmed
// against zbuffer (one perpendicular distance per column). Sprite draw
// order (back-to-front) is inherently sequential, but each sprite's own
// scanline band is row-independent, so a non-nil pool runs those rows in
// parallel (spec.md §5).
func Composite(pool *workpool.Pool, frame []byte, screenW, screenH int, zbuffer []float64, cam raygeom.Camera, sprites []scene.Instance, textures *texstore.Store, opts Options) error {
	aspect := opts.Aspect
	if aspect == 0 {
		aspect = 1
	}
	lightRange := opts.LightRange

	type ordered struct {
		sprite  scene.Instance
		dx, dy  float64
		sqDistQ fixedpoint.Q8
		index   int
	}
	ord := make([]ordered, len(sprites))
	for i, s := range sprites {
		dx := s.X - cam.X
		dy := s.Y - cam.Y
		ord[i] = ordered{
			sprite:  s,
			dx:      dx,
			dy:      dy,
			sqDistQ: fixedpoint.ToFixedLarge(dx*dx + dy*dy),
			index:   i,
		}
	}
	sort.SliceStable(ord, func(i, j int) bool {
		return ord[i].sqDistQ > ord[j].sqDistQ // far first
	})

	det := cam.PlaneX*cam.DirY - cam.DirX*cam.PlaneY
	if det == 0 {
		return nil
	}
	invDet := 1 / det

	for _, o := range ord {
		s := o.sprite
		tx := invDet * (cam.DirY*o.dx - cam.DirX*o.dy) / cam.PlaneYInitial
		ty := invDet * (cam.PlaneX*o.dy - cam.PlaneY*o.dx) / cam.PlaneYInitial
		if ty <= 0 {
			continue
		}

		screenX := float64(screenW) / 2 * (1 + tx/ty)
		vMove := cam.Pitch + cam.Z/(ty*2*aspect)

		heightUnscaled := float64(screenW) / 2 / ty
		heightPercent := s.HeightPercent
		if heightPercent == 0 {
			heightPercent = 100
		}
		heightScaled := heightUnscaled * heightPercent / 100

		var tex *texstore.Texture
		var err error
		if s.IsWindow {
			tex, err = textures.Lookup(texstore.TypeWindow, 0)
		} else {
			typeName := texstore.NameForTypeID(s.Type)
			angles := textures.Angles(typeName)
			idx := angleIndex(o.dx, o.dy, s.AngleBias, angles)
			tex, err = textures.Lookup(typeName, idx)
		}
		if err != nil {
			return err
		}

		ceilingRow := float64(screenH)/2 - heightScaled/2 + vMove + (heightUnscaled-heightScaled)/2

		var startX, endX int
		var drawStartX, width float64
		if s.IsWindow {
			// The raycaster emits one window Instance per screen column it
			// crosses (raycaster.hitSlot), so the window is drawn at that
			// single originating column rather than a projected billboard
			// band (spec.md §4.D: "a single-column check against z-buffer").
			startX = s.Column
			endX = s.Column + 1
			if startX < 0 || endX > screenW {
				continue
			}
			if ty > zbuffer[startX] {
				continue
			}
		} else {
			texAspect := float64(tex.Width) / float64(tex.Height)
			width = heightScaled * texAspect

			drawStartX = screenX - width/2
			drawEndX := screenX + width/2

			startX = int(math.Max(0, drawStartX))
			endX = int(math.Min(float64(screenW), drawEndX))
			startX, endX = trimOcclusion(startX, endX, zbuffer, ty)
			if startX >= endX {
				continue
			}
		}

		startY := int(math.Max(0, ceilingRow))
		endY := int(math.Min(float64(screenH), ceilingRow+heightScaled))
		if startY >= endY {
			continue
		}

		alphaFixed := shade.AlphaFixed(ty, lightRange, false)

		workpool.ParallelRows(pool, startY, endY, func(y int) {
			var texY int
			if heightScaled > 0 {
				texY = int((float64(y) - ceilingRow) * float64(tex.Height) / heightScaled)
			}
			for x := startX; x < endX; x++ {
				var texX int
				if s.IsWindow {
					texX = int(s.Fract * float64(tex.Width))
				} else if width > 0 {
					texX = int((float64(x) - drawStartX) * float64(tex.Width) / width)
				}
				r, g, b, a := tex.At(texX, texY)
				if a == 0 {
					continue
				}
				r = shadeByte(r, alphaFixed)
				g = shadeByte(g, alphaFixed)
				b = shadeByte(b, alphaFixed)
				blendPixel(frame, screenW, x, y, r, g, b, a)
			}
		})
	}
	return nil
}

// trimOcclusion advances the left and right draw edges while the
// z-buffer at that column indicates a nearer wall, per spec.md §4.D's
// occlusion-trim rule.
func trimOcclusion(startX, endX int, zbuffer []float64, distance float64) (int, int) {
	for startX < endX && startX < len(zbuffer) && zbuffer[startX] <= distance {
		startX++
	}
	for endX > startX && endX-1 < len(zbuffer) && zbuffer[endX-1] <= distance {
		endX--
	}
	return startX, endX
}

func angleIndex(dx, dy, angleBias float64, angles int) int {
	if angles <= 0 {
		return 0
	}
	theta := math.Atan2(dx, dy)*180/math.Pi + 180 + angleBias
	theta = math.Mod(theta, 360)
	if theta < 0 {
		theta += 360
	}
	idx := int(theta / 45)
	if idx >= angles {
		idx = 0
	}
	return idx
}

func shadeByte(v byte, alphaFixed fixedpoint.Q20) byte {
	out := fixedpoint.FixedMul(fixedpoint.Q20(v)<<fixedpoint.Shift, alphaFixed) >> fixedpoint.Shift
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return byte(out)
}

func blendPixel(frame []byte, frameWidth, x, y int, r, g, b, a byte) {
	i := (y*frameWidth + x) * 4
	if a == 255 {
		frame[i] = r
		frame[i+1] = g
		frame[i+2] = b
		frame[i+3] = 255
		return
	}
	af := int(a)
	frame[i] = byte((af*int(r) + (255-af)*int(frame[i])) >> 8)
	frame[i+1] = byte((af*int(g) + (255-af)*int(frame[i+1])) >> 8)
	frame[i+2] = byte((af*int(b) + (255-af)*int(frame[i+2])) >> 8)
	frame[i+3] = 255
}
