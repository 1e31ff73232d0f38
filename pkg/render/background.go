package render

import (
	"image"
	"image/color"
	"math"
)

const textureTile = 256

// Seeded is the procedural noise primitive behind the detail-mode
// corkboard texture. It is a pure function of its input, so every
// machine renders the identical grain.
func Seeded(i float64) float64 {
	v := math.Sin(i) * 43758.5453
	return v - math.Floor(v)
}

// Texture renders a deterministic grain tile over the given base
// colour: per-pixel speckles, faint horizontal streaks hashed per row,
// and a radial vignette darkening toward the tile edge. Every term is
// a pure function of the pixel index, which makes the tile
// bit-reproducible across machines.
func Texture(w, h int, base color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < h; y++ {
		streak := (Seeded(float64(y)*7.13) - 0.5) * 10
		for x := 0; x < w; x++ {
			// Speckle, centered so the average stays on base.
			d := (Seeded(float64(y*w+x)) - 0.5) * 22

			d += streak

			dist := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			d -= dist * dist * 16

			img.SetRGBA(x, y, color.RGBA{
				R: addClamped(base.R, d),
				G: addClamped(base.G, d),
				B: addClamped(base.B, d),
				A: 0xff,
			})
		}
	}
	return img
}

func addClamped(v uint8, d float64) uint8 {
	f := float64(v) + d
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

// paintBackground fills the frame. Clusters mode gets a flat dark fill;
// detail mode gets the textured board when the canvas can blit pixel
// tiles, and falls back to a flat fill when it cannot.
func (r *Renderer) paintBackground(c Canvas, width, height float64, textured bool) {
	if !textured {
		c.FillRect(0, 0, width, height, r.pal.BackgroundClusters)
		return
	}

	bl, ok := c.(Blitter)
	if !ok {
		c.FillRect(0, 0, width, height, r.pal.Background)
		return
	}

	if r.texture == nil {
		r.texture = Texture(textureTile, textureTile, r.pal.Background)
	}
	for y := 0; y < int(height); y += textureTile {
		for x := 0; x < int(width); x += textureTile {
			bl.Blit(r.texture, x, y)
		}
	}
}
