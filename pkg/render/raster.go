package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is a software Canvas over an image.RGBA. It backs both the
// PNG export path and the off-screen pick surface; interactive hosts
// bring their own Canvas.
type Raster struct {
	img  *image.RGBA
	face font.Face
}

// NewRaster allocates a canvas of the given pixel size.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// Image exposes the backing pixels for encoding or sampling.
func (r *Raster) Image() *image.RGBA { return r.img }

// Clear fills the whole surface with one colour.
func (r *Raster) Clear(col color.RGBA) {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// At samples one pixel, clamping out-of-bounds reads to transparent
// black so pick lookups outside the surface decode to no target.
func (r *Raster) At(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return color.RGBA{}
	}
	return r.img.RGBAAt(x, y)
}

func (r *Raster) Blit(img image.Image, x, y int) {
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(r.img, dst, img, b.Min, draw.Src)
}

func (r *Raster) FillCircle(center Point, radius float64, col color.RGBA) {
	r.fillRegion(center.X-radius, center.Y-radius, 2*radius, 2*radius, col, func(x, y float64) bool {
		dx, dy := x-center.X, y-center.Y
		return dx*dx+dy*dy <= radius*radius
	})
}

func (r *Raster) StrokeCircle(center Point, radius, width float64, col color.RGBA) {
	outer := radius + width/2
	inner := radius - width/2
	if inner < 0 {
		inner = 0
	}
	r.fillRegion(center.X-outer, center.Y-outer, 2*outer, 2*outer, col, func(x, y float64) bool {
		dx, dy := x-center.X, y-center.Y
		d2 := dx*dx + dy*dy
		return d2 <= outer*outer && d2 >= inner*inner
	})
}

func (r *Raster) FillPolygon(points []Point, col color.RGBA) {
	if len(points) < 3 {
		return
	}
	minX, minY, maxX, maxY := bounds(points)
	r.fillRegion(minX, minY, maxX-minX, maxY-minY, col, func(x, y float64) bool {
		return pointInPolygon(points, x, y)
	})
}

func (r *Raster) StrokePolygon(points []Point, width float64, col color.RGBA) {
	for i := range points {
		r.Line(points[i], points[(i+1)%len(points)], width, col)
	}
}

func (r *Raster) FillRect(x, y, w, h float64, col color.RGBA) {
	r.fillRegion(x, y, w, h, col, func(float64, float64) bool { return true })
}

func (r *Raster) FillRoundedRect(x, y, w, h, radius float64, col color.RGBA) {
	r.fillRegion(x, y, w, h, col, func(px, py float64) bool {
		return inRoundedRect(px, py, x, y, w, h, radius)
	})
}

func (r *Raster) StrokeRoundedRect(x, y, w, h, radius, width float64, col color.RGBA) {
	r.fillRegion(x-width, y-width, w+2*width, h+2*width, col, func(px, py float64) bool {
		outer := inRoundedRect(px, py, x-width/2, y-width/2, w+width, h+width, radius+width/2)
		inner := inRoundedRect(px, py, x+width/2, y+width/2, w-width, h-width, radius-width/2)
		return outer && !inner
	})
}

func (r *Raster) Line(a, b Point, width float64, col color.RGBA) {
	half := width / 2
	minX := math.Min(a.X, b.X) - half
	minY := math.Min(a.Y, b.Y) - half
	w := math.Abs(a.X-b.X) + width
	h := math.Abs(a.Y-b.Y) + width
	r.fillRegion(minX, minY, w, h, col, func(x, y float64) bool {
		return distToSegment(x, y, a, b) <= half
	})
}

func (r *Raster) Text(anchor Point, s string, col color.RGBA, align Align) {
	x := anchor.X
	if align == AlignCenter {
		x -= r.TextWidth(s) / 2
	}
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(col),
		Face: r.face,
		// Anchor is the vertical center of the line, not the baseline.
		Dot: fixed.P(int(x), int(anchor.Y)+r.face.Metrics().Ascent.Ceil()/2),
	}
	d.DrawString(s)
}

func (r *Raster) TextWidth(s string) float64 {
	return float64(font.MeasureString(r.face, s).Ceil())
}

// fillRegion rasterizes the pixels of a bounding box for which inside
// reports true, sampling at pixel centers.
func (r *Raster) fillRegion(x, y, w, h float64, col color.RGBA, inside func(px, py float64) bool) {
	b := r.img.Bounds()
	x0 := clampInt(int(math.Floor(x)), b.Min.X, b.Max.X)
	y0 := clampInt(int(math.Floor(y)), b.Min.Y, b.Max.Y)
	x1 := clampInt(int(math.Ceil(x+w))+1, b.Min.X, b.Max.X)
	y1 := clampInt(int(math.Ceil(y+h))+1, b.Min.Y, b.Max.Y)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			if inside(cx, cy) {
				r.setPixel(px, py, col)
			}
		}
	}
}

// setPixel writes one pixel with source-over blending for translucent
// colours and a straight store for opaque ones.
func (r *Raster) setPixel(x, y int, col color.RGBA) {
	if col.A == 0xff {
		r.img.SetRGBA(x, y, col)
		return
	}
	bg := r.img.RGBAAt(x, y)
	a := float64(col.A) / 255
	blend := func(s, d uint8) uint8 {
		return uint8(float64(s)*a + float64(d)*(1-a))
	}
	r.img.SetRGBA(x, y, color.RGBA{
		R: blend(col.R, bg.R),
		G: blend(col.G, bg.G),
		B: blend(col.B, bg.B),
		A: 0xff,
	})
}

func inRoundedRect(px, py, x, y, w, h, radius float64) bool {
	if px < x || px > x+w || py < y || py > y+h {
		return false
	}
	if radius <= 0 {
		return true
	}
	if m := math.Min(w, h) / 2; radius > m {
		radius = m
	}
	// Distance from the point to the radius-inset inner rectangle.
	cx := math.Max(x+radius, math.Min(px, x+w-radius))
	cy := math.Max(y+radius, math.Min(py, y+h-radius))
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

func pointInPolygon(points []Point, x, y float64) bool {
	inside := false
	j := len(points) - 1
	for i := 0; i < len(points); i++ {
		pi, pj := points[i], points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func distToSegment(x, y float64, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}

func bounds(points []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = points[0].X, points[0].Y
	maxX, maxY = minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
