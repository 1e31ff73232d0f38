// Package render paints the view model onto an immediate-mode 2D
// surface and provides the off-screen id-colour hit-test pass that maps
// pointer positions back to graph elements.
package render

import (
	"image"
	"image/color"
)

// Point is a 2D coordinate in canvas pixels.
type Point struct {
	X, Y float64
}

// Align positions text relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Canvas is the immediate-mode drawing contract the renderer requires
// from its host surface. Implementations do not need anti-aliasing;
// every primitive is a solid fill or stroke.
type Canvas interface {
	FillCircle(center Point, radius float64, col color.RGBA)
	StrokeCircle(center Point, radius, width float64, col color.RGBA)
	FillPolygon(points []Point, col color.RGBA)
	StrokePolygon(points []Point, width float64, col color.RGBA)
	FillRect(x, y, w, h float64, col color.RGBA)
	FillRoundedRect(x, y, w, h, radius float64, col color.RGBA)
	StrokeRoundedRect(x, y, w, h, radius, width float64, col color.RGBA)
	Line(a, b Point, width float64, col color.RGBA)
	Text(anchor Point, s string, col color.RGBA, align Align)
	TextWidth(s string) float64
}

// Blitter is an optional canvas capability: hosts that can copy raw
// pixel tiles implement it, and the renderer uses it to tile the
// procedural background texture. Hosts without it get a flat fill.
type Blitter interface {
	Blit(img image.Image, x, y int)
}
