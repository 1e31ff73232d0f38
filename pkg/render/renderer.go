package render

import (
	"image"
	"image/color"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/layout"
)

// FrameStyle selects how person nodes are drawn. Cluster super-nodes
// are always hexagons regardless of style.
type FrameStyle int

const (
	// StyleBoard draws people as pinned cards over the textured board.
	StyleBoard FrameStyle = iota
	// StyleCircles draws people as plain circles on the flat background,
	// used inside an expanded cluster.
	StyleCircles
)

type nodeShape int

const (
	shapeCluster nodeShape = iota
	shapeCard
	shapeCircle
)

// Frame is one paint request: the derived view model, the physics
// positions keyed by node id, and the selection to highlight.
type Frame struct {
	Width, Height float64
	Style         FrameStyle

	Nodes []graph.ViewNode
	Links []graph.ViewLink

	Positions map[string]layout.Position

	Selected     map[string]struct{}
	SelectedEdge *graph.EdgeRef
}

// Renderer paints frames onto any Canvas. It is stateless apart from
// the palette and a cached background texture tile.
type Renderer struct {
	pal     Palette
	texture *image.RGBA
}

// New creates a renderer with the given palette.
func New(pal Palette) *Renderer {
	return &Renderer{pal: pal}
}

// Palette returns the active theme, so hosts can colour their own
// chrome consistently with the canvas.
func (r *Renderer) Palette() Palette { return r.pal }

// Paint draws the visual pass: background, then links, then nodes, so
// nodes always sit on top of their links.
func (r *Renderer) Paint(c Canvas, f Frame) {
	r.paintBackground(c, f.Width, f.Height, f.Style == StyleBoard)

	for _, l := range f.Links {
		a, okA := position(f, l.Source)
		b, okB := position(f, l.Target)
		if !okA || !okB {
			continue
		}
		r.paintLink(c, l, a, b, edgeSelected(f, l))
	}

	for _, n := range f.Nodes {
		pos, ok := position(f, n.ID)
		if !ok {
			continue
		}
		_, selected := f.Selected[n.ID]
		switch shapeFor(f.Style, n) {
		case shapeCluster:
			r.paintClusterNode(c, n, pos, selected)
		case shapeCard:
			r.paintCardNode(c, n, pos, selected)
		case shapeCircle:
			r.paintCircleNode(c, n, pos, selected)
		}
	}
}

// PaintPickPass draws the frame onto an off-screen surface in id
// colours and returns the map that decodes sampled pixels. The paint
// order mirrors the visual pass so z-order resolves the same way a user
// perceives it.
func (r *Renderer) PaintPickPass(c Canvas, f Frame) *PickMap {
	c.FillRect(0, 0, f.Width, f.Height, color.RGBA{A: 0xff})

	m := &PickMap{}
	for _, l := range f.Links {
		a, okA := position(f, l.Source)
		b, okB := position(f, l.Target)
		if !okA || !okB {
			continue
		}
		m.paintPickLink(c, l, a, b)
	}
	for _, n := range f.Nodes {
		pos, ok := position(f, n.ID)
		if !ok {
			continue
		}
		m.paintPickNode(c, n, pos, shapeFor(f.Style, n))
	}
	return m
}

// PickAt renders the pick pass onto a scratch raster and decodes the
// element under the given pixel. Hosts that keep a live pick surface
// can instead call PaintPickPass once per frame and sample it directly.
func (r *Renderer) PickAt(f Frame, x, y int) PickTarget {
	surface := NewRaster(int(f.Width), int(f.Height))
	m := r.PaintPickPass(surface, f)
	return m.AtColor(surface.At(x, y))
}

func shapeFor(style FrameStyle, n graph.ViewNode) nodeShape {
	if n.IsClusterNode {
		return shapeCluster
	}
	if style == StyleCircles {
		return shapeCircle
	}
	return shapeCard
}

func position(f Frame, id string) (Point, bool) {
	p, ok := f.Positions[id]
	return Point{X: p.X, Y: p.Y}, ok
}

func edgeSelected(f Frame, l graph.ViewLink) bool {
	if f.SelectedEdge == nil {
		return false
	}
	return graph.PairKey(l.Source, l.Target) == graph.PairKey(f.SelectedEdge.Source, f.SelectedEdge.Target)
}
