package render

import (
	"image/color"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// PickKind tags what a decoded pick colour refers to.
type PickKind int

const (
	PickNone PickKind = iota
	PickNode
	PickLink
)

// PickTarget is one clickable element registered during the pick pass.
type PickTarget struct {
	Kind PickKind
	Node graph.ViewNode
	Link graph.ViewLink
}

// PickMap is the result of a pick pass: the pick surface was painted
// with EncodePickColor(i) for target i, and AtColor maps a sampled
// pixel back to the element under it.
type PickMap struct {
	targets []PickTarget
}

// AtColor decodes a sampled pick-surface pixel. Unpainted (background)
// pixels return a PickNone target.
func (m *PickMap) AtColor(c color.RGBA) PickTarget {
	idx, ok := DecodePickColor(c)
	if !ok || idx >= len(m.targets) {
		return PickTarget{Kind: PickNone}
	}
	return m.targets[idx]
}

func (m *PickMap) add(t PickTarget) color.RGBA {
	c := EncodePickColor(len(m.targets))
	m.targets = append(m.targets, t)
	return c
}

// EncodePickColor packs a target index into an opaque RGB colour.
// Index i maps to the 24-bit value i+1, leaving pure black for the
// background.
func EncodePickColor(index int) color.RGBA {
	v := uint32(index + 1)
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// DecodePickColor inverts EncodePickColor. Black (the cleared surface)
// decodes to no target.
func DecodePickColor(c color.RGBA) (int, bool) {
	v := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if v == 0 {
		return 0, false
	}
	return int(v - 1), true
}

// paintPickLink registers a link and paints its pick region: the same
// segment as the visual pass but widened so thin links remain clickable.
func (m *PickMap) paintPickLink(c Canvas, l graph.ViewLink, a, b Point) {
	col := m.add(PickTarget{Kind: PickLink, Link: l})
	c.Line(a, b, LinkWidth(l.Count)+6, col)
}

// paintPickNode registers a node and paints its pick region using the
// same geometry constants as the visual painters.
func (m *PickMap) paintPickNode(c Canvas, n graph.ViewNode, pos Point, shape nodeShape) {
	col := m.add(PickTarget{Kind: PickNode, Node: n})
	switch shape {
	case shapeCluster:
		c.FillCircle(pos, ClusterRadius(n.MemberCount), col)
	case shapeCard:
		c.FillRect(pos.X-cardWidth/2, pos.Y-cardHeight/2, cardWidth, cardHeight, col)
	case shapeCircle:
		c.FillCircle(pos, circleHitRadius, col)
	}
}
