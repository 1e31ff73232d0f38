package render

import (
	"math"
	"strings"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// Geometry constants shared between the visual pass and the hit-test
// pass. Changing a size here changes both, which keeps pick regions in
// sync with what is painted.
const (
	cardWidth  = 118.0
	cardHeight = 66.0
	cardCorner = 8.0

	circleNodeRadius = 9.0
	circleHitRadius  = 13.0

	clusterBaseRadius = 16.0
	clusterMaxRadius  = 64.0
)

// ClusterRadius sizes a cluster super-node's hexagon (and its circular
// hit region) by member count.
func ClusterRadius(memberCount int) float64 {
	if memberCount < 1 {
		memberCount = 1
	}
	r := clusterBaseRadius + 5*math.Sqrt(float64(memberCount))
	if r > clusterMaxRadius {
		r = clusterMaxRadius
	}
	return r
}

// hexagonPoints returns the six vertices of a pointy-top regular hexagon.
func hexagonPoints(center Point, radius float64) []Point {
	pts := make([]Point, 6)
	for i := 0; i < 6; i++ {
		angle := -math.Pi/2 + float64(i)*math.Pi/3
		pts[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return pts
}

// paintClusterNode draws a cluster super-node: a hexagon sized by member
// count, outlined in the cluster colour, label centered.
func (r *Renderer) paintClusterNode(c Canvas, n graph.ViewNode, pos Point, selected bool) {
	radius := ClusterRadius(n.MemberCount)
	outline := r.pal.ClusterColor(n.Cluster)
	pts := hexagonPoints(pos, radius)

	if selected {
		c.StrokePolygon(hexagonPoints(pos, radius+4), 4, r.pal.SelectionGlow)
	}
	c.FillPolygon(pts, Tint(outline, 0.75))
	c.StrokePolygon(pts, 2.5, outline)
	c.Text(pos, n.Name, ContrastText(Tint(outline, 0.75)), AlignCenter)
}

// paintCardNode draws a person in the detail "board" mode: a rounded
// card with a folded corner, a pinned-note accent, a simplified
// silhouette, and a two-line wrapped name.
func (r *Renderer) paintCardNode(c Canvas, n graph.ViewNode, pos Point, selected bool) {
	x := pos.X - cardWidth/2
	y := pos.Y - cardHeight/2
	tint := r.pal.ClusterColor(n.Cluster)

	if selected {
		c.StrokeRoundedRect(x-3, y-3, cardWidth+6, cardHeight+6, cardCorner, 4, r.pal.SelectionGlow)
	}

	paper := blendPaper(r.pal.Card, tint)
	c.FillRoundedRect(x, y, cardWidth, cardHeight, cardCorner, paper)
	c.StrokeRoundedRect(x, y, cardWidth, cardHeight, cardCorner, 1.5, Shade(paper, 0.35))

	// Folded top-right corner
	fold := 14.0
	c.FillPolygon([]Point{
		{X: x + cardWidth - fold, Y: y},
		{X: x + cardWidth, Y: y + fold},
		{X: x + cardWidth - fold, Y: y + fold},
	}, r.pal.CardFold)

	// Pinned-note accent
	c.FillCircle(Point{X: pos.X, Y: y + 6}, 3.5, r.pal.CardPin)

	// Simplified person silhouette on the left: head plus shoulders
	sil := r.pal.CardSilhouete
	headC := Point{X: x + 22, Y: y + 26}
	c.FillCircle(headC, 8, sil)
	c.FillPolygon([]Point{
		{X: x + 8, Y: y + 52},
		{X: x + 13, Y: y + 38},
		{X: x + 31, Y: y + 38},
		{X: x + 36, Y: y + 52},
	}, sil)

	// Two-line wrapped name to the right of the silhouette
	lines := wrapName(displayName(n), 13)
	textX := x + 44
	textY := y + 26.0
	for i, line := range lines {
		c.Text(Point{X: textX, Y: textY + float64(i)*14}, line, r.pal.Label, AlignLeft)
	}
}

// paintCircleNode draws a person in the expanded-cluster detail-circle
// mode: a filled circle with the label below.
func (r *Renderer) paintCircleNode(c Canvas, n graph.ViewNode, pos Point, selected bool) {
	outline := r.pal.ClusterColor(n.Cluster)

	c.FillCircle(pos, circleNodeRadius, Tint(outline, 0.6))
	if selected {
		c.StrokeCircle(pos, circleNodeRadius+2, 3, r.pal.SelectionGlow)
	} else {
		c.StrokeCircle(pos, circleNodeRadius, 2, outline)
	}
	c.Text(Point{X: pos.X, Y: pos.Y + circleNodeRadius + 12}, displayName(n), r.pal.LabelPillText, AlignCenter)
}

func displayName(n graph.ViewNode) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// wrapName splits a display name into at most two lines of roughly
// maxChars characters, breaking on word boundaries and ellipsizing the
// overflow.
func wrapName(name string, maxChars int) []string {
	if len(name) <= maxChars {
		return []string{name}
	}

	words := strings.Fields(name)
	var first, second string
	for _, w := range words {
		switch {
		case first == "" || len(first)+1+len(w) <= maxChars:
			if first == "" {
				first = w
			} else {
				first += " " + w
			}
		case second == "" || len(second)+1+len(w) <= maxChars:
			if second == "" {
				second = w
			} else {
				second += " " + w
			}
		default:
			second += "…"
			return []string{first, second}
		}
	}
	if second == "" {
		// One unbreakable token: hard split.
		if len(name) > 2*maxChars {
			return []string{name[:maxChars], name[maxChars:2*maxChars-1] + "…"}
		}
		return []string{name[:maxChars], name[maxChars:]}
	}
	return []string{first, second}
}
