package render

import (
	"math"
	"strconv"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

const maxLinkWidth = 6.0

// LinkWidth maps an aggregated interaction count to a stroke width.
// Width grows with the logarithm of the count and is capped so a single
// very heavy pair cannot dominate the picture.
func LinkWidth(count int) float64 {
	if count < 1 {
		count = 1
	}
	w := 1 + math.Log2(float64(count))
	if w > maxLinkWidth {
		w = maxLinkWidth
	}
	return w
}

// paintLink draws one aggregated link plus, for multi-interaction pairs,
// a small pill at the midpoint carrying the count.
func (r *Renderer) paintLink(c Canvas, l graph.ViewLink, a, b Point, selected bool) {
	col := r.pal.Link
	width := LinkWidth(l.Count)
	if selected {
		col = r.pal.SelectionGlow
		width += 1.5
	}
	c.Line(a, b, width, col)

	if l.Count < 2 {
		return
	}
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	label := strconv.Itoa(l.Count)
	tw := c.TextWidth(label)
	c.FillRoundedRect(mid.X-tw/2-5, mid.Y-8, tw+10, 16, 8, r.pal.LabelPill)
	c.Text(mid, label, r.pal.LabelPillText, AlignCenter)
}
