package tui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/render"
)

// cellCanvas is a tiny character-cell painter for the terminal
// viewport. Geometry and hit-testing stay in the renderer's pixel
// space; this only projects the frame onto the cell grid.
type cellCanvas struct {
	w, h  int
	runes []rune
	fg    []string // lipgloss hex per cell, "" for default
	bold  []bool
}

func newCellCanvas(w, h int) *cellCanvas {
	c := &cellCanvas{
		w:     w,
		h:     h,
		runes: make([]rune, w*h),
		fg:    make([]string, w*h),
		bold:  make([]bool, w*h),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *cellCanvas) set(x, y int, r rune, fg string, bold bool) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	i := y*c.w + x
	c.runes[i] = r
	c.fg[i] = fg
	c.bold[i] = bold
}

func (c *cellCanvas) text(x, y int, s string, fg string, bold bool) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, fg, bold)
	}
}

// line draws a Bresenham segment.
func (c *cellCanvas) line(x0, y0, x1, y1 int, r rune, fg string) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, r, fg, false)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *cellCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			i := y*c.w + x
			r := string(c.runes[i])
			if c.fg[i] == "" && !c.bold[i] {
				b.WriteString(r)
				continue
			}
			st := lipgloss.NewStyle()
			if c.fg[i] != "" {
				st = st.Foreground(lipgloss.Color(c.fg[i]))
			}
			if c.bold[i] {
				st = st.Bold(true)
			}
			b.WriteString(st.Render(r))
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

const (
	glyphPerson   = '◉'
	glyphCluster  = '⬢'
	glyphSelected = '◈'
	glyphLink     = '·'
)

// renderCanvas projects the current frame onto the cell grid.
func (m *Model) renderCanvas(f render.Frame) string {
	c := newCellCanvas(m.canvasW, m.canvasH)
	pal := m.renderer.Palette()
	glow := hexOf(pal.SelectionGlow)
	linkFg := hexOf(pal.Link)

	for _, l := range f.Links {
		a, okA := f.Positions[l.Source]
		b, okB := f.Positions[l.Target]
		if !okA || !okB {
			continue
		}
		ax, ay := m.pixelToCell(a.X, a.Y)
		bx, by := m.pixelToCell(b.X, b.Y)

		fg := linkFg
		if edgeMatches(f.SelectedEdge, l) {
			fg = glow
		}
		c.line(ax, ay, bx, by, glyphLink, fg)
		if l.Count >= 2 {
			c.text((ax+bx)/2, (ay+by)/2, strconv.Itoa(l.Count), fg, false)
		}
	}

	for _, n := range f.Nodes {
		p, ok := f.Positions[n.ID]
		if !ok {
			continue
		}
		x, y := m.pixelToCell(p.X, p.Y)
		fg := hexOf(pal.ClusterColor(n.Cluster))

		glyph := glyphPerson
		if n.IsClusterNode {
			glyph = glyphCluster
		}
		_, selected := f.Selected[n.ID]
		if selected {
			c.set(x, y, glyphSelected, glow, true)
		} else {
			c.set(x, y, glyph, fg, false)
		}

		label := n.Name
		if label == "" {
			label = n.ID
		}
		if runes := []rune(label); len(runes) > 18 {
			label = string(runes[:17]) + "…"
		}
		c.text(x+2, y, label, fg, selected)
	}

	if m.pressed && m.dragging {
		m.drawDragBox(c)
	}

	return c.String()
}

// drawDragBox outlines the in-progress box-select rectangle.
func (m *Model) drawDragBox(c *cellCanvas) {
	x0, y0 := m.dragStartX, m.dragStartY
	x1, y1 := m.dragX, m.dragY
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	fg := hexOf(m.renderer.Palette().SelectionGlow)
	for x := x0; x <= x1; x++ {
		c.set(x, y0, '┄', fg, false)
		c.set(x, y1, '┄', fg, false)
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, '┆', fg, false)
		c.set(x1, y, '┆', fg, false)
	}
}

func edgeMatches(sel *graph.EdgeRef, l graph.ViewLink) bool {
	if sel == nil {
		return false
	}
	return graph.PairKey(sel.Source, sel.Target) == graph.PairKey(l.Source, l.Target)
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
