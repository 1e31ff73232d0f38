package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/render"
	"github.com/dd0wney/cluso-explorer/pkg/session"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	f := m.currentFrame()

	var b strings.Builder
	b.WriteString(m.renderTitle(f))
	b.WriteByte('\n')

	canvas := m.renderCanvas(f)
	panels := m.renderPanels(f)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", panels))

	b.WriteByte('\n')
	b.WriteString(m.renderStatusLine())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m *Model) renderTitle(f render.Frame) string {
	mode := "graph"
	if m.sess.Mode() == session.ModeClusters {
		mode = "clusters"
		if ec := m.sess.ExpandedCluster(); ec != session.NoCluster {
			mode = fmt.Sprintf("clusters › %d", ec)
		}
	}

	title := fmt.Sprintf("cluso explorer  [%s]  %d nodes · %d links  deg≥%d  depth %d/%d",
		mode, len(f.Nodes), len(f.Links),
		m.sess.Visibility().MinDegree(),
		m.depth, m.sess.FocalDepthBound())

	line := titleStyle.Render(title)
	if m.meta != nil {
		line += dimStyle.Render(fmt.Sprintf("  dataset %d people · %d edges",
			m.meta.Counts.NodeCount, m.meta.Counts.EdgeCount))
	}
	if m.offline {
		line += "  " + bannerStyle.Render("BACKEND UNREACHABLE")
	} else if m.pending[reqGraph] {
		line += "  " + dimStyle.Render("loading…")
	}
	return line
}

func (m *Model) renderStatusLine() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return errNoticeStyle.Render("✗ " + m.notice)
	}
	return noticeStyle.Render(m.notice)
}

func (m *Model) renderPanels(f render.Frame) string {
	sections := []string{
		m.renderSelectionPanel(),
		m.renderEdgePanel(f),
		m.renderLegendPanel(),
		m.renderNeighborsPanel(),
		m.renderQueryPanel(),
		m.renderInsightsPanel(),
		m.renderDegreesPanel(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSelectionPanel() string {
	sel := m.sess.Selection()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Selected: %d", sel.Count()))

	if focal := sel.LastSelected(); focal != "" {
		if p, ok := m.sess.Graph().Node(focal); ok {
			b.WriteString(fmt.Sprintf("\n%s\n%s", p.Name, p.Email))
			b.WriteString(fmt.Sprintf("\ncluster %d · degree %d", p.Cluster, p.Degree))
			if p.ClusterName != "" {
				b.WriteString(" · " + p.ClusterName)
			}
		} else {
			b.WriteString("\n" + focal)
		}
	}

	if hidden := len(m.sess.Visibility().HiddenIDs()); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n%d hidden", hidden)))
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

func (m *Model) renderEdgePanel(f render.Frame) string {
	ref := m.sess.Selection().SelectedEdge()
	if ref == nil {
		return panelStyle.Width(panelWidth).Render(dimStyle.Render("No link selected"))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s ↔ %s", displayID(m, ref.Source), displayID(m, ref.Target)))

	for _, l := range f.Links {
		if graph.PairKey(l.Source, l.Target) != graph.PairKey(ref.Source, ref.Target) {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%d interactions", l.Count))

		summary := l.Summary
		if fresh, ok := m.summaries[graph.PairKey(ref.Source, ref.Target)]; ok {
			summary = fresh
		}
		if summary != "" {
			b.WriteString("\n" + wrap(summary, panelWidth-4))
		}
		break
	}

	if m.pending[reqSummary] {
		b.WriteString(dimStyle.Render("\nsummarizing…"))
	}

	if m.sess.ShowRawComments() {
		comments := edgeComments(m.sess.Graph(), *ref)
		for _, c := range comments {
			b.WriteString("\n• " + wrap(c, panelWidth-6))
		}
		if len(comments) == 0 {
			b.WriteString(dimStyle.Render("\nno raw observations"))
		}
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

func (m *Model) renderNeighborsPanel() string {
	if len(m.neighbors.Rows()) == 0 {
		return ""
	}
	return panelStyle.Width(panelWidth).Render("Neighbours\n" + m.neighbors.View())
}

func (m *Model) renderQueryPanel() string {
	var b strings.Builder
	b.WriteString("Ask the graph\n")
	b.WriteString(m.queryInput.View())

	if m.pending[reqQuery] {
		b.WriteString(dimStyle.Render("\nthinking…"))
	}
	if m.answer != nil {
		b.WriteString("\n" + wrap(m.answer.Answer, panelWidth-4))
		for i, src := range m.answer.Sources {
			if i >= 3 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("\n… %d more sources", len(m.answer.Sources)-i)))
				break
			}
			label := src.Namespace
			if label == "" {
				label = src.Type
			}
			b.WriteString(dimStyle.Render(fmt.Sprintf("\nsource: %s (%.2f)", label, src.Score)))
		}
		if m.answer.Model != "" {
			b.WriteString(dimStyle.Render("\nmodel: " + m.answer.Model))
		}
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

func (m *Model) renderInsightsPanel() string {
	if len(m.insights) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Insights")
	for i, ins := range m.insights {
		if i >= 3 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("\n… and %d more", len(m.insights)-i)))
			break
		}
		b.WriteString(fmt.Sprintf("\n• [%s %.2f] %s",
			insightTag(ins.Type), ins.Severity, wrap(ins.Title, panelWidth-6)))
		if ins.Description != "" {
			b.WriteString("\n  " + dimStyle.Render(wrap(ins.Description, panelWidth-8)))
		}
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

// insightTag shortens the backend's insight type for panel display.
func insightTag(insightType string) string {
	switch insightType {
	case "node_anomaly":
		return "anomaly"
	case "bridge_edge":
		return "bridge"
	case "high_centrality":
		return "hub"
	default:
		return insightType
	}
}

// renderLegendPanel lists the working graph's clusters with their number
// keys; pressing a key selects that cluster's members.
func (m *Model) renderLegendPanel() string {
	entries := m.legendEntries()
	if len(entries) == 0 {
		return ""
	}
	pal := m.renderer.Palette()
	var b strings.Builder
	b.WriteString("Clusters")
	for i, e := range entries {
		if i >= maxLegendEntries {
			b.WriteString(dimStyle.Render(fmt.Sprintf("\n… and %d more", len(entries)-i)))
			break
		}
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(hexOf(pal.ClusterColor(e.id)))).
			Render(string(glyphCluster))
		b.WriteString(fmt.Sprintf("\n%d %s %s (%d)", i+1, swatch, e.label, e.count))
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

// renderDegreesPanel shows the backend's degree ranking head.
func (m *Model) renderDegreesPanel() string {
	if m.meta == nil || len(m.meta.Degrees) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Most connected")
	for i, d := range m.meta.Degrees {
		if i >= 3 {
			break
		}
		name := d.Name
		if name == "" {
			name = d.Email
		}
		b.WriteString(fmt.Sprintf("\n%3d  %s", d.Degree, name))
	}
	return panelStyle.Width(panelWidth).Render(b.String())
}

// displayID shortens a node id for panel headers: name when known,
// otherwise the raw id.
func displayID(m *Model, id string) string {
	if p, ok := m.sess.Graph().Node(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}

// edgeComments collects the raw observations of every underlying edge
// for one unordered pair.
func edgeComments(g *graph.Graph, ref graph.EdgeRef) []string {
	key := graph.PairKey(ref.Source, ref.Target)
	var out []string
	for _, e := range g.Edges() {
		if graph.PairKey(e.Source, e.Target) == key {
			out = append(out, e.Properties.Comments...)
		}
	}
	return out
}

// wrap does greedy word wrapping to the given width.
func wrap(s string, width int) string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
