package tui

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-explorer/pkg/algorithms"
	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/cluster"
	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
	"github.com/dd0wney/cluso-explorer/pkg/render"
	"github.com/dd0wney/cluso-explorer/pkg/session"
)

// stepsPerTick trades smoothness against CPU; the simulator idles once
// cold, so a generous value only costs while the layout is hot.
const stepsPerTick = 3

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.canvasW = maxInt(20, m.width-panelWidth-3)
		m.canvasH = maxInt(10, m.height-4)
		return m, nil

	case layoutTickMsg:
		for i := 0; i < stepsPerTick; i++ {
			m.engine.Step()
		}
		return m, layoutTick()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case graphLoadedMsg:
		return m.onGraphLoaded(msg)

	case neighborhoodLoadedMsg:
		if !m.gens.current(reqNeighborhood, msg.gen) {
			return m, nil
		}
		m.pending[reqNeighborhood] = false
		m.offline = false
		m.sess.SubstituteGraph(graph.New(msg.payload.Nodes, msg.payload.Edges), msg.focal)
		m.depth = 1
		m.refreshNeighbors()
		m.setNotice("Focused on "+msg.focal, false)
		return m, nil

	case metaMsg:
		if m.gens.current(reqMeta, msg.gen) {
			m.meta = msg.meta
		}
		return m, nil

	case insightsMsg:
		if m.gens.current(reqInsights, msg.gen) {
			m.insights = msg.insights
		}
		return m, nil

	case summaryMsg:
		if !m.gens.current(reqSummary, msg.gen) {
			return m, nil
		}
		m.pending[reqSummary] = false
		m.summaries[graph.PairKey(msg.source, msg.target)] = msg.summary
		return m, nil

	case queryAnswerMsg:
		if !m.gens.current(reqQuery, msg.gen) {
			return m, nil
		}
		m.pending[reqQuery] = false
		m.answer = msg.answer
		return m, nil

	case requestFailedMsg:
		return m.onRequestFailed(msg)
	}

	return m, nil
}

func (m *Model) onGraphLoaded(msg graphLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.gens.current(reqGraph, msg.gen) {
		return m, nil
	}
	// A cached snapshot never overrides live data that already landed.
	if msg.fromCache && m.liveLoaded {
		return m, nil
	}

	m.sess.ReplaceGraph(graph.New(msg.payload.Nodes, msg.payload.Edges))
	m.depth = 1
	m.refreshNeighbors()

	if msg.fromCache {
		m.setNotice("Showing cached graph while loading", false)
		return m, nil
	}

	m.liveLoaded = true
	m.pending[reqGraph] = false
	m.offline = false
	m.setNotice("", false)
	return m, m.saveSnapshotCmd(msg.payload)
}

func (m *Model) onRequestFailed(msg requestFailedMsg) (tea.Model, tea.Cmd) {
	if !m.gens.current(msg.kind, msg.gen) {
		return m, nil
	}
	m.pending[msg.kind] = false

	var apiErr *api.APIError
	switch {
	case msg.recluster:
		// The current graph stays installed; only the action is reported.
		m.setNotice("reclustering failed", true)
		if !errors.Is(msg.err, api.ErrNotFound) && !errors.As(msg.err, &apiErr) {
			m.offline = true
		}
	case errors.Is(msg.err, api.ErrNotFound):
		m.setNotice(msg.err.Error(), true)
	case errors.As(msg.err, &apiErr):
		m.setNotice(apiErr.Error(), true)
	default:
		// Transport-level failure: the backend is unreachable. Persistent
		// banner, no automatic retry.
		m.offline = true
	}

	m.log.Warn("request failed",
		logging.Int("kind", int(msg.kind)),
		logging.Error(msg.err))
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.queryFocused {
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.queryInput.Value())
			if question == "" {
				return m, nil
			}
			m.queryInput.SetValue("")
			m.pending[reqQuery] = true
			return m, m.queryCmd(question)
		case "esc":
			m.queryFocused = false
			m.queryInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.queryInput, cmd = m.queryInput.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		if m.sess.Mode() == session.ModeGraph {
			m.sess.SetMode(session.ModeClusters)
		} else {
			m.sess.SetMode(session.ModeGraph)
		}
		m.depth = 1
		m.refreshNeighbors()

	case key.Matches(msg, m.keys.HideSelected):
		m.sess.HideSelected()

	case key.Matches(msg, m.keys.ShowSelected):
		m.sess.ShowSelected()

	case key.Matches(msg, m.keys.ShowOnly):
		m.sess.ShowOnlySelected()

	case key.Matches(msg, m.keys.ShowAll):
		m.sess.ShowAll()

	case key.Matches(msg, m.keys.MinDegreeUp):
		m.sess.SetMinDegree(m.sess.Visibility().MinDegree() + 1)

	case key.Matches(msg, m.keys.MinDegreeDown):
		if d := m.sess.Visibility().MinDegree(); d > 0 {
			m.sess.SetMinDegree(d - 1)
		}

	case key.Matches(msg, m.keys.DepthUp):
		if m.depth < m.sess.FocalDepthBound() {
			m.depth++
		}

	case key.Matches(msg, m.keys.DepthDown):
		if m.depth > 1 {
			m.depth--
		}

	case key.Matches(msg, m.keys.Neighborhood):
		if focal := m.sess.Selection().LastSelected(); focal != "" {
			m.sess.LoadNeighborhood(focal, m.depth)
			m.refreshNeighbors()
		}

	case key.Matches(msg, m.keys.Focus):
		if focal := m.sess.Selection().LastSelected(); focal != "" {
			m.pending[reqNeighborhood] = true
			return m, m.fetchNeighborhoodCmd(focal, m.depth)
		}

	case key.Matches(msg, m.keys.Recluster):
		m.pending[reqGraph] = true
		return m, m.fetchGraphCmd(true)

	case key.Matches(msg, m.keys.Summarize):
		if edge := m.sess.Selection().SelectedEdge(); edge != nil && m.personEdge(*edge) {
			m.pending[reqSummary] = true
			return m, m.summarizeCmd(edge.Source, edge.Target)
		}

	case key.Matches(msg, m.keys.Legend):
		if entries := m.legendEntries(); len(entries) > 0 {
			idx := int(msg.String()[0] - '1')
			if idx >= 0 && idx < len(entries) {
				m.sess.ClickLegend(entries[idx].id)
				m.refreshNeighbors()
			}
		}

	case key.Matches(msg, m.keys.Comments):
		m.sess.ToggleRawComments()

	case key.Matches(msg, m.keys.Query):
		m.queryFocused = true
		return m, m.queryInput.Focus()

	case key.Matches(msg, m.keys.Reset):
		m.sess.Reset()
		m.depth = 1
		m.setNotice("", false)
		m.refreshNeighbors()

	case key.Matches(msg, m.keys.Escape):
		if m.dragging {
			m.dragging = false
			return m, nil
		}
		m.sess.ClickBackground()
		m.refreshNeighbors()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cx, cy := msg.X, msg.Y-canvasTop
	// Some terminals report releases as button "none"; wheel and right
	// button events are ignored outright.
	switch msg.Button {
	case tea.MouseButtonLeft, tea.MouseButtonNone:
	default:
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if !m.inCanvas(cx, cy) {
			return m, nil
		}
		m.dragStartX, m.dragStartY = cx, cy
		m.dragX, m.dragY = cx, cy
		m.pressed = true
		m.dragging = false

	case tea.MouseActionMotion:
		if !m.pressed {
			return m, nil
		}
		m.dragX, m.dragY = cx, cy
		if absInt(cx-m.dragStartX) > dragThreshold || absInt(cy-m.dragStartY) > dragThreshold {
			m.dragging = true
		}

	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false
		if m.dragging {
			m.dragging = false
			m.finishBoxSelect(cx, cy)
		} else {
			m.handleClick(cx, cy, msg.Shift)
		}
		m.refreshNeighbors()
	}

	return m, nil
}

// handleClick resolves the element under a cell via the renderer's
// id-colour pick pass and feeds the session state machine.
func (m *Model) handleClick(cx, cy int, shift bool) {
	f := m.currentFrame()
	px, py := m.cellToPixel(cx, cy)
	target := m.renderer.PickAt(f, px, py)

	switch target.Kind {
	case render.PickNode:
		if target.Node.IsClusterNode {
			m.sess.ClickClusterNode(target.Node.Cluster)
			return
		}
		if shift {
			m.sess.ShiftClickNode(target.Node.ID)
		} else {
			m.sess.ClickNode(target.Node.ID)
		}

	case render.PickLink:
		m.sess.ClickLink(graph.EdgeRef{
			Source: target.Link.Source,
			Target: target.Link.Target,
		})

	default:
		m.sess.ClickBackground()
	}
}

// finishBoxSelect replaces the selection with every visible person node
// whose position falls inside the dragged rectangle.
func (m *Model) finishBoxSelect(cx, cy int) {
	x0, y0 := m.cellToPixel(m.dragStartX, m.dragStartY)
	x1, y1 := m.cellToPixel(cx, cy)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	f := m.currentFrame()
	var ids []string
	for _, n := range f.Nodes {
		if n.IsClusterNode {
			continue
		}
		p, ok := f.Positions[n.ID]
		if !ok {
			continue
		}
		if int(p.X) >= x0 && int(p.X) <= x1 && int(p.Y) >= y0 && int(p.Y) <= y1 {
			ids = append(ids, n.ID)
		}
	}
	m.sess.BoxSelect(ids)
}

// currentFrame derives the renderable frame: view model, engine apply
// (consuming any pending layout signal), and current positions.
func (m *Model) currentFrame() render.Frame {
	nodes, links := m.sess.ViewModel()
	m.engine.Apply(nodes, links, m.sess.LayoutSignal())

	style := render.StyleCircles
	if m.sess.Mode() == session.ModeGraph {
		style = render.StyleBoard
	}
	return render.Frame{
		Width:        m.pxWidth,
		Height:       m.pxHeight,
		Style:        style,
		Nodes:        nodes,
		Links:        links,
		Positions:    m.engine.Positions(),
		Selected:     m.sess.Selection().SelectedIDs(),
		SelectedEdge: m.sess.Selection().SelectedEdge(),
	}
}

// refreshNeighbors rebuilds the neighbour table for the focal node.
func (m *Model) refreshNeighbors() {
	focal := m.sess.Selection().LastSelected()
	if focal == "" || !m.sess.Graph().Contains(focal) {
		m.neighbors.SetRows(nil)
		return
	}
	neighbors := algorithms.DirectNeighbors(m.sess.Graph(), focal)
	rows := make([]table.Row, 0, len(neighbors))
	for _, n := range neighbors {
		rows = append(rows, table.Row{n.Name, n.ID})
	}
	m.neighbors.SetRows(rows)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) inCanvas(cx, cy int) bool {
	return cx >= 0 && cx < m.canvasW && cy >= 0 && cy < m.canvasH
}

// cellToPixel maps a terminal cell to frame pixel space, sampling the
// cell's center.
func (m *Model) cellToPixel(cx, cy int) (int, int) {
	if m.canvasW == 0 || m.canvasH == 0 {
		return 0, 0
	}
	px := (float64(cx) + 0.5) * m.pxWidth / float64(m.canvasW)
	py := (float64(cy) + 0.5) * m.pxHeight / float64(m.canvasH)
	return int(px), int(py)
}

// pixelToCell is the inverse mapping used when painting.
func (m *Model) pixelToCell(px, py float64) (int, int) {
	return int(px * float64(m.canvasW) / m.pxWidth),
		int(py * float64(m.canvasH) / m.pxHeight)
}

// personEdge reports whether both endpoints are people in the working
// graph. Aggregated cluster links carry synthetic endpoint ids that the
// graph does not contain, so they never reach the summarize endpoint.
func (m *Model) personEdge(ref graph.EdgeRef) bool {
	g := m.sess.Graph()
	return g.Contains(ref.Source) && g.Contains(ref.Target)
}

// maxLegendEntries caps the legend at the digit keys that can reach it.
const maxLegendEntries = 9

type legendEntry struct {
	id    int
	label string
	count int
}

// legendEntries lists the working graph's clusters in id order with
// their resolved labels and member counts.
func (m *Model) legendEntries() []legendEntry {
	groups := make(map[int][]graph.Person)
	for _, n := range m.sess.Graph().Nodes() {
		groups[n.Cluster] = append(groups[n.Cluster], n)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]legendEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, legendEntry{
			id:    id,
			label: cluster.Label(groups[id], id),
			count: len(groups[id]),
		})
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
