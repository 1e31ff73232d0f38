package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/config"
	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/session"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	client := api.New("http://127.0.0.1:1", 0, nil, nil)
	return New(config.Default(), client, nil, nil, nil)
}

func testPayload() *api.GraphPayload {
	return &api.GraphPayload{
		Nodes: []graph.Person{
			{Email: "alice@x.com", Name: "Alice", Cluster: 0, Degree: 2},
			{Email: "bob@x.com", Name: "Bob", Cluster: 0, Degree: 1},
			{Email: "carol@x.com", Name: "Carol", Cluster: 1, Degree: 1},
		},
		Edges: []graph.Edge{
			{Source: "alice@x.com", Target: "bob@x.com",
				Properties: graph.EdgeProperties{EmailCount: 2}},
			{Source: "alice@x.com", Target: "carol@x.com",
				Properties: graph.EdgeProperties{EmailCount: 1}},
		},
	}
}

func keyPress(m *Model, k string) *Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(*Model)
}

func TestStaleGraphResponseDiscarded(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false) // gen 1
	_ = m.fetchGraphCmd(true)  // gen 2 supersedes it

	// The gen-1 response arrives late and must be dropped.
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)
	assert.Empty(t, m.Session().Graph().Nodes())

	next, _ = m.Update(graphLoadedMsg{gen: 2, payload: testPayload()})
	m = next.(*Model)
	assert.Len(t, m.Session().Graph().Nodes(), 3)
}

func TestStaleNeighborhoodDiscarded(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)

	_ = m.fetchNeighborhoodCmd("alice@x.com", 1) // gen 1
	_ = m.fetchNeighborhoodCmd("carol@x.com", 1) // gen 2

	stale := &api.GraphPayload{Nodes: []graph.Person{{Email: "alice@x.com"}}}
	next, _ = m.Update(neighborhoodLoadedMsg{gen: 1, focal: "alice@x.com", payload: stale})
	m = next.(*Model)
	assert.Len(t, m.Session().Graph().Nodes(), 3, "stale focus subgraph must not install")
}

func TestCachedSnapshotNeverOverridesLiveData(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)

	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)
	require.Len(t, m.Session().Graph().Nodes(), 3)

	cached := &api.GraphPayload{Nodes: []graph.Person{{Email: "stale@x.com"}}}
	next, _ = m.Update(graphLoadedMsg{gen: 1, payload: cached, fromCache: true})
	m = next.(*Model)
	assert.Len(t, m.Session().Graph().Nodes(), 3)
}

func TestTransportFailureRaisesBanner(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)

	next, _ := m.Update(requestFailedMsg{gen: 1, kind: reqGraph, err: errors.New("connection refused")})
	m = next.(*Model)
	assert.True(t, m.offline)

	// A later success clears it.
	_ = m.fetchGraphCmd(false)
	next, _ = m.Update(graphLoadedMsg{gen: 2, payload: testPayload()})
	m = next.(*Model)
	assert.False(t, m.offline)
}

func TestOperationFailureIsScopedNotice(t *testing.T) {
	m := testModel(t)
	_ = m.fetchNeighborhoodCmd("ghost@x.com", 1)

	next, _ := m.Update(requestFailedMsg{gen: 1, kind: reqNeighborhood, err: api.ErrNotFound})
	m = next.(*Model)

	assert.False(t, m.offline, "a 404 is not a connectivity failure")
	assert.Equal(t, "Person not found", m.notice)
	assert.True(t, m.noticeErr)
}

func TestModeToggleKey(t *testing.T) {
	m := testModel(t)
	require.Equal(t, session.ModeGraph, m.Session().Mode())

	m = keyPress(m, "m")
	assert.Equal(t, session.ModeClusters, m.Session().Mode())
	m = keyPress(m, "m")
	assert.Equal(t, session.ModeGraph, m.Session().Mode())
}

func TestDepthSelectorBoundedByEccentricity(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)

	// bob -> alice -> carol: eccentricity of bob is 2.
	m.Session().ClickNode("bob@x.com")
	require.Equal(t, 2, m.Session().FocalDepthBound())

	m = keyPress(m, "]")
	m = keyPress(m, "]")
	m = keyPress(m, "]")
	assert.Equal(t, 2, m.depth, "depth must clamp at the focal eccentricity")

	m = keyPress(m, "[")
	m = keyPress(m, "[")
	assert.Equal(t, 1, m.depth, "depth never drops below 1")
}

func TestSummarizeStoresFreshSummary(t *testing.T) {
	m := testModel(t)
	_ = m.summarizeCmd("alice@x.com", "bob@x.com")

	next, _ := m.Update(summaryMsg{
		gen: 1, source: "alice@x.com", target: "bob@x.com",
		summary: "Weekly planning thread.",
	})
	m = next.(*Model)

	key := graph.PairKey("alice@x.com", "bob@x.com")
	assert.Equal(t, "Weekly planning thread.", m.summaries[key])
}

func TestMinDegreeKeysNeverGoNegative(t *testing.T) {
	m := testModel(t)
	m = keyPress(m, "-")
	m = keyPress(m, "-")
	assert.Equal(t, 0, m.Session().Visibility().MinDegree())

	m = keyPress(m, "+")
	assert.Equal(t, 1, m.Session().Visibility().MinDegree())
}

func TestBoxSelectReplacesSelection(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(*Model)

	f := m.currentFrame()
	// Pick a rectangle covering every node position.
	m.dragStartX, m.dragStartY = 0, 0
	m.pressed, m.dragging = true, true

	maxCX, maxCY := 0, 0
	for _, p := range f.Positions {
		cx, cy := m.pixelToCell(p.X, p.Y)
		maxCX, maxCY = maxInt(maxCX, cx), maxInt(maxCY, cy)
	}
	m.finishBoxSelect(maxCX+1, maxCY+1)

	assert.Equal(t, 3, m.Session().Selection().Count())
}

func TestLegendKeySelectsClusterMembers(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)

	// Clusters sort ascending, so key 1 is cluster 0 (alice and bob).
	m = keyPress(m, "1")
	sel := m.Session().Selection()
	assert.Equal(t, 2, sel.Count())
	assert.True(t, sel.Selected("alice@x.com"))
	assert.True(t, sel.Selected("bob@x.com"))
	assert.False(t, sel.Selected("carol@x.com"))

	// In clusters mode the same action also opens the drill-down.
	m = keyPress(m, "m")
	m = keyPress(m, "2")
	assert.Equal(t, 1, m.Session().ExpandedCluster())
	assert.True(t, m.Session().Selection().Selected("carol@x.com"))
}

func TestLegendKeyBeyondClusterCountIsIgnored(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)

	m = keyPress(m, "9")
	assert.Equal(t, 0, m.Session().Selection().Count())
}

func TestSummarizeRequiresPersonEndpoints(t *testing.T) {
	m := testModel(t)
	payload := testPayload()
	payload.Nodes = append(payload.Nodes,
		graph.Person{Email: "cluster-ops@x.com", Name: "Ops List", Cluster: 1, Degree: 1})
	payload.Edges = append(payload.Edges,
		graph.Edge{Source: "carol@x.com", Target: "cluster-ops@x.com"})
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: payload})
	m = next.(*Model)

	// An address that happens to start with "cluster-" is still a person.
	m.Session().ClickLink(graph.EdgeRef{Source: "cluster-ops@x.com", Target: "carol@x.com"})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	m = next.(*Model)
	assert.NotNil(t, cmd, "person edges are summarizable")
	assert.True(t, m.pending[reqSummary])

	// Aggregated cluster links carry synthetic endpoints outside the graph.
	m.pending[reqSummary] = false
	m.Session().ClickLink(graph.EdgeRef{Source: "cluster-0", Target: "cluster-1"})
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	m = next.(*Model)
	assert.Nil(t, cmd)
	assert.False(t, m.pending[reqSummary])
}

func TestReclusterFailurePreservesGraph(t *testing.T) {
	m := testModel(t)
	_ = m.fetchGraphCmd(false)
	next, _ := m.Update(graphLoadedMsg{gen: 1, payload: testPayload()})
	m = next.(*Model)

	m = keyPress(m, "R") // recluster in flight at gen 2
	next, _ = m.Update(requestFailedMsg{
		gen: 2, kind: reqGraph, recluster: true,
		err: &api.APIError{StatusCode: 500, Detail: "clustering crashed"},
	})
	m = next.(*Model)

	assert.Equal(t, "reclustering failed", m.notice)
	assert.True(t, m.noticeErr)
	assert.False(t, m.offline, "a backend-reported failure is not a connectivity loss")
	assert.Len(t, m.Session().Graph().Nodes(), 3, "the current graph stays installed")
}

func TestViewShowsDatasetCountsAndDegrees(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(*Model)

	next, _ = m.Update(metaMsg{gen: 0, meta: &api.Meta{
		Counts: api.MetaCounts{NodeCount: 131, EdgeCount: 407},
		Degrees: []api.DegreeEntry{
			{Email: "alice@x.com", Name: "Alice", Degree: 19},
		},
	}})
	m = next.(*Model)

	out := m.View()
	assert.Contains(t, out, "131 people")
	assert.Contains(t, out, "407 edges")
	assert.Contains(t, out, "Most connected")
	assert.Contains(t, out, "Alice")
}

func TestViewRendersWithoutData(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(*Model)

	out := m.View()
	assert.Contains(t, out, "cluso explorer")
}
