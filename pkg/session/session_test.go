package session

import (
	"testing"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

func sessionGraph() *graph.Graph {
	nodes := []graph.Person{
		{Email: "alice@x.com", Name: "Alice", Cluster: 0, Degree: 1},
		{Email: "bob@x.com", Name: "Bob", Cluster: 0, Degree: 2},
		{Email: "carol@x.com", Name: "Carol", Cluster: 1, Degree: 2},
		{Email: "dave@x.com", Name: "Dave", Cluster: 1, Degree: 1},
	}
	edges := []graph.Edge{
		{Source: "alice@x.com", Target: "bob@x.com", Properties: graph.EdgeProperties{EmailCount: 5}},
		{Source: "bob@x.com", Target: "carol@x.com", Properties: graph.EdgeProperties{EmailCount: 2}},
		{Source: "carol@x.com", Target: "dave@x.com", Properties: graph.EdgeProperties{EmailCount: 1}},
	}
	return graph.New(nodes, edges)
}

func newTestSession() *Session {
	return New(sessionGraph(), nil)
}

func TestShiftClickToggle(t *testing.T) {
	s := newTestSession()

	s.ShiftClickNode("alice@x.com")
	if !s.Selection().Selected("alice@x.com") {
		t.Fatal("First shift-click should select")
	}

	s.ShiftClickNode("alice@x.com")
	if s.Selection().Count() != 0 {
		t.Error("Second shift-click should return to empty selection")
	}
	if s.Selection().LastSelected() != "alice@x.com" {
		t.Errorf("lastSelected must end at the clicked node, got %q", s.Selection().LastSelected())
	}
}

func TestBoxSelectReplaces(t *testing.T) {
	s := newTestSession()

	s.ClickNode("dave@x.com")
	s.BoxSelect([]string{"alice@x.com", "bob@x.com"})

	sel := s.Selection()
	if sel.Count() != 2 || sel.Selected("dave@x.com") {
		t.Errorf("Box select must replace, not merge: %v", sel.SelectedIDs())
	}
	if sel.LastSelected() != "bob@x.com" {
		t.Errorf("lastSelected should be the final id in the list, got %q", sel.LastSelected())
	}
}

func TestClickNodeClearsSelectedEdge(t *testing.T) {
	s := newTestSession()

	s.ClickLink(graph.EdgeRef{Source: "alice@x.com", Target: "bob@x.com"})
	if s.Selection().SelectedEdge() == nil {
		t.Fatal("Link click should record the edge")
	}

	s.ClickNode("carol@x.com")
	if s.Selection().SelectedEdge() != nil {
		t.Error("Node click must clear the selected edge")
	}
}

func TestClickLinkSelectsEndpoints(t *testing.T) {
	s := newTestSession()
	s.ToggleRawComments()

	s.ClickLink(graph.EdgeRef{Source: "bob@x.com", Target: "carol@x.com"})

	sel := s.Selection()
	if !sel.Selected("bob@x.com") || !sel.Selected("carol@x.com") || sel.Count() != 2 {
		t.Errorf("Link click should select exactly both endpoints: %v", sel.SelectedIDs())
	}
	if sel.LastSelected() != "bob@x.com" {
		t.Errorf("lastSelected should be the link source, got %q", sel.LastSelected())
	}
	if s.ShowRawComments() {
		t.Error("Link click must collapse the raw observations expansion")
	}
}

func TestBackgroundClickClears(t *testing.T) {
	s := newTestSession()

	s.BoxSelect([]string{"alice@x.com", "bob@x.com"})
	s.ClickBackground()

	sel := s.Selection()
	if sel.Count() != 0 || sel.LastSelected() != "" || sel.SelectedEdge() != nil {
		t.Error("Background click should clear the whole selection state")
	}
}

func TestVisibilityOpsBumpLayoutSignal(t *testing.T) {
	s := newTestSession()
	before := s.LayoutSignal()

	s.ToggleHidden("alice@x.com")
	s.SetMinDegree(2)
	s.ShowAll()

	if s.LayoutSignal() != before+3 {
		t.Errorf("Each visibility edit must bump the signal exactly once: %d -> %d", before, s.LayoutSignal())
	}
}

func TestSelectionDoesNotBumpLayoutSignal(t *testing.T) {
	s := newTestSession()
	before := s.LayoutSignal()

	s.ClickNode("alice@x.com")
	s.ShiftClickNode("bob@x.com")
	s.BoxSelect([]string{"carol@x.com"})
	s.ClickBackground()

	if s.LayoutSignal() != before {
		t.Error("Selection-only changes must never trigger a reheat")
	}
}

func TestShowOnlySelected(t *testing.T) {
	s := newTestSession()

	s.BoxSelect([]string{"alice@x.com", "bob@x.com"})
	s.ShowOnlySelected()

	vis := s.Visibility()
	if !vis.Hidden("carol@x.com") || !vis.Hidden("dave@x.com") {
		t.Error("Unselected nodes should be hidden")
	}
	if vis.Hidden("alice@x.com") || vis.Hidden("bob@x.com") {
		t.Error("Selected nodes should stay visible")
	}
}

func TestHideAllYieldsEmptyViewModel(t *testing.T) {
	s := newTestSession()

	s.HideAll()
	nodes, links := s.ViewModel()
	if len(nodes) != 0 || len(links) != 0 {
		t.Errorf("Hiding everything should yield an empty view model, got %d/%d", len(nodes), len(links))
	}
}

func TestClusterDrillDown(t *testing.T) {
	s := newTestSession()
	s.SetMode(ModeClusters)

	nodes, links := s.ViewModel()
	if len(nodes) != 2 || len(links) != 1 {
		t.Fatalf("Clusters mode: expected 2 super-nodes and 1 link, got %d/%d", len(nodes), len(links))
	}

	s.ClickClusterNode(1)
	if s.ExpandedCluster() != 1 {
		t.Fatal("Cluster click should open the drill-down")
	}
	if s.Selection().Count() != 0 {
		t.Error("Cluster click should reset the selection")
	}

	nodes, _ = s.ViewModel()
	for _, n := range nodes {
		if n.IsClusterNode {
			t.Error("Drill-down must render person nodes, not super-nodes")
		}
		if n.Cluster != 1 {
			t.Errorf("Drill-down leaked node from cluster %d", n.Cluster)
		}
	}
}

func TestClusterClickIgnoredInGraphMode(t *testing.T) {
	s := newTestSession()

	s.ClickClusterNode(1)
	if s.ExpandedCluster() != NoCluster {
		t.Error("expandedCluster is only meaningful in clusters mode")
	}
}

func TestLegendClickSelectsMembers(t *testing.T) {
	s := newTestSession()

	s.ClickLegend(1)
	sel := s.Selection()
	if !sel.Selected("carol@x.com") || !sel.Selected("dave@x.com") || sel.Count() != 2 {
		t.Errorf("Legend click should select the full member set: %v", sel.SelectedIDs())
	}
	if sel.LastSelected() != "dave@x.com" {
		t.Errorf("lastSelected should be the last member, got %q", sel.LastSelected())
	}
	if s.ExpandedCluster() != NoCluster {
		t.Error("Legend click in graph mode must not open a drill-down")
	}
}

func TestLegendClickInClustersModeOpensDrillDown(t *testing.T) {
	s := newTestSession()
	s.SetMode(ModeClusters)

	s.ClickLegend(0)
	if s.ExpandedCluster() != 0 {
		t.Error("Legend click in clusters mode should open the drill-down")
	}
}

func TestModeSwitchResetsState(t *testing.T) {
	s := newTestSession()

	s.BoxSelect([]string{"alice@x.com"})
	s.ToggleHidden("bob@x.com")
	s.LoadNeighborhood("carol@x.com", 1)
	before := s.LayoutSignal()

	s.SetMode(ModeClusters)

	if s.Selection().Count() != 0 || s.Selection().LastSelected() != "" {
		t.Error("Mode switch must clear the selection")
	}
	if s.Visibility().HiddenCount() != 0 {
		t.Error("Mode switch must clear hidden nodes")
	}
	if s.ExpandedCluster() != NoCluster {
		t.Error("Mode switch must clear expandedCluster")
	}
	if s.LayoutSignal() != before+1 {
		t.Error("Mode switch must bump the layout signal")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestSession()

	s.BoxSelect([]string{"alice@x.com"})
	s.SetMinDegree(3)
	s.ToggleHidden("bob@x.com")
	before := s.LayoutSignal()

	s.Reset()

	if s.Selection().Count() != 0 || s.Visibility().HiddenCount() != 0 {
		t.Error("Reset must clear selection and hidden nodes")
	}
	if s.Visibility().MinDegree() != DefaultMinDegree {
		t.Errorf("Reset must restore minDegree to %d, got %d", DefaultMinDegree, s.Visibility().MinDegree())
	}
	if s.LayoutSignal() != before+1 {
		t.Error("Reset must bump the layout signal")
	}
}

func TestLoadNeighborhood(t *testing.T) {
	s := newTestSession()
	before := s.LayoutSignal()

	s.LoadNeighborhood("bob@x.com", 1)

	vis := s.Visibility()
	if vis.Hidden("alice@x.com") || vis.Hidden("bob@x.com") || vis.Hidden("carol@x.com") {
		t.Error("1-hop neighborhood of bob must stay visible")
	}
	if !vis.Hidden("dave@x.com") {
		t.Error("Nodes outside the neighborhood must be hidden")
	}

	sel := s.Selection()
	if sel.Count() != 1 || !sel.Selected("bob@x.com") {
		t.Errorf("Selection should narrow to the focal node: %v", sel.SelectedIDs())
	}
	if s.LayoutSignal() != before+1 {
		t.Error("Loading a neighborhood is structural and must reheat")
	}
}

func TestSubstituteGraphAndModeSwitchRestore(t *testing.T) {
	s := newTestSession()

	sub := graph.New([]graph.Person{
		{Email: "bob@x.com", Name: "Bob", Degree: 1},
		{Email: "carol@x.com", Name: "Carol", Degree: 1},
	}, []graph.Edge{{Source: "bob@x.com", Target: "carol@x.com"}})

	s.SubstituteGraph(sub, "bob@x.com")
	if len(s.Graph().Nodes()) != 2 {
		t.Fatal("Working graph should be the substituted subgraph")
	}
	if !s.Selection().Selected("bob@x.com") {
		t.Error("Substitution should focus the requested node")
	}

	s.SetMode(ModeClusters)
	if len(s.Graph().Nodes()) != 4 {
		t.Error("Mode switch must restore the unfiltered full graph")
	}
}

func TestFocalDepthBound(t *testing.T) {
	s := newTestSession()

	if got := s.FocalDepthBound(); got != 1 {
		t.Errorf("No selection: depth bound should be 1, got %d", got)
	}

	s.ClickNode("alice@x.com")
	if got := s.FocalDepthBound(); got != 3 {
		t.Errorf("Eccentricity of alice on the path is 3, got %d", got)
	}
}

func TestViewModelScenarioMinDegree(t *testing.T) {
	s := newTestSession()
	s.SetMode(ModeClusters)
	s.SetMinDegree(2)

	nodes, _ := s.ViewModel()
	for _, n := range nodes {
		if n.Cluster == 1 && n.MemberCount != 1 {
			t.Errorf("minDegree=2 removes Dave: cluster 1 should have 1 member, got %d", n.MemberCount)
		}
	}
}
