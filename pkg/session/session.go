package session

import (
	"github.com/dd0wney/cluso-explorer/pkg/algorithms"
	"github.com/dd0wney/cluso-explorer/pkg/cluster"
	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
)

// Session is the single owner of all interactive state for one explorer
// run. It holds the canonical graph snapshot (replaced wholesale on
// reload or recluster, never mutated), the selection and visibility
// states, the view mode, and the layout signal whose increments are the
// sole trigger for a physics reheat.
type Session struct {
	log logging.Logger

	base    *graph.Graph // full graph as fetched; restored on mode switch
	working *graph.Graph // current working graph (may be a focus subgraph)

	mode            ViewMode
	expandedCluster int

	selection  SelectionState
	visibility VisibilityState

	// showRawComments expands the raw observations list in the edge
	// panel; link clicks collapse it again.
	showRawComments bool

	layoutSignal uint64
}

// New creates a session over a fetched graph snapshot.
func New(g *graph.Graph, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Session{
		log:             log.With(logging.Component("session")),
		base:            g,
		working:         g,
		expandedCluster: NoCluster,
		selection:       NewSelection(),
		visibility:      NewVisibility(),
	}
}

// Graph returns the current working snapshot.
func (s *Session) Graph() *graph.Graph { return s.working }

// Mode returns the active view mode.
func (s *Session) Mode() ViewMode { return s.mode }

// ExpandedCluster returns the drilled-down cluster id, or NoCluster.
// Only meaningful in clusters mode.
func (s *Session) ExpandedCluster() int { return s.expandedCluster }

// Selection returns the current selection state.
func (s *Session) Selection() SelectionState { return s.selection }

// Visibility returns the current visibility state.
func (s *Session) Visibility() VisibilityState { return s.visibility }

// ShowRawComments reports whether the raw observations list is expanded.
func (s *Session) ShowRawComments() bool { return s.showRawComments }

// ToggleRawComments flips the raw observations expansion.
func (s *Session) ToggleRawComments() { s.showRawComments = !s.showRawComments }

// LayoutSignal returns the monotonically increasing reheat counter.
func (s *Session) LayoutSignal() uint64 { return s.layoutSignal }

func (s *Session) bumpLayout() {
	s.layoutSignal++
}

// ViewModel derives the renderable nodes and links for the current mode
// and filters. Visibility filtering always precedes clustering and
// aggregation.
func (s *Session) ViewModel() ([]graph.ViewNode, []graph.ViewLink) {
	visible := s.working.VisibleSubgraph(s.visibility.HiddenIDs(), s.visibility.MinDegree())

	if s.mode == ModeClusters {
		if s.expandedCluster != NoCluster {
			// Drill-down bypasses the aggregator: detail rendering over
			// the expanded cluster's visible members.
			return visible.ClusterSubgraph(s.expandedCluster).DetailView()
		}
		return cluster.Aggregate(visible)
	}
	return visible.DetailView()
}

// --- Selection events (pointer-event transitions) ---

// ClickNode handles a plain node click.
func (s *Session) ClickNode(id string) {
	s.selection = s.selection.ClickNode(id)
}

// ShiftClickNode handles a shift-modified node click.
func (s *Session) ShiftClickNode(id string) {
	s.selection = s.selection.ShiftClickNode(id)
}

// BoxSelect handles a completed box-select gesture: the reported id list
// replaces the selection outright.
func (s *Session) BoxSelect(ids []string) {
	s.selection = s.selection.BoxSelect(ids)
}

// ClickClusterNode handles a super-node click in clusters mode: it opens
// the drill-down and resets the selection, leaving the multi-select
// machinery untouched otherwise.
func (s *Session) ClickClusterNode(clusterID int) {
	if s.mode != ModeClusters {
		return
	}
	s.expandedCluster = clusterID
	s.selection = NewSelection()
	s.bumpLayout()
}

// ClickLegend selects the full member set of a cluster. In clusters mode
// it also opens the drill-down.
func (s *Session) ClickLegend(clusterID int) {
	members := s.working.ClusterMembers(clusterID)
	s.selection = s.selection.BoxSelect(members)
	if s.mode == ModeClusters {
		s.expandedCluster = clusterID
		s.bumpLayout()
	}
}

// ClickLink selects a rendered edge and collapses the raw observations
// expansion.
func (s *Session) ClickLink(edge graph.EdgeRef) {
	s.selection = s.selection.ClickLink(edge)
	s.showRawComments = false
}

// ClickBackground clears the selection.
func (s *Session) ClickBackground() {
	s.selection = s.selection.ClickBackground()
}

// --- Visibility events (each bumps the layout signal) ---

// ToggleHidden flips one node's visibility.
func (s *Session) ToggleHidden(id string) {
	s.visibility = s.visibility.Toggle(id)
	s.bumpLayout()
}

// HideSelected hides every selected node.
func (s *Session) HideSelected() {
	s.visibility = s.visibility.Hide(s.selection.SelectedIDs())
	s.bumpLayout()
}

// ShowSelected un-hides every selected node.
func (s *Session) ShowSelected() {
	s.visibility = s.visibility.Show(s.selection.SelectedIDs())
	s.bumpLayout()
}

// ShowOnlySelected hides everything except the selection.
func (s *Session) ShowOnlySelected() {
	s.visibility = s.visibility.ShowOnly(s.working.NodeIDs(), s.selection.SelectedIDs())
	s.bumpLayout()
}

// ShowAll empties the hidden set.
func (s *Session) ShowAll() {
	s.visibility = s.visibility.ShowAll()
	s.bumpLayout()
}

// HideAll hides every node; the renderer handles the resulting empty
// view model without failing.
func (s *Session) HideAll() {
	s.visibility = s.visibility.HideAll(s.working.NodeIDs())
	s.bumpLayout()
}

// SetMinDegree replaces the degree threshold.
func (s *Session) SetMinDegree(d int) {
	s.visibility = s.visibility.WithMinDegree(d)
	s.bumpLayout()
}

// --- Mode and lifecycle events ---

// SetMode switches view modes: selection, selected edge, expanded
// cluster, and any focus-subgraph substitution are all discarded and the
// unfiltered full graph becomes the working graph again.
func (s *Session) SetMode(mode ViewMode) {
	s.mode = mode
	s.expandedCluster = NoCluster
	s.selection = NewSelection()
	s.visibility = NewVisibility()
	s.showRawComments = false
	s.working = s.base
	s.bumpLayout()
	s.log.Debug("view mode switched", logging.Mode(mode.String()))
}

// Reset is the global cancel action: selection, hidden nodes, expanded
// cluster, and the selected edge all clear; minDegree returns to its
// default; the layout reheats.
func (s *Session) Reset() {
	s.selection = NewSelection()
	s.visibility = NewVisibility()
	s.expandedCluster = NoCluster
	s.showRawComments = false
	s.working = s.base
	s.bumpLayout()
}

// ReplaceGraph installs a freshly fetched (or reclustered) snapshot and
// resets all interactive state.
func (s *Session) ReplaceGraph(g *graph.Graph) {
	s.base = g
	s.working = g
	s.selection = NewSelection()
	s.visibility = NewVisibility()
	s.expandedCluster = NoCluster
	s.showRawComments = false
	s.bumpLayout()
	s.log.Info("graph replaced",
		logging.Count(len(g.Nodes())),
		logging.Int("edges", len(g.Edges())))
}

// SubstituteGraph installs a node-focus subgraph fetched from the
// backend as the working graph without touching the stored full graph;
// switching modes restores the full graph.
func (s *Session) SubstituteGraph(g *graph.Graph, focal string) {
	s.working = g
	s.visibility = NewVisibility()
	s.expandedCluster = NoCluster
	if g.Contains(focal) {
		s.selection = NewSelection().ClickNode(focal)
	} else {
		s.selection = NewSelection()
	}
	s.bumpLayout()
}

// LoadNeighborhood runs the k-hop expansion from the focal node over the
// full unfiltered graph, hides every node outside the neighbourhood, and
// narrows the selection to the focal node.
func (s *Session) LoadNeighborhood(focal string, k int) {
	if !s.working.Contains(focal) {
		return
	}
	keep := algorithms.KHopNeighborhood(s.working, focal, k)
	s.visibility = s.visibility.ShowOnly(s.working.NodeIDs(), keep)
	s.selection = NewSelection().ClickNode(focal)
	s.bumpLayout()
	s.log.Debug("neighborhood loaded",
		logging.Focal(focal),
		logging.Int("hops", k),
		logging.Count(len(keep)))
}

// FocalDepthBound returns the depth selector's upper bound for the
// current focal node: its eccentricity over the full graph, floored to
// 1. Returns 1 when nothing is selected.
func (s *Session) FocalDepthBound() int {
	focal := s.selection.LastSelected()
	if focal == "" || !s.working.Contains(focal) {
		return 1
	}
	return algorithms.MaxDepth(s.working, focal)
}
