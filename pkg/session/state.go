// Package session owns the interactive view state: selection, visibility
// filters, view mode, and the layout reheat signal. States are immutable
// value types; every update returns a fresh copy so derived view models
// stay referentially stable when unrelated state changes.
package session

import "github.com/dd0wney/cluso-explorer/pkg/graph"

// ViewMode selects between the full-detail graph and collapsed clusters.
type ViewMode int

const (
	ModeGraph ViewMode = iota
	ModeClusters
)

func (m ViewMode) String() string {
	if m == ModeClusters {
		return "clusters"
	}
	return "graph"
}

// NoCluster marks expandedCluster as unset.
const NoCluster = -1

// SelectionState tracks the selected nodes, the most recent explicit
// selection (the BFS focal point), and at most one selected edge.
type SelectionState struct {
	selected     map[string]struct{}
	lastSelected string
	selectedEdge *graph.EdgeRef
}

// NewSelection returns the empty selection.
func NewSelection() SelectionState {
	return SelectionState{}
}

// Selected reports whether id is currently selected.
func (s SelectionState) Selected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns a copy of the selected id set.
func (s SelectionState) SelectedIDs() map[string]struct{} {
	return cloneSet(s.selected)
}

// Count returns the number of selected nodes.
func (s SelectionState) Count() int { return len(s.selected) }

// LastSelected returns the most recent explicit selection, or "" when
// none exists.
func (s SelectionState) LastSelected() string { return s.lastSelected }

// SelectedEdge returns the selected edge, or nil.
func (s SelectionState) SelectedEdge() *graph.EdgeRef {
	if s.selectedEdge == nil {
		return nil
	}
	e := *s.selectedEdge
	return &e
}

// ClickNode replaces the selection with the clicked node.
func (s SelectionState) ClickNode(id string) SelectionState {
	return SelectionState{
		selected:     map[string]struct{}{id: {}},
		lastSelected: id,
	}
}

// ShiftClickNode toggles the clicked node's membership. lastSelected
// moves to the clicked node regardless of add or remove direction.
func (s SelectionState) ShiftClickNode(id string) SelectionState {
	next := cloneSet(s.selected)
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return SelectionState{selected: next, lastSelected: id}
}

// BoxSelect replaces the selection with the reported id list.
// lastSelected becomes the final id in the list.
func (s SelectionState) BoxSelect(ids []string) SelectionState {
	next := make(map[string]struct{}, len(ids))
	last := ""
	for _, id := range ids {
		next[id] = struct{}{}
		last = id
	}
	return SelectionState{selected: next, lastSelected: last}
}

// ClickLink selects both endpoints of the clicked edge and records it as
// the selected edge, with the source as the focal point.
func (s SelectionState) ClickLink(edge graph.EdgeRef) SelectionState {
	return SelectionState{
		selected: map[string]struct{}{
			edge.Source: {},
			edge.Target: {},
		},
		lastSelected: edge.Source,
		selectedEdge: &edge,
	}
}

// ClickBackground clears everything.
func (s SelectionState) ClickBackground() SelectionState {
	return SelectionState{}
}

func cloneSet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

// DefaultMinDegree is the minimum-degree threshold applied until the
// user changes it.
const DefaultMinDegree = 1

// VisibilityState owns the hidden-node set and the minimum-degree
// threshold. A node is visible iff it is not hidden and its degree meets
// the threshold.
type VisibilityState struct {
	hidden    map[string]struct{}
	minDegree int
}

// NewVisibility returns the default visibility: nothing hidden,
// minDegree 1.
func NewVisibility() VisibilityState {
	return VisibilityState{minDegree: DefaultMinDegree}
}

// Hidden reports whether id is hidden.
func (v VisibilityState) Hidden(id string) bool {
	_, ok := v.hidden[id]
	return ok
}

// HiddenIDs returns a copy of the hidden set.
func (v VisibilityState) HiddenIDs() map[string]struct{} {
	return cloneSet(v.hidden)
}

// HiddenCount returns the number of hidden nodes.
func (v VisibilityState) HiddenCount() int { return len(v.hidden) }

// MinDegree returns the current threshold.
func (v VisibilityState) MinDegree() int { return v.minDegree }

// Toggle flips a single node's hidden membership.
func (v VisibilityState) Toggle(id string) VisibilityState {
	next := cloneSet(v.hidden)
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return VisibilityState{hidden: next, minDegree: v.minDegree}
}

// Hide adds the given ids to the hidden set.
func (v VisibilityState) Hide(ids map[string]struct{}) VisibilityState {
	next := cloneSet(v.hidden)
	for id := range ids {
		next[id] = struct{}{}
	}
	return VisibilityState{hidden: next, minDegree: v.minDegree}
}

// Show removes the given ids from the hidden set.
func (v VisibilityState) Show(ids map[string]struct{}) VisibilityState {
	next := cloneSet(v.hidden)
	for id := range ids {
		delete(next, id)
	}
	return VisibilityState{hidden: next, minDegree: v.minDegree}
}

// ShowOnly hides every node except the given set.
func (v VisibilityState) ShowOnly(all []string, keep map[string]struct{}) VisibilityState {
	next := make(map[string]struct{}, len(all))
	for _, id := range all {
		if _, ok := keep[id]; !ok {
			next[id] = struct{}{}
		}
	}
	return VisibilityState{hidden: next, minDegree: v.minDegree}
}

// ShowAll empties the hidden set.
func (v VisibilityState) ShowAll() VisibilityState {
	return VisibilityState{minDegree: v.minDegree}
}

// HideAll hides every node.
func (v VisibilityState) HideAll(all []string) VisibilityState {
	next := make(map[string]struct{}, len(all))
	for _, id := range all {
		next[id] = struct{}{}
	}
	return VisibilityState{hidden: next, minDegree: v.minDegree}
}

// WithMinDegree replaces the threshold.
func (v VisibilityState) WithMinDegree(d int) VisibilityState {
	return VisibilityState{hidden: cloneSet(v.hidden), minDegree: d}
}
