package graph

import "slices"

// Graph is a canonical in-memory snapshot of the communication graph.
// Snapshots are immutable: every transformation returns a new Graph and
// never mutates fetched data in place.
type Graph struct {
	nodes []Person
	edges []Edge

	byEmail   map[string]int      // email -> index into nodes
	adjacency map[string][]string // undirected, deduplicated, full edge list
}

// New builds a canonical graph from raw backend nodes and edges. Node ids
// are unique within a snapshot (later duplicates are ignored) and edges
// referencing an unknown id are dropped before anything else sees them.
func New(nodes []Person, edges []Edge) *Graph {
	g := &Graph{
		nodes:     make([]Person, 0, len(nodes)),
		byEmail:   make(map[string]int, len(nodes)),
		adjacency: make(map[string][]string, len(nodes)),
	}

	for _, n := range nodes {
		if n.Email == "" {
			continue
		}
		if _, dup := g.byEmail[n.Email]; dup {
			continue
		}
		g.byEmail[n.Email] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	g.edges = make([]Edge, 0, len(edges))
	seen := make(map[string]map[string]bool, len(nodes))
	for _, e := range edges {
		if _, ok := g.byEmail[e.Source]; !ok {
			continue
		}
		if _, ok := g.byEmail[e.Target]; !ok {
			continue
		}
		g.edges = append(g.edges, e)

		addNeighbor(g.adjacency, seen, e.Source, e.Target)
		addNeighbor(g.adjacency, seen, e.Target, e.Source)
	}

	return g
}

func addNeighbor(adj map[string][]string, seen map[string]map[string]bool, from, to string) {
	if from == to {
		return
	}
	if seen[from] == nil {
		seen[from] = make(map[string]bool)
	}
	if seen[from][to] {
		return
	}
	seen[from][to] = true
	adj[from] = append(adj[from], to)
}

// Nodes returns the snapshot's people in backend order.
func (g *Graph) Nodes() []Person { return g.nodes }

// Edges returns the snapshot's raw edges in backend order.
func (g *Graph) Edges() []Edge { return g.edges }

// Node looks a person up by email.
func (g *Graph) Node(email string) (Person, bool) {
	i, ok := g.byEmail[email]
	if !ok {
		return Person{}, false
	}
	return g.nodes[i], true
}

// Contains reports whether the snapshot has a node with the given id.
func (g *Graph) Contains(email string) bool {
	_, ok := g.byEmail[email]
	return ok
}

// Neighbors returns the deduplicated adjacency of a node over the full,
// unfiltered edge list. The returned slice is shared; callers must not
// mutate it.
func (g *Graph) Neighbors(email string) []string {
	return g.adjacency[email]
}

// NodeIDs returns every node id in backend order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.Email
	}
	return ids
}

// VisibleSubgraph derives a new snapshot containing only nodes that are
// not hidden and meet the minimum degree threshold, and only edges whose
// endpoints both survive. Visibility filtering always runs before any
// aggregation or clustering step.
func (g *Graph) VisibleSubgraph(hidden map[string]struct{}, minDegree int) *Graph {
	visible := func(n Person) bool {
		if _, h := hidden[n.Email]; h {
			return false
		}
		return n.Degree >= minDegree
	}

	nodes := make([]Person, 0, len(g.nodes))
	for _, n := range g.nodes {
		if visible(n) {
			nodes = append(nodes, n)
		}
	}
	return New(nodes, g.edges)
}

// ClusterSubgraph derives a new snapshot restricted to nodes belonging to
// one cluster, with edges whose endpoints both fall inside it. Used for
// cluster drill-down, where the detail rendering path takes over.
func (g *Graph) ClusterSubgraph(clusterID int) *Graph {
	nodes := make([]Person, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.Cluster == clusterID {
			nodes = append(nodes, n)
		}
	}
	return New(nodes, g.edges)
}

// ClusterMembers returns the ids of every node in the given cluster, in
// backend order.
func (g *Graph) ClusterMembers(clusterID int) []string {
	var members []string
	for _, n := range g.nodes {
		if n.Cluster == clusterID {
			members = append(members, n.Email)
		}
	}
	return members
}

// DetailView produces the full-detail view model: every node as a
// ViewNode sorted ascending by degree so high-degree nodes paint last
// (on top), and the aggregated links. The ordering is independent of
// selection state so the node array identity stays stable across
// selection-only changes.
func (g *Graph) DetailView() ([]ViewNode, []ViewLink) {
	nodes := ViewNodes(g.nodes)
	slices.SortStableFunc(nodes, func(a, b ViewNode) int {
		return a.Degree - b.Degree
	})
	return nodes, AggregateEdges(g.edges)
}

// ViewNodes maps people to renderable nodes, filling defaults for fields
// the backend may omit.
func ViewNodes(nodes []Person) []ViewNode {
	out := make([]ViewNode, len(nodes))
	for i, n := range nodes {
		out[i] = ViewNode{
			ID:      n.Email,
			Name:    n.Name,
			Cluster: n.Cluster,
			Degree:  n.Degree,
		}
	}
	return out
}
