// Package algorithms provides BFS-based neighbourhood queries over a
// canonical graph snapshot. All traversals run on the full, unfiltered
// adjacency: their purpose is to answer "how much connectivity exists"
// independent of the current visibility filters.
package algorithms

import (
	"slices"
	"strings"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// Neighbor is one adjacent node with its display name resolved.
type Neighbor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectNeighbors returns every node adjacent to focal via any edge,
// deduplicated and sorted alphabetically by display name (falling back
// to the id when a name is missing).
func DirectNeighbors(g *graph.Graph, focal string) []Neighbor {
	ids := g.Neighbors(focal)
	out := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		name := id
		if n, ok := g.Node(id); ok && n.Name != "" {
			name = n.Name
		}
		out = append(out, Neighbor{ID: id, Name: name})
	}

	slices.SortFunc(out, func(a, b Neighbor) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

type bfsEntry struct {
	id  string
	hop int
}

// MaxDepth returns the eccentricity of focal: the maximum shortest-path
// distance to any reachable node, floor-bounded to 1. It only bounds a
// depth selector's range and never filters actual neighbourhoods.
func MaxDepth(g *graph.Graph, focal string) int {
	maxHop := 0
	bfs(g, focal, -1, func(_ string, hop int) {
		if hop > maxHop {
			maxHop = hop
		}
	})
	if maxHop < 1 {
		return 1
	}
	return maxHop
}

// KHopNeighborhood returns the set of node ids discovered within k hops
// of focal, inclusive of focal itself.
func KHopNeighborhood(g *graph.Graph, focal string, k int) map[string]struct{} {
	result := map[string]struct{}{focal: {}}
	if k < 1 {
		return result
	}
	bfs(g, focal, k, func(id string, _ int) {
		result[id] = struct{}{}
	})
	return result
}

// bfs walks the undirected adjacency breadth-first from focal, invoking
// visit for every node discovered after the source. maxHops < 0 means
// unbounded.
func bfs(g *graph.Graph, focal string, maxHops int, visit func(id string, hop int)) {
	visited := map[string]bool{focal: true}
	queue := []bfsEntry{{id: focal, hop: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxHops >= 0 && current.hop >= maxHops {
			continue
		}
		nextHop := current.hop + 1

		for _, neighbor := range g.Neighbors(current.id) {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			visit(neighbor, nextHop)
			queue = append(queue, bfsEntry{id: neighbor, hop: nextHop})
		}
	}
}
