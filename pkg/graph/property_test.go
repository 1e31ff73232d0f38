package graph

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genEdgeList produces random small edge lists over a fixed pool of
// addresses so endpoint collisions (and therefore merges) are common.
func genEdgeList() gopter.Gen {
	pool := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"}
	genEdge := gopter.CombineGens(
		gen.IntRange(0, len(pool)-1),
		gen.IntRange(0, len(pool)-1),
		gen.IntRange(0, 9),
	).Map(func(vals []interface{}) Edge {
		return Edge{
			Source:     pool[vals[0].(int)],
			Target:     pool[vals[1].(int)],
			Properties: EdgeProperties{EmailCount: vals[2].(int)},
		}
	})
	return gen.SliceOf(genEdge)
}

func genPeople() gopter.Gen {
	return gen.IntRange(1, 12).Map(func(n int) []Person {
		people := make([]Person, n)
		for i := range people {
			people[i] = Person{
				Email:  fmt.Sprintf("p%d@x.com", i),
				Name:   fmt.Sprintf("Person %d", i),
				Degree: i % 4,
			}
		}
		return people
	})
}

// TestAggregationProperties verifies the aggregation invariants over
// arbitrary edge lists.
func TestAggregationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// One ViewLink per unordered pair after aggregation.
	properties.Property("at most one link per unordered pair", prop.ForAll(
		func(edges []Edge) bool {
			seen := make(map[string]bool)
			for _, l := range AggregateEdges(edges) {
				key := PairKey(l.Source, l.Target)
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		genEdgeList(),
	))

	// Total weight is preserved when re-aggregating an aggregate.
	properties.Property("re-aggregation preserves total weight", prop.ForAll(
		func(edges []Edge) bool {
			once := AggregateEdges(edges)
			twice := AggregateEdges(ReinterpretLinks(once))
			return totalWeight(once) == totalWeight(twice)
		},
		genEdgeList(),
	))

	// Links always carry sorted endpoints regardless of input direction.
	properties.Property("endpoints are normalized", prop.ForAll(
		func(edges []Edge) bool {
			for _, l := range AggregateEdges(edges) {
				if l.Target < l.Source {
					return false
				}
			}
			return true
		},
		genEdgeList(),
	))

	properties.TestingRun(t)
}

// TestVisibilityProperties verifies the visibility invariants of §degree
// filtering over arbitrary node sets.
func TestVisibilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Raising minDegree never grows the visible node set.
	properties.Property("visibility is monotone in minDegree", prop.ForAll(
		func(people []Person, d int) bool {
			g := New(people, nil)
			lower := g.VisibleSubgraph(nil, d)
			higher := g.VisibleSubgraph(nil, d+1)
			if len(higher.Nodes()) > len(lower.Nodes()) {
				return false
			}
			for _, n := range higher.Nodes() {
				if !lower.Contains(n.Email) {
					return false
				}
			}
			return true
		},
		genPeople(),
		gen.IntRange(0, 4),
	))

	// Hiding a node never grows the visible edge set.
	properties.Property("hiding a node is monotone on edges", prop.ForAll(
		func(people []Person, pick int) bool {
			edges := make([]Edge, 0, len(people))
			for i := 1; i < len(people); i++ {
				edges = append(edges, Edge{Source: people[i-1].Email, Target: people[i].Email})
			}
			g := New(people, edges)
			before := g.VisibleSubgraph(nil, 0)
			hidden := map[string]struct{}{people[pick%len(people)].Email: {}}
			after := g.VisibleSubgraph(hidden, 0)
			return len(after.Edges()) <= len(before.Edges())
		},
		genPeople(),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}
