package graph

import (
	"testing"
)

func TestAggregateEdges_MergesUnorderedPairs(t *testing.T) {
	edges := []Edge{
		{Source: "a@x.com", Target: "b@x.com", Properties: EdgeProperties{EmailCount: 3}},
		{Source: "b@x.com", Target: "a@x.com", Properties: EdgeProperties{EmailCount: 2}},
	}

	links := AggregateEdges(edges)
	if len(links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(links))
	}
	if links[0].Source != "a@x.com" || links[0].Target != "b@x.com" {
		t.Errorf("Endpoints not normalized: %s -> %s", links[0].Source, links[0].Target)
	}
	if links[0].Count != 5 {
		t.Errorf("Expected count 5, got %d", links[0].Count)
	}
}

func TestAggregateEdges_Symmetry(t *testing.T) {
	forward := AggregateEdges([]Edge{{Source: "a@x.com", Target: "b@x.com", Properties: EdgeProperties{EmailCount: 3}}})
	reverse := AggregateEdges([]Edge{{Source: "b@x.com", Target: "a@x.com", Properties: EdgeProperties{EmailCount: 3}}})

	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("Expected single links, got %d and %d", len(forward), len(reverse))
	}
	if forward[0] != reverse[0] {
		t.Errorf("Direction leaked into aggregate: %+v vs %+v", forward[0], reverse[0])
	}
}

func TestAggregateEdges_DefaultWeight(t *testing.T) {
	links := AggregateEdges([]Edge{
		{Source: "a@x.com", Target: "b@x.com"},
		{Source: "a@x.com", Target: "b@x.com"},
	})
	if links[0].Count != 2 {
		t.Errorf("Missing email_count should default to 1 each, got %d", links[0].Count)
	}
}

func TestAggregateEdges_SummaryMerge(t *testing.T) {
	edges := []Edge{
		{Source: "a@x.com", Target: "b@x.com", Properties: EdgeProperties{EmailCount: 1, Summary: "budget planning"}},
		{Source: "b@x.com", Target: "a@x.com", Properties: EdgeProperties{EmailCount: 1, Summary: "offsite logistics"}},
		// Repeated fetch delivering an already-merged summary must not duplicate it.
		{Source: "a@x.com", Target: "b@x.com", Properties: EdgeProperties{EmailCount: 1, Summary: "budget planning"}},
	}

	links := AggregateEdges(edges)
	want := "budget planning | offsite logistics"
	if links[0].Summary != want {
		t.Errorf("Summary merge: expected %q, got %q", want, links[0].Summary)
	}
}

func TestAggregateEdges_Idempotence(t *testing.T) {
	edges := []Edge{
		{Source: "a@x.com", Target: "b@x.com", Properties: EdgeProperties{EmailCount: 3, Summary: "planning"}},
		{Source: "c@x.com", Target: "a@x.com", Properties: EdgeProperties{EmailCount: 4}},
		{Source: "b@x.com", Target: "a@x.com", Properties: EdgeProperties{EmailCount: 2}},
	}

	once := AggregateEdges(edges)
	twice := AggregateEdges(ReinterpretLinks(once))

	if totalWeight(once) != totalWeight(twice) {
		t.Errorf("Re-aggregation changed total weight: %d vs %d", totalWeight(once), totalWeight(twice))
	}
	if len(once) != len(twice) {
		t.Errorf("Re-aggregation changed link count: %d vs %d", len(once), len(twice))
	}
}

func totalWeight(links []ViewLink) int {
	total := 0
	for _, l := range links {
		total += l.Count
	}
	return total
}
