package graph

import "strings"

const (
	// pairSeparator joins the sorted endpoints of an unordered pair into
	// a canonical key. '|' cannot appear in an email address.
	pairSeparator = "|"

	// summarySeparator joins merged relationship summaries.
	summarySeparator = " | "
)

// PairKey returns the canonical key for an unordered endpoint pair.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// AggregateEdges merges the raw edge list into at most one ViewLink per
// unordered endpoint pair. Weights sum (missing email_count counts as 1)
// and summaries concatenate in input order, skipping any candidate
// already contained in the accumulated text so repeated fetches do not
// duplicate it.
func AggregateEdges(edges []Edge) []ViewLink {
	index := make(map[string]int, len(edges))
	links := make([]ViewLink, 0, len(edges))

	for _, e := range edges {
		key := PairKey(e.Source, e.Target)
		if i, ok := index[key]; ok {
			links[i].Count += e.Weight()
			links[i].Summary = mergeSummary(links[i].Summary, e.Properties.Summary)
			continue
		}

		src, tgt := e.Source, e.Target
		if tgt < src {
			src, tgt = tgt, src
		}
		index[key] = len(links)
		links = append(links, ViewLink{
			Source:  src,
			Target:  tgt,
			Count:   e.Weight(),
			Summary: strings.TrimSpace(e.Properties.Summary),
		})
	}

	return links
}

func mergeSummary(acc, candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return acc
	}
	if acc == "" {
		return candidate
	}
	if strings.Contains(acc, candidate) {
		return acc
	}
	return acc + summarySeparator + candidate
}

// ReinterpretLinks converts aggregated links back into raw edges with
// count read as email_count. Aggregating the result again yields the same
// total weight as the first pass.
func ReinterpretLinks(links []ViewLink) []Edge {
	edges := make([]Edge, len(links))
	for i, l := range links {
		edges[i] = Edge{
			Source: l.Source,
			Target: l.Target,
			Properties: EdgeProperties{
				EmailCount: l.Count,
				Summary:    l.Summary,
			},
		}
	}
	return edges
}
