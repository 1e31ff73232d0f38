// Package cluster collapses a visible subgraph into cluster super-nodes
// with aggregated inter-cluster links for the clusters view mode.
package cluster

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// NodeID returns the ViewNode id used for a cluster super-node.
func NodeID(clusterID int) string {
	return fmt.Sprintf("cluster-%d", clusterID)
}

// Label resolves a cluster's display label: the cluster_name carried by
// any member, else a generated "Cluster {id}".
func Label(members []graph.Person, clusterID int) string {
	for _, m := range members {
		if m.ClusterName != "" {
			return m.ClusterName
		}
	}
	return fmt.Sprintf("Cluster %d", clusterID)
}

// Aggregate builds the collapsed view model from an already
// visibility-filtered snapshot: one super-node per cluster and one link
// per unordered cluster pair. Same-cluster edges never produce a link.
func Aggregate(g *graph.Graph) ([]graph.ViewNode, []graph.ViewLink) {
	members := make(map[int][]graph.Person)
	for _, n := range g.Nodes() {
		members[n.Cluster] = append(members[n.Cluster], n)
	}

	clusterIDs := make([]int, 0, len(members))
	for id := range members {
		clusterIDs = append(clusterIDs, id)
	}
	slices.Sort(clusterIDs)

	nodes := make([]graph.ViewNode, 0, len(clusterIDs))
	for _, id := range clusterIDs {
		group := members[id]
		label := Label(group, id)
		nodes = append(nodes, graph.ViewNode{
			ID:            NodeID(id),
			Name:          fmt.Sprintf("%s (%d)", label, len(group)),
			Cluster:       id,
			IsClusterNode: true,
			MemberCount:   len(group),
			Degree:        len(group), // larger clusters paint on top
		})
	}

	links := aggregateInterClusterLinks(g)
	return nodes, links
}

func aggregateInterClusterLinks(g *graph.Graph) []graph.ViewLink {
	index := make(map[string]int)
	links := make([]graph.ViewLink, 0)

	for _, e := range g.Edges() {
		src, okS := g.Node(e.Source)
		tgt, okT := g.Node(e.Target)
		if !okS || !okT || src.Cluster == tgt.Cluster {
			continue
		}

		lo, hi := src.Cluster, tgt.Cluster
		if hi < lo {
			lo, hi = hi, lo
		}
		key := fmt.Sprintf("%d-%d", lo, hi)

		if i, ok := index[key]; ok {
			links[i].Count += e.Weight()
			continue
		}
		index[key] = len(links)
		links = append(links, graph.ViewLink{
			Source: NodeID(lo),
			Target: NodeID(hi),
			Count:  e.Weight(),
			// No semantic merge across people: super-edges carry no summary.
		})
	}

	return links
}
