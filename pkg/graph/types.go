package graph

// Person is one participant in the communication graph. Email is the
// globally unique identifier; Cluster carries the server-assigned
// community id (0 when the backend has not clustered yet).
type Person struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Cluster     int    `json:"cluster"`
	ClusterName string `json:"cluster_name,omitempty"`
	Degree      int    `json:"degree"`
}

// EdgeProperties holds the relationship payload attached to an edge.
type EdgeProperties struct {
	EmailCount int      `json:"email_count"`
	Summary    string   `json:"summary,omitempty"`
	Comments   []string `json:"comments,omitempty"`
}

// Edge is an undirected relationship between two people. The backend may
// deliver several raw edges for the same unordered pair; they are merged
// by AggregateEdges before rendering.
type Edge struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties EdgeProperties `json:"properties"`
}

// Weight returns the edge weight, defaulting to 1 when the backend
// omitted email_count.
func (e Edge) Weight() int {
	if e.Properties.EmailCount <= 0 {
		return 1
	}
	return e.Properties.EmailCount
}

// ViewNode is a renderable node: either a person or a collapsed cluster
// super-node.
type ViewNode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Cluster       int    `json:"cluster"`
	IsClusterNode bool   `json:"isClusterNode"`
	MemberCount   int    `json:"memberCount,omitempty"`
	Degree        int    `json:"degree"`
}

// ViewLink is a renderable aggregated relationship between two ViewNodes.
type ViewLink struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Count   int    `json:"count"`
	Summary string `json:"summary,omitempty"`
}

// EdgeRef identifies a rendered link by its endpoints.
type EdgeRef struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
