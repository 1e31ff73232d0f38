// Package api is the HTTP client for the explorer's graph backend. The
// backend owns ingestion, clustering, and the language-model features;
// this package only moves its JSON across the wire.
package api

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// ErrNotFound is returned when the backend reports 404 for a person.
var ErrNotFound = errors.New("Person not found")

// APIError carries a non-2xx backend response with its server-provided
// detail string.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// GraphPayload is the backend's full or partial graph response.
type GraphPayload struct {
	Nodes []graph.Person `json:"nodes"`
	Edges []graph.Edge   `json:"edges"`
}

// Meta describes the backend's current dataset: overall counts plus the
// per-person degree ranking, most connected first.
type Meta struct {
	Counts  MetaCounts    `json:"counts"`
	Degrees []DegreeEntry `json:"degrees"`
}

// MetaCounts are the dataset-wide totals.
type MetaCounts struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// DegreeEntry is one row of the degree ranking.
type DegreeEntry struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// Insight is one backend-generated observation about the graph. Type is
// one of node_anomaly, bridge_edge, or high_centrality; Severity is a
// 0..1 score.
type Insight struct {
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    float64         `json:"severity"`
	Nodes       []string        `json:"nodes,omitempty"`
	Edges       []graph.EdgeRef `json:"edges,omitempty"`
}

// insightsEnvelope is the backend's /insights wrapper object.
type insightsEnvelope struct {
	Insights []Insight `json:"insights"`
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

type summarizeRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type queryRequest struct {
	Question   string   `json:"question"`
	Model      string   `json:"model,omitempty"`
	Namespaces []string `json:"namespaces,omitempty"`
}

// QuerySource is one retrieval hit backing a query answer.
type QuerySource struct {
	Namespace   string  `json:"namespace,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Type        string  `json:"type,omitempty"`
	TextPreview string  `json:"text_preview,omitempty"`
}

// QueryResponse is the backend's answer to a free-form graph question,
// with the retrieval sources it was grounded on and the model that
// produced it.
type QueryResponse struct {
	Answer  string        `json:"answer"`
	Sources []QuerySource `json:"sources,omitempty"`
	Model   string        `json:"model,omitempty"`
}
