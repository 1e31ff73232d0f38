package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
)

// requestKind partitions async traffic so each kind carries its own
// generation counter. A response whose generation no longer matches the
// counter was superseded by a newer request and is dropped.
type requestKind int

const (
	reqGraph requestKind = iota
	reqNeighborhood
	reqMeta
	reqSummary
	reqInsights
	reqQuery
	reqKinds
)

type generations [reqKinds]uint64

// next invalidates all in-flight requests of this kind and returns the
// generation the new request must answer with.
func (g *generations) next(kind requestKind) uint64 {
	g[kind]++
	return g[kind]
}

func (g *generations) current(kind requestKind, gen uint64) bool {
	return g[kind] == gen
}

type graphLoadedMsg struct {
	gen       uint64
	payload   *api.GraphPayload
	fromCache bool
}

type neighborhoodLoadedMsg struct {
	gen     uint64
	focal   string
	depth   int
	payload *api.GraphPayload
}

type metaMsg struct {
	gen  uint64
	meta *api.Meta
}

type summaryMsg struct {
	gen     uint64
	source  string
	target  string
	summary string
}

type insightsMsg struct {
	gen      uint64
	insights []api.Insight
}

type queryAnswerMsg struct {
	gen    uint64
	answer *api.QueryResponse
}

type requestFailedMsg struct {
	gen  uint64
	kind requestKind
	err  error

	// recluster marks a failed recluster fetch; it is reported as a
	// scoped notice while the current graph stays installed.
	recluster bool
}

type layoutTickMsg time.Time

const layoutTickInterval = 50 * time.Millisecond

func layoutTick() tea.Cmd {
	return tea.Tick(layoutTickInterval, func(t time.Time) tea.Msg {
		return layoutTickMsg(t)
	})
}

func (m *Model) fetchGraphCmd(recluster bool) tea.Cmd {
	gen := m.gens.next(reqGraph)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		payload, err := m.client.FetchGraph(ctx, recluster)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqGraph, err: err, recluster: recluster}
		}
		return graphLoadedMsg{gen: gen, payload: payload}
	}
}

// loadSnapshotCmd serves the cached graph for a warm start; the live
// fetch replaces it when it lands.
func (m *Model) loadSnapshotCmd() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	gen := m.gens[reqGraph]
	return func() tea.Msg {
		payload, err := m.cache.Load()
		if err != nil || payload == nil {
			return nil
		}
		return graphLoadedMsg{gen: gen, payload: payload, fromCache: true}
	}
}

func (m *Model) fetchNeighborhoodCmd(focal string, depth int) tea.Cmd {
	gen := m.gens.next(reqNeighborhood)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		payload, err := m.client.FetchNeighborhood(ctx, focal, depth)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqNeighborhood, err: err}
		}
		return neighborhoodLoadedMsg{gen: gen, focal: focal, depth: depth, payload: payload}
	}
}

func (m *Model) fetchMetaCmd() tea.Cmd {
	gen := m.gens.next(reqMeta)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		meta, err := m.client.FetchMeta(ctx)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqMeta, err: err}
		}
		return metaMsg{gen: gen, meta: meta}
	}
}

func (m *Model) summarizeCmd(source, target string) tea.Cmd {
	gen := m.gens.next(reqSummary)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		summary, err := m.client.Summarize(ctx, source, target)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqSummary, err: err}
		}
		return summaryMsg{gen: gen, source: source, target: target, summary: summary}
	}
}

func (m *Model) fetchInsightsCmd() tea.Cmd {
	gen := m.gens.next(reqInsights)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		insights, err := m.client.FetchInsights(ctx)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqInsights, err: err}
		}
		return insightsMsg{gen: gen, insights: insights}
	}
}

func (m *Model) queryCmd(question string) tea.Cmd {
	gen := m.gens.next(reqQuery)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		answer, err := m.client.Query(ctx, question)
		if err != nil {
			return requestFailedMsg{gen: gen, kind: reqQuery, err: err}
		}
		return queryAnswerMsg{gen: gen, answer: answer}
	}
}

// saveSnapshotCmd persists the latest live payload in the background.
func (m *Model) saveSnapshotCmd(payload *api.GraphPayload) tea.Cmd {
	if m.cache == nil {
		return nil
	}
	return func() tea.Msg {
		if err := m.cache.Save(payload); err != nil {
			m.log.Warn("snapshot save failed", logging.Error(err))
		}
		return nil
	}
}
