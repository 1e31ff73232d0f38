// Package layout drives the force-directed physics simulation: per-mode
// force parameters, weight-to-distance mapping, and reheat signaling.
package layout

import (
	"math"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/metrics"
)

// Position is a resolved 2D coordinate for one view node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ForceParams tunes the simulation for one view mode.
type ForceParams struct {
	// Charge is the node repulsion strength; more negative spreads
	// nodes further apart.
	Charge float64
	// LinkDistanceBase is the rest distance for a weight-1 link.
	LinkDistanceBase float64
	// LinkDistanceScale shortens the rest distance per doubling of link
	// weight: heavier traffic pulls endpoints closer.
	LinkDistanceScale float64
	// MinLinkDistance is the clamp floor for the rest distance.
	MinLinkDistance float64
}

// LinkDistance maps an aggregated link weight to its rest distance,
// clamped to the minimum floor.
func (p ForceParams) LinkDistance(weight int) float64 {
	if weight < 1 {
		weight = 1
	}
	d := p.LinkDistanceBase - p.LinkDistanceScale*math.Log2(1+float64(weight))
	if d < p.MinLinkDistance {
		d = p.MinLinkDistance
	}
	return d
}

// ClustersParams returns the default tuning for the collapsed clusters
// view: stronger repulsion between the few large super-nodes.
func ClustersParams() ForceParams {
	return ForceParams{
		Charge:            -320,
		LinkDistanceBase:  180,
		LinkDistanceScale: 18,
		MinLinkDistance:   70,
	}
}

// DetailParams returns the default tuning for the full-detail view: the
// card geometry already spaces nodes, so repulsion is gentler and the
// weight mapping smaller-scale.
func DetailParams() ForceParams {
	return ForceParams{
		Charge:            -120,
		LinkDistanceBase:  100,
		LinkDistanceScale: 9,
		MinLinkDistance:   45,
	}
}

// Simulator is the contract the engine requires from a physics host.
// SetGraph must preserve position state for ids it has seen before so
// pure re-renders are not visually disruptive.
type Simulator interface {
	SetGraph(nodes []graph.ViewNode, links []graph.ViewLink, params ForceParams)
	Reheat()
	Step()
	Positions() map[string]Position
}

// Engine configures the simulator per mode and translates layout-signal
// increments into reheats. The signal is read exactly once per apply;
// duplicate increments between passes collapse into a single reheat.
type Engine struct {
	sim      Simulator
	clusters ForceParams
	detail   ForceParams
	metrics  *metrics.Registry

	lastSignal      uint64
	hasClusterNodes bool
	applied         bool
}

// NewEngine wraps a simulator with the given per-mode parameters.
// metrics may be nil.
func NewEngine(sim Simulator, clusters, detail ForceParams, m *metrics.Registry) *Engine {
	return &Engine{
		sim:      sim,
		clusters: clusters,
		detail:   detail,
		metrics:  m,
	}
}

// Apply installs the current view model into the simulator, reheating
// when the graph shape toggled between cluster and detail rendering or
// when the layout signal advanced. Selection-only changes leave the
// signal untouched and therefore never reheat.
func (e *Engine) Apply(nodes []graph.ViewNode, links []graph.ViewLink, signal uint64) bool {
	hasClusterNodes := false
	for _, n := range nodes {
		if n.IsClusterNode {
			hasClusterNodes = true
			break
		}
	}

	params := e.detail
	if hasClusterNodes {
		params = e.clusters
	}
	e.sim.SetGraph(nodes, links, params)

	reheat := !e.applied ||
		hasClusterNodes != e.hasClusterNodes ||
		signal > e.lastSignal
	if reheat {
		e.sim.Reheat()
	}

	e.applied = true
	e.hasClusterNodes = hasClusterNodes
	e.lastSignal = signal

	if e.metrics != nil {
		e.metrics.SetRendered(len(nodes), len(links))
		if reheat {
			e.metrics.LayoutReheatsTotal.Inc()
		}
	}
	return reheat
}

// Step advances the simulation one tick.
func (e *Engine) Step() {
	e.sim.Step()
	if e.metrics != nil {
		e.metrics.RecordLayoutPass(false)
	}
}

// Positions returns the simulator's resolved coordinates.
func (e *Engine) Positions() map[string]Position {
	return e.sim.Positions()
}
