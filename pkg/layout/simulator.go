package layout

import (
	"hash/fnv"
	"math"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

// ForceSimulator is a built-in Fruchterman–Reingold style physics host.
// Positions persist per node id across SetGraph calls, so swapping in a
// re-derived view model with the same ids leaves the picture stable;
// only Reheat raises the temperature again.
type ForceSimulator struct {
	width, height float64

	nodes  []graph.ViewNode
	links  []graph.ViewLink
	params ForceParams

	positions   map[string]Position
	temperature float64
}

// NewForceSimulator creates a simulator for a canvas of the given size.
func NewForceSimulator(width, height float64) *ForceSimulator {
	return &ForceSimulator{
		width:     width,
		height:    height,
		positions: make(map[string]Position),
	}
}

// SetGraph installs a view model. Known ids keep their positions; new
// ids are seeded deterministically from a hash of the id so repeated
// runs produce identical initial frames.
func (s *ForceSimulator) SetGraph(nodes []graph.ViewNode, links []graph.ViewLink, params ForceParams) {
	s.nodes = nodes
	s.links = links
	s.params = params

	live := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		live[n.ID] = true
		if _, ok := s.positions[n.ID]; !ok {
			s.positions[n.ID] = s.seedPosition(n.ID)
		}
	}
	for id := range s.positions {
		if !live[id] {
			delete(s.positions, id)
		}
	}
}

// seedPosition places a new node on a deterministic ring around the
// canvas center.
func (s *ForceSimulator) seedPosition(id string) Position {
	h := fnv.New64a()
	h.Write([]byte(id))
	sum := h.Sum64()

	angle := float64(sum%3600) / 3600 * 2 * math.Pi
	radius := math.Min(s.width, s.height) / 4 * (0.5 + float64((sum/3600)%1000)/2000)
	return Position{
		X: s.width/2 + radius*math.Cos(angle),
		Y: s.height/2 + radius*math.Sin(angle),
	}
}

// Reheat resets the cooling temperature so the next steps move nodes
// substantially again.
func (s *ForceSimulator) Reheat() {
	s.temperature = s.width / 10
}

// Step runs one simulation tick: pairwise repulsion scaled by the mode's
// charge, spring attraction toward each link's rest distance, and
// temperature-capped displacement with cooling. A cold simulator idles.
func (s *ForceSimulator) Step() {
	if s.temperature < 0.5 || len(s.nodes) < 2 {
		return
	}

	forces := make(map[string]Position, len(s.nodes))

	// Repulsion between all pairs
	chargeK := math.Abs(s.params.Charge)
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i].ID, s.nodes[j].ID
			dx := s.positions[a].X - s.positions[b].X
			dy := s.positions[a].Y - s.positions[b].Y
			dist := math.Hypot(dx, dy)
			if dist < 0.01 {
				dist = 0.01
			}

			force := chargeK / dist
			fx := (dx / dist) * force
			fy := (dy / dist) * force

			forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
			forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
		}
	}

	// Spring attraction along links toward their rest distance
	for _, l := range s.links {
		pa, okA := s.positions[l.Source]
		pb, okB := s.positions[l.Target]
		if !okA || !okB {
			continue
		}

		dx := pa.X - pb.X
		dy := pa.Y - pb.Y
		dist := math.Hypot(dx, dy)
		if dist < 0.01 {
			continue
		}

		rest := s.params.LinkDistance(l.Count)
		force := (dist - rest) / 8
		fx := (dx / dist) * force
		fy := (dy / dist) * force

		forces[l.Source] = Position{X: forces[l.Source].X - fx, Y: forces[l.Source].Y - fy}
		forces[l.Target] = Position{X: forces[l.Target].X + fx, Y: forces[l.Target].Y + fy}
	}

	// Apply with temperature cap, then cool
	for _, n := range s.nodes {
		f := forces[n.ID]
		mag := math.Hypot(f.X, f.Y)
		if mag == 0 {
			continue
		}
		step := math.Min(mag, s.temperature)
		pos := s.positions[n.ID]
		s.positions[n.ID] = Position{
			X: clamp(pos.X+(f.X/mag)*step, 0, s.width),
			Y: clamp(pos.Y+(f.Y/mag)*step, 0, s.height),
		}
	}

	s.temperature *= 0.95
}

// Positions returns the current coordinates keyed by node id. The
// returned map is a snapshot copy.
func (s *ForceSimulator) Positions() map[string]Position {
	out := make(map[string]Position, len(s.positions))
	for id, p := range s.positions {
		out[id] = p
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
