// Package tui is the interactive terminal host: a bubbletea program
// with a mouse-driven graph canvas on the left and detail panels on the
// right. All graph semantics live in pkg/session; this package only
// translates terminal events into session events and paints the result.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-explorer/pkg/api"
	"github.com/dd0wney/cluso-explorer/pkg/config"
	"github.com/dd0wney/cluso-explorer/pkg/graph"
	"github.com/dd0wney/cluso-explorer/pkg/layout"
	"github.com/dd0wney/cluso-explorer/pkg/logging"
	"github.com/dd0wney/cluso-explorer/pkg/metrics"
	"github.com/dd0wney/cluso-explorer/pkg/render"
	"github.com/dd0wney/cluso-explorer/pkg/session"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7ee0d2"))

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4e79a7")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#e15759")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#edc948"))

	errNoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e15759"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

const (
	panelWidth = 44

	// canvasTop is the first canvas row; row 0 carries the title bar.
	canvasTop = 1

	// dragThreshold separates a click from a box-select gesture, in
	// terminal cells.
	dragThreshold = 1
)

// Model is the bubbletea root model.
type Model struct {
	log     logging.Logger
	client  *api.Client
	cache   *api.SnapshotCache
	timeout time.Duration

	sess     *session.Session
	engine   *layout.Engine
	renderer *render.Renderer

	// Physics and hit-testing run in a fixed pixel space; the terminal
	// cell grid is a scaled viewport onto it.
	pxWidth, pxHeight float64

	width, height    int // terminal size in cells
	canvasW, canvasH int // canvas viewport in cells

	gens  generations
	depth int

	pressed                bool
	dragging               bool
	dragStartX, dragStartY int
	dragX, dragY           int

	queryInput   textinput.Model
	queryFocused bool
	neighbors    table.Model
	help         help.Model
	keys         keyMap

	meta      *api.Meta
	insights  []api.Insight
	answer    *api.QueryResponse
	summaries map[string]string // fresh summaries by pair key
	pending   map[requestKind]bool

	liveLoaded bool
	offline    bool
	notice     string
	noticeErr  bool
}

// New wires the full interactive application. cache may be nil.
func New(cfg config.Config, client *api.Client, cache *api.SnapshotCache, reg *metrics.Registry, log logging.Logger) *Model {
	if log == nil {
		log = logging.NewNopLogger()
	}

	pxW, pxH := float64(cfg.Canvas.Width), float64(cfg.Canvas.Height)
	sim := layout.NewForceSimulator(pxW, pxH)
	engine := layout.NewEngine(sim, cfg.ClustersParams(), cfg.DetailParams(), reg)

	pal, err := cfg.RenderPalette()
	if err != nil {
		// Validated configs cannot reach here; keep the stock theme if
		// one does.
		pal = render.DefaultPalette()
	}

	ti := textinput.New()
	ti.Placeholder = "Who talks to whom about the launch?"
	ti.CharLimit = 200
	ti.Width = panelWidth - 6

	nt := table.New(
		table.WithColumns([]table.Column{
			{Title: "Neighbour", Width: 24},
			{Title: "Email", Width: panelWidth - 30},
		}),
		table.WithHeight(6),
	)

	return &Model{
		log:        log.With(logging.Component("tui")),
		client:     client,
		cache:      cache,
		timeout:    cfg.Backend.Timeout(),
		sess:       session.New(graphEmpty(), log),
		engine:     engine,
		renderer:   render.New(pal),
		pxWidth:    pxW,
		pxHeight:   pxH,
		depth:      1,
		queryInput: ti,
		neighbors:  nt,
		help:       help.New(),
		keys:       keys,
		summaries:  make(map[string]string),
		pending:    make(map[requestKind]bool),
	}
}

// Init starts the warm-start snapshot load, the live fetch, and the
// layout ticker.
func (m *Model) Init() tea.Cmd {
	m.pending[reqGraph] = true
	// The fetch allocates the graph generation first so the snapshot
	// result shares it and stays acceptable until live data lands.
	fetch := m.fetchGraphCmd(false)
	return tea.Batch(
		fetch,
		m.loadSnapshotCmd(),
		m.fetchMetaCmd(),
		m.fetchInsightsCmd(),
		layoutTick(),
		textinput.Blink,
	)
}

// Session exposes the state owner, mainly for tests.
func (m *Model) Session() *session.Session { return m.sess }

func graphEmpty() *graph.Graph { return graph.New(nil, nil) }

