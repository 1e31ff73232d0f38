package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ToggleMode    key.Binding
	HideSelected  key.Binding
	ShowSelected  key.Binding
	ShowOnly      key.Binding
	ShowAll       key.Binding
	MinDegreeUp   key.Binding
	MinDegreeDown key.Binding
	DepthUp       key.Binding
	DepthDown     key.Binding
	Neighborhood  key.Binding
	Focus         key.Binding
	Recluster     key.Binding
	Summarize     key.Binding
	Comments      key.Binding
	Legend        key.Binding
	Query         key.Binding
	Reset         key.Binding
	Escape        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	ToggleMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "graph/clusters"),
	),
	HideSelected: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hide selected"),
	),
	ShowSelected: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "show selected"),
	),
	ShowOnly: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "show only selected"),
	),
	ShowAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "show all"),
	),
	MinDegreeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "min degree up"),
	),
	MinDegreeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "min degree down"),
	),
	DepthUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "depth up"),
	),
	DepthDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "depth down"),
	),
	Neighborhood: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "load neighborhood"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fetch focus subgraph"),
	),
	Recluster: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "recluster"),
	),
	Summarize: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "summarize edge"),
	),
	Comments: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "raw comments"),
	),
	Legend: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "select cluster"),
	),
	Query: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "ask"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear/cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.Neighborhood, k.Query, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleMode, k.HideSelected, k.ShowSelected, k.ShowOnly, k.ShowAll},
		{k.MinDegreeUp, k.MinDegreeDown, k.DepthUp, k.DepthDown},
		{k.Neighborhood, k.Focus},
		{k.Recluster, k.Summarize, k.Comments, k.Legend, k.Query, k.Reset},
		{k.Escape, k.Quit},
	}
}
