// Package tui renders the botwatch display state as a terminal dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"botwatch"
)

// App is the root Bubble Tea model for the dashboard.
//
// The app is a passive view: the watcher owns all polling, and the app
// receives every applied display state through a subscription channel from
// the watcher's Latest holder. Until the first state arrives it shows a
// spinner.
type App struct {
	title  string
	states <-chan botwatch.State

	state     botwatch.State
	haveState bool

	spin   spinner.Model
	width  int
	height int
}

// New creates the dashboard model reading applied states from states.
func New(title string, states <-chan botwatch.State) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return App{
		title:  title,
		states: states,
		spin:   sp,
	}
}

// stateMsg carries an applied display state from the watcher.
type stateMsg botwatch.State

// closedMsg indicates the state channel was closed (watcher stopped).
type closedMsg struct{}

// waitForState blocks on the subscription channel for the next state.
func waitForState(states <-chan botwatch.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return closedMsg{}
		}
		return stateMsg(state)
	}
}

// Init starts the spinner and the state subscription.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spin.Tick,
		waitForState(a.states),
		tea.SetWindowTitle(a.title),
	)
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case stateMsg:
		a.state = botwatch.State(msg)
		a.haveState = true
		return a, waitForState(a.states)

	case closedMsg:
		return a, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	}

	return a, nil
}
