// internal/monitor/app.go
package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/record"
)

// Page selects the record shown in the detail panel.
type Page int

const (
	PageStatus Page = iota
	PageSettings
	PageCalibration
	pageCount
)

func (p Page) String() string {
	switch p {
	case PageSettings:
		return "Settings"
	case PageCalibration:
		return "Calibration"
	}
	return "Status"
}

// resultMsg carries one poll result into the program.
type resultMsg poller.PollResult

// closedMsg reports that the result stream ended.
type closedMsg struct{}

// Model is the Bubble Tea model of the live amplifier view.
type Model struct {
	results <-chan poller.PollResult

	name    string
	set     record.Set
	lastAt  time.Time
	lastErr error

	polls     int
	errors    int
	unchanged int

	// last presence report per section
	found map[record.Section]parser.Presence

	page         Page
	paused       bool
	closed       bool
	showPresence bool

	width  int
	height int
}

// New returns a model fed from results.
func New(name string, results <-chan poller.PollResult) Model {
	return Model{name: name, results: results}
}

func (m Model) Init() tea.Cmd {
	return waitForResult(m.results)
}

func waitForResult(ch <-chan poller.PollResult) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return resultMsg(res)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.page = (m.page + 1) % pageCount
		case "shift+tab", "left", "h":
			m.page = (m.page + pageCount - 1) % pageCount
		case "1":
			m.page = PageStatus
		case "2":
			m.page = PageSettings
		case "3":
			m.page = PageCalibration
		case "p":
			m.paused = !m.paused
		case "k":
			m.showPresence = !m.showPresence
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		m.apply(poller.PollResult(msg))
		if poller.PollResult(msg).EndOfStream() {
			m.closed = true
			return m, nil
		}
		return m, waitForResult(m.results)

	case closedMsg:
		m.closed = true
	}

	return m, nil
}

// apply folds one result into the model. Counters keep running while
// paused; the displayed records freeze.
func (m *Model) apply(res poller.PollResult) {
	if res.EndOfStream() {
		return
	}

	m.polls++
	switch {
	case res.Err != nil:
		m.errors++
		m.lastErr = res.Err
	case res.Unchanged:
		m.unchanged++
	}
	if res.Err == nil {
		m.lastErr = nil
	}

	if m.paused || res.Records.Valid == 0 {
		return
	}
	m.set = res.Records
	m.lastAt = res.At

	if len(res.Presence) > 0 {
		found := make(map[record.Section]parser.Presence, len(m.found)+len(res.Presence))
		for sec, p := range m.found {
			found[sec] = p
		}
		for sec, p := range res.Presence {
			found[sec] = p
		}
		m.found = found
	}
}
