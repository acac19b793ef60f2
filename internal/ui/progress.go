package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"amqpspec/internal/index"
)

const (
	statusQueued  = "queued"
	statusRunning = "running"
	statusDone    = "done"
	statusFailed  = "failed"
)

type progressModel struct {
	title   string
	events  <-chan index.Stage
	spinner spinner.Model
	prog    progress.Model
	passes  []passItem
	width   int
	done    bool
	failed  bool
}

type passItem struct {
	name   string
	status string
	note   string
}

type stageMsg index.Stage

// doneMsg closes the view; failed marks the running pass.
type doneMsg struct{ failed bool }

// NewProgressModel returns a Bubble Tea model that renders index build
// passes as they start and finish. The model quits when events is closed.
func NewProgressModel(title string, events <-chan index.Stage) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	passes := make([]passItem, len(index.Passes))
	for i, name := range index.Passes {
		passes[i] = passItem{name: name, status: statusQueued}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		passes:  passes,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		cmd := m.apply(index.Stage(msg))
		return m, tea.Batch(cmd, m.listen())
	case doneMsg:
		m.done = true
		if msg.failed {
			m.markFailed()
		}
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	switch {
	case m.failed:
		header = "failed: " + header
	case m.done:
		header = "done: " + header
	default:
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	noteWidth := m.width - 12 - 14 - 6
	if noteWidth < 20 {
		noteWidth = 20
	}
	for _, p := range m.passes {
		status := styleStatus(p.status).Render(fmt.Sprintf("%10s", p.status))
		line := fmt.Sprintf("  %s %-12s %s", status, p.name, truncate(p.note, noteWidth))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done && !m.failed {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.events
		if !ok {
			return doneMsg{failed: m.running() >= 0}
		}
		return stageMsg(st)
	}
}

func (m *progressModel) apply(st index.Stage) tea.Cmd {
	i := st.Index - 1
	if i < 0 || i >= len(m.passes) {
		return nil
	}
	if st.Done {
		m.passes[i].status = statusDone
		m.passes[i].note = st.Note
	} else {
		m.passes[i].status = statusRunning
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction counts a running pass as half done.
func (m *progressModel) fraction() float64 {
	if len(m.passes) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range m.passes {
		switch p.status {
		case statusDone:
			total += 1
		case statusRunning:
			total += 0.5
		}
	}
	return total / float64(len(m.passes))
}

func (m *progressModel) running() int {
	for i, p := range m.passes {
		if p.status == statusRunning {
			return i
		}
	}
	return -1
}

func (m *progressModel) markFailed() {
	if i := m.running(); i >= 0 {
		m.passes[i].status = statusFailed
	}
	m.failed = true
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case statusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
