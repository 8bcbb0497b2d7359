// Package viewer provides a scrollable Bubble Tea view of a game report.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lottopick/internal/engine"
	"github.com/verte-zerg/lottopick/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea report viewer.
type Model struct {
	result engine.Result
	opts   report.Options

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel constructs a viewer for a generated result.
func NewModel(res engine.Result, opts report.Options) *Model {
	opts.Color = true
	return &Model{result: res, opts: opts}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m *Model) updateLayout() {
	bodyHeight := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter())
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	opts := m.opts
	opts.TotalWidth = m.width
	content := strings.Join(report.Lines(m.result, opts), "\n")
	if !m.ready {
		m.viewport = viewport.New(m.width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderHeader() string {
	return headerStyle.Render(fmt.Sprintf("lottopick · %d games from %d numbers", len(m.result.Games), len(m.result.Pool)))
}

func (m *Model) renderFooter() string {
	pct := 100.0
	if m.ready {
		pct = m.viewport.ScrollPercent() * 100
	}
	return footerStyle.Render(fmt.Sprintf("%3.0f%%  ↑/↓ scroll · pgup/pgdn page · q quit", pct))
}
