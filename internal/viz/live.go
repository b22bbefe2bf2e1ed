// Package viz renders a live terminal view of an estimate converging.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/varsense/internal/sensitivity"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a sensitivity estimation session in batches and plots
// the running index estimates as they converge.
type Model struct {
	session   *sensitivity.Session
	modelName string
	samples   int
	batch     int

	totalHistory []float64
	lowerHistory []float64

	running bool
	done    bool
}

// NewModel wraps a prepared session targeting the given iteration count.
func NewModel(session *sensitivity.Session, modelName string, samples int) Model {
	batch := samples / 200
	if batch < 1 {
		batch = 1
	}
	return Model{
		session:      session,
		modelName:    modelName,
		samples:      samples,
		batch:        batch,
		totalHistory: make([]float64, 0, historyCapacity),
		lowerHistory: make([]float64, 0, historyCapacity),
		running:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.done {
			remaining := m.samples - m.session.Iterations()
			n := m.batch
			if n > remaining {
				n = remaining
			}
			m.session.Advance(n)

			r := m.session.Reduce()
			m.totalHistory = appendCapped(m.totalHistory, r.TotalIndex)
			m.lowerHistory = appendCapped(m.lowerHistory, r.LowerIndex)

			if m.session.Iterations() >= m.samples {
				m.done = true
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func appendCapped(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyCapacity {
		history = history[1:]
	}
	return history
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)+" SENSITIVITY") + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.totalHistory) > 1 {
		chart := asciigraph.Plot(m.totalHistory,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("total index"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.lowerHistory) > 1 {
		chart := asciigraph.Plot(m.lowerHistory,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("lower index"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	r := m.session.Reduce()
	s.WriteString(labelStyle.Render("iterations") + valueStyle.Render(fmt.Sprintf("%d / %d", m.session.Iterations(), m.samples)) + "\n")
	s.WriteString(labelStyle.Render("model mean") + valueStyle.Render(fmt.Sprintf("%.6f", r.ModelMean)) + "\n")
	s.WriteString(labelStyle.Render("model variance") + valueStyle.Render(fmt.Sprintf("%.6f", r.ModelVariance)) + "\n")
	s.WriteString(labelStyle.Render("lower index") + valueStyle.Render(fmt.Sprintf("%.6f", r.LowerIndex)) + "\n")
	s.WriteString(labelStyle.Render("total index") + valueStyle.Render(fmt.Sprintf("%.6f", r.TotalIndex)) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause  Q:Quit"))
	return s.String()
}
