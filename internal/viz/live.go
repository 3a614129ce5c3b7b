// Package viz renders a live terminal comparison of the three schemes.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/phys-sim/hamsim/internal/hamil"
	"github.com/phys-sim/hamsim/internal/metrics"
)

const (
	graphWidth      = 90
	graphHeight     = 14
	historyCapacity = 600
)

type TickMsg time.Time

// Model steps every scheme in lockstep on each tick and plots the recent
// energy history of each side by side.
type Model struct {
	sys      hamil.System
	steppers []hamil.Stepper
	states   []*hamil.State
	initial  *hamil.State
	cons     []*metrics.Conservation

	energies [][]float64
	step     int
	numSteps int
	perTick  int

	running bool
	err     error
}

// NewModel sets up one private state clone per scheme from the shared
// initial condition.
func NewModel(sys hamil.System, steppers []hamil.Stepper, s0 *hamil.State, numSteps int) Model {
	m := Model{
		sys:      sys,
		steppers: steppers,
		initial:  s0.Clone(),
		numSteps: numSteps,
		perTick:  4,
		running:  true,
	}
	for range steppers {
		m.states = append(m.states, s0.Clone())
		m.cons = append(m.cons, metrics.NewConservation())
		m.energies = append(m.energies, make([]float64, 0, historyCapacity))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
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
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil && m.step < m.numSteps {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for k := 0; k < m.perTick && m.step < m.numSteps; k++ {
		for i, st := range m.steppers {
			if err := st.Step(m.sys, m.states[i]); err != nil {
				m.err = &hamil.StepError{Scheme: st.Name(), Step: m.step, Time: float64(m.step) * st.Dt(), Err: err}
				return
			}
			e := hamil.Energy(m.sys, m.states[i])
			m.cons[i].Observe(m.step, e)
			m.energies[i] = append(m.energies[i], e)
			if len(m.energies[i]) > historyCapacity {
				m.energies[i] = m.energies[i][1:]
			}
		}
		m.step++
	}
}

func (m *Model) reset() {
	m.step = 0
	m.err = nil
	for i := range m.steppers {
		m.states[i] = m.initial.Clone()
		m.cons[i].Reset()
		m.energies[i] = m.energies[i][:0]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("energy conservation by scheme"))
	b.WriteString("\n")

	if len(m.energies) > 0 && len(m.energies[0]) >= 2 {
		legends := make([]string, len(m.steppers))
		for i, st := range m.steppers {
			legends[i] = st.Name()
		}
		graph := asciigraph.PlotMany(m.energies,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red, asciigraph.Blue),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption(fmt.Sprintf("step %d / %d", m.step, m.numSteps)),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	var stats strings.Builder
	for i, st := range m.steppers {
		energy := 0.0
		if n := len(m.energies[i]); n > 0 {
			energy = m.energies[i][n-1]
		}
		stats.WriteString(labelStyle.Render(st.Name()))
		stats.WriteString(valueStyle.Render(fmt.Sprintf("E=%.6f  spread=%.3e", energy, m.cons[i].Value())))
		stats.WriteString("\n")
	}
	b.WriteString(statsStyle.Render(stats.String()))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.err.Error()))
	} else if !m.running {
		b.WriteString("\n")
		b.WriteString(pausedStyle.Render("paused"))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")
	return b.String()
}
