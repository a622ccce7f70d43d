package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/md2d/internal/engine"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	historyLen   = 200
)

type tickMsg time.Time

// LiveModel is a bubbletea program that steps the engine in real time and
// draws each frame on a braille canvas with a metrics row underneath.
type LiveModel struct {
	eng       *engine.Engine
	dt        float64
	stepsPerF int
	frameRate int

	canvas  *Canvas
	out     engine.OutputState
	tempLog []float64

	paused bool
	thermo bool
	err    error
}

func NewLiveModel(eng *engine.Engine, dt float64, stepsPerFrame, frameRate int) *LiveModel {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return &LiveModel{
		eng:       eng,
		dt:        dt,
		stepsPerF: stepsPerFrame,
		frameRate: frameRate,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		tempLog:   make([]float64, 0, historyLen),
	}
}

func (m *LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *LiveModel) Init() tea.Cmd { return m.tick() }

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.thermo = !m.thermo
			m.eng.UseThermostat(m.thermo)
		}
	case tickMsg:
		if !m.paused && m.err == nil {
			duration := float64(m.stepsPerF) * m.dt
			if err := m.eng.Integrate(duration, m.dt); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.eng.ComputeOutputState(&m.out)
		m.tempLog = append(m.tempLog, m.out.Temperature)
		if len(m.tempLog) > historyLen {
			m.tempLog = m.tempLog[1:]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) View() string {
	m.canvas.DrawFrame(m.eng)

	header := Title.Render("md2d") + "  " +
		Subtle.Render(fmt.Sprintf("t=%.0f fs  atoms=%d", m.out.Time, m.eng.NumberOfAtoms()))

	status := StatusRunning.Render("● running")
	if m.paused {
		status = StatusPaused.Render("● paused")
	}
	if m.err != nil {
		status = StatusPaused.Render("✗ " + m.err.Error())
	}

	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		MetricLabel.Render("T ")+MetricValue.Render(fmt.Sprintf("%.1f K", m.out.Temperature)),
		MetricLabel.Render("   KE ")+MetricValue.Render(fmt.Sprintf("%.4f eV", m.out.KineticEnergy)),
		MetricLabel.Render("   PE ")+MetricValue.Render(fmt.Sprintf("%.4f eV", m.out.PotentialEnergy)),
	)

	spark := MetricLabel.Render("T̄ ") + Sparkline(m.tempLog, 40)
	hints := KeyHint.Render("space pause · t thermostat · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		FramePanel.Render(m.canvas.String()),
		status+"  "+metrics,
		spark,
		hints,
	)
}

// RunLive runs the live view until the user quits.
func RunLive(eng *engine.Engine, dt float64, stepsPerFrame, frameRate int) error {
	p := tea.NewProgram(NewLiveModel(eng, dt, stepsPerFrame, frameRate))
	_, err := p.Run()
	return err
}
