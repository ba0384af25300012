// Package viz renders the sandbox live in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kalver/physbox/internal/engine"
	"github.com/kalver/physbox/internal/preset"
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	cursorStep      = 20.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live sandbox TUI: it owns the clock, feeds host commands
// into the engine queue, and draws the world each tick.
type Model struct {
	clock  *engine.Clock
	eng    *engine.Engine
	canvas *Canvas

	sceneName string
	fps       int

	cursor        vec.Vec
	energyHistory []float64
	showHelp      bool
}

func NewModel(e *engine.Engine, sceneName string, fps int) Model {
	w := e.World
	if fps <= 0 {
		fps = 30
	}
	return Model{
		clock:         engine.NewClock(e),
		eng:           e,
		canvas:        NewCanvas(canvasWidth, canvasHeight, w.Width, w.Height),
		sceneName:     sceneName,
		fps:           fps,
		cursor:        vec.Vec{X: w.Width / 2, Y: w.Height / 2},
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the bubbletea program and blocks until quit.
func Run(e *engine.Engine, sceneName string, fps int) error {
	_, err := tea.NewProgram(NewModel(e, sceneName, fps), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances the clock. All world mutation goes
// through the engine command queue, applied at the next step boundary.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.clock.Toggle()
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		case "up":
			m.cursor.Y -= cursorStep
		case "down":
			m.cursor.Y += cursorStep
		case "left":
			m.cursor.X -= cursorStep
		case "right":
			m.cursor.X += cursorStep
		case "c":
			pos := m.cursor
			m.eng.Enqueue(func(w *world.World) { w.AddCircle(pos) })
		case "x":
			pos := m.cursor
			m.eng.Enqueue(func(w *world.World) { w.AddRect(pos) })
		case "f":
			pos := m.cursor
			m.eng.Enqueue(func(w *world.World) { w.AddField(pos) })
		case "s":
			// spring the two most recently added bodies
			m.eng.Enqueue(func(w *world.World) {
				if n := len(w.Bodies); n >= 2 {
					w.AddSpring(w.Bodies[n-2].ID, w.Bodies[n-1].ID)
				}
			})
		case "d":
			pos := m.cursor
			m.eng.Enqueue(func(w *world.World) { w.DeleteBodyAt(pos) })
		case "backspace":
			m.eng.Enqueue(func(w *world.World) { w.ClearAll() })
		case "g":
			m.eng.Enqueue(func(w *world.World) {
				if w.Settings.Gravity.IsZero() {
					w.Settings.Gravity = vec.Vec{Y: world.DefaultGravityY}
				} else {
					w.Settings.Gravity = vec.Vec{}
				}
			})
		case "w":
			m.eng.Enqueue(func(w *world.World) { w.Settings.WallBounce = !w.Settings.WallBounce })
		case "t":
			m.eng.Enqueue(func(w *world.World) { w.Settings.ShowTrails = !w.Settings.ShowTrails })
		case "+", "=":
			m.eng.Enqueue(func(w *world.World) { w.Settings.TimeScale *= 1.25 })
		case "-", "_":
			m.eng.Enqueue(func(w *world.World) {
				w.Settings.TimeScale /= 1.25
				w.Settings.Sanitize()
			})
		}
		m.clampCursor()
	case TickMsg:
		if m.clock.Tick(time.Time(msg)) {
			m.energyHistory = append(m.energyHistory, m.eng.Stats().Total)
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() {
	name := m.sceneName
	m.energyHistory = m.energyHistory[:0]
	m.eng.Enqueue(func(w *world.World) {
		if fresh := preset.Get(name); fresh != nil {
			w.Replace(fresh)
		} else {
			w.ClearAll()
		}
	})
}

func (m *Model) clampCursor() {
	w := m.eng.World
	if m.cursor.X < 0 {
		m.cursor.X = 0
	}
	if m.cursor.Y < 0 {
		m.cursor.Y = 0
	}
	if m.cursor.X > w.Width {
		m.cursor.X = w.Width
	}
	if m.cursor.Y > w.Height {
		m.cursor.Y = w.Height
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	if m.clock.Running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	w := m.eng.World
	stats := m.eng.Stats()
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", m.eng.Elapsed())))
	s.WriteString(row("FPS", fmt.Sprintf("%.0f", m.clock.FPS())))
	s.WriteString(row("Bodies", fmt.Sprintf("%d", len(w.Bodies))))
	s.WriteString(row("Constraints", fmt.Sprintf("%d", len(w.Constraints))))
	s.WriteString(row("Fields", fmt.Sprintf("%d", len(w.Fields))))
	s.WriteString(row("Kinetic", fmt.Sprintf("%.2f", stats.Kinetic)))
	s.WriteString(row("Potential", fmt.Sprintf("%.2f", stats.Potential)))
	s.WriteString(row("Momentum", fmt.Sprintf("(%.1f, %.1f)", stats.Momentum.X, stats.Momentum.Y)))
	s.WriteString(row("Time scale", fmt.Sprintf("%.2f", w.Settings.TimeScale)))
	s.WriteString(row("Gravity", onOff(!w.Settings.Gravity.IsZero())))
	s.WriteString(row("Walls", onOff(w.Settings.WallBounce)))
	s.WriteString(row("Trails", onOff(w.Settings.ShowTrails)))

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit ?:Help\nC:Circle X:Rect F:Field S:Spring\nD:Delete G:Gravity W:Walls T:Trails"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// draw paints the world onto the braille canvas: trails first, then
// constraints, bodies, fields, and the spawn cursor on top.
func (m Model) draw() {
	m.canvas.Clear()
	w := m.eng.World

	if w.Settings.ShowTrails {
		for _, b := range w.Bodies {
			for _, p := range b.Trail {
				m.canvas.Plot(p.X, p.Y)
			}
		}
	}

	for _, c := range w.Constraints {
		a := w.BodyByID(c.BodyA)
		b := w.BodyByID(c.BodyB)
		if a == nil || b == nil {
			continue
		}
		m.canvas.Line(a.Position.X, a.Position.Y, b.Position.X, b.Position.Y)
	}

	for _, b := range w.Bodies {
		switch s := b.Shape.(type) {
		case world.Circle:
			m.canvas.Circle(b.Position.X, b.Position.Y, s.Radius)
		case world.Rect:
			m.canvas.Rect(b.Position.X, b.Position.Y, s.Width, s.Height)
		}
		if w.Settings.ShowVectors && !b.Velocity.IsZero() {
			tip := b.Position.Add(b.Velocity.Scale(5))
			m.canvas.Line(b.Position.X, b.Position.Y, tip.X, tip.Y)
		}
	}

	for _, f := range w.Fields {
		if !f.Active {
			continue
		}
		m.canvas.Cross(f.Position.X, f.Position.Y)
		if w.Settings.ShowForces {
			m.canvas.Circle(f.Position.X, f.Position.Y, f.Radius)
		}
	}

	m.canvas.Cross(m.cursor.X, m.cursor.Y)
}

const helpText = `
  Space      pause / resume
  R          reset scene
  Arrows     move spawn cursor
  C / X      add circle / rectangle at cursor
  F          add force field at cursor
  S          spring between last two bodies
  D          delete body at cursor
  Backspace  clear everything
  G W T      toggle gravity / walls / trails
  + / -      time scale
  Q          quit
`
