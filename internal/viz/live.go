package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	rotateStep      = 0.1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(46)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type LiveOptions struct {
	Title string
	Dt    float64
	// Duration stops the run after this much simulated time; 0 runs until quit.
	Duration float64
	// Metrics are observed after every tick. The first one is charted.
	Metrics []sim.Metric
}

type legendEntry struct {
	name  string
	color [4]float32
	count int
}

// Model steps a simulation at display rate and draws it.
type Model struct {
	sim      *sim.Simulation
	scene    *Scene
	canvas   *Canvas
	opts     LiveOptions
	legend   []legendEntry
	running  bool
	done     bool
	showHelp bool
	contacts int
	history  []float64
	values   map[string][]float64
}

func NewModel(s *sim.Simulation, lo, hi mgl64.Vec3, opts LiveOptions) Model {
	if opts.Dt <= 0 {
		opts.Dt = sim.DefaultConfig().Dt
	}
	if opts.Title == "" {
		opts.Title = "cellsim"
	}

	scene := NewScene(lo, hi)
	legend := make([]legendEntry, 0, 2)
	index := make(map[string]int)
	for _, o := range s.Objects() {
		k := o.Kind()
		i, ok := index[k.Name()]
		if !ok {
			i = len(legend)
			index[k.Name()] = i
			legend = append(legend, legendEntry{name: k.Name(), color: k.Color()})
			scene.Radii[k.Name()] = k.Radius()
		}
		legend[i].count++
	}

	m := Model{
		sim:     s,
		scene:   scene,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		opts:    opts,
		legend:  legend,
		running: true,
		history: make([]float64, 0, historyCapacity),
		values:  make(map[string][]float64),
	}
	m.observe()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "n":
			if !m.running && !m.done {
				m.step()
			}
		case "v":
			m.toggleMolecules()
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.scene.Camera.RotateX(rotateStep)
		case "X":
			m.scene.Camera.RotateX(-rotateStep)
		case "y":
			m.scene.Camera.RotateY(rotateStep)
		case "Y":
			m.scene.Camera.RotateY(-rotateStep)
		case "+", "=":
			m.scene.Camera.ZoomIn()
		case "-", "_":
			m.scene.Camera.ZoomOut()
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.contacts = m.sim.Tick(m.opts.Dt)
	m.observe()
	if m.opts.Duration > 0 && m.sim.Time() >= m.opts.Duration-m.opts.Dt/2 {
		m.done = true
		m.running = false
	}
}

func (m *Model) observe() {
	objs := m.sim.Objects()
	for i, mt := range m.opts.Metrics {
		mt.Observe(objs, m.sim.Time())
		name := mt.Name()
		m.values[name] = appendCapped(m.values[name], mt.Value())
		if i == 0 {
			m.history = appendCapped(m.history, mt.Value())
		}
	}
}

func appendCapped(vals []float64, v float64) []float64 {
	vals = append(vals, v)
	if len(vals) > historyCapacity {
		vals = vals[len(vals)-historyCapacity:]
	}
	return vals
}

// toggleMolecules flips the visibility flag on every molecule.
func (m *Model) toggleMolecules() {
	for _, o := range m.sim.Objects() {
		if _, ok := o.(*bio.Molecule); ok {
			o.SetVisible(!o.Visible())
		}
	}
}

func (m Model) status() string {
	switch {
	case m.done:
		return StatusDone.Render("DONE")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func (m Model) View() string {
	m.scene.Draw(m.canvas, m.sim.Snapshot().Samples)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.opts.Title)) + "  " + m.status() + "\n\n")

	if len(m.history) > 1 && len(m.opts.Metrics) > 0 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5), asciigraph.Width(30),
			asciigraph.Caption(m.opts.Metrics[0].Name()))
		s.WriteString(Graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("ticks", fmt.Sprintf("%d", m.sim.Steps()))
	row("contacts", fmt.Sprintf("%d", m.contacts))
	if m.opts.Duration > 0 {
		s.WriteString(ProgressBar(m.sim.Time()/m.opts.Duration, 28) + "\n")
	}

	if len(m.opts.Metrics) > 1 {
		s.WriteString("\n")
		for _, mt := range m.opts.Metrics[1:] {
			row(mt.Name(), fmt.Sprintf("%.3f", mt.Value()))
			s.WriteString(Sparkline(m.values[mt.Name()], 28) + "\n")
		}
	}

	s.WriteString("\n")
	for _, e := range m.legend {
		s.WriteString(Swatch(e.color, fmt.Sprintf("%s ×%d", e.name, e.count)) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause N:Step V:Molecules\nX/Y:Rotate +/-:Zoom ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return Panel.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS

Space   Pause/Resume
N       Advance one tick while paused
X / x   Pitch camera
Y / y   Yaw camera
+ / -   Zoom
V       Show/hide molecules
?       Toggle this help
Q       Quit`

// RunLive runs the live view until the user quits.
func RunLive(s *sim.Simulation, lo, hi mgl64.Vec3, opts LiveOptions) error {
	p := tea.NewProgram(NewModel(s, lo, hi, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
