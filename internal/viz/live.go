package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stickpoint/internal/verlet"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	DefaultFPS      = 60
)

type TickMsg time.Time

type Options struct {
	Name    string
	FPS     int
	Theme   string
	GIFPath string // empty disables capture
}

// Model steps a world once per frame and draws it. The only interaction is
// quitting; a GIF, when requested, is written on the way out.
type Model struct {
	world         *verlet.World
	name          string
	interval      time.Duration
	canvas        *Canvas
	theme         Theme
	styles        styles
	energyHistory []float64
	gifPath       string
	frames        []*image.Paletted
	err           error
}

func NewModel(w *verlet.World, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	theme := GetTheme(opts.Theme)

	m := Model{
		world:         w,
		name:          opts.Name,
		interval:      time.Second / time.Duration(fps),
		canvas:        NewCanvas(width, height),
		theme:         theme,
		styles:        newStyles(theme),
		energyHistory: make([]float64, 0, historyCapacity),
		gifPath:       opts.GIFPath,
	}
	RenderFrame(m.canvas, w.Frame())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.err = m.saveGIF()
			return m, tea.Quit
		}
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.Step()

	m.energyHistory = append(m.energyHistory, m.world.KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	RenderFrame(m.canvas, m.world.Frame())
	if m.gifPath != "" {
		m.frames = append(m.frames, CaptureFrame(m.canvas, m.theme.RGBA(), color.Black))
	}
}

func (m *Model) saveGIF() error {
	if m.gifPath == "" || len(m.frames) == 0 {
		return nil
	}
	delay := int(m.interval / (10 * time.Millisecond))
	if delay < 2 {
		delay = 2
	}
	return SaveGIF(m.gifPath, m.frames, delay)
}

// Err reports a failure to write the GIF after the program exits.
func (m Model) Err() error { return m.err }

func (m Model) Frames() int { return len(m.frames) }

func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	springs, hidden := 0, 0
	for i := 0; i < m.world.NumSticks(); i++ {
		stick := m.world.Stick(i)
		if stick.IsSpring() {
			springs++
		}
		if stick.Hidden {
			hidden++
		}
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.world.Tick()))
	row("Energy", fmt.Sprintf("%.3f", energy))
	row("Points", fmt.Sprintf("%d", m.world.NumPoints()))
	row("Sticks", fmt.Sprintf("%d (%d springs, %d hidden)", m.world.NumSticks(), springs, hidden))
	row("Polygons", fmt.Sprintf("%d", m.world.NumPolygons()))
	if m.gifPath != "" {
		row("Recording", fmt.Sprintf("%d frames", len(m.frames)))
	}

	s.WriteString(st.help.Render("q: quit"))
	statsView := st.stats.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
