// Package tui is the interactive front end for the quantum garden.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/quantum-garden/internal/config"
	"github.com/tatianab/quantum-garden/internal/garden"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

const helpText = `Commands:
  plant <x> <y>   plant a seed in every reality
  evolve <dt>     advance all realities by dt
  look <i>        render reality i
  observe <i>     collapse the superposition onto reality i
  split           re-split the current reality into three
  stats           show garden statistics
  save / load     persist or restore the garden
  help            show this text
  quit            exit`

type model struct {
	garden    *garden.QuantumGarden
	cfg       *config.Config
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	width     int
	height    int
}

// NewModel builds the TUI model around an already initialized garden.
func NewModel(g *garden.QuantumGarden, cfg *config.Config) model {
	ti := textinput.New()
	ti.Placeholder = "plant 5 5, evolve 10, observe 0, help..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		garden:    g,
		cfg:       cfg,
		textInput: ti,
		gameLog:   outputStyle.Render("The garden exists in three realities at once.") + "\n\n" + helpText + "\n",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.textInput.Value())
			if line == "" {
				return m, nil
			}
			m.textInput.Reset()
			if line == "quit" || line == "/quit" {
				return m, tea.Quit
			}

			logWidth := m.logWidth()
			m.gameLog += "\n" + userStyle.Width(logWidth).Render("> "+line) + "\n\n"
			m.gameLog += m.execute(line) + "\n"
			m.viewport.SetContent(m.gameLog)
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderPanel(),
	)

	help := helpStyle.Render("Esc to quit. Type 'help' for commands.")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	) + "\n"
}

func (m model) logWidth() int {
	w := int(float64(m.width) * 0.75)
	if w < 20 {
		w = 20
	}
	return w
}

// execute runs one command line against the garden and returns styled output.
func (m model) execute(line string) string {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	fail := func(err error) string { return errorStyle.Render(err.Error()) }

	switch cmd {
	case "help":
		return helpText

	case "plant":
		x, y, err := twoInts(args)
		if err != nil {
			return fail(err)
		}
		if err := m.garden.PlantSeed(x, y); err != nil {
			return fail(err)
		}
		return outputStyle.Render(fmt.Sprintf("A seed takes root at (%d, %d) in every reality.", x, y))

	case "evolve":
		if len(args) != 1 {
			return fail(fmt.Errorf("usage: evolve <dt>"))
		}
		dt, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fail(fmt.Errorf("evolve: %w", err))
		}
		if err := m.garden.EvolveAll(dt); err != nil {
			return fail(err)
		}
		return outputStyle.Render(fmt.Sprintf("Time flows. Every reality ages by %.1f.", dt))

	case "look":
		i, err := oneInt(args)
		if err != nil {
			return fail(err)
		}
		view, err := m.garden.RenderState(i)
		if err != nil {
			return fail(err)
		}
		return view

	case "observe":
		i, err := oneInt(args)
		if err != nil {
			return fail(err)
		}
		if err := m.garden.Collapse(i); err != nil {
			return fail(err)
		}
		return outputStyle.Render(fmt.Sprintf("You look too closely. Reality %d is now the only one.", i))

	case "split":
		if err := m.garden.CreateSuperposition(); err != nil {
			return fail(err)
		}
		return outputStyle.Render("Reality fractures into three branches.")

	case "stats":
		return outputStyle.Render(m.garden.Stats())

	case "save":
		path := m.cfg.SavePath
		if len(args) == 1 {
			path = args[0]
		}
		if err := m.garden.Save(path); err != nil {
			return fail(err)
		}
		return outputStyle.Render("Garden saved to " + path)

	case "load":
		path := m.cfg.SavePath
		if len(args) == 1 {
			path = args[0]
		}
		loaded, err := garden.Load(path, garden.WithSeed(m.cfg.Seed), garden.WithGridSize(m.cfg.GridSize))
		if err != nil {
			return fail(err)
		}
		*m.garden = *loaded
		return outputStyle.Render("Garden restored from " + path)

	default:
		return fail(fmt.Errorf("unknown command %q, try 'help'", cmd))
	}
}

func (m model) renderPanel() string {
	title := titleStyle.Render("SUPERPOSITION") + "\n"

	var b strings.Builder
	for i, st := range m.garden.States {
		fmt.Fprintf(&b, "[%d] %s\n    p=%.3f age=%.1f\n", i, st.Label, st.Probability, st.Age)
	}

	countersTitle := "\n" + titleStyle.Render("COUNTERS") + "\n"
	counters := fmt.Sprintf("Observations: %d\nSplits: %d\n",
		m.garden.TotalObservations, m.garden.RealitySplits)

	panelWidth := int(float64(m.width) * 0.23)
	if panelWidth < 16 {
		panelWidth = 16
	}
	return panelStyle.Width(panelWidth).Height(m.viewport.Height).
		Render(title + b.String() + countersTitle + counters)
}

func twoInts(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected two coordinates")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func oneInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a state index")
	}
	return strconv.Atoi(args[0])
}

// Run starts the interactive loop over an initialized garden.
func Run(g *garden.QuantumGarden, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(g, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads configuration, initializes a fresh garden, and runs the TUI.
func Start() error {
	cfg, err := config.Load("garden.yaml")
	if err != nil {
		return err
	}
	g := garden.New(garden.WithSeed(cfg.Seed), garden.WithGridSize(cfg.GridSize))
	if err := g.Initialize(); err != nil {
		return err
	}
	return Run(g, cfg)
}
