package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"maven/overlay"
)

// TUI message types
type FrameMsg struct{ Frame overlay.Frame } // zero Frame hides the overlay
type StatusMsg struct{ Status Status }

// tuiScreenWidth stands in for the screen the overlay would be centred on.
const tuiScreenWidth = 1920

type tuiModel struct {
	frame         overlay.Frame
	status        Status
	width, height int

	onToggle func()
	onCopy   func()
	onReload func()
}

var (
	tuiProgram   *tea.Program
	tuiMu        sync.Mutex
	tuiReady     = make(chan struct{})
	tuiReadyOnce sync.Once
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	boldHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func NewTUIProgram(e *Engine) *tea.Program {
	m := tuiModel{
		onToggle: e.Toggle,
		onCopy:   e.Copy,
		onReload: e.RequestReload,
	}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func (m tuiModel) Init() tea.Cmd {
	tuiReadyOnce.Do(func() { close(tuiReady) })
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "t":
			m.onToggle()
		case "c":
			m.onCopy()
		case "r":
			m.onReload()
		}

	case FrameMsg:
		m.frame = msg.Frame

	case StatusMsg:
		m.status = msg.Status
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var lines []string
	lines = append(lines, titleStyle.Render("maven "+version), "")

	if m.frame.Visible {
		lines = append(lines, renderFrame(m.frame))
		lines = append(lines, dimStyle.Render(fmt.Sprintf("at %d,%d  %dx%d", m.frame.Left, m.frame.Top, m.frame.Width, m.frame.Height)))
	} else {
		lines = append(lines, dimStyle.Render("(overlay hidden)"), "")
	}
	lines = append(lines, "")

	switch {
	case m.status.Armed:
		lines = append(lines, okStyle.Render("● listening"))
	default:
		lines = append(lines, errStyle.Render("○ keyboard unavailable"))
	}
	if m.status.Enabled {
		lines = append(lines, dimStyle.Render("overlay enabled"))
	} else {
		lines = append(lines, warnStyle.Render("overlay disabled"))
	}
	if m.status.Err != "" {
		for _, l := range wrapText(m.status.Err, max(m.width-2, 10)) {
			lines = append(lines, errStyle.Render(l))
		}
	}

	if len(m.status.Bindings) > 0 {
		lines = append(lines, "")
		names := make([]string, 0, len(m.status.Bindings))
		width := 0
		for name := range m.status.Bindings {
			names = append(names, name)
			width = max(width, len(name))
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%-*s  %s", width, name, m.status.Bindings[name])))
		}
	}

	lines = append(lines, "")
	help := boldHelp.Render("t") + helpStyle.Render(" toggle  ") +
		boldHelp.Render("c") + helpStyle.Render(" copy  ") +
		boldHelp.Render("r") + helpStyle.Render(" reload  ") +
		boldHelp.Render("q") + helpStyle.Render(" quit")
	lines = append(lines, help)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}

func renderFrame(f overlay.Frame) string {
	bg := termColor(f.Background)
	var b strings.Builder
	for _, s := range f.Segments {
		st := lipgloss.NewStyle().Background(bg).Foreground(termColor(s.Color))
		if !s.Separator {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(s.Text))
	}
	return lipgloss.NewStyle().Background(bg).Padding(1, 2).Render(b.String())
}

// termColor drops alpha; terminals have no translucency.
func termColor(c color.Color) lipgloss.Color {
	if c == nil {
		return lipgloss.Color("")
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return lipgloss.Color(overlay.FormatColor(n))
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		// Find last space within width
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}

// tuiDisplay forwards frames and status to the Bubble Tea program. Sizes are
// estimated since a terminal cannot measure proportional fonts.
type tuiDisplay struct {
	overlay.FixedMeasurer
}

func (tuiDisplay) Show(f overlay.Frame) { tuiSend(FrameMsg{Frame: f}) }
func (tuiDisplay) Hide()                { tuiSend(FrameMsg{}) }
func (tuiDisplay) ScreenWidth() int     { return tuiScreenWidth }
func (tuiDisplay) Status(s Status)      { tuiSend(StatusMsg{Status: s}) }
