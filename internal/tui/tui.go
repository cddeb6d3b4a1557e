// Package tui provides a Bubble Tea terminal user interface for djassist.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/djassist/internal/config"
	"github.com/handiism/djassist/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StateURLInput
	StateRunning
	StateDone
	StateStats
)

// Action is a menu entry.
type Action int

const (
	ActionGenerate Action = iota
	ActionExtract
	ActionClassify
	ActionYouTube
	ActionPlaylists
	ActionWorkflow
	ActionStats
	ActionQuit
)

var menu = []struct {
	action Action
	label  string
}{
	{ActionGenerate, "Step 1: Generate the batch document from the song list"},
	{ActionExtract, "Step 2: Extract one card per song"},
	{ActionClassify, "Step 3: Generate the classified DJ set"},
	{ActionYouTube, "Step 4: Import cards from YouTube"},
	{ActionPlaylists, "Step 5: Generate the playlists"},
	{ActionWorkflow, "Run the full workflow (steps 1, 2, 3 and 5)"},
	{ActionStats, "Show statistics"},
	{ActionQuit, "Quit"},
}

// maxLogs is the number of progress lines kept on screen.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	cursor    int
	running   Action
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	manager   *pipeline.Manager
	events    chan pipeline.ProgressEvent
	logs      []LogEntry
	summary   string
	stats     []pipeline.Stat
	index     pipeline.IndexStat
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model working on the library described by
// settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=..."
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	events := make(chan pipeline.ProgressEvent, 256)
	manager := pipeline.NewManager(settings, func(e pipeline.ProgressEvent) {
		select {
		case events <- e:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateMenu,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		manager:   manager,
		events:    events,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// ProgressMsg is sent for every pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// StageDoneMsg is sent when a menu action completes.
	StageDoneMsg struct {
		Summary string
		Err     error
	}

	// StatsMsg carries the library statistics.
	StatsMsg struct {
		Stats []pipeline.Stat
		Index pipeline.IndexStat
		Err   error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		if msg.Event.Level == pipeline.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case StageDoneMsg:
		m.state = StateDone
		m.summary = msg.Summary
		m.err = msg.Err
		if m.ctx.Err() != nil {
			m.err = errors.New("cancelled by user")
		}

	case StatsMsg:
		m.state = StateStats
		m.stats = msg.Stats
		m.index = msg.Index
		m.err = msg.Err
	}

	if m.state == StateURLInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.state {
	case StateMenu:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menu)-1 {
				m.cursor++
			}
		case "v":
			m.verbose = !m.verbose
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			return m.selectAction(menu[m.cursor].action)
		case "1", "2", "3", "4", "5", "6", "7", "8":
			m.cursor = int(msg.String()[0] - '1')
			return m.selectAction(menu[m.cursor].action)
		}

	case StateURLInput:
		switch msg.String() {
		case "esc":
			m.textInput.Blur()
			m.state = StateMenu
			return m, nil
		case "enter":
			target := strings.TrimSpace(m.textInput.Value())
			if target == "" {
				return m, nil
			}
			m.textInput.Blur()
			return m.start(ActionYouTube, target)
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd

	case StateRunning:
		if msg.String() == "esc" {
			m.cancel()
		}

	case StateDone, StateStats:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		default:
			m.state = StateMenu
			m.logs = nil
			m.err = nil
			m.summary = ""
		}
	}
	return m, nil
}

func (m Model) selectAction(a Action) (tea.Model, tea.Cmd) {
	switch a {
	case ActionQuit:
		return m, tea.Quit
	case ActionYouTube:
		m.state = StateURLInput
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	case ActionStats:
		return m, m.loadStats()
	default:
		return m.start(a, "")
	}
}

func (m Model) start(a Action, target string) (tea.Model, tea.Cmd) {
	m.state = StateRunning
	m.running = a
	m.logs = nil
	m.err = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m, tea.Batch(m.runAction(a, target), m.spinner.Tick)
}

// runAction runs one menu action in the background.
func (m Model) runAction(a Action, target string) tea.Cmd {
	ctx, manager := m.ctx, m.manager
	ytSource := manager.NewYouTubeSource()

	return func() tea.Msg {
		switch a {
		case ActionGenerate:
			n, err := manager.Generate(ctx)
			return StageDoneMsg{Summary: fmt.Sprintf("Songs processed: %d", n), Err: err}
		case ActionExtract:
			paths, err := manager.Extract(ctx)
			return StageDoneMsg{Summary: fmt.Sprintf("Cards written: %d", len(paths)), Err: err}
		case ActionClassify:
			songs, err := manager.Classify(ctx)
			return StageDoneMsg{Summary: fmt.Sprintf("Songs classified: %d", len(songs)), Err: err}
		case ActionYouTube:
			paths, err := manager.ImportYouTube(ctx, ytSource, target)
			return StageDoneMsg{Summary: fmt.Sprintf("Cards imported: %d", len(paths)), Err: err}
		case ActionPlaylists:
			paths, err := manager.Playlists(ctx)
			return StageDoneMsg{Summary: fmt.Sprintf("Playlist files written: %d", len(paths)), Err: err}
		case ActionWorkflow:
			err := manager.RunAll(ctx)
			return StageDoneMsg{Summary: "Workflow finished", Err: err}
		}
		return StageDoneMsg{Err: fmt.Errorf("unknown action %d", a)}
	}
}

func (m Model) loadStats() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		idx, err := manager.IndexStats()
		return StatsMsg{Stats: manager.Stats(), Index: idx, Err: err}
	}
}

// waitForEvent forwards the next pipeline progress event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 DJ Assistant"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Song cards, sets and playlists for DJs"))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StateURLInput:
		b.WriteString(m.viewURLInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateDone:
		b.WriteString(m.viewDone())
	case StateStats:
		b.WriteString(m.viewStats())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	for i, item := range menu {
		line := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}
	b.WriteString(fmt.Sprintf("%s Verbose output (v)\n\n", verboseCheck))
	b.WriteString(dimStyle.Render(fmt.Sprintf("Library root: %s", m.manager.Paths().Root)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewURLInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a YouTube video or playlist URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Cards are written to %s", m.manager.Paths().CardsDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(menu[m.running].label))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ Error occurred:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %s\n\n", m.err.Error()))
	} else {
		b.WriteString(boxStyle.Render("✨ Done!\n\n" + m.summary))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewStats() string {
	var lines []string
	for _, s := range m.stats {
		switch {
		case !s.Exists:
			lines = append(lines, errorStyle.Render(fmt.Sprintf("✗ %s: not found", s.Name)))
		case s.IsDir:
			lines = append(lines, successStyle.Render(fmt.Sprintf("✓ %s: %d files", s.Name, s.Files)))
		default:
			lines = append(lines, successStyle.Render(fmt.Sprintf("✓ %s: %d bytes", s.Name, s.Size)))
		}
	}

	if m.index.Exists {
		lines = append(lines, "", infoStyle.Render(fmt.Sprintf("Indexed songs: %d", m.index.Songs)))
		genres := make([]string, 0, len(m.index.Genres))
		for g := range m.index.Genres {
			genres = append(genres, g)
		}
		sort.Strings(genres)
		for _, g := range genres {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  %s: %d", g, m.index.Genres[g])))
		}
	}
	if m.err != nil {
		lines = append(lines, "", warningStyle.Render("Index: "+m.err.Error()))
	}

	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateMenu:
		return "1-8/enter: select • ↑/↓: move • v: verbose • q: quit"
	case StateURLInput:
		return "enter: import • esc: back"
	case StateRunning:
		return "esc: cancel"
	case StateDone, StateStats:
		return "any key: menu • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
