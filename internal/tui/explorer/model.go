// ============================================================================
// frege - Script Parser Toolkit
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model for the interactive AST explorer
// Author:      msto63
// Created:     2025-10-12
// License:     MIT
// ============================================================================

package explorer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/foundation/script/parser"
	"github.com/msto63/frege/internal/render"
	"github.com/msto63/frege/internal/tui"
	"github.com/msto63/frege/pkg/core/cache"
	"github.com/msto63/frege/pkg/core/config"
)

// FormatTokens shows the token table instead of the tree
const FormatTokens = "tokens"

// Formats lists the output views in the order Ctrl+F cycles through them
var Formats = []string{config.FormatTree, config.FormatSExpr, config.FormatJSON, config.FormatYAML, FormatTokens}

// Focus areas
type focusArea int

const (
	focusEditor focusArea = iota
	focusOutput
)

// Config holds explorer configuration
type Config struct {
	Source   string        // Initial editor content
	Path     string        // File for Ctrl+S; saving is disabled when empty
	Format   string        // Initial view, one of Formats
	Engine   *script.Engine
	Color    bool
	Debounce time.Duration // Idle time before re-parsing
}

// Model is the main Bubbletea model for the explorer
type Model struct {
	// State
	width  int
	height int
	ready  bool
	focus  focusArea
	seq    int
	status string

	// Components
	editor textarea.Model
	output viewport.Model

	// Parse state
	formatIdx int
	result    outcome
	cached    bool
	lastGood  string

	// Dependencies
	engine   *script.Engine
	renders  *cache.Cache[outcome]
	styles   render.Styles
	path     string
	debounce time.Duration
}

// New creates a new explorer model
func New(cfg Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a script..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetValue(cfg.Source)
	ta.Focus()

	if cfg.Engine == nil {
		cfg.Engine = script.New(script.Options{Logger: frlog.Discard()})
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 150 * time.Millisecond
	}

	formatIdx := 0
	for i, f := range Formats {
		if f == cfg.Format {
			formatIdx = i
		}
	}

	return Model{
		editor:    ta,
		output:    viewport.New(40, 10),
		formatIdx: formatIdx,
		result:    outcome{statements: -1},
		engine:    cfg.Engine,
		renders: cache.New[outcome](cache.Config{
			MaxItems:        128,
			TTL:             5 * time.Minute,
			CleanupInterval: time.Minute,
		}),
		styles:   render.NewStyles(cfg.Color),
		path:     cfg.Path,
		debounce: cfg.Debounce,
	}
}

// Format returns the active view
func (m Model) Format() string {
	return Formats[m.formatIdx]
}

// Source returns the editor content
func (m Model) Source() string {
	return m.editor.Value()
}

// Err returns the error of the latest parse, if any
func (m Model) Err() error {
	return m.result.err
}

// Output returns the rendering shown in the output panel
func (m Model) Output() string {
	return m.lastGood
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.parse(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.output.SetContent(m.lastGood)

	case parseTickMsg:
		if msg.seq == m.seq {
			return m, m.parse()
		}

	case parsedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.result = msg.result
		m.cached = msg.cached
		if msg.result.err == nil || m.Format() == FormatTokens {
			m.lastGood = msg.result.output
			m.output.SetContent(m.lastGood)
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
	}

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.output, cmd = m.output.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.renders.Close()
		return m, tea.Quit

	case tea.KeyTab:
		if m.focus == focusEditor {
			m.focus = focusOutput
			m.editor.Blur()
			return m, nil
		}
		m.focus = focusEditor
		return m, m.editor.Focus()

	case tea.KeyCtrlF:
		m.formatIdx = (m.formatIdx + 1) % len(Formats)
		m.seq++
		m.output.GotoTop()
		return m, m.parse()

	case tea.KeyCtrlS:
		if m.path == "" {
			m.status = "no file to save to"
			return m, nil
		}
		return m, m.save()
	}

	if m.focus == focusOutput {
		switch msg.Type {
		case tea.KeyPgUp:
			m.output.ViewUp()
		case tea.KeyPgDown:
			m.output.ViewDown()
		case tea.KeyUp:
			m.output.LineUp(1)
		case tea.KeyDown:
			m.output.LineDown(1)
		case tea.KeyHome:
			m.output.GotoTop()
		case tea.KeyEnd:
			m.output.GotoBottom()
		}
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() == before {
		return m, cmd
	}

	m.status = ""
	m.seq++
	seq := m.seq
	return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return parseTickMsg{seq: seq}
	}))
}

// parse returns a command that parses and renders the current content.
// Renderings are memoized per source and view.
func (m Model) parse() tea.Cmd {
	source, format, seq := m.editor.Value(), m.Format(), m.seq
	engine, renders, styles := m.engine, m.renders, m.styles

	return func() tea.Msg {
		result, cached, _ := renders.GetOrCompute(cache.KeyFor(source, format), func() (outcome, error) {
			return evaluate(engine, styles, source, format), nil
		})
		return parsedMsg{seq: seq, result: result, cached: cached}
	}
}

// evaluate parses source and renders it in format
func evaluate(engine *script.Engine, styles render.Styles, source, format string) outcome {
	if format == FormatTokens {
		lexer := parser.NewLexer(source)
		tokens, err := lexer.Tokenize()
		if err == nil {
			tokens = append(tokens, parser.Token{Type: parser.TokenEOF, Offset: lexer.Cursor()})
		}
		var buf bytes.Buffer
		_ = render.Tokens(&buf, tokens, styles)
		return outcome{output: buf.String(), err: err, statements: -1}
	}

	res, err := engine.Parse(context.Background(), "editor", source)
	if err != nil {
		return outcome{err: err}
	}

	var out string
	if format == config.FormatTree {
		out = render.Tree(res.Program, styles)
	} else {
		data, rerr := render.Bytes(res.Program, render.Options{Format: format, Indent: 2})
		if rerr != nil {
			return outcome{err: rerr}
		}
		out = string(data)
	}

	return outcome{
		output:     out,
		duration:   res.Duration,
		statements: len(res.Program.Body),
	}
}

// save returns a command that writes the editor content to the file
func (m Model) save() tea.Cmd {
	path, content := m.path, m.editor.Value()
	return func() tea.Msg {
		return savedMsg{path: path, err: os.WriteFile(path, []byte(content), 0o644)}
	}
}

// layout sizes editor and output to the window
func (m *Model) layout() {
	headerHeight := 2 // Title + tabs
	footerHeight := 2 // Status bar + help
	panelHeight := m.height - headerHeight - footerHeight - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	panelWidth := (m.width - 8) / 2
	if panelWidth < 20 {
		panelWidth = 20
	}

	m.editor.SetWidth(panelWidth)
	m.editor.SetHeight(panelHeight)
	m.output.Width = panelWidth
	m.output.Height = panelHeight
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPanels())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderHeader renders the title and the view tabs
func (m Model) renderHeader() string {
	tabs := make([]string, len(Formats))
	for i, f := range Formats {
		if i == m.formatIdx {
			tabs[i] = tui.ActiveTabStyle.Render(f)
		} else {
			tabs[i] = tui.TabStyle.Render(f)
		}
	}

	title := tui.RenderTitle("frege explorer")
	if m.path != "" {
		title += " " + tui.SubtitleStyle.Render(m.path)
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPanels renders editor and output side by side
func (m Model) renderPanels() string {
	editorStyle, outputStyle := tui.FocusedBoxStyle, tui.BoxStyle
	if m.focus == focusOutput {
		editorStyle, outputStyle = tui.BoxStyle, tui.FocusedBoxStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		editorStyle.Render(m.editor.View()),
		outputStyle.Render(m.output.View()),
	)
}

// renderStatusBar renders the parse status and the latest message
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.result.err != nil:
		status = tui.StatusErrorStyle.Render("error") + " " + render.Diagnostic(m.result.err)
	case m.result.statements >= 0:
		status = tui.StatusOKStyle.Render("ok") +
			fmt.Sprintf(" %d statements, %s", m.result.statements, m.result.duration.Round(time.Microsecond))
	default:
		status = tui.StatusOKStyle.Render("ok")
	}
	if m.cached {
		status += " (cached)"
	}
	if m.status != "" {
		status += "  " + m.status
	}

	return tui.StatusBarStyle.Width(max(m.width-2, 0)).Render(status)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		tui.RenderKeyHint("Tab", "focus"),
		tui.RenderKeyHint("Ctrl+F", "view"),
	}
	if m.path != "" {
		items = append(items, tui.RenderKeyHint("Ctrl+S", "save"))
	}
	if m.focus == focusOutput {
		items = append(items, tui.RenderKeyHint("↑/↓ PgUp/PgDn", "scroll"))
	}
	items = append(items, tui.RenderKeyHint("Ctrl+C", "quit"))

	return tui.HelpStyle.Render(strings.Join(items, "  "))
}

// Run starts the explorer and blocks until the user quits
func Run(cfg Config) error {
	m := New(cfg)
	defer m.renders.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
