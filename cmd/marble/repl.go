package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/marblescript/marble"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type replTheme struct {
	prompt  lipgloss.Style
	title   lipgloss.Style
	echo    lipgloss.Style
	result  lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	command lipgloss.Style
	panel   lipgloss.Style
}

func newREPLTheme() replTheme {
	blue := lipgloss.Color("#3B82F6")
	return replTheme{
		prompt:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		title:   lipgloss.NewStyle().Background(blue).Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1),
		echo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		result:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).PaddingLeft(2),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).PaddingLeft(2),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(blue).PaddingLeft(1),
	}
}

// entryKind decides how a transcript entry is drawn.
type entryKind int

const (
	entryResult entryKind = iota
	entryError
	entryNotice
)

type historyEntry struct {
	input  string
	output string
	kind   entryKind
}

// inputHistory is the list of submitted lines browsed with up and down.
// cursor == len(lines) means the user is editing a fresh line.
type inputHistory struct {
	lines  []string
	cursor int
}

func (h *inputHistory) push(line string) {
	h.lines = append(h.lines, line)
	h.cursor = len(h.lines)
}

func (h *inputHistory) older() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.lines[h.cursor], true
}

func (h *inputHistory) newer() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return "", true
	}
	return h.lines[h.cursor], true
}

func (h *inputHistory) reset() { h.cursor = len(h.lines) }

type replKeys struct {
	Older    key.Binding
	Newer    key.Binding
	Submit   key.Binding
	Complete key.Binding
	Mode     key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k replKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Help, k.Quit}
}

func (k replKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.Older, k.Newer},
		{k.Mode, k.Clear, k.Help, k.Quit},
	}
}

var keys = replKeys{
	Older:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older input")),
	Newer:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer input")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "parse")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete keyword")),
	Mode:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next mode")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

// replCommands are the colon commands, in the order the help lists them.
var replCommands = []struct {
	names []string
	usage string
	run   func(m replModel, args []string) (replModel, tea.Cmd)
}{
	{[]string{":code"}, "show canonical source", func(m replModel, _ []string) (replModel, tea.Cmd) {
		return m.setMode(modeCode), nil
	}},
	{[]string{":tokens", ":t"}, "show the token stream", func(m replModel, _ []string) (replModel, tea.Cmd) {
		return m.setMode(modeTokens), nil
	}},
	{[]string{":ast", ":a"}, "show the syntax tree", func(m replModel, _ []string) (replModel, tea.Cmd) {
		return m.setMode(modeAST), nil
	}},
	{[]string{":mode", ":m"}, "show or set the mode", runModeCommand},
	{[]string{":clear", ":c"}, "clear the transcript", func(m replModel, _ []string) (replModel, tea.Cmd) {
		m.history = nil
		return m, nil
	}},
	{[]string{":help", ":h"}, "toggle help", func(m replModel, _ []string) (replModel, tea.Cmd) {
		m.showHelp = !m.showHelp
		return m, nil
	}},
	{[]string{":quit", ":q"}, "leave the shell", func(m replModel, _ []string) (replModel, tea.Cmd) {
		m.quitting = true
		return m, tea.Quit
	}},
}

func runModeCommand(m replModel, args []string) (replModel, tea.Cmd) {
	switch {
	case len(args) == 0:
		return m.record(historyEntry{output: "Mode: " + m.mode, kind: entryNotice}), nil
	case !validMode(args[0]):
		return m.record(historyEntry{
			output: fmt.Sprintf("Unknown mode: %s (want %s, %s or %s)", args[0], modeCode, modeTokens, modeAST),
			kind:   entryError,
		}), nil
	default:
		return m.setMode(args[0]), nil
	}
}

type replModel struct {
	textInput    textinput.Model
	help         help.Model
	theme        replTheme
	mode         string
	historyLimit int
	history      []historyEntry
	inputs       inputHistory
	width        int
	height       int
	showHelp     bool
	quitting     bool
	initialized  bool
}

func newREPLModel(cfg REPLConfig) replModel {
	theme := newREPLTheme()

	ti := textinput.New()
	ti.Placeholder = "let x = 1 + 2;"
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = theme.prompt
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return replModel{
		textInput:    ti,
		help:         help.New(),
		theme:        theme,
		mode:         cfg.Mode,
		historyLimit: cfg.HistoryLimit,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = max(10, msg.Width-len(m.textInput.Prompt)-2)
		m.help.Width = msg.Width
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, keys.Mode):
			return m.setMode(nextMode(m.mode)), nil
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Older):
			if line, ok := m.inputs.older(); ok {
				m.textInput.SetValue(line)
				m.textInput.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, keys.Newer):
			if line, ok := m.inputs.newer(); ok {
				m.textInput.SetValue(line)
				m.textInput.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, keys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, keys.Submit):
			return m.submit(strings.TrimSpace(m.textInput.Value()))
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) submit(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}
	m.textInput.SetValue("")
	m.inputs.reset()

	if strings.HasPrefix(input, ":") {
		return m.handleCommand(input)
	}

	output, failed := evaluate(m.mode, input)
	kind := entryResult
	if failed {
		kind = entryError
	}
	m = m.record(historyEntry{input: input, output: output, kind: kind})
	m.inputs.push(input)
	return m, nil
}

// record appends an entry and drops the oldest ones past the history limit.
func (m replModel) record(entry historyEntry) replModel {
	m.history = append(m.history, entry)
	if m.historyLimit > 0 && len(m.history) > m.historyLimit {
		m.history = m.history[len(m.history)-m.historyLimit:]
	}
	return m
}

func (m replModel) setMode(mode string) replModel {
	m.mode = mode
	return m.record(historyEntry{output: "Mode: " + mode, kind: entryNotice})
}

func nextMode(mode string) string {
	switch mode {
	case modeCode:
		return modeTokens
	case modeTokens:
		return modeAST
	default:
		return modeCode
	}
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]
	for _, c := range replCommands {
		for _, alias := range c.names {
			if alias == name {
				return c.run(m, args)
			}
		}
	}
	return m.record(historyEntry{
		input:  input,
		output: fmt.Sprintf("Unknown command: %s", name),
		kind:   entryError,
	}), nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	partial := words[len(words)-1]

	var matches []string
	for _, k := range marble.Keywords() {
		if strings.HasPrefix(k, partial) {
			matches = append(matches, k)
		}
	}

	switch len(matches) {
	case 0:
	case 1:
		m.textInput.SetValue(strings.TrimSuffix(input, partial) + matches[0])
		m.textInput.CursorEnd()
	default:
		m = m.record(historyEntry{output: "Completions: " + strings.Join(matches, ", "), kind: entryNotice})
	}
	return m
}

// evaluate renders one line of input according to mode.
func evaluate(mode, input string) (string, bool) {
	if mode == modeTokens {
		return formatTokenStream(input), false
	}

	program, err := marble.Parse(input)
	if err != nil {
		return err.Error(), true
	}
	if mode != modeAST {
		return program.String(), false
	}

	out, err := yaml.Marshal(buildTree(program))
	if err != nil {
		return err.Error(), true
	}
	return strings.TrimRight(string(out), "\n"), false
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	header := m.theme.title.Render("marble "+version) + " " + m.theme.notice.Render(m.mode+" mode")
	footer := m.help.View(keys)
	if m.showHelp {
		footer = m.commandHelp() + "\n" + m.help.FullHelpView(keys.FullHelp())
	}
	prompt := m.textInput.View()

	used := lipgloss.Height(header) + lipgloss.Height(footer) + lipgloss.Height(prompt) + 2
	body := m.transcript(max(0, m.height-used))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, prompt, "", footer)
}

// transcript renders the newest entries that fit in height lines.
func (m replModel) transcript(height int) string {
	var blocks []string
	lines := 0
	for i := len(m.history) - 1; i >= 0; i-- {
		block := m.renderEntry(m.history[i])
		h := lipgloss.Height(block)
		if lines+h > height {
			break
		}
		lines += h
		blocks = append([]string{block}, blocks...)
	}
	if pad := height - lines; pad > 0 {
		blocks = append([]string{strings.Repeat("\n", pad-1)}, blocks...)
	}
	return strings.Join(blocks, "\n")
}

func (m replModel) renderEntry(e historyEntry) string {
	var out string
	switch e.kind {
	case entryError:
		out = m.theme.failure.Render(e.output)
	case entryNotice:
		out = m.theme.notice.Render(e.output)
	default:
		out = m.theme.result.Render(e.output)
	}
	if e.input == "" {
		return out
	}
	return m.theme.echo.Render(m.textInput.Prompt+e.input) + "\n" + out
}

func (m replModel) commandHelp() string {
	rows := make([]string, 0, len(replCommands))
	for _, c := range replCommands {
		rows = append(rows, fmt.Sprintf("%-12s %s", m.theme.command.Render(strings.Join(c.names, " ")), c.usage))
	}
	return m.theme.panel.Render(strings.Join(rows, "\n"))
}

func newREPLCmd(a *app) *cobra.Command {
	var plain bool
	var mode string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				if !validMode(mode) {
					return fmt.Errorf("unknown mode %q", mode)
				}
				a.cfg.REPL.Mode = mode
			}
			if plain {
				return runLineREPL(a.in, a.out, a.cfg.REPL)
			}
			return runREPL(a)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "read lines from stdin without the terminal UI")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "output mode: code, tokens or ast")
	return cmd
}

func runREPL(a *app) error {
	a.log.Debug("starting repl", "mode", a.cfg.REPL.Mode)
	p := tea.NewProgram(newREPLModel(a.cfg.REPL), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runLineREPL prompts, reads a line and prints its rendering until an
// empty line or end of input.
func runLineREPL(in io.Reader, out io.Writer, cfg REPLConfig) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, cfg.Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}
		output, _ := evaluate(cfg.Mode, line)
		if _, err := fmt.Fprintln(out, output); err != nil {
			return err
		}
	}
}
