package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiam/minitla/eval"
	"github.com/xiam/minitla/log"
	"github.com/xiam/minitla/parser"
)

const (
	evalPrompt = "➜ "
	contPrompt = "… "

	source = "repl"
)

func helpMessage() string {
	return `
Commands:

  .help    Print this message
  .env     List bound constants
  .clear   Clear screen
  .quit    Exit REPL

Usage:
  Type an expression to evaluate it, e.g. (or false (not x))
  Unbalanced input continues on the next line
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func formatCommand(prompt, input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	ev           *eval.Evaluator
	logger       log.Logger
	pending      []string // lines of an expression that is not closed yet
	history      []string
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

// Run starts an interactive session reading keys from in and drawing on out.
// All input is evaluated on a single evaluator, so constants bound by
// :set-const stay visible until the session ends.
func Run(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start")

	m := newModel(ctx, eval.New(eval.WithLogger(logger)), logger)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	ev *eval.Evaluator,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   ti,
		ev:      ev,
		logger:  logger,
		suggIdx: -1,
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case len(m.pending) > 0 && strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Close the open parentheses to evaluate"))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type an expression or .help for commands"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))
	}
	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" && len(m.pending) == 0 {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.resetPending()
		m.tabActive = false
		m.historyIdx = len(m.history)
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			m.matches = nil

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	// Any other key edits the input.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = len(m.history)
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the selected completion candidate by step and writes it into
// the input.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceCurrentWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceCurrentWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceCurrentWord(replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(utf8.RuneCountInString(newInput[:newCursor]))

	m.wordEnd = newCursor
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = computeMatches(
		m.ev.Env(), m.input.Value(), m.input.Position(),
	)
	m.suggIdx = -1
}

func (m *model) resetPending() {
	m.pending = nil
	m.input.Prompt = promptStyle.Render(evalPrompt)
}

func (m model) prompt() string {
	if len(m.pending) > 0 {
		return contPrompt
	}
	return evalPrompt
}

func (m model) executeInput() (model, tea.Cmd) {
	line := m.input.Value()
	prompt := m.prompt()

	m.input.SetValue("")
	m.matches = nil

	trimmed := strings.TrimSpace(line)
	if len(m.pending) == 0 {
		if trimmed == "" {
			return m, nil
		}
		if strings.HasPrefix(trimmed, ".") {
			return m.executeCommand(trimmed)
		}
	}

	echoCmd := tea.Println(formatCommand(prompt, line))

	m.pending = append(m.pending, line)
	text := strings.Join(m.pending, "\n")

	out, err := m.evaluate(text)
	if errors.Is(err, parser.ErrUnclosed) {
		m.input.Prompt = promptStyle.Render(contPrompt)

		return m, echoCmd
	}

	m.resetPending()
	m.history = append(m.history, text)
	m.historyIdx = len(m.history)

	if err != nil {
		out = append(out, errorStyle.Render(err.Error()))
	}

	if len(out) == 0 {
		return m, echoCmd
	}

	return m, tea.Sequence(echoCmd, tea.Println(strings.Join(out, "\n")))
}

// evaluate parses text and evaluates every expression in it, returning one
// rendered line per value. Evaluation stops at the first error.
func (m model) evaluate(text string) ([]string, error) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", text),
	)

	exprs, err := parser.ParseString(source, text, parser.WithLogger(m.logger))
	if err != nil {
		if errors.Is(err, parser.ErrUnclosed) {
			return nil, err
		}
		return nil, fmt.Errorf("syntax error: %w", err)
	}

	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		value, err := m.ev.Eval(e)
		if err != nil {
			return out, fmt.Errorf("evaluation error: %w", err)
		}
		out = append(out, resultStyle.Render(value.String()))
	}

	return out, nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	echoCmd := tea.Println(formatCommand(evalPrompt, input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", input),
	)

	switch input {
	case ".q", ".quit", ".exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case ".h", ".help":
		return m, tea.Sequence(echoCmd, tea.Println(hintStyle.Render(helpMessage())))

	case ".env":
		return m, tea.Sequence(echoCmd, tea.Println(m.listBindings()))

	case ".clear":
		return m, tea.ClearScreen
	}

	err := fmt.Errorf("%w: %s (try .help)", ErrUnknownCommand, input)

	return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(err.Error())))
}

func (m model) listBindings() string {
	env := m.ev.Env()
	if env.Len() == 0 {
		return hintStyle.Render("no constants bound")
	}

	lines := make([]string, 0, env.Len())
	for _, name := range env.Names() {
		value, _ := env.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, resultStyle.Render(value.String())))
	}

	return strings.Join(lines, "\n")
}

func (m model) historyPrev() model {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.setInput(m.history[m.historyIdx])
	}

	return m
}

func (m model) historyNext() model {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.setInput(m.history[m.historyIdx])
	} else {
		m.historyIdx = len(m.history)
		m.setInput("")
	}

	return m
}

func (m *model) setInput(text string) {
	// Multi-line entries are recalled on one line, without their comments.
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i], _, _ = strings.Cut(lines[i], "#")
		lines[i] = strings.TrimSpace(lines[i])
	}
	lines = slices.DeleteFunc(lines, func(line string) bool { return line == "" })
	text = strings.Join(lines, " ")

	m.input.SetValue(text)
	m.input.SetCursor(utf8.RuneCountInString(text))
	m.refreshMatches()
}
