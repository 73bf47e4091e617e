package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/slip/lang"
	"github.com/ardnew/slip/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"

	defaultWidth = 80
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help     Print this cruft
  list     List names defined in the session
  reset    Discard the session and start fresh
  clear    Clear screen
  quit     Exit session

Usage:
  Type a statement or expression to evaluate it
  Declarations persist for the rest of the session
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit`

// inputMode selects between evaluating slip source and running session
// control commands.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// prompt returns the styled prompt string for the mode.
func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

// hint returns the idle-line hint text for the mode.
func (m inputMode) hint() string {
	if m == modeCtrl {
		return "Type: help, list, reset, clear, quit (press Esc to return)"
	}

	return "Type a statement or press Esc for commands"
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
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

// echoLine renders the echoed prompt and input for a submitted line.
func echoLine(mode inputMode, input string) string {
	return mode.prompt() + inputStyle.Render(input)
}

// settings holds the interpreter limits applied to the session.
type settings struct {
	maxLoopIterations int
	maxCallDepth      int
}

// Option configures the interactive session.
type Option func(*settings)

// WithMaxLoopIterations sets the iteration guard applied to every while loop
// evaluated in the session.
func WithMaxLoopIterations(n int) Option {
	return func(s *settings) { s.maxLoopIterations = n }
}

// WithMaxCallDepth sets the call depth guard applied to every function call
// evaluated in the session.
func WithMaxCallDepth(n int) Option {
	return func(s *settings) { s.maxCallDepth = n }
}

// modeState preserves one mode's pending input across mode switches.
type modeState struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the interactive session.
type model struct {
	ctxFunc func() context.Context
	input   textinput.Model
	interp  *lang.Interp
	env     *lang.Env
	printed *bytes.Buffer
	config  settings
	logger  log.Logger

	history *History
	histPos int // index into history; Len() means "live" input

	matches     fuzzy.Matches // ranked candidates for the current word
	candidates  []string      // backing candidate list
	wordStart   int           // byte offset of current word start
	wordEnd     int           // byte offset of current word end
	selected    int           // candidate index while cycling
	cycling     bool          // Tab cycling in progress
	savedText   string        // input text before cycling began
	savedCursor int           // cursor position before cycling began

	width    int
	quitting bool

	mode  inputMode
	saved [2]modeState // per-mode pending input, indexed by inputMode
}

// Run starts an interactive session, persisting history under cacheDir.
func Run(
	ctx context.Context,
	cacheDir string,
	logger log.Logger,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	config := settings{
		maxLoopIterations: lang.DefaultMaxLoopIterations,
		maxCallDepth:      lang.DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(&config)
	}

	m := newModel(ctx, config, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	config settings,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = modeEval.prompt()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	printed := new(bytes.Buffer)

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   ti,
		interp: lang.NewInterp(
			lang.WithOutput(printed),
			lang.WithLogger(logger),
			lang.WithMaxLoopIterations(config.maxLoopIterations),
			lang.WithMaxCallDepth(config.maxCallDepth),
		),
		env:     lang.NewRootEnv(),
		printed: printed,
		config:  config,
		logger:  logger,
		history: history,
		histPos: history.Len(),
		width:   defaultWidth,
		mode:    modeEval,
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

	return m.input.View() + "\n" + m.statusLine() + "\n"
}

// statusLine renders the line below the input: a history position while
// recalling, a usage hint when the input is blank, or the completion bar.
func (m model) statusLine() string {
	if m.histPos < m.history.Len() {
		pos := lipgloss.NewStyle().
			Bold(true).
			Render(strconv.Itoa(m.histPos + 1))

		return hintStyle.Render(
			fmt.Sprintf("%s/%d", pos, m.history.Len()),
		)
	}

	if strings.TrimSpace(m.input.Value()) == "" {
		return hintStyle.Render(m.mode.hint())
	}

	if len(m.matches) > 0 {
		return m.renderCandidateBar(
			m.matches, m.selected, m.cycling, m.width,
		)
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.cycling = false
		m.histPos = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.cycling || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current candidate without executing.
		m.cycling = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycleCandidates(1)

	case tea.KeyShiftTab:
		return m.cycleCandidates(-1)

	case tea.KeyUp:
		return m.recall(-1)

	case tea.KeyDown:
		return m.recall(1)

	case tea.KeyShiftUp:
		return m.recallSameMode(-1)

	case tea.KeyShiftDown:
		return m.recallSameMode(1)

	case tea.KeyEsc:
		if m.cycling {
			m.cycling = false
			m.input.SetValue(m.savedText)
			m.input.SetCursor(m.savedCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode)

	case tea.KeyRunes:
		// Space acts as a "breaking" key while cycling.
		if m.cycling && msg.String() == " " {
			m.cycling = false
		}

		var cmd tea.Cmd

		m.histPos = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Backspace, delete, cursor movement: update the input and recompute
	// matches without auto-confirming.
	var cmd tea.Cmd

	m.cycling = false
	m.histPos = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycleCandidates advances the candidate selection by step, starting a
// cycling pass when one is not already active. A sole candidate is accepted
// immediately.
func (m model) cycleCandidates(step int) (model, tea.Cmd) {
	switch {
	case len(m.matches) == 0:
		return m, nil

	case len(m.matches) == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.cycling = false
		m.selected = -1
		m.matches = nil

		return m, nil

	case m.cycling:
		n := len(m.matches)
		m.selected = (m.selected + step + n) % n

	default:
		m.cycling = true
		m.savedText = m.input.Value()
		m.savedCursor = m.input.Position()

		m.selected = 0
		if step < 0 {
			m.selected = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.selected].Str)

	return m, nil
}

// replaceCurrentWord splices the replacement over the current word and
// places the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state. When
// autoConfirm is set and the typed word already equals the sole remaining
// candidate, the completion is accepted. Deletions and cursor navigation
// pass false so edits never trigger surprise completions.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.cycling {
		m.selected = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.cycling = false
		m.selected = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Clear the pending input of both modes after submission.
	m.saved = [2]modeState{}
	m.input.SetValue("")

	_ = m.history.Add(input, m.mode)
	m.histPos = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", input),
	)

	return m.evaluate(input)
}

// evaluate parses and runs one line of slip source against the session
// environment, echoing the input, any print output, and the result.
func (m model) evaluate(input string) (model, tea.Cmd) {
	echo := tea.Println(echoLine(modeEval, input))

	prog, err := lang.ParseCached(input)
	if err != nil {
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	m.printed.Reset()

	result, err := m.interp.Interactive(prog, m.env)
	if err != nil {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl eval result",
			slog.String("result_type", "error"),
			slog.String("error", err.Error()),
		)

		return m, tea.Sequence(
			echo,
			m.printedOutput(),
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval result",
		slog.String("result_type", result.Type().String()),
	)

	return m, tea.Sequence(
		echo,
		m.printedOutput(),
		tea.Println(resultStyle.Render(result.String())),
	)
}

// printedOutput returns a command echoing everything the script wrote with
// the print builtin during the last evaluation.
func (m model) printedOutput() tea.Cmd {
	out := strings.TrimRight(m.printed.String(), "\n")
	if out == "" {
		return nil
	}

	return tea.Println(out)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(echoLine(modeCtrl, input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listNames()))

	case "r", "reset":
		m.env = lang.NewRootEnv()

		return m, tea.Sequence(
			echo,
			tea.Println(resultStyle.Render("session reset")),
		)

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// recall moves through history by delta, switching input mode to match the
// recalled entry. Moving past the newest entry restores the live input line.
func (m model) recall(delta int) (model, tea.Cmd) {
	pos := m.histPos + delta

	entry, ok := m.history.At(pos)
	if !ok {
		if delta > 0 && m.histPos < m.history.Len() {
			m.histPos = m.history.Len()
			m.input.SetValue("")
			refreshMatches(&m, false)
		}

		return m, nil
	}

	if m.mode != entry.mode {
		m, _ = m.switchToMode(entry.mode)
	}

	m.histPos = pos
	m.input.SetValue(entry.line)
	m.input.SetCursor(len(entry.line))
	refreshMatches(&m, false)

	return m, nil
}

// recallSameMode moves through history by delta, skipping entries recorded
// in the other mode.
func (m model) recallSameMode(delta int) (model, tea.Cmd) {
	for pos := m.histPos + delta; ; pos += delta {
		entry, ok := m.history.At(pos)
		if !ok {
			break
		}

		if entry.mode != m.mode {
			continue
		}

		m.histPos = pos
		m.input.SetValue(entry.line)
		m.input.SetCursor(len(entry.line))
		refreshMatches(&m, false)

		return m, nil
	}

	// Walked off the newest end: restore the live input line.
	if delta > 0 && m.histPos < m.history.Len() {
		m.histPos = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// listNames renders every name visible in the session environment alongside
// a short preview of its value.
func (m model) listNames() string {
	var b strings.Builder

	names := m.env.Names()
	slices.Sort(names)

	for _, name := range names {
		value, err := m.env.Lookup(name)
		if err != nil {
			continue
		}

		b.WriteString("  " + name + " " +
			hintStyle.Render(formatPreview(value)) + "\n")
	}

	return b.String()
}

// formatPreview generates a short preview string for a value.
func formatPreview(v lang.Value) string {
	switch v := v.(type) {
	case *lang.UserFunc:
		return "fn(" + strings.Join(v.Params, ", ") + ")"

	case lang.Builtin:
		return "builtin"
	}

	preview := v.String()
	if len(preview) > 40 {
		preview = preview[:37] + "..."
	}

	return v.Type().String() + " " + preview
}

// switchToMode changes the input mode, stashing the current mode's pending
// input and restoring the target mode's.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	m.saved[m.mode] = modeState{
		text:   m.input.Value(),
		cursor: m.input.Position(),
	}

	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)

	refreshMatches(&m, false)

	return m, nil
}
