// Package tui provides a Bubble Tea terminal UI for the DunDork game
// engine. The engine runs on its own goroutine and talks through a channel
// bridge: Say lines stream into the viewport, Prompt blocks until the
// player submits an answer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/dundork/engine"
)

// bridge carries engine I/O across the goroutine boundary.
type bridge struct {
	events  chan engineEvent
	answers chan string
}

type engineEvent struct {
	line   string // one Say line (when prompt is empty and done is false)
	prompt string // non-empty: the engine is waiting for an answer
	done   bool   // session over
}

func newBridge() *bridge {
	return &bridge{
		events:  make(chan engineEvent),
		answers: make(chan string),
	}
}

// IO returns engine callbacks that feed this bridge. Prompt blocks the
// engine goroutine until the UI sends an answer.
func (b *bridge) IO() engine.IO {
	return engine.IO{
		Say: func(text string) {
			for _, line := range strings.Split(text, "\n") {
				b.events <- engineEvent{line: line}
			}
		},
		Prompt: func(text string) string {
			b.events <- engineEvent{prompt: text}
			return <-b.answers
		},
	}
}

// rawLine stores an unstyled output line with its classification, so the
// view can re-wrap and re-style on resize.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // echoed player input
}

// Model is the Bubble Tea model for the DunDork TUI.
type Model struct {
	engine *engine.Engine
	bridge *bridge

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine
	pending  string // prompt text the engine is blocked on, "" if none

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model wired to the given bridge. The engine must have
// been constructed with the bridge's IO.
func New(eng *engine.Engine, b *bridge) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		bridge:  b,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run builds the bridge, starts the engine goroutine, and runs the
// program. The caller constructs the engine via the IO this function hands
// to the build callback.
func Run(build func(io engine.IO) *engine.Engine) error {
	b := newBridge()
	eng := build(b.IO())

	go func() {
		eng.Start()
		for !eng.PlayTurn() {
		}
		b.events <- engineEvent{done: true}
	}()

	m := New(eng, b)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitEvent())
}

// waitEvent blocks on the next engine event and delivers it as a message.
func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.bridge.events
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case engineEvent:
		return m.handleEngineEvent(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Older(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Newer(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.Reset()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEngineEvent folds one bridge event into the model. Narrative lines
// keep the listener armed; a prompt parks until the player answers.
func (m Model) handleEngineEvent(ev engineEvent) (tea.Model, tea.Cmd) {
	switch {
	case ev.done:
		m.quitting = true
		return m, tea.Quit
	case ev.prompt != "":
		m.pending = ev.prompt
		return m, nil
	default:
		m.rawLines = append(m.rawLines, rawLine{text: ev.line, kind: classifyLine(ev.line)})
		m.refreshViewport()
		return m, m.waitEvent()
	}
}

// handleEnter submits the input line as the answer to the pending prompt.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" || m.pending == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.Reset()

	// Meta-commands never reach the engine.
	if strings.HasPrefix(input, "/") {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
		for _, line := range m.metaOutput(input) {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindSystem})
		}
		m.refreshViewport()
		return m, nil
	}

	m.rawLines = append(m.rawLines,
		rawLine{text: "> " + input, isInput: true},
		rawLine{})
	m.refreshViewport()

	m.pending = ""
	return m, tea.Batch(
		func() tea.Msg {
			m.bridge.answers <- input
			return nil
		},
		m.waitEvent(),
	)
}

func (m *Model) metaOutput(input string) []string {
	switch strings.Fields(input)[0] {
	case "/help":
		return []string{
			"/state — dump session state, /meta — progression record",
			"PgUp/PgDn to scroll, Up/Down for command history, Ctrl+C to quit",
		}
	case "/state":
		cur, maxHP := m.engine.Health()
		return []string{
			fmt.Sprintf("Run %s | Room %d | Turn %d | Health %d/%d | XP %d",
				m.engine.RunID(), m.engine.RoomID(), m.engine.Turn(), cur, maxHP, m.engine.XP()),
		}
	case "/meta":
		rec := m.engine.Meta()
		return []string{
			fmt.Sprintf("Wins %d | Total XP %d | Best ending: %s | Classes: %s",
				rec.Wins, rec.TotalXP, rec.BestEnding, strings.Join(rec.UnlockedClasses, ", ")),
		}
	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help.", input)}
	}
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := m.width
	if width < 10 {
		width = 10
	}

	color := m.engine.StyleColor()
	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := wordwrap.String(rl.text, width)
		if !color {
			styled = append(styled, wrapped)
			continue
		}
		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
		} else {
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders viewport + status bar + input, with the pending prompt as
// the input's guidance line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	prompt := m.pending
	if prompt == "" {
		prompt = "..."
	}
	inputLine := stylePrompt.Render(strings.TrimSuffix(prompt, "> ")) + " " + m.input.View()

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + inputLine
}

// viewportKeyMap disables Up/Down (used for input history) and keeps
// paging keys.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
