// Package cli provides terminal I/O and meta-command dispatch for the
// DunDork game engine: a plain prompt/answer loop suitable for pipes,
// scripts, and dumb terminals.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/dundork/engine"
)

const defaultWidth = 78

// CLI handles terminal interaction with the player. The engine drives the
// conversation; the CLI only answers prompts and prints output.
type CLI struct {
	In        io.Reader
	Out       io.Writer
	Logger    *slog.Logger
	Width     int
	EchoInput bool // echo each input line after the prompt (for script playback)

	eng      *engine.Engine
	scanner  *bufio.Scanner
	eof      bool
	sentQuit bool
}

// New creates a CLI on stdin/stdout.
func New(logger *slog.Logger) *CLI {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CLI{
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: logger,
		Width:  defaultWidth,
	}
}

// IO returns the engine callbacks backed by this CLI.
func (c *CLI) IO() engine.IO {
	return engine.IO{
		Prompt: c.readAnswer,
		Say:    c.printLine,
	}
}

// Run drives the engine until the session ends.
func (c *CLI) Run(eng *engine.Engine) {
	c.eng = eng
	c.scanner = bufio.NewScanner(c.In)

	c.Logger.Info("session started", "run_id", eng.RunID(), "class", eng.Class(), "mutator", eng.MutatorName())

	eng.Start()
	for !eng.PlayTurn() {
	}

	c.Logger.Info("session ended",
		"run_id", eng.RunID(), "won", eng.Won(), "ending", eng.Ending(), "turns", eng.Turn())
	c.printLine("Goodbye.")
}

// readAnswer services one engine prompt. Meta-commands and comment lines
// are handled here and never reach the engine; EOF turns into a quit so
// piped scripts terminate cleanly.
func (c *CLI) readAnswer(prompt string) string {
	for {
		if c.eof {
			// First EOF asks to quit; any follow-up prompt confirms it.
			if !c.sentQuit {
				c.sentQuit = true
				return "quit"
			}
			return "y"
		}

		fmt.Fprint(c.Out, prompt)
		if !c.scanner.Scan() {
			c.eof = true
			fmt.Fprintln(c.Out)
			continue
		}

		input := strings.TrimSpace(c.scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			fmt.Fprintln(c.Out, input)
		}
		if strings.HasPrefix(input, "/") {
			c.handleMeta(input)
			continue
		}
		return input
	}
}

// handleMeta dispatches slash commands that live outside the game world.
func (c *CLI) handleMeta(input string) {
	switch strings.Fields(input)[0] {
	case "/help":
		c.metaHelp()
	case "/state":
		c.metaState()
	case "/meta":
		c.metaRecord()
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}
}

func (c *CLI) metaHelp() {
	help := []string{
		"System:",
		"  /state  — Debug: dump session state",
		"  /meta   — Show the progression record",
		"  /help   — Show this help",
		"",
		"Game commands are typed at the prompt: n/s/e/w, look, pickup <item>,",
		"drop <item>, use <item>, inventory, map, quests, status, log, help, quit.",
	}
	for _, line := range help {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) metaState() {
	cur, maxHP := c.eng.Health()
	c.printSystem(fmt.Sprintf("Run: %s", c.eng.RunID()))
	c.printSystem(fmt.Sprintf("Room: %d | Turn: %d | Health: %d/%d | XP: %d",
		c.eng.RoomID(), c.eng.Turn(), cur, maxHP, c.eng.XP()))
	c.printSystem(fmt.Sprintf("Class: %s | Mutator: %s | In combat: %v",
		c.eng.Class(), c.eng.MutatorName(), c.eng.InCombat()))
}

func (c *CLI) metaRecord() {
	m := c.eng.Meta()
	c.printSystem(fmt.Sprintf("Wins: %d | Total XP: %d | Best ending: %s",
		m.Wins, m.TotalXP, m.BestEnding))
	c.printSystem("Unlocked classes: " + strings.Join(m.UnlockedClasses, ", "))
}

func (c *CLI) printLine(text string) {
	width := c.Width
	if width <= 0 {
		width = defaultWidth
	}
	fmt.Fprintln(c.Out, wordwrap.String(text, width))
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
