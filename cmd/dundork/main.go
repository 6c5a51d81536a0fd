// DunDork is a procedurally remixed dungeon crawl played in the terminal.
// Usage: dundork [--version] [--plain] [--tui] [--script <file>]
//
//	[--config <file>] [--seed <n>] [--class <name>] [<data_directory>]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/dundork/cli"
	"github.com/nathoo/dundork/config"
	"github.com/nathoo/dundork/engine"
	"github.com/nathoo/dundork/engine/mutator"
	"github.com/nathoo/dundork/engine/save"
	"github.com/nathoo/dundork/loader"
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/tui"
	"github.com/nathoo/dundork/types"
	"github.com/nathoo/dundork/worldgen"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	forceTUI := false
	cfgPath := "dundork.yaml"
	var dataDir, scriptFile, class string
	var seedFlag int64

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dundork %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--tui":
			forceTUI = true
		case "--config":
			cfgPath = nextArg(args, &i, "--config")
		case "--script":
			scriptFile = nextArg(args, &i, "--script")
		case "--class":
			class = nextArg(args, &i, "--class")
		case "--seed":
			n, err := strconv.ParseInt(nextArg(args, &i, "--seed"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires an integer\n")
				os.Exit(1)
			}
			seedFlag = n
		default:
			if dataDir == "" {
				dataDir = args[i]
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}
	if class != "" {
		cfg.Class = class
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rng.New(seed)
	logger.Info("starting", "seed", seed, "data_dir", cfg.DataDir)

	world, err := loader.LoadDir(cfg.DataDir, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}
	script, err := loader.LoadScript(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world script: %v\n", err)
		os.Exit(1)
	}

	for _, warn := range worldgen.Generate(world, r) {
		logger.Warn("worldgen", "detail", warn)
	}

	meta := save.LoadFile(cfg.MetaPath)
	chosenClass := mutator.ValidateClass(cfg.Class, meta)
	mut := mutator.Choose(r)

	build := func(io engine.IO) *engine.Engine {
		return engine.New(engine.Config{
			World:   world,
			Quests:  script.Quests,
			Lore:    script.Lore,
			Mutator: mut,
			Class:   chosenClass,
			Meta:    meta,
			RNG:     r,
			IO:      io,
			OnMetaUpdate: func(m *types.Meta) {
				if err := save.WriteFile(cfg.MetaPath, m); err != nil {
					logger.Error("meta save failed", "path", cfg.MetaPath, "err", err)
				}
			},
		})
	}

	// Script mode: feed commands from a file through the plain CLI.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(logger)
		c.In = f
		c.EchoInput = true
		c.Run(build(c.IO()))
		return
	}

	useTUI := forceTUI || cfg.UI == "tui"
	if !useTUI && cfg.UI == "auto" {
		useTUI = !plain && isTerminal()
	}

	if !useTUI {
		c := cli.New(logger)
		c.Run(build(c.IO()))
		return
	}

	if err := tui.Run(build); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func nextArg(args []string, i *int, flag string) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n", flag)
		os.Exit(1)
	}
	*i++
	return args[*i]
}

func logLevel() slog.Level {
	if os.Getenv("DUNDORK_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
