package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/maze-bfs/audio"
	"github.com/lixenwraith/maze-bfs/config"
	"github.com/lixenwraith/maze-bfs/engine"
	"github.com/lixenwraith/maze-bfs/maze"
	"github.com/lixenwraith/maze-bfs/render"
)

// cliFlags holds parsed command-line values; set records which flags were given explicitly
type cliFlags struct {
	configPath string
	mazePath   string
	delay      time.Duration
	strategy   string
	cellWidth  int
	audio      bool
	debug      bool
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var fl cliFlags
	fs := flag.NewFlagSet("maze-bfs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fl.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&fl.mazePath, "maze", "", "Maze file (.txt or .toml); built-in maze when empty")
	fs.DurationVar(&fl.delay, "delay", render.DefaultDelay, "Pause between search steps")
	fs.StringVar(&fl.strategy, "strategy", engine.FullPath.String(), "Path storage: fullpath | parent")
	fs.IntVar(&fl.cellWidth, "cell-width", render.DefaultCellWidth, "Terminal columns per maze cell")
	fs.BoolVar(&fl.audio, "audio", false, "Play tone cues")
	fs.BoolVar(&fl.debug, "debug", false, "Write debug log to logs/maze-bfs.log")

	if err := fs.Parse(args); err != nil {
		return fl, err
	}
	if fs.NArg() > 0 {
		return fl, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fl.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { fl.set[f.Name] = true })
	return fl, nil
}

// loadConfig layers defaults, the config file, the environment and explicit flags, in that order
func loadConfig(fl cliFlags, lookup config.LookupFunc) (config.Config, error) {
	cfg := config.Default()
	if fl.configPath != "" {
		var err error
		if cfg, err = config.Load(fl.configPath); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if fl.set["maze"] {
		cfg.Maze = fl.mazePath
	}
	if fl.set["delay"] {
		cfg.Render.Delay = fl.delay
	}
	if fl.set["strategy"] {
		cfg.Strategy = fl.strategy
	}
	if fl.set["cell-width"] {
		cfg.Render.CellWidth = fl.cellWidth
	}
	if fl.set["audio"] {
		cfg.Audio.Enabled = fl.audio
	}
	if fl.set["debug"] {
		cfg.Debug = fl.debug
	}

	return cfg, cfg.Validate()
}

func loadGrid(path string) (*maze.Grid, error) {
	if path == "" {
		return maze.Default(), nil
	}
	return maze.LoadFile(path)
}

var errCrashed = errors.New("crashed")

// recoverCrash turns a panic into an error carrying the stack trace
// It must be deferred directly
func recoverCrash(errp *error) {
	if r := recover(); r != nil {
		log.Error().Interface("panic", r).Msg("crashed")
		*errp = fmt.Errorf("%w: %v\nStack Trace:\n%s", errCrashed, r, debug.Stack())
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errCrashed) {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZE-BFS %v\x1b[0m\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "maze-bfs: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	fl, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	lookup, err := config.EnvLookup(".env")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(fl, lookup)
	if err != nil {
		return err
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	// Malformed mazes are fatal before the terminal is touched
	grid, err := loadGrid(cfg.Maze)
	if err != nil {
		return err
	}
	strategy, err := cfg.EngineStrategy()
	if err != nil {
		return err
	}
	theme, err := cfg.Theme()
	if err != nil {
		return err
	}

	log.Info().
		Str("maze", cfg.Maze).
		Int("rows", grid.Height()).
		Int("cols", grid.Width()).
		Stringer("strategy", strategy).
		Dur("delay", cfg.Render.Delay).
		Bool("audio", cfg.Audio.Enabled).
		Msg("starting")

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer screen.Fini()

	// Panic Recovery: later defers still run, then the screen is restored before main reports
	defer recoverCrash(&err)

	term := render.NewTerminal(screen,
		render.WithTheme(theme),
		render.WithCellWidth(cfg.Render.CellWidth),
		render.WithDelay(cfg.Render.Delay),
	)
	defer term.Close()
	renderers := engine.MultiRenderer{term}

	if cfg.Audio.Enabled {
		player := audio.NewSpeakerPlayer()
		if err := player.Initialize(); err != nil {
			// Non-fatal, the search runs silently
			log.Warn().Err(err).Msg("audio initialization failed")
		} else {
			defer player.Cleanup()
			renderers = append(renderers, audio.NewCues(player,
				audio.WithVolume(cfg.Audio.Volume),
				audio.WithTicks(cfg.Audio.Ticks),
			))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searchCtx, stopWatch := term.WatchQuit(ctx)
	res, err := engine.Search(searchCtx, grid,
		engine.WithRenderer(renderers),
		engine.WithStrategy(strategy),
		engine.WithLogger(log.With().Str("component", "engine").Logger()),
	)
	stopWatch()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Int("steps", res.Steps).Msg("search interrupted")
			return nil
		}
		return err
	}

	if err := renderers.Finish(ctx, grid, res); err != nil {
		return err
	}

	if err := term.WaitDismiss(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
