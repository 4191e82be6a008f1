package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/db"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   __ _
  / _| |_ _ __  _ __   __ _ _ __   ___ _ __
 | |_| __| '_ \| '_ \ / _' | '_ \ / _ \ '__|
 |  _| |_| | | | |_) | (_| | |_) |  __/ |
 |_|  \__|_| |_| .__/ \__,_| .__/ \___|_|
               |_|         |_|

  Newsletter edition curator

  Usage: curator <command> [options]
         curator --help`)
}

// newLogger builds a development logger on stderr at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
		}
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func main() {
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before config and DB init
	if isHelpOrVersion() {
		app := newCLIApp(&deps{cfg: config.DefaultConfig(), log: zap.NewNop(), in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, config.DirName)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	d := &deps{cfg: cfg, log: logger, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}

	if !cfg.DisableHistory {
		database, err := db.Init(baseDir)
		if err != nil {
			// History is an audit trail; curation works without it.
			logger.Warn("history disabled: failed to initialize database", zap.Error(err))
		} else {
			db.ConfigurePool(database, cfg)
			defer database.Close()
			d.db = database
		}
	}

	app := newCLIApp(d)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
