package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hpungsan/concierge/internal/config"
	"github.com/hpungsan/concierge/internal/logger"
	"github.com/hpungsan/concierge/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"chat": true, "flights": true, "ask": true, "forecast": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

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
    ___ ___  _ __   ___(_) ___ _ __ __ _  ___
   / __/ _ \| '_ \ / __| |/ _ \ '__/ _' |/ _ \
  | (_| (_) | | | | (__| |  __/ | | (_| |  __/
   \___\___/|_| |_|\___|_|\___|_|  \__, |\___|
                                   |___/
  Flight desk and coffee sales assistant

  Usage: concierge <command> [options]
         concierge --help

  MCP server mode requires piped input.`)
}

// loadConfig reads ~/.concierge/config.json, the nearest repo .concierge/config.json,
// a .env file and CONCIERGE_* variables, in increasing precedence.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithRepo(filepath.Join(homeDir, config.DirName), cwd)
	if err != nil {
		return nil, err
	}
	return config.ApplyEnv(cfg)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	d := newDeps(cfg, log)

	if isCLIMode() {
		app := newCLIApp(d)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'concierge --help' for usage.\n")
		os.Exit(1)
	}

	log.Debug("starting MCP server", zap.String("version", Version))
	if err := mcp.Run(d.bot, d.source, cfg, Version, log); err != nil {
		log.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
