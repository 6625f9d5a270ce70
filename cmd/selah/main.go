package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hpungsan/selah/internal/config"
	"github.com/hpungsan/selah/internal/db"
	"github.com/hpungsan/selah/internal/kv"
	"github.com/hpungsan/selah/internal/mcp"
	"github.com/hpungsan/selah/internal/notify"
	"github.com/hpungsan/selah/internal/ops"
	"github.com/hpungsan/selah/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"write": true, "fetch": true, "delete": true,
	"list": true, "search": true, "stats": true,
	"export": true, "import": true,
	"day": true, "calendar": true,
	"complete": true, "uncomplete": true, "progress": true,
	"remind": true, "serve": true,
	"help": true,
}

// deps bundles what the CLI and MCP front ends operate on.
type deps struct {
	env       *ops.Env
	scheduler *notify.Scheduler
	platform  *notify.LocalPlatform
	log       *zap.Logger
}

func newDeps(slot kv.Slot, cfg *config.Config, log *zap.Logger) *deps {
	env := ops.NewEnv(slot, store.New(slot, cfg.SlotKey, log), cfg)
	platform := notify.NewLocalPlatform(slot)
	opts := notify.PlanOptions{
		Year:   cfg.CalendarYear,
		Hour:   cfg.Hour(),
		Minute: cfg.Minute(),
	}
	return &deps{
		env:       env,
		scheduler: notify.NewScheduler(platform, env.Calendar, opts, log),
		platform:  platform,
		log:       log,
	}
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// splitVerbose removes every --verbose flag from args and reports whether
// one was present. It may appear before or after the subcommand.
func splitVerbose(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	verbose := false
	for _, a := range args {
		if a == "--verbose" {
			verbose = true
			continue
		}
		out = append(out, a)
	}
	return out, verbose
}

// newLogger builds a production logger on stderr; stdout belongs to the MCP
// transport and to CLI JSON output.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// baseDir returns $SELAH_HOME, or ~/.selah when unset.
func baseDir() (string, error) {
	if dir := os.Getenv("SELAH_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".selah"), nil
}

// warnUnknownDisabled logs disabled tool and type names that match nothing.
func warnUnknownDisabled(cfg *config.Config, log *zap.Logger) {
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	if unknown := mcp.ValidateDisabledTypes(cfg.DisabledTypes); len(unknown) > 0 {
		log.Warn("unknown types in disabled_types", zap.Strings("types", unknown))
	}
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ____       _       _
  / ___|  ___| | __ _| |__
  \___ \ / _ \ |/ _' | '_ \
   ___) |  __/ | (_| | | | |
  |____/ \___|_|\__,_|_| |_|

  30-day devotional journal

  Usage: selah <command> [options] [--verbose]
         selah --help

  MCP server mode requires piped input.`)
}

func main() {
	os.Exit(run())
}

func run() int {
	args, verbose := splitVerbose(os.Args)

	if len(args) < 2 && isTerminal() {
		printBanner()
		return 0
	}

	// Help and version need no storage.
	if isHelpOrVersion(args) {
		if err := newCLIApp(nil).Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	log, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	dir, err := baseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	database, err := db.Init(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		return 1
	}
	defer database.Close()

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		return 1
	}
	db.ConfigurePool(database, cfg)
	warnUnknownDisabled(cfg, log)

	slot, closeSlot, err := kv.Open(context.Background(), cfg, database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open storage: %v\n", err)
		return 1
	}
	defer func() { _ = closeSlot() }()

	log.Debug("storage ready", zap.String("backend", cfg.Storage), zap.String("base_dir", dir))
	d := newDeps(slot, cfg, log)

	if isCLIMode(args) {
		if err := newCLIApp(d).Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[1])
		fmt.Fprintf(os.Stderr, "Run 'selah --help' for usage.\n")
		return 1
	}

	if err := mcp.Run(d.env, d.scheduler, d.platform, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
