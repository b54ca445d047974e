package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pproszowski/tagstrip"
	"github.com/pproszowski/tagstrip/batch"
	"github.com/pproszowski/tagstrip/goquery"
	tsslog "github.com/pproszowski/tagstrip/slog"
	"github.com/pproszowski/tagstrip/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run(). Overridden by the
	// --config flag.
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tagstrip"),
		kong.Description("Strip configured HTML tags from batches of HTML and text files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tagstrip --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Load configuration
	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := yaml.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set TAGSTRIP_CONFIG to use a different config path\n")
		return fmt.Errorf("failed to load config at %q: %w", configPath, err)
	}
	deps.Config = cfg

	// Per-file failures reach the user through progress output, so the
	// logger stays quiet unless --verbose is set.
	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var stripper tagstrip.Stripper = goquery.NewStripper()
	stripper = tsslog.NewLoggingStripper(stripper, logger)

	deps.Runner = &batch.Runner{
		Stripper:    stripper,
		Concurrency: cli.Strip.Concurrency,
		Logger:      logger,
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("TAGSTRIP_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tagstrip.yaml"
	}
	return filepath.Join(home, ".tagstrip.yaml")
}
