package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	cfg    *Config
	log    *slog.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfgFile string
	verbose bool
}

func runCLI(args []string) error {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	root := newRootCmd(a)
	root.SetArgs(args[1:])
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "marble",
		Short: "Lexer, parser and tooling for the Marble scripting language",
		Long: `marble reads Marble source, reports syntax errors and prints the
canonical, fully parenthesized form of each program.

Without a subcommand it starts the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(a)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $MARBLE_CONFIG or ~/.config/marble/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newREPLCmd(a),
		newTokensCmd(a),
		newParseCmd(a),
		newFmtCmd(a),
		newAnalyzeCmd(a),
		newLSPCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := resolveConfig(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(a.errOut, cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.log = logger
	a.log.Debug("configuration loaded", "source", cfg.source, "repl_mode", cfg.REPL.Mode)
	return nil
}

// readSource returns the contents of the file named by args[0], or of
// standard input when no file (or "-") is given.
func (a *app) readSource(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return args[0], string(data), nil
}
