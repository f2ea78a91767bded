// Package cmd implements the mcalc command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
	"github.com/mechmind-dwv/mcalc/internal/config"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Exit codes.
const (
	exitSuccess  = 0
	exitFailure  = 1
	exitInvalid  = 2
	exitOverflow = 3
)

// skipConfig is the annotation for commands that must run even when the
// config file cannot be loaded.
const skipConfig = "mcalc.skip-config"

// errUsage marks errors caused by malformed command lines.
var errUsage = errors.New("usage")

// rootOptions holds global flags and the state resolved from them.
type rootOptions struct {
	configPath string
	verbose    bool
	json       bool
	checked    bool
	mode       string
	noColor    bool

	cfg    config.Config
	logger *zap.Logger
}

// calc returns the calculator described by the effective config.
func (o *rootOptions) calc() calculator.Calculator {
	return calculator.Calculator{Checked: o.cfg.IsChecked()}
}

// jsonOutput reports whether results should be written as JSON.
func (o *rootOptions) jsonOutput() bool {
	return o.cfg.Format == config.FormatJSON
}

// render strips styling when color is disabled.
func (o *rootOptions) render(s string) string {
	if !o.cfg.UseColor() {
		return styles.Plain(s)
	}
	return s
}

// NewRootCommand creates the root command for the mcalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "mcalc",
		Short: "Integer and floating point arithmetic from the command line",
		Long: `mcalc adds, subtracts and multiplies numbers.

Operands are integers (decimal, 0x, 0o or 0b) or floats. Mixing an integer
and a float in one operation is an error rather than a silent conversion;
use --mode float to read every operand as a float.

Negative operands must follow "--" so they are not read as flags:
  mcalc subtract -- 0 -5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if numericShorthand(err) {
			return fmt.Errorf("%w: %v (negative operands go after \"--\": %s -- <a> <b>)", errUsage, err, c.CommandPath())
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $MCALC_CONFIG or <user config dir>/mcalc/config.json)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON")
	cmd.PersistentFlags().BoolVar(&opts.checked, "checked", false, "report overflow instead of wrapping")
	cmd.PersistentFlags().StringVar(&opts.mode, "mode", "", "operand parsing mode (auto|int|float)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable styled output")

	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newSubtractCommand(opts))
	cmd.AddCommand(newMultiplyCommand(opts))
	cmd.AddCommand(newEvalCommand(opts))
	cmd.AddCommand(newBatchCommand(opts))
	cmd.AddCommand(newReplCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// setup builds the logger, loads the config file and applies flag overrides.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if o.verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger

	path, err := o.resolveConfigPath()
	if err != nil {
		return err
	}
	o.configPath = path

	cfg := config.Default()
	if _, skip := cmd.Annotations[skipConfig]; skip {
		o.logger.Debug("config not loaded", zap.String("command", cmd.CommandPath()))
	} else {
		cfg, err = config.LoadOrDefault(path)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := calculator.ParseMode(o.mode)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		cfg.Mode = mode
	}
	if flags.Changed("checked") {
		checked := o.checked
		cfg.Checked = &checked
	}
	if flags.Changed("json") {
		cfg.Format = config.FormatText
		if o.json {
			cfg.Format = config.FormatJSON
		}
	}
	if flags.Changed("no-color") {
		color := !o.noColor
		cfg.Color = &color
	}
	o.cfg = cfg

	o.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.String("mode", string(cfg.Mode)),
		zap.Bool("checked", cfg.IsChecked()),
		zap.String("format", cfg.Format))
	return nil
}

func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string) int {
	return execute(NewRootCommand(), args, os.Stderr)
}

func execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, styles.RenderError("Error: "+err.Error()))
	return ExitCode(err)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, calculator.ErrOverflow):
		return exitOverflow
	case errors.Is(err, calculator.ErrInvalidOperand),
		errors.Is(err, calculator.ErrUnknownOperation),
		errors.Is(err, calculator.ErrInvalidExpression),
		errors.Is(err, errUsage):
		return exitInvalid
	default:
		return exitFailure
	}
}

// numericShorthand reports whether err is pflag rejecting a negative number
// such as "-5" as an unknown shorthand flag.
func numericShorthand(err error) bool {
	const prefix = "unknown shorthand flag: '"
	msg := err.Error()
	i := strings.Index(msg, prefix)
	if i < 0 || i+len(prefix) >= len(msg) {
		return false
	}
	c := msg[i+len(prefix)]
	return c >= '0' && c <= '9' || c == '.'
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
