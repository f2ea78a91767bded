package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

// newBinaryCommand builds a command that applies op to two operands.
func newBinaryCommand(opts *rootOptions, op calculator.Op, short, long string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     string(op) + " [--] <a> <b>",
		Aliases: aliases,
		Short:   short,
		Long:    long,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runBinary(cmd, op, args[0], args[1])
		},
	}
}

func (o *rootOptions) runBinary(cmd *cobra.Command, op calculator.Op, left, right string) error {
	a, err := calculator.ParseOperand(left, o.cfg.Mode)
	if err != nil {
		return fmt.Errorf("first operand: %w", err)
	}
	b, err := calculator.ParseOperand(right, o.cfg.Mode)
	if err != nil {
		return fmt.Errorf("second operand: %w", err)
	}

	expr := calculator.Expression{A: a, Op: op, B: b}
	value, err := o.calc().Eval(expr)
	if err != nil {
		return err
	}
	o.logger.Debug("evaluated", zap.Stringer("expr", expr), zap.Stringer("value", value))

	return o.printResult(cmd.OutOrStdout(), expr, value)
}
