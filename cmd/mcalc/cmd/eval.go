package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

func newEvalCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single \"<a> <op> <b>\" expression",
		Long: `Evaluate a single expression of the form "<a> <op> <b>".

The operator is one of +, -, *, x or a name such as add, sub or mul.
The expression may be quoted as one argument or given as three.

Examples:
  mcalc eval "2 + 3"
  mcalc eval 6 x 7
  mcalc eval -- "-1 + -1"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: expression is required", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := calculator.ParseExpression(strings.Join(args, " "), opts.cfg.Mode)
			if err != nil {
				return err
			}
			value, err := opts.calc().Eval(expr)
			if err != nil {
				return err
			}
			return opts.printResult(cmd.OutOrStdout(), expr, value)
		},
	}
}
