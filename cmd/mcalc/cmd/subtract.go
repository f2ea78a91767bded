package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

func newSubtractCommand(opts *rootOptions) *cobra.Command {
	return newBinaryCommand(opts, calculator.OpSubtract,
		"Subtract the second number from the first",
		`Subtract <b> from <a>.

Examples:
  mcalc subtract 5 2

  # Negative operands go after --
  mcalc sub -- 0 -5`,
		"sub", "minus")
}
