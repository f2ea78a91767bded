package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	return newBinaryCommand(opts, calculator.OpAdd,
		"Add two numbers",
		`Add two numbers.

Examples:
  # Integers
  mcalc add 2 3

  # Floats, as JSON
  mcalc add 0.5 0.25 --json

  # Fail instead of wrapping around
  mcalc add --checked 9223372036854775807 1`,
		"plus")
}
