package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

func newMultiplyCommand(opts *rootOptions) *cobra.Command {
	return newBinaryCommand(opts, calculator.OpMultiply,
		"Multiply two numbers",
		`Multiply two numbers.

Examples:
  mcalc multiply 6 7
  mcalc mul --mode float 1.5 2`,
		"mul", "times")
}
