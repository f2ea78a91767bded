package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/tui"
)

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Long: `Start an interactive prompt. Type "<a> <op> <b>" and press enter.

Keys: enter evaluates, ctrl+l clears the history, esc or ctrl+c quits.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.New(opts.calc(), opts.cfg.Mode, opts.cfg.UseColor()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
}
