package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mechmind-dwv/mcalc/internal/batch"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

func newBatchCommand(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate a YAML or JSON file of operations",
		Long: `Evaluate every operation listed in a YAML or JSON file.

Each entry is either {op, a, b} or {expr}. A failing entry is reported
and the rest still run; the command fails if any entry failed.

Example file:
  jobs:
    - op: add
      a: 2
      b: 3
    - expr: "5 - 2"

With --watch the file is evaluated again every time it changes, until
interrupted.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return opts.watchBatch(ctx, cmd.OutOrStdout(), args[0])
			}
			return opts.runBatch(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run when the file changes")
	return cmd
}

func (o *rootOptions) runner() batch.Runner {
	return batch.Runner{Calc: o.calc(), Mode: o.cfg.Mode, Logger: o.logger}
}

// runBatch evaluates the file once and fails if any job failed.
func (o *rootOptions) runBatch(w io.Writer, path string) error {
	jobs, err := batch.Load(path)
	if err != nil {
		return err
	}
	results := o.runner().Run(jobs)
	if err := o.printBatch(w, results); err != nil {
		return err
	}
	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

// watchBatch evaluates the file now and on every change until ctx is done.
// Errors while evaluating are reported and watching continues.
func (o *rootOptions) watchBatch(ctx context.Context, w io.Writer, path string) error {
	watcher := batch.NewWatcher(path, o.logger)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer watcher.Stop()

	o.rerun(w, path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			o.logger.Debug("job file event", zap.Stringer("type", ev.Type), zap.String("path", ev.Path))
			if ev.Type == batch.Removed {
				fmt.Fprintln(w, o.render(styles.RenderDim(fmt.Sprintf("%s removed, waiting for it to come back", path))))
				continue
			}
			o.rerun(w, path)
		}
	}
}

func (o *rootOptions) rerun(w io.Writer, path string) {
	if err := o.runBatch(w, path); err != nil {
		o.logger.Debug("batch run failed", zap.Error(err))
		if !o.jsonOutput() {
			fmt.Fprintln(w, o.render(styles.RenderError(err.Error())))
		}
	}
}

func (o *rootOptions) printBatch(w io.Writer, results []batch.Result) error {
	for _, res := range results {
		if o.jsonOutput() {
			rec := record{Error: errString(res.Err), Line: res.Job.Line}
			if res.Err == nil {
				rec = newRecord(res.Expr, *res.Value)
				rec.Line = res.Job.Line
			}
			if err := writeJSON(w, rec); err != nil {
				return err
			}
			continue
		}

		var line string
		if res.Err != nil {
			line = fmt.Sprintf("%s %s", styles.RenderLabel(jobLabel(res)), styles.RenderError(res.Err.Error()))
		} else {
			line = fmt.Sprintf("%s %s", styles.RenderLabel(jobLabel(res)), formatResult(res.Expr, *res.Value))
		}
		if _, err := fmt.Fprintln(w, o.render(line)); err != nil {
			return err
		}
	}
	return nil
}

func jobLabel(res batch.Result) string {
	if res.Job.Line > 0 {
		return fmt.Sprintf("line %d:", res.Job.Line)
	}
	return fmt.Sprintf("#%d:", res.Index+1)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
