package batch

import (
	"go.uber.org/zap"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

// Result is the outcome of one job. Exactly one of Value and Err is set.
type Result struct {
	Index int
	Job   Job
	Expr  calculator.Expression
	Value *calculator.Operand
	Err   error
}

// Runner evaluates jobs with a fixed calculator and parsing mode.
type Runner struct {
	Calc   calculator.Calculator
	Mode   calculator.Mode
	Logger *zap.Logger
}

// Run evaluates every job. A failing job records its error and the
// remaining jobs still run.
func (r Runner) Run(jobs []Job) []Result {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		res := Result{Index: i, Job: job}
		expr, err := job.Expression(r.Mode)
		if err != nil {
			res.Err = err
		} else {
			res.Expr = expr
			v, err := r.Calc.Eval(expr)
			if err != nil {
				res.Err = err
			} else {
				res.Value = &v
			}
		}

		if res.Err != nil {
			logger.Debug("job failed", zap.Int("index", i), zap.Int("line", job.Line), zap.Error(res.Err))
		} else {
			logger.Debug("job evaluated", zap.Int("index", i), zap.Stringer("expr", res.Expr), zap.Stringer("value", res.Value))
		}
		results[i] = res
	}
	return results
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
