package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

// record is the JSON shape of one evaluated operation.
type record struct {
	Op     calculator.Op       `json:"op,omitempty"`
	A      *calculator.Operand `json:"a,omitempty"`
	B      *calculator.Operand `json:"b,omitempty"`
	Result *calculator.Operand `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
	Line   int                 `json:"line,omitempty"`
}

func newRecord(expr calculator.Expression, value calculator.Operand) record {
	a, b := expr.A, expr.B
	return record{Op: expr.Op, A: &a, B: &b, Result: &value}
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// formatResult renders "a op b = result" with styling.
func formatResult(expr calculator.Expression, value calculator.Operand) string {
	return fmt.Sprintf("%s %s %s %s %s",
		styles.RenderDim(expr.A.String()),
		styles.RenderOp(expr.Op.Symbol()),
		styles.RenderDim(expr.B.String()),
		styles.RenderOp("="),
		styles.RenderResult(value.String()))
}

// printResult writes one evaluated expression in the configured format.
func (o *rootOptions) printResult(w io.Writer, expr calculator.Expression, value calculator.Operand) error {
	if o.jsonOutput() {
		return writeJSON(w, newRecord(expr, value))
	}
	_, err := fmt.Fprintln(w, o.render(formatResult(expr, value)))
	return err
}
