package calculator

import (
	"fmt"
	"math"
	"strings"
)

// Calculator applies operations to run-time typed operands.
// The zero value wraps on integer overflow.
type Calculator struct {
	// Checked reports overflow as ErrOverflow instead of wrapping.
	Checked bool
}

// Apply evaluates op on a and b. Both operands must be valid and of the
// same kind; mixed int/float input is rejected rather than converted.
func (c Calculator) Apply(op Op, a, b Operand) (Operand, error) {
	if !a.IsValid() {
		return Operand{}, fmt.Errorf("%w: left operand %s", ErrInvalidOperand, a)
	}
	if !b.IsValid() {
		return Operand{}, fmt.Errorf("%w: right operand %s", ErrInvalidOperand, b)
	}
	if a.kind != b.kind {
		return Operand{}, fmt.Errorf("%w: cannot combine %s and %s operands", ErrInvalidOperand, a.kind, b.kind)
	}

	if a.kind == KindInt {
		return c.applyInt(op, a.i, b.i)
	}
	return c.applyFloat(op, a.f, b.f)
}

func (c Calculator) applyInt(op Op, a, b int64) (Operand, error) {
	if c.Checked {
		var (
			v   int64
			err error
		)
		switch op {
		case OpAdd:
			v, err = AddInt64(a, b)
		case OpSubtract:
			v, err = SubtractInt64(a, b)
		case OpMultiply:
			v, err = MultiplyInt64(a, b)
		default:
			return Operand{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
		}
		if err != nil {
			return Operand{}, err
		}
		return Int(v), nil
	}

	switch op {
	case OpAdd:
		return Int(Add(a, b)), nil
	case OpSubtract:
		return Int(Subtract(a, b)), nil
	case OpMultiply:
		return Int(Multiply(a, b)), nil
	}
	return Operand{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

func (c Calculator) applyFloat(op Op, a, b float64) (Operand, error) {
	var v float64
	switch op {
	case OpAdd:
		v = Add(a, b)
	case OpSubtract:
		v = Subtract(a, b)
	case OpMultiply:
		v = Multiply(a, b)
	default:
		return Operand{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if c.Checked && (math.IsInf(v, 0) || math.IsNaN(v)) {
		return Operand{}, fmt.Errorf("%w: %g %s %g", ErrOverflow, a, op.Symbol(), b)
	}
	return Float(v), nil
}

// Expression is a single binary operation.
type Expression struct {
	A  Operand
	Op Op
	B  Operand
}

func (e Expression) String() string {
	return fmt.Sprintf("%s %s %s", e.A, e.Op.Symbol(), e.B)
}

// ParseExpression parses "<a> <op> <b>" where the three parts are
// separated by whitespace and op is anything ParseOp accepts.
func ParseExpression(s string, mode Mode) (Expression, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Expression{}, fmt.Errorf("%w: expected \"<a> <op> <b>\", got %q", ErrInvalidExpression, strings.TrimSpace(s))
	}

	op, err := ParseOp(fields[1])
	if err != nil {
		return Expression{}, err
	}
	a, err := ParseOperand(fields[0], mode)
	if err != nil {
		return Expression{}, err
	}
	b, err := ParseOperand(fields[2], mode)
	if err != nil {
		return Expression{}, err
	}
	return Expression{A: a, Op: op, B: b}, nil
}

// Eval applies the expression's operation to its operands.
func (c Calculator) Eval(e Expression) (Operand, error) {
	return c.Apply(e.Op, e.A, e.B)
}
