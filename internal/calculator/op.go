package calculator

import (
	"fmt"
	"strings"
)

// Op names an arithmetic operation.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
)

// Symbol returns the infix symbol for the operation.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	default:
		return "?"
	}
}

// ParseOp resolves an operation name or symbol.
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "add", "+", "plus":
		return OpAdd, nil
	case "subtract", "sub", "-", "minus":
		return OpSubtract, nil
	case "multiply", "mul", "*", "x", "times":
		return OpMultiply, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}
