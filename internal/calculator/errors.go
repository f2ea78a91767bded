package calculator

import "errors"

var (
	// ErrInvalidOperand reports a non-numeric operand or a pair of
	// operands of different numeric kinds.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrOverflow reports a result outside the range of the operand type.
	ErrOverflow = errors.New("overflow")

	// ErrUnknownOperation reports an operation name ParseOp does not know.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidExpression reports an expression that is not "<a> <op> <b>".
	ErrInvalidExpression = errors.New("invalid expression")
)
