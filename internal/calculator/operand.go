package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the numeric representation of an Operand.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Mode controls how ParseOperand interprets numeric literals.
type Mode string

const (
	// ModeAuto parses integer literals as ints and everything else as floats.
	ModeAuto Mode = "auto"
	// ModeInt accepts integer literals only.
	ModeInt Mode = "int"
	// ModeFloat parses every literal as a float.
	ModeFloat Mode = "float"
)

// Modes lists the supported parsing modes.
var Modes = []Mode{ModeAuto, ModeInt, ModeFloat}

// ParseMode validates a mode name. An empty name means ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeInt:
		return ModeInt, nil
	case ModeFloat:
		return ModeFloat, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be one of %v", name, Modes)
}

// Operand is a numeric value whose kind is known at run time.
// The zero Operand is invalid.
type Operand struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer operand.
func Int(v int64) Operand {
	return Operand{kind: KindInt, i: v}
}

// Float returns a floating point operand.
func Float(v float64) Operand {
	return Operand{kind: KindFloat, f: v}
}

// Kind returns the operand's kind.
func (o Operand) Kind() Kind {
	return o.kind
}

// Int64 returns the integer value. It is zero for float operands.
func (o Operand) Int64() int64 {
	return o.i
}

// Float64 returns the operand as a float64, converting integers.
func (o Operand) Float64() float64 {
	if o.kind == KindInt {
		return float64(o.i)
	}
	return o.f
}

// IsValid reports whether o holds a finite number.
func (o Operand) IsValid() bool {
	switch o.kind {
	case KindInt:
		return true
	case KindFloat:
		return !math.IsNaN(o.f) && !math.IsInf(o.f, 0)
	default:
		return false
	}
}

func (o Operand) String() string {
	switch o.kind {
	case KindInt:
		return strconv.FormatInt(o.i, 10)
	case KindFloat:
		return strconv.FormatFloat(o.f, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes the operand as a JSON number.
func (o Operand) MarshalJSON() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: cannot encode %s operand", ErrInvalidOperand, o.kind)
	}
	return []byte(o.String()), nil
}

// ParseOperand parses a numeric literal according to mode.
// Integer literals are decimal or carry a 0x, 0o or 0b prefix, and may use
// underscores between digits.
func ParseOperand(s string, mode Mode) (Operand, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Operand{}, fmt.Errorf("%w: empty value", ErrInvalidOperand)
	}

	switch mode {
	case ModeAuto, "":
		v, err := parseInt(text)
		if err == nil {
			return Int(v), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return Operand{}, fmt.Errorf("%w: %q does not fit in int64", ErrOverflow, text)
		}
		return parseFloat(text)
	case ModeInt:
		v, err := parseInt(text)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Operand{}, fmt.Errorf("%w: %q does not fit in int64", ErrOverflow, text)
			}
			return Operand{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidOperand, text)
		}
		return Int(v), nil
	case ModeFloat:
		return parseFloat(text)
	default:
		return Operand{}, fmt.Errorf("invalid mode %q", mode)
	}
}

// parseInt accepts Go integer syntax, digit separators included, except
// that a leading zero never selects octal: "08" is eight.
func parseInt(text string) (int64, error) {
	sign, digits := "", text
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		sign, digits = digits[:1], digits[1:]
	}
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return strconv.ParseInt(text, 0, 64)
		}
	}
	for len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		digits = digits[1:]
	}
	return strconv.ParseInt(sign+digits, 0, 64)
}

func parseFloat(text string) (Operand, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return Operand{}, fmt.Errorf("%w: %q is not a number", ErrInvalidOperand, text)
		}
		if math.IsInf(v, 0) {
			return Operand{}, fmt.Errorf("%w: %q does not fit in float64", ErrOverflow, text)
		}
		// underflow rounds to the nearest representable value
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Operand{}, fmt.Errorf("%w: %q is not a finite number", ErrInvalidOperand, text)
	}
	return Float(v), nil
}
