// Package number implements the typed numeric value model: C-like
// promotion, coercion, and the arithmetic/relational/logical operator set.
package number

import (
	"fmt"
	"math"
)

// Type is the Number's C type tag.
type Type int

const (
	Int Type = iota
	Float
	Double
	Char
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	case Char:
		return "char"
	default:
		return "?"
	}
}

// Number is a typed numeric value. Int and Char hold whole numbers in
// IntVal; Float and Double hold FloatVal.
type Number struct {
	Type     Type
	IntVal   int64
	FloatVal float64
}

// NewInt builds an int Number.
func NewInt(v int64) Number { return Number{Type: Int, IntVal: v} }

// NewChar builds a char Number holding an 8-bit code point.
func NewChar(v byte) Number { return Number{Type: Char, IntVal: int64(v)} }

// NewFloat builds a float Number.
func NewFloat(v float64) Number { return Number{Type: Float, FloatVal: v} }

// NewDouble builds a double Number.
func NewDouble(v float64) Number { return Number{Type: Double, FloatVal: v} }

// IsFloating reports whether n holds a float/double.
func (n Number) IsFloating() bool { return n.Type == Float || n.Type == Double }

// AsFloat64 returns n's value widened to float64, regardless of Type.
func (n Number) AsFloat64() float64 {
	if n.IsFloating() {
		return n.FloatVal
	}
	return float64(n.IntVal)
}

// AsInt64 returns n's value narrowed to an integer, truncating toward
// zero if n is floating.
func (n Number) AsInt64() int64 {
	if n.IsFloating() {
		return int64(n.FloatVal)
	}
	return n.IntVal
}

// Truthy reports whether n is considered true in a C condition (nonzero).
func (n Number) Truthy() bool {
	if n.IsFloating() {
		return n.FloatVal != 0
	}
	return n.IntVal != 0
}

// String renders n as a decimal integer for int and char, and in %g form
// for float and double.
func (n Number) String() string {
	switch n.Type {
	case Int, Char:
		return fmt.Sprintf("%d", n.IntVal)
	default:
		return fmt.Sprintf("%g", n.FloatVal)
	}
}

// promote computes the result type of a binary arithmetic/bitwise operator
// applied to a and b, per C's usual-arithmetic-conversion ladder: any
// double wins, else any float wins, else int (char participates as int).
func promote(a, b Type) Type {
	if a == Double || b == Double {
		return Double
	}
	if a == Float || b == Float {
		return Float
	}
	return Int
}

func fromPromoted(t Type, i int64, f float64) Number {
	switch t {
	case Double:
		return NewDouble(f)
	case Float:
		return NewFloat(f)
	default:
		return NewInt(i)
	}
}

// Error reports an operator applied to incompatible types, or an integer
// division or modulo by zero.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Add, Sub, Mul implement the commutative/own-inverse arithmetic operators.
func Add(a, b Number) Number { return arith(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }) }
func Sub(a, b Number) Number { return arith(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }) }
func Mul(a, b Number) Number { return arith(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }) }

func arith(a, b Number, iop func(int64, int64) int64, fop func(float64, float64) float64) Number {
	t := promote(a.Type, b.Type)
	if t == Int {
		return fromPromoted(t, iop(a.AsInt64(), b.AsInt64()), 0)
	}
	return fromPromoted(t, 0, fop(a.AsFloat64(), b.AsFloat64()))
}

// Div implements `/`: truncating toward zero when both operands are
// integer; floating division otherwise. Integer division by zero returns
// an *Error, which the evaluator reports as a RuntimeError.
func Div(a, b Number) (Number, error) {
	t := promote(a.Type, b.Type)
	if t == Int {
		bv := b.AsInt64()
		if bv == 0 {
			return Number{}, &Error{Message: "division by zero"}
		}
		return NewInt(a.AsInt64() / bv), nil
	}
	return fromPromoted(t, 0, a.AsFloat64()/b.AsFloat64()), nil
}

// Mod implements `%`, defined only for integer operands.
func Mod(a, b Number) (Number, error) {
	if a.IsFloating() || b.IsFloating() {
		return Number{}, &Error{Message: fmt.Sprintf("'%%' requires integer operands, got %s and %s", a.Type, b.Type)}
	}
	bv := b.AsInt64()
	if bv == 0 {
		return Number{}, &Error{Message: "modulo by zero"}
	}
	return NewInt(a.AsInt64() % bv), nil
}

func requireIntegers(op string, a, b Number) error {
	if a.IsFloating() || b.IsFloating() {
		return &Error{Message: fmt.Sprintf("'%s' requires integer operands, got %s and %s", op, a.Type, b.Type)}
	}
	return nil
}

// BitOr, BitXor, BitAnd, Shl, Shr implement the integer-only bitwise family.
func BitOr(a, b Number) (Number, error) {
	if err := requireIntegers("|", a, b); err != nil {
		return Number{}, err
	}
	return NewInt(a.AsInt64() | b.AsInt64()), nil
}

func BitXor(a, b Number) (Number, error) {
	if err := requireIntegers("^", a, b); err != nil {
		return Number{}, err
	}
	return NewInt(a.AsInt64() ^ b.AsInt64()), nil
}

func BitAnd(a, b Number) (Number, error) {
	if err := requireIntegers("&", a, b); err != nil {
		return Number{}, err
	}
	return NewInt(a.AsInt64() & b.AsInt64()), nil
}

func Shl(a, b Number) (Number, error) {
	if err := requireIntegers("<<", a, b); err != nil {
		return Number{}, err
	}
	return NewInt(a.AsInt64() << uint64(b.AsInt64())), nil
}

func Shr(a, b Number) (Number, error) {
	if err := requireIntegers(">>", a, b); err != nil {
		return Number{}, err
	}
	return NewInt(a.AsInt64() >> uint64(b.AsInt64())), nil
}

// boolNumber renders a Go bool as the int 0/1 Number every relational and
// equality comparison, and logical negation, produce.
func boolNumber(b bool) Number {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

func Lt(a, b Number) Number { return boolNumber(cmp(a, b) < 0) }
func Gt(a, b Number) Number { return boolNumber(cmp(a, b) > 0) }
func Le(a, b Number) Number { return boolNumber(cmp(a, b) <= 0) }
func Ge(a, b Number) Number { return boolNumber(cmp(a, b) >= 0) }
func Eq(a, b Number) Number { return boolNumber(cmp(a, b) == 0) }
func Ne(a, b Number) Number { return boolNumber(cmp(a, b) != 0) }

func cmp(a, b Number) int {
	t := promote(a.Type, b.Type)
	if t == Int {
		x, y := a.AsInt64(), b.AsInt64()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	x, y := a.AsFloat64(), b.AsFloat64()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Neg implements unary `-`, preserving type.
func Neg(a Number) Number {
	if a.IsFloating() {
		return fromPromoted(a.Type, 0, -a.FloatVal)
	}
	return Cast(a.Type, NewInt(-a.IntVal))
}

// Not implements unary logical `!`, producing int 0/1.
func Not(a Number) Number { return boolNumber(!a.Truthy()) }

// Cast coerces n to the named target type, truncating to integer where
// applicable and wrapping to 8-bit unsigned when the target is char.
func Cast(target Type, n Number) Number {
	switch target {
	case Char:
		return NewChar(byte(n.AsInt64()))
	case Int:
		return NewInt(n.AsInt64())
	case Float:
		return NewFloat(n.AsFloat64())
	case Double:
		return NewDouble(n.AsFloat64())
	default:
		return n
	}
}

// TypeFromName maps a C type keyword spelling to its Type tag.
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "double":
		return Double, true
	case "char":
		return Char, true
	default:
		return 0, false
	}
}

// Inc/Dec are one-operand helpers for the `++`/`--` operators: Add/Sub
// with a Number(1) operand, cast back to n's type (a char wraps to 8 bits).
func Inc(n Number) Number { return Cast(n.Type, Add(n, unitFor(n.Type))) }
func Dec(n Number) Number { return Cast(n.Type, Sub(n, unitFor(n.Type))) }

func unitFor(t Type) Number {
	if t == Float || t == Double {
		return fromPromoted(t, 0, 1)
	}
	return NewInt(1)
}

// ZeroValue returns the zero-initialized Number for a declared type, used
// when a function falls off its closing brace without an explicit return.
func ZeroValue(t Type) Number {
	if t == Float || t == Double {
		return fromPromoted(t, 0, 0)
	}
	return Cast(t, NewInt(0))
}

// Abs, Floor, Ceil, Sqrt, Pow back the math.h builtins. Abs keeps n's type;
// Floor, Ceil, Sqrt and Pow compute on the float64 widening and always
// return a double.
func Abs(n Number) Number {
	if n.IsFloating() {
		return fromPromoted(n.Type, 0, math.Abs(n.FloatVal))
	}
	v := n.IntVal
	if v < 0 {
		v = -v
	}
	return NewInt(v)
}

func Floor(n Number) Number { return NewDouble(math.Floor(n.AsFloat64())) }
func Ceil(n Number) Number  { return NewDouble(math.Ceil(n.AsFloat64())) }
func Sqrt(n Number) Number  { return NewDouble(math.Sqrt(n.AsFloat64())) }
func Pow(a, b Number) Number { return NewDouble(math.Pow(a.AsFloat64(), b.AsFloat64())) }
