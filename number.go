package numbat

import (
	"math"

	"github.com/shopspring/decimal"
)

// Number is the numeric scalar used throughout the algebra: a magnitude
// with no unit attached. It wraps decimal.Decimal so that values parsed
// or summed from quantity expressions don't pick up binary floating
// point error before they ever touch a unit. Add, Sub and Mul are
// exact. Div rounds a quotient that does not terminate to
// decimal.DivisionPrecision (16) digits after the decimal point. Pow
// crosses through float64 because rational unit exponents are applied
// via a real-valued power, not a repeated-squaring integer one.
type Number struct {
	d decimal.Decimal
}

// NumberFromFloat64 builds a Number from a float64.
func NumberFromFloat64(f float64) Number {
	return Number{d: decimal.NewFromFloat(f)}
}

// NumberFromInt builds a Number from an integer.
func NumberFromInt(n int64) Number {
	return Number{d: decimal.NewFromInt(n)}
}

// Zero is the additive identity.
func Zero() Number { return Number{} }

// One is the multiplicative identity.
func One() Number { return NumberFromInt(1) }

// ToFloat64 converts the number to a float64, rounding if necessary.
func (n Number) ToFloat64() float64 {
	f, _ := n.d.Float64()
	return f
}

// Add returns n + other.
func (n Number) Add(other Number) Number {
	return Number{d: n.d.Add(other.d)}
}

// Sub returns n - other.
func (n Number) Sub(other Number) Number {
	return Number{d: n.d.Sub(other.d)}
}

// Mul returns n * other.
func (n Number) Mul(other Number) Number {
	return Number{d: n.d.Mul(other.d)}
}

// Div returns n / other, rounded to decimal.DivisionPrecision digits
// after the decimal point when the quotient does not terminate.
func (n Number) Div(other Number) Number {
	return Number{d: n.d.Div(other.d)}
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{d: n.d.Neg()}
}

// Pow raises n to a real-valued exponent. This is the sole lossy
// crossing point in the whole engine: rational unit exponents must be
// applied to a conversion factor, and there is no closed-form exact
// decimal power for a non-integer exponent, so we round-trip through
// float64.
func (n Number) Pow(exponent float64) Number {
	return NumberFromFloat64(math.Pow(n.ToFloat64(), exponent))
}

// IsZero reports whether n is exactly zero.
func (n Number) IsZero() bool {
	return n.d.IsZero()
}

// Equal reports whether n and other represent the same value.
func (n Number) Equal(other Number) bool {
	return n.d.Equal(other.d)
}

// String renders the number using its shortest exact decimal form.
func (n Number) String() string {
	return n.d.String()
}
