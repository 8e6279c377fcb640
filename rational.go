package numbat

import "math/big"

// Rational is an exact ratio of integers, used as a unit factor's
// exponent so that canonicalization (merging, sort-key gcd reduction)
// never accumulates floating point error. The zero value is the
// rational zero, which by convention means "this factor is absent".
type Rational struct {
	val big.Rat
}

// RationalFromInt builds an exact integer rational.
func RationalFromInt(n int64) Rational {
	var r Rational
	r.val.SetInt64(n)
	return r
}

// RationalFromInts builds num/den, reduced to lowest terms.
func RationalFromInts(num, den int64) Rational {
	var r Rational
	r.val.SetFrac64(num, den)
	return r
}

// RationalFromFloat64 attempts to represent f exactly as a ratio of
// integers. It fails (ok == false) for NaN and Inf; every finite
// float64 otherwise has an exact (if sometimes unwieldy) rational
// representation, so this alone cannot detect "not a nice fraction" —
// callers that need a small-denominator rational (e.g. Quantity.Power)
// must additionally check the result against a tolerance.
func RationalFromFloat64(f float64) (Rational, bool) {
	var r Rational
	ok := r.val.SetFloat64(f) != nil
	return r, ok
}

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	var out Rational
	out.val.Add(&r.val, &other.val)
	return out
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	var out Rational
	out.val.Sub(&r.val, &other.val)
	return out
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	var out Rational
	out.val.Mul(&r.val, &other.val)
	return out
}

// Quo returns r / other.
func (r Rational) Quo(other Rational) Rational {
	var out Rational
	out.val.Quo(&r.val, &other.val)
	return out
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	var out Rational
	out.val.Neg(&r.val)
	return out
}

// Cmp compares r and other: -1, 0, or 1.
func (r Rational) Cmp(other Rational) int {
	return r.val.Cmp(&other.val)
}

// Sign returns -1, 0, or 1 according to the sign of r.
func (r Rational) Sign() int {
	return r.val.Sign()
}

// IsZero reports whether r is the rational zero.
func (r Rational) IsZero() bool {
	return r.val.Sign() == 0
}

// IsInteger reports whether r has a denominator of 1.
func (r Rational) IsInteger() bool {
	return r.val.IsInt()
}

// Num returns the numerator in lowest terms.
func (r Rational) Num() *big.Int {
	return r.val.Num()
}

// Denom returns the denominator in lowest terms (always positive).
func (r Rational) Denom() *big.Int {
	return r.val.Denom()
}

// ToInt64 returns the value as an int64, truncating any fractional part.
func (r Rational) ToInt64() int64 {
	n := new(big.Int).Quo(r.val.Num(), r.val.Denom())
	return n.Int64()
}

// ToFloat64 converts r to the nearest float64.
func (r Rational) ToFloat64() float64 {
	f, _ := r.val.Float64()
	return f
}

// Equal reports whether r and other are the same rational number.
func (r Rational) Equal(other Rational) bool {
	return r.val.Cmp(&other.val) == 0
}

// String renders r as "n" or "n/d".
func (r Rational) String() string {
	return r.val.RatString()
}
