package numbat

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a free abelian product of (prefix, unit identifier) factors
// with rational exponents. The empty unit is the scalar ("dimensionless")
// unit.
type Unit = Product[UnitFactor]

// UnitFactor is one (prefix, unit identifier, exponent) term of a Unit.
// A factor with exponent zero is trivial and is dropped during
// canonicalization.
type UnitFactor struct {
	Prefix   Prefix
	UnitID   UnitIdentifier
	Exponent Rational
}

// MergeKey identifies factors sharing both prefix and unit identifier —
// the only case in which two factors combine by summing exponents.
func (f UnitFactor) MergeKey() string {
	return f.Prefix.mergeKey() + "|" + f.UnitID.mergeKeyString()
}

// Merge combines two factors with equal merge keys by summing their
// exponents.
func (f UnitFactor) Merge(other UnitFactor) UnitFactor {
	return UnitFactor{Prefix: f.Prefix, UnitID: f.UnitID, Exponent: f.Exponent.Add(other.Exponent)}
}

// IsTrivial reports whether this factor's exponent is zero.
func (f UnitFactor) IsTrivial() bool {
	return f.Exponent.IsZero()
}

// Less orders factors for canonical layout: first by the unit
// identifier's heuristic sort key (see UnitIdentifier.SortKey), then by
// prefix, then by exponent. Two factors with the same merge key share
// a sort key and prefix, but a Less-sort alone need not leave them
// adjacent: distinct identifiers with equal sort keys (e.g. Hz and Bq)
// are ordered by exponent and can interleave. Product.Canonicalized
// therefore sorts by merge key first, merges, and only then sorts by
// Less.
func (f UnitFactor) Less(other UnitFactor) bool {
	if c := compareSortKeys(f.UnitID.SortKey(), other.UnitID.SortKey()); c != 0 {
		return c < 0
	}
	if fk, ok := f.Prefix.mergeKey(), other.Prefix.mergeKey(); fk != ok {
		return fk < ok
	}
	return f.Exponent.Cmp(other.Exponent) < 0
}

// Equal reports whether two factors are identical in prefix, unit
// identifier, and exponent.
func (f UnitFactor) Equal(other UnitFactor) bool {
	return f.Prefix.Equal(other.Prefix) && f.UnitID.Equal(other.UnitID) && f.Exponent.Equal(other.Exponent)
}

// String renders a single factor as prefix symbol + canonical name +
// pretty exponent, e.g. "km²" or "s⁻¹".
func (f UnitFactor) String() string {
	return f.Prefix.ShortSymbol() + f.UnitID.CanonicalName + prettyExponent(f.Exponent)
}

// ScalarUnit is the dimensionless unit (the empty product).
func ScalarUnit() Unit {
	return UnityProduct[UnitFactor]()
}

// NewBaseUnit constructs a unit primitive for its own dimension, e.g.
// meter or second.
func NewBaseUnit(name, canonicalName string) Unit {
	id := UnitIdentifier{Name: name, CanonicalName: canonicalName, kind: unitKindBase}
	return FromFactor(UnitFactor{Prefix: None(), UnitID: id, Exponent: RationalFromInt(1)})
}

// NewDerivedUnit constructs a unit defined as factor * baseUnit, e.g.
// hour = 3600 * second. baseUnit must consist entirely of base-kind
// factors; violating this is a programmer error (the caller built a
// derived unit out of another derived unit directly instead of its
// base expansion) and panics rather than returning an error.
func NewDerivedUnit(name, canonicalName string, factor Number, baseUnit Unit) Unit {
	for _, f := range baseUnit.Canonicalized().Factors() {
		if !f.UnitID.IsBase() {
			panic(fmt.Sprintf("numbat: NewDerivedUnit(%q): base expression must consist only of base units, got %q", name, f.UnitID.Name))
		}
	}
	id := UnitIdentifier{
		Name: name, CanonicalName: canonicalName,
		kind: unitKindDerived, factor: factor, baseExpr: baseUnit,
	}
	return FromFactor(UnitFactor{Prefix: None(), UnitID: id, Exponent: RationalFromInt(1)})
}

// WithPrefix attaches prefix to a unit's leading factor. Precondition
// (checked, not recovered from): the unit has at least one factor, and
// that factor does not already carry a prefix. Both conditions are
// programmer errors, not runtime errors — calling WithPrefix twice on
// the same unit is a bug in the caller, not user input to validate.
func WithPrefix(u Unit, prefix Prefix) Unit {
	factors := u.Factors()
	if len(factors) == 0 {
		panic("numbat: WithPrefix: unit has no factors")
	}
	if !factors[0].Prefix.IsNone() {
		panic("numbat: WithPrefix: first factor already carries a prefix")
	}
	factors[0].Prefix = prefix
	return FromFactors(factors)
}

// Power scales every factor's exponent by e.
func Power(u Unit, e Rational) Unit {
	factors := u.Factors()
	out := make([]UnitFactor, len(factors))
	for i, f := range factors {
		out[i] = UnitFactor{Prefix: f.Prefix, UnitID: f.UnitID, Exponent: f.Exponent.Mul(e)}
	}
	return FromFactors(out)
}

// ToBaseUnitRepresentation reduces u to a canonical product of base
// units, plus the numeric factor relating one of u to one of that base
// product. The exponent is converted to float64 for the numeric power;
// this is the engine's sole lossy crossing point.
func ToBaseUnitRepresentation(u Unit) (Unit, Number) {
	baseRepr := ScalarUnit()
	factor := One()
	for _, f := range u.Factors() {
		baseRepr = baseRepr.Mul(Power(f.UnitID.CorrespondingBaseUnit(), f.Exponent))
		perFactor := f.Prefix.Factor().Mul(f.UnitID.conversionFactor())
		factor = factor.Mul(perFactor.Pow(f.Exponent.ToFloat64()))
	}
	return baseRepr.Canonicalized(), factor
}

// UnitString renders u as "num", "den", "num/den", or "num/(den)"
// depending on whether u has a positive-exponent group, a
// negative-exponent group, and whether that group has more than one
// factor. Joined with "·", divided with "/".
func UnitString(u Unit) string {
	factors := u.Canonicalized().Factors()

	var pos, negAsIs, negFlipped []UnitFactor
	for _, f := range factors {
		if f.Exponent.Sign() > 0 {
			pos = append(pos, f)
		} else {
			negAsIs = append(negAsIs, f)
			negFlipped = append(negFlipped, UnitFactor{Prefix: f.Prefix, UnitID: f.UnitID, Exponent: f.Exponent.Neg()})
		}
	}

	numStr := joinFactorStrings(pos)

	switch {
	case len(negAsIs) == 0:
		return numStr
	case numStr == "":
		return joinFactorStrings(negAsIs)
	case len(negFlipped) == 1:
		return numStr + "/" + joinFactorStrings(negFlipped)
	default:
		return numStr + "/(" + joinFactorStrings(negFlipped) + ")"
	}
}

func joinFactorStrings(fs []UnitFactor) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, "·")
}

var superscriptDigits = map[byte]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// prettyExponent renders an exponent the way a human writes it: empty
// for 1, a Unicode superscript for small integers (-5..=5), "^N" /
// "^(-N)" for larger integers, and "^(n/d)" for a genuine fraction.
func prettyExponent(r Rational) string {
	if !r.IsInteger() {
		return "^(" + r.String() + ")"
	}

	n := r.ToInt64()
	if n == 1 {
		return ""
	}
	if n >= -5 && n <= 5 {
		return superscriptInt(n)
	}
	if n < 0 {
		return fmt.Sprintf("^(%d)", n)
	}
	return fmt.Sprintf("^%d", n)
}

func superscriptInt(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteRune('⁻')
	}
	for i := 0; i < len(digits); i++ {
		b.WriteRune(superscriptDigits[digits[i]])
	}
	return b.String()
}
