package numbat

import "math/big"

type unitKind int8

const (
	unitKindBase unitKind = iota
	unitKindDerived
)

// UnitIdentifier is the nominal identity of a unit: a name, a canonical
// display symbol, and either "base" (primitive for its dimension) or
// "derived" (a conversion factor and a base-unit expression). It is
// immutable once built; equality is structural, not by name alone.
//
// There is no public constructor here: identifiers only ever come into
// being as part of building a Unit (see NewBaseUnit /
// NewDerivedUnit), which is where the "derived units are made of
// base factors only" invariant is enforced.
type UnitIdentifier struct {
	Name          string
	CanonicalName string
	kind          unitKind
	factor        Number
	baseExpr      Product[UnitFactor]
}

// IsBase reports whether this identifier names a primitive unit.
func (u UnitIdentifier) IsBase() bool { return u.kind == unitKindBase }

// CorrespondingBaseUnit returns the base-unit expression this
// identifier reduces to: itself (as a singleton) if it is already a
// base unit, or its stored base expression if derived.
func (u UnitIdentifier) CorrespondingBaseUnit() Unit {
	if u.kind == unitKindBase {
		return FromFactor(UnitFactor{
			Prefix:   None(),
			UnitID:   u,
			Exponent: RationalFromInt(1),
		})
	}
	return u.baseExpr
}

// conversionFactor is the multiplier relating one of this identifier to
// its corresponding base unit (1 for base units).
func (u UnitIdentifier) conversionFactor() Number {
	if u.kind == unitKindDerived {
		return u.factor
	}
	return One()
}

// leadingBaseExponent returns the exponent of this identifier's first
// base factor in its own base expansion, unnormalized; 1 for a base
// identifier. FullSimplify weights each group member by this value,
// and it must NOT go through SortKey's sign normalization: that
// normalization only governs grouping/ordering, and flipping the sign
// here would silently zero out groups like Hz/s (Hz's raw first base
// factor is s^-1, not the sort-key-normalized s^1).
func (u UnitIdentifier) leadingBaseExponent() Rational {
	if u.kind == unitKindBase {
		return RationalFromInt(1)
	}
	factors := u.baseExpr.Canonicalized().Factors()
	if len(factors) == 0 {
		return RationalFromInt(1)
	}
	return factors[0].Exponent
}

// sortKeyTerm is one (base unit name, exponent) pair in a sort key.
type sortKeyTerm struct {
	Name string
	Exp  Rational
}

// SortKey returns the heuristic grouping/ordering key: base units sort
// by their own name; derived units sort by the (sign-normalized,
// gcd-reduced) exponents of their expansion into base units. This is
// deliberately not a sound "physical dimension" comparator, just a
// bucketing good enough for canonical layout and simplification.
func (u UnitIdentifier) SortKey() []sortKeyTerm {
	if u.kind == unitKindBase {
		return []sortKeyTerm{{Name: u.Name, Exp: RationalFromInt(1)}}
	}

	var key []sortKeyTerm
	for _, f := range u.baseExpr.Canonicalized().Factors() {
		term := f.UnitID.SortKey()[0]
		term.Exp = f.Exponent
		key = append(key, term)
	}
	if len(key) == 0 {
		return key
	}

	// Normalize the sign so e.g. 's' and 'Hz' (=s^-1) share a key.
	if key[0].Exp.Sign() < 0 {
		for i := range key {
			key[i].Exp = key[i].Exp.Neg()
		}
	}

	// Scale every exponent by the product of all denominators, making
	// them integers, then divide out their gcd. This is what lets
	// g·m² and g²·m⁴ merge, but not g·m² and g·m³.
	factor := big.NewInt(1)
	for _, term := range key {
		factor.Mul(factor, term.Exp.Denom())
	}
	scaleFactor := rationalFromBigInt(factor)
	for i := range key {
		key[i].Exp = key[i].Exp.Mul(scaleFactor)
	}

	commonDivisor := new(big.Int).Set(key[0].Exp.Num())
	for _, term := range key[1:] {
		commonDivisor.GCD(nil, nil, commonDivisor, term.Exp.Num())
	}
	if commonDivisor.Sign() != 0 {
		divisor := rationalFromBigInt(commonDivisor)
		for i := range key {
			key[i].Exp = key[i].Exp.Quo(divisor)
		}
	}

	return key
}

// Equal reports structural equality between two identifiers.
func (u UnitIdentifier) Equal(other UnitIdentifier) bool {
	if u.Name != other.Name || u.CanonicalName != other.CanonicalName || u.kind != other.kind {
		return false
	}
	if u.kind == unitKindDerived {
		return u.factor.Equal(other.factor) && u.baseExpr.Equal(other.baseExpr)
	}
	return true
}

// mergeKeyString identifies this identifier for Product canonicalization.
func (u UnitIdentifier) mergeKeyString() string {
	return u.Name + "\x00" + u.CanonicalName
}

func rationalFromBigInt(n *big.Int) Rational {
	var r Rational
	r.val.SetInt(n)
	return r
}

// compareSortKeys gives the total order SortKey results are put in,
// lexicographically over (name, exponent) pairs.
func compareSortKeys(a, b []sortKeyTerm) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Name != b[i].Name {
			if a[i].Name < b[i].Name {
				return -1
			}
			return 1
		}
		if c := a[i].Exp.Cmp(b[i].Exp); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
