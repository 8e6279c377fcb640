package numbat

import "math"

// Quantity pairs a numeric value with a unit: the sole user-facing
// value type of the algebra. Immutable; every operation below returns
// a new Quantity.
type Quantity struct {
	value Number
	unit  Unit
}

// NewQuantity builds a quantity from an exact Number and a unit.
func NewQuantity(value Number, unit Unit) Quantity {
	return Quantity{value: value, unit: unit}
}

// NewQuantityFromFloat builds a quantity from a float64 and a unit.
func NewQuantityFromFloat(value float64, unit Unit) Quantity {
	return Quantity{value: NumberFromFloat64(value), unit: unit}
}

// Value returns the quantity's numeric value.
func (q Quantity) Value() Number { return q.value }

// Unit returns the quantity's unit.
func (q Quantity) Unit() Unit { return q.unit }

// String renders "value unit", except the unit symbol "°", for which
// the separating space is suppressed (so an angle prints "90°", not
// "90 °").
func (q Quantity) String() string {
	symbol := UnitString(q.unit)
	if symbol == "" {
		return q.value.String()
	}
	if symbol == "°" {
		return q.value.String() + symbol
	}
	return q.value.String() + " " + symbol
}

// ConvertTo re-expresses q in target, applying the common-factor
// cancellation described for convert_to: factors that appear in both
// q.Unit() and target with exponents of the same sign are trimmed down
// to their shared magnitude before either side is reduced to base
// units. Because the trimmed-off portion is, by construction,
// identical on both sides, it contributes the same multiplier to both
// base reductions and cancels in their ratio — so the reduced units
// alone determine the result; no separate accounting for the common
// portion's own conversion factor is needed.
func (q Quantity) ConvertTo(target Unit) (Quantity, error) {
	if q.unit.Equal(target) || q.value.IsZero() {
		return Quantity{value: q.value, unit: target}, nil
	}

	selfReduced, targetReduced := cancelCommonFactors(q.unit, target)

	selfBase, kSelf := ToBaseUnitRepresentation(selfReduced)
	targetBase, kTarget := ToBaseUnitRepresentation(targetReduced)

	if !selfBase.Equal(targetBase) {
		return Quantity{}, &IncompatibleUnitsError{Actual: q.unit, Target: target}
	}

	return Quantity{value: q.value.Mul(kSelf).Div(kTarget), unit: target}, nil
}

// cancelCommonFactors trims, from both a and b, the shared magnitude of
// any (prefix, unit identifier) factor appearing in both with exponents
// of the same sign: for positive exponents the smaller value, for
// negative exponents the one closer to zero (smaller magnitude).
func cancelCommonFactors(a, b Unit) (Unit, Unit) {
	aFactors := a.Canonicalized().Factors()
	bFactors := b.Canonicalized().Factors()

	bByKey := make(map[string]Rational, len(bFactors))
	for _, f := range bFactors {
		bByKey[f.MergeKey()] = f.Exponent
	}

	common := make(map[string]Rational)
	for _, f := range aFactors {
		eb, ok := bByKey[f.MergeKey()]
		if !ok {
			continue
		}
		ea := f.Exponent
		if ea.Sign() == 0 || eb.Sign() == 0 || ea.Sign() != eb.Sign() {
			continue
		}
		if ea.Sign() > 0 {
			if ea.Cmp(eb) <= 0 {
				common[f.MergeKey()] = ea
			} else {
				common[f.MergeKey()] = eb
			}
		} else {
			if ea.Cmp(eb) >= 0 {
				common[f.MergeKey()] = ea
			} else {
				common[f.MergeKey()] = eb
			}
		}
	}

	return trimFactors(aFactors, common), trimFactors(bFactors, common)
}

func trimFactors(factors []UnitFactor, common map[string]Rational) Unit {
	out := make([]UnitFactor, len(factors))
	for i, f := range factors {
		out[i] = f
		if e, ok := common[f.MergeKey()]; ok {
			out[i].Exponent = f.Exponent.Sub(e)
		}
	}
	return FromFactors(out)
}

// FullSimplify merges factors sharing a sort-key group into a single
// representative unit per group, picking whichever group member is
// most natural to express the result in (a base unit over a derived
// one, a larger exponent over a smaller one), and converting the rest
// of the group's contribution into that representative.
func (q Quantity) FullSimplify() Quantity {
	// Dimensionless quantities collapse to a bare scalar, and so do
	// zero-valued ones of any dimension (ConvertTo's own zero shortcut);
	// everything else falls through to the per-group merge below.
	if scalar, err := q.ConvertTo(ScalarUnit()); err == nil {
		return scalar
	}

	groups := groupBySortKey(q.unit.Canonicalized().Factors())

	simplifiedUnit := ScalarUnit()
	accumulated := One()

	for _, group := range groups {
		rep := representativeOf(group)
		eRep := leadingExponent(rep.UnitID)

		combined := RationalFromInt(0)
		for _, f := range group {
			eF := leadingExponent(f.UnitID)
			combined = combined.Add(f.Exponent.Mul(eF).Quo(eRep))
		}

		targetFactor := UnitFactor{Prefix: rep.Prefix, UnitID: rep.UnitID, Exponent: combined}
		targetUnit := FromFactor(targetFactor)

		groupUnit := FromFactors(group)
		groupQuantity := Quantity{value: One(), unit: groupUnit}
		converted, err := groupQuantity.ConvertTo(targetUnit)
		if err != nil {
			// Groups are built from a single sort-key equivalence class,
			// so they are convertible to their own representative by
			// construction; this would indicate a bug in sort_key/grouping.
			panic("numbat: FullSimplify: group not convertible to its own representative: " + err.Error())
		}

		accumulated = accumulated.Mul(converted.value)
		simplifiedUnit = simplifiedUnit.Mul(targetUnit)
	}

	return Quantity{value: q.value.Mul(accumulated), unit: simplifiedUnit.Canonicalized()}
}

func leadingExponent(id UnitIdentifier) Rational {
	return id.leadingBaseExponent()
}

func groupBySortKey(factors []UnitFactor) [][]UnitFactor {
	var groups [][]UnitFactor
	for _, f := range factors {
		if n := len(groups); n > 0 && compareSortKeys(groups[n-1][0].UnitID.SortKey(), f.UnitID.SortKey()) == 0 {
			groups[n-1] = append(groups[n-1], f)
		} else {
			groups = append(groups, []UnitFactor{f})
		}
	}
	return groups
}

// representativeOf picks the maximal element of group under (is_base,
// exponent) lexicographic order: base units outrank derived ones, and
// within that, larger exponents outrank smaller ones. On an exact tie
// the later element wins.
func representativeOf(group []UnitFactor) UnitFactor {
	rep := group[0]
	for _, f := range group[1:] {
		if factorRank(f) > factorRank(rep) {
			rep = f
		} else if factorRank(f) == factorRank(rep) && f.Exponent.Cmp(rep.Exponent) >= 0 {
			rep = f
		}
	}
	return rep
}

func factorRank(f UnitFactor) int {
	if f.UnitID.IsBase() {
		return 1
	}
	return 0
}

// Add converts other to q's unit and sums the values.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	converted, err := other.ConvertTo(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: q.value.Add(converted.value), unit: q.unit}, nil
}

// Sub converts other to q's unit and subtracts the values.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	converted, err := other.ConvertTo(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: q.value.Sub(converted.value), unit: q.unit}, nil
}

// Mul multiplies both values and units.
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{value: q.value.Mul(other.value), unit: q.unit.Mul(other.unit)}
}

// Div divides both values and units.
func (q Quantity) Div(other Quantity) Quantity {
	return Quantity{value: q.value.Div(other.value), unit: q.unit.Mul(Power(other.unit, RationalFromInt(-1)))}
}

// Neg negates the value, leaving the unit untouched.
func (q Quantity) Neg() Quantity {
	return Quantity{value: q.value.Neg(), unit: q.unit}
}

// Power raises q to exponent, which must itself reduce to a
// dimensionless scalar whose value is representable as an exact ratio
// of reasonably small integers; ErrNonRationalExponent otherwise.
func (q Quantity) Power(exponent Quantity) (Quantity, error) {
	scalarExponent, err := exponent.ConvertTo(ScalarUnit())
	if err != nil {
		return Quantity{}, err
	}

	expFloat := scalarExponent.value.ToFloat64()
	expRational, ok := rationalApprox(expFloat, 1_000_000, 1e-9)
	if !ok {
		return Quantity{}, ErrNonRationalExponent
	}

	return Quantity{value: q.value.Pow(expFloat), unit: Power(q.unit, expRational)}, nil
}

// rationalApprox finds the simplest rational p/q, q <= maxDenom,
// within epsilon of f, via the continued-fraction convergents of f.
func rationalApprox(f float64, maxDenom int64, epsilon float64) (Rational, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, false
	}

	sign := int64(1)
	if f < 0 {
		sign = -1
		f = -f
	}

	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := f

	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDenom {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2

		approx := float64(h1) / float64(k1)
		if math.Abs(approx-f) <= epsilon {
			return RationalFromInts(sign*h1, k1), true
		}

		frac := x - float64(a)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
	}

	approx := float64(h1) / float64(k1)
	if k1 > 0 && k1 <= maxDenom && math.Abs(approx-f) <= epsilon {
		return RationalFromInts(sign*h1, k1), true
	}
	return Rational{}, false
}
