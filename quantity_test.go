package numbat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meter() Unit  { return NewBaseUnit("meter", "m") }
func second() Unit { return NewBaseUnit("second", "s") }
func gram() Unit   { return NewBaseUnit("gram", "g") }

func TestQuantityStringFormatsValueAndUnit(t *testing.T) {
	q := NewQuantityFromFloat(5, meter())
	assert.Equal(t, "5 m", q.String())

	dimensionless := NewQuantityFromFloat(0.75, ScalarUnit())
	assert.Equal(t, "0.75", dimensionless.String())

	degree := NewDerivedUnit("degree", "°", NumberFromFloat64(0.017453292519943295), ScalarUnit())
	angle := NewQuantityFromFloat(90, degree)
	assert.Equal(t, "90°", angle.String())
}

func TestConvertToSameUnitIsIdentity(t *testing.T) {
	q := NewQuantityFromFloat(5, meter())
	converted, err := q.ConvertTo(meter())
	require.NoError(t, err)
	assert.True(t, converted.Value().Equal(NumberFromFloat64(5)))
}

func TestConvertToScalesThroughDerivedFactor(t *testing.T) {
	hour := NewDerivedUnit("hour", "h", NumberFromInt(3600), second())

	q := NewQuantityFromFloat(2, hour)
	converted, err := q.ConvertTo(second())
	require.NoError(t, err)
	assert.True(t, converted.Value().Equal(NumberFromInt(7200)))
}

func TestConvertToIncompatibleUnitsErrors(t *testing.T) {
	q := NewQuantityFromFloat(5, meter())
	_, err := q.ConvertTo(second())
	require.Error(t, err)

	var unitErr *IncompatibleUnitsError
	assert.ErrorAs(t, err, &unitErr)
}

func TestConvertToVelocityUnits(t *testing.T) {
	mPerS := meter().Mul(Power(second(), RationalFromInt(-1)))
	kmPerH := WithPrefix(meter(), Kilo()).Mul(Power(NewDerivedUnit("hour", "h", NumberFromInt(3600), second()), RationalFromInt(-1)))

	q := NewQuantityFromFloat(10, mPerS)
	converted, err := q.ConvertTo(kmPerH)
	require.NoError(t, err)
	assert.InDelta(t, 36.0, converted.Value().ToFloat64(), 1e-9)
}

func TestCancelCommonFactorsTrimsSharedMagnitude(t *testing.T) {
	// Both sides carry meter^1 as a shared factor (same prefix, same
	// unit, same sign): it should be trimmed to meter^0 on both sides,
	// leaving only their distinguishing factors behind.
	a := meter().Mul(second())
	b := meter().Mul(gram())

	aReduced, bReduced := cancelCommonFactors(a, b)
	assert.True(t, aReduced.Equal(second()))
	assert.True(t, bReduced.Equal(gram()))
}

func TestQuantityAddConvertsOtherOperand(t *testing.T) {
	km := WithPrefix(meter(), Kilo())
	a := NewQuantityFromFloat(1, km)
	b := NewQuantityFromFloat(500, meter())

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, sum.Value().ToFloat64(), 1e-9)
	assert.True(t, sum.Unit().Equal(km))
}

func TestQuantitySubMulDivNeg(t *testing.T) {
	a := NewQuantityFromFloat(5, meter())
	b := NewQuantityFromFloat(2, meter())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, diff.Value().ToFloat64(), 1e-9)

	product := a.Mul(NewQuantityFromFloat(2, second()))
	assert.InDelta(t, 10.0, product.Value().ToFloat64(), 1e-9)
	assert.True(t, product.Unit().Equal(meter().Mul(second())))

	quotient := a.Div(NewQuantityFromFloat(2, second()))
	assert.InDelta(t, 2.5, quotient.Value().ToFloat64(), 1e-9)

	neg := a.Neg()
	assert.InDelta(t, -5.0, neg.Value().ToFloat64(), 1e-9)
}

func TestFullSimplifyMergesSameDimensionFactors(t *testing.T) {
	km := WithPrefix(meter(), Kilo())
	// 1 km * 1 m should simplify to a single length unit.
	q := NewQuantity(One(), km.Mul(meter()))
	simplified := q.FullSimplify()

	assert.Equal(t, 1, simplified.Unit().Len())
}

func TestFullSimplifyHertzOverSecondUsesUnnormalizedLeadingExponent(t *testing.T) {
	// Hz = s^-1: its raw (unnormalized) leading base exponent is -1,
	// not the +1 that SortKey's sign-normalized grouping key would
	// suggest. Getting this wrong collapses the combined exponent to 0
	// instead of -2, and FullSimplify ends up trying to convert the
	// group to a unit it no longer has a conversion path to.
	hertz := NewDerivedUnit("hertz", "Hz", One(), Power(second(), RationalFromInt(-1)))
	unit := hertz.Mul(Power(second(), RationalFromInt(-1)))

	q := NewQuantityFromFloat(1, unit)
	simplified := q.FullSimplify()

	assert.InDelta(t, 1.0, simplified.Value().ToFloat64(), 1e-9)
	assert.Equal(t, "s⁻²", UnitString(simplified.Unit()))
}

func TestFullSimplifyOnPureNumberConvertsToScalar(t *testing.T) {
	meterPerMeter := meter().Mul(Power(meter(), RationalFromInt(-1)))
	q := NewQuantityFromFloat(5, meterPerMeter)
	simplified := q.FullSimplify()

	assert.Equal(t, 0, simplified.Unit().Len())
	assert.InDelta(t, 5.0, simplified.Value().ToFloat64(), 1e-9)
}

func TestFullSimplifyZeroValuedQuantityCollapsesToScalar(t *testing.T) {
	// A zero-valued quantity converts to any unit, the scalar included,
	// so simplification drops its unit entirely rather than reassembling
	// m/s group by group.
	mPerS := meter().Mul(Power(second(), RationalFromInt(-1)))
	q := NewQuantityFromFloat(0, mPerS)

	simplified := q.FullSimplify()
	assert.True(t, simplified.Value().IsZero())
	assert.Equal(t, 0, simplified.Unit().Len())
}

func TestQuantityPowerWithRationalExponent(t *testing.T) {
	area := NewQuantityFromFloat(4, meter().Mul(meter()))
	half := NewQuantityFromFloat(0.5, ScalarUnit())

	root, err := area.Power(half)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, root.Value().ToFloat64(), 1e-9)
	assert.True(t, root.Unit().Equal(meter()))
}

func TestRationalApproxRejectsNaNAndInf(t *testing.T) {
	_, ok := rationalApprox(math.NaN(), 1_000_000, 1e-9)
	assert.False(t, ok)

	_, ok = rationalApprox(math.Inf(1), 1_000_000, 1e-9)
	assert.False(t, ok)
}

func TestRationalApproxFindsSmallDenominatorFraction(t *testing.T) {
	r, ok := rationalApprox(0.5, 1_000_000, 1e-9)
	require.True(t, ok)
	assert.Equal(t, "1/2", r.String())
}

func TestQuantityPowerRequiresDimensionlessExponent(t *testing.T) {
	base := NewQuantityFromFloat(2, ScalarUnit())
	notScalar := NewQuantityFromFloat(2, meter())

	_, err := base.Power(notScalar)
	require.Error(t, err)
}
