package numbat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This file pins the engine's algebraic laws and boundary behaviors
// directly, rather than leaving them as incidental coverage inside the
// scenario-shaped tests elsewhere in this package.

func kilometer() Unit { return WithPrefix(meter(), Kilo()) }
func hour() Unit       { return NewDerivedUnit("hour", "h", NumberFromInt(3600), second()) }
func foot() Unit       { return NewDerivedUnit("foot", "ft", NumberFromFloat64(0.3048), meter()) }

func quantityFixtures() []Quantity {
	return []Quantity{
		NewQuantityFromFloat(3, meter()),
		NewQuantityFromFloat(-2.5, second()),
		NewQuantityFromFloat(7, gram().Mul(meter())),
		NewQuantityFromFloat(1.5, meter().Mul(Power(second(), RationalFromInt(-1)))),
		NewQuantityFromFloat(0.25, kilometer()),
	}
}

func TestMulIsCommutativeAndAssociative(t *testing.T) {
	qs := quantityFixtures()
	for i, a := range qs {
		for j, b := range qs {
			ab := a.Mul(b)
			ba := b.Mul(a)
			assert.Truef(t, ab.Value().Equal(ba.Value()), "values for (%d,%d)", i, j)
			assert.Truef(t, ab.Unit().Equal(ba.Unit()), "units for (%d,%d)", i, j)
		}
	}

	a, b, c := qs[0], qs[2], qs[3]
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	assert.True(t, left.Value().Equal(right.Value()))
	assert.True(t, left.Unit().Equal(right.Unit()))
}

func TestAddIsCommutativeAndAssociativeForMatchingUnits(t *testing.T) {
	a := NewQuantityFromFloat(2, meter())
	b := NewQuantityFromFloat(5, meter())
	c := NewQuantityFromFloat(-3, meter())

	ab, err := a.Add(b)
	require.NoError(t, err)
	ba, err := b.Add(a)
	require.NoError(t, err)
	assert.True(t, ab.Value().Equal(ba.Value()))
	assert.True(t, ab.Unit().Equal(ba.Unit()))

	abc1, err := a.Add(b)
	require.NoError(t, err)
	abc1, err = abc1.Add(c)
	require.NoError(t, err)

	bc, err := b.Add(c)
	require.NoError(t, err)
	abc2, err := a.Add(bc)
	require.NoError(t, err)

	assert.True(t, abc1.Value().Equal(abc2.Value()))
	assert.True(t, abc1.Unit().Equal(abc2.Unit()))
}

func TestUnitTimesScalarIsUnchanged(t *testing.T) {
	for _, u := range []Unit{meter(), second().Mul(Power(gram(), RationalFromInt(2))), kilometer(), hour()} {
		assert.True(t, u.Mul(ScalarUnit()).Equal(u))
	}
}

func TestUnitOverItselfIsScalar(t *testing.T) {
	for _, u := range []Unit{meter(), gram().Mul(Power(meter(), RationalFromInt(-1))), kilometer(), hour(), foot()} {
		quotient := u.Mul(Power(u, RationalFromInt(-1)))
		assert.True(t, quotient.Equal(ScalarUnit()))
	}
}

func TestPowiComposesByMultiplyingExponents(t *testing.T) {
	u := meter().Mul(Power(second(), RationalFromInt(-1)))

	cases := []struct{ n, m int64 }{
		{2, 3}, {-2, 3}, {3, -2}, {0, 5}, {5, 0}, {-1, -1},
	}
	for _, c := range cases {
		got := Power(Power(u, RationalFromInt(c.n)), RationalFromInt(c.m))
		want := Power(u, RationalFromInt(c.n*c.m))
		assert.Truef(t, got.Equal(want), "n=%d m=%d", c.n, c.m)
	}
}

func TestConvertToIsIdentityWhenUnitsAreCanonicallyEqualButDifferentlyOrdered(t *testing.T) {
	a := meter().Mul(second())
	b := second().Mul(meter())

	q := NewQuantityFromFloat(4, a)
	converted, err := q.ConvertTo(b)
	require.NoError(t, err)
	assert.True(t, converted.Value().Equal(q.Value()))
	assert.True(t, converted.Unit().Equal(b))
}

func TestConvertToRoundTripPreservesValue(t *testing.T) {
	original := NewQuantityFromFloat(12.5, meter())

	toFoot, err := original.ConvertTo(foot())
	require.NoError(t, err)
	back, err := toFoot.ConvertTo(meter())
	require.NoError(t, err)

	assert.InDelta(t, original.Value().ToFloat64(), back.Value().ToFloat64(), 1e-9)
}

func TestFullSimplifyIsIdempotent(t *testing.T) {
	q := NewQuantityFromFloat(2.5, kilometer().Mul(meter()))

	once := q.FullSimplify()
	twice := once.FullSimplify()

	assert.True(t, once.Value().Equal(twice.Value()))
	assert.True(t, once.Unit().Equal(twice.Unit()))
}

func TestFullSimplifyThenConvertBackPreservesValue(t *testing.T) {
	// m*g/km, not just m*g/cm, to exercise a different prefix pairing
	// than the m*g/cm scenario test in the registry package.
	q := NewQuantityFromFloat(1, meter().Mul(gram()).Mul(Power(kilometer(), RationalFromInt(-1))))

	simplified := q.FullSimplify()
	back, err := simplified.ConvertTo(q.Unit())
	require.NoError(t, err)

	assert.InDelta(t, q.Value().ToFloat64(), back.Value().ToFloat64(), 1e-9)
}

func TestToBaseUnitRepresentationIsOrderIndependent(t *testing.T) {
	forward := meter().Mul(Power(second(), RationalFromInt(-1))).Mul(gram())
	backward := gram().Mul(meter()).Mul(Power(second(), RationalFromInt(-1)))

	baseForward, factorForward := ToBaseUnitRepresentation(forward)
	baseBackward, factorBackward := ToBaseUnitRepresentation(backward)

	assert.True(t, baseForward.Equal(baseBackward))
	assert.True(t, factorForward.Equal(factorBackward))
}

func TestZeroValuedQuantityConvertsToIncompatibleUnitWithoutError(t *testing.T) {
	zero := NewQuantityFromFloat(0, meter())

	converted, err := zero.ConvertTo(second())
	require.NoError(t, err)
	assert.True(t, converted.Value().IsZero())
	assert.True(t, converted.Unit().Equal(second()))
}

func TestIncompatibleUnitsErrorCarriesBothOperands(t *testing.T) {
	q := NewQuantityFromFloat(5, meter())
	_, err := q.ConvertTo(second())
	require.Error(t, err)

	var unitErr *IncompatibleUnitsError
	require.ErrorAs(t, err, &unitErr)
	assert.True(t, unitErr.Actual.Equal(meter()))
	assert.True(t, unitErr.Target.Equal(second()))
}
