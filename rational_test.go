package numbat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRationalFromInts(t *testing.T) {
	r := RationalFromInts(6, 8)
	assert.Equal(t, "3/4", r.String())
	assert.False(t, r.IsInteger())
}

func TestRationalArithmetic(t *testing.T) {
	half := RationalFromInts(1, 2)
	third := RationalFromInts(1, 3)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Sub(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())
	assert.Equal(t, "3/2", half.Quo(third).String())
	assert.Equal(t, "-1/2", half.Neg().String())
}

func TestRationalComparisons(t *testing.T) {
	assert.Equal(t, 0, RationalFromInt(2).Cmp(RationalFromInts(4, 2)))
	assert.Equal(t, -1, RationalFromInt(1).Cmp(RationalFromInt(2)))
	assert.Equal(t, 1, RationalFromInt(2).Cmp(RationalFromInt(1)))

	assert.Equal(t, 1, RationalFromInt(3).Sign())
	assert.Equal(t, -1, RationalFromInt(-3).Sign())
	assert.Equal(t, 0, RationalFromInt(0).Sign())
	assert.True(t, RationalFromInt(0).IsZero())
}

func TestRationalIsInteger(t *testing.T) {
	assert.True(t, RationalFromInt(5).IsInteger())
	assert.True(t, RationalFromInts(10, 2).IsInteger())
	assert.False(t, RationalFromInts(3, 2).IsInteger())
}

func TestRationalToInt64AndFloat64(t *testing.T) {
	r := RationalFromInts(7, 2)
	assert.Equal(t, int64(3), r.ToInt64())
	assert.InDelta(t, 3.5, r.ToFloat64(), 1e-12)
}

func TestRationalFromFloat64(t *testing.T) {
	r, ok := RationalFromFloat64(0.5)
	assert.True(t, ok)
	assert.Equal(t, "1/2", r.String())

	_, ok = RationalFromFloat64(math.NaN())
	assert.False(t, ok)
}

func TestRationalEqual(t *testing.T) {
	assert.True(t, RationalFromInts(2, 4).Equal(RationalFromInts(1, 2)))
	assert.False(t, RationalFromInt(1).Equal(RationalFromInt(2)))
}
