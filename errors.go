package numbat

import "fmt"

// IncompatibleUnitsError reports that two units do not share a
// dimension after reduction to base units, so no conversion factor
// exists between them.
type IncompatibleUnitsError struct {
	Actual Unit
	Target Unit
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("incompatible units: %s and %s", UnitString(e.Actual), UnitString(e.Target))
}

// ErrNonRationalExponent is returned by Quantity.Power when a unit
// exponent, after the operation, cannot be represented as an exact
// ratio of small integers.
var ErrNonRationalExponent = fmt.Errorf("exponent is not representable as a rational number")
