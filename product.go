package numbat

import "sort"

// Factor is the element type of a Product: anything that can be
// merged with its own kind, detected as trivial (droppable), totally
// ordered for canonical layout, and compared for equality.
//
// MergeKey returns an opaque string identifying factors that should be
// combined by Merge — e.g. for UnitFactor, the (prefix, unit identifier)
// pair. It need not relate to Less's ordering; factors with equal merge
// keys are not necessarily adjacent under Less (see unit.go).
type Factor[F any] interface {
	MergeKey() string
	Merge(other F) F
	IsTrivial() bool
	Less(other F) bool
	Equal(other F) bool
}

// Product is a free abelian product: an ordered multiset of factors
// with a canonicalization contract (merge same-key factors, drop
// trivial ones, sort deterministically). The identity element is the
// empty product.
//
// A Product built by FromFactor or by concatenating raw factor slices
// may be uncanonical; Canonicalized (and anything that calls it, like
// Mul and Equal) brings it back to canonical form. Equality
// canonicalizes; construction may not.
type Product[F Factor[F]] struct {
	factors []F
}

// UnityProduct returns the empty product (the multiplicative identity).
func UnityProduct[F Factor[F]]() Product[F] {
	return Product[F]{}
}

// FromFactor wraps a single factor without canonicalizing (a singleton
// is already in canonical form unless trivial).
func FromFactor[F Factor[F]](f F) Product[F] {
	return Product[F]{factors: []F{f}}
}

// FromFactors builds a canonicalized product from a slice of factors.
func FromFactors[F Factor[F]](fs []F) Product[F] {
	p := Product[F]{factors: append(make([]F, 0, len(fs)), fs...)}
	return p.Canonicalized()
}

// Factors returns the product's factors in whatever order they are
// currently stored — may be non-canonical. Use Canonicalized().Factors()
// for the canonical view.
func (p Product[F]) Factors() []F {
	return append([]F(nil), p.factors...)
}

// Len returns the number of factors currently stored (not
// canonicalized first).
func (p Product[F]) Len() int {
	return len(p.factors)
}

// Canonicalized returns the canonical form of p: factors stable-sorted
// by merge key, runs of equal key folded via Merge, trivial factors
// dropped, then stable-sorted by natural order.
func (p Product[F]) Canonicalized() Product[F] {
	factors := append(make([]F, 0, len(p.factors)), p.factors...)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].MergeKey() < factors[j].MergeKey()
	})

	merged := make([]F, 0, len(factors))
	for _, f := range factors {
		if n := len(merged); n > 0 && merged[n-1].MergeKey() == f.MergeKey() {
			merged[n-1] = merged[n-1].Merge(f)
		} else {
			merged = append(merged, f)
		}
	}

	kept := merged[:0]
	for _, f := range merged {
		if !f.IsTrivial() {
			kept = append(kept, f)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Less(kept[j])
	})

	return Product[F]{factors: kept}
}

// Mul concatenates p and other, then canonicalizes.
func (p Product[F]) Mul(other Product[F]) Product[F] {
	combined := make([]F, 0, len(p.factors)+len(other.factors))
	combined = append(combined, p.factors...)
	combined = append(combined, other.factors...)
	return Product[F]{factors: combined}.Canonicalized()
}

// Equal canonicalizes both sides, then compares factor-by-factor.
func (p Product[F]) Equal(other Product[F]) bool {
	a := p.Canonicalized().factors
	b := other.Canonicalized().factors
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
