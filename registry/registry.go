// Package registry builds the standard unit table (SI base and
// derived units, plus a set of common non-SI units) and resolves unit
// names — with an optional prefix — against it.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/T1mVo/numbat"
)

type tableEntry struct {
	unit          numbat.Unit
	accepts       numbat.AcceptsPrefix
	acceptsMetric bool
	acceptsBinary bool
}

// Registry is a name -> unit lookup table, populated with the
// standard unit set on construction. It is built once and used
// read-only afterwards, so it is safe for concurrent lookups.
type Registry struct {
	entries map[string]tableEntry
}

// New builds a Registry preloaded with the SI base units, the SI
// derived units, and a set of common non-SI units (time, angle,
// volume, mass, length, pressure, information).
func New() *Registry {
	r := &Registry{entries: make(map[string]tableEntry)}
	r.registerBaseUnits()
	r.registerDerivedUnits()
	r.registerNonSIUnits()
	return r
}

func (r *Registry) register(name string, unit numbat.Unit, decorators ...numbat.Decorator) {
	for _, e := range numbat.NameAndAliases(name, decorators...) {
		r.entries[e.Name] = tableEntry{unit: unit, accepts: e.Accepts, acceptsMetric: e.AcceptsMetric, acceptsBinary: e.AcceptsBinary}
	}
}

// Resolve looks up name, trying it first as given and then, for each
// registered entry whose prefix policy admits it, as a prefix (metric
// or binary, matched longest-first) followed by a registered suffix.
func (r *Registry) Resolve(name string) (numbat.Unit, error) {
	if name == "" || name == "1" {
		return numbat.ScalarUnit(), nil
	}

	if e, ok := r.entries[name]; ok {
		return e.unit, nil
	}

	if u, ok := r.resolvePrefixed(name, numbat.MetricPrefixSymbols(), func(e tableEntry) bool { return e.acceptsMetric }); ok {
		return u, nil
	}
	if u, ok := r.resolvePrefixed(name, numbat.BinaryPrefixSymbols(), func(e tableEntry) bool { return e.acceptsBinary }); ok {
		return u, nil
	}

	return numbat.Unit{}, fmt.Errorf("unrecognized unit: %q", name)
}

func (r *Registry) resolvePrefixed(name string, symbols []numbat.PrefixSymbol, acceptsFamily func(tableEntry) bool) (numbat.Unit, bool) {
	for _, sym := range symbols {
		for _, spelling := range [2]struct {
			text    string
			accepts numbat.AcceptsPrefix
		}{
			{sym.Short, numbat.AcceptsShort},
			{sym.Long, numbat.AcceptsLong},
		} {
			if spelling.text == "" || !strings.HasPrefix(name, spelling.text) {
				continue
			}
			suffix := name[len(spelling.text):]
			e, ok := r.entries[suffix]
			if !ok || !acceptsFamily(e) {
				continue
			}
			if e.accepts != numbat.AcceptsBoth && e.accepts != spelling.accepts {
				continue
			}
			return numbat.WithPrefix(e.unit, sym.Prefix), true
		}
	}
	return numbat.Unit{}, false
}

// Lookup returns the unit identifier a bare name resolves to, without
// any prefix scanning. Callers that need to assemble their own factors
// (an evaluator building a UnitFactor with a grammar-supplied exponent)
// use this; everyone else wants Resolve.
func (r *Registry) Lookup(name string) (numbat.UnitIdentifier, bool) {
	e, ok := r.entries[name]
	if !ok {
		return numbat.UnitIdentifier{}, false
	}
	factors := e.unit.Factors()
	if len(factors) == 0 {
		return numbat.UnitIdentifier{}, false
	}
	return factors[0].UnitID, true
}

// Names returns every registered lookup name, sorted, for diagnostics
// and shell completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBaseUnits() {
	meter := numbat.NewBaseUnit("meter", "m")
	r.register("meter", meter, numbat.Aliases(numbat.Alias{Name: "m", Accepts: numbat.AcceptsShort}, numbat.Alias{Name: "metre", Accepts: numbat.AcceptsLong}), numbat.MetricPrefixes())

	// Kilogram is the SI base unit of mass, but "gram" is the coherent
	// prefixable unit: prefixes attach to "g", never to "kg".
	gram := numbat.NewBaseUnit("gram", "g")
	r.register("gram", gram, numbat.Aliases(numbat.Alias{Name: "g", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	second := numbat.NewBaseUnit("second", "s")
	r.register("second", second, numbat.Aliases(numbat.Alias{Name: "s", Accepts: numbat.AcceptsShort}, numbat.Alias{Name: "sec", Accepts: numbat.AcceptsLong}), numbat.MetricPrefixes())

	ampere := numbat.NewBaseUnit("ampere", "A")
	r.register("ampere", ampere, numbat.Aliases(numbat.Alias{Name: "A", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	kelvin := numbat.NewBaseUnit("kelvin", "K")
	r.register("kelvin", kelvin, numbat.Aliases(numbat.Alias{Name: "K", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	mole := numbat.NewBaseUnit("mole", "mol")
	r.register("mole", mole, numbat.Aliases(numbat.Alias{Name: "mol", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	candela := numbat.NewBaseUnit("candela", "cd")
	r.register("candela", candela, numbat.Aliases(numbat.Alias{Name: "cd", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	// "bit" has no separate long-form spelling distinct from its own
	// symbol, so it names itself as its own alias to accept both short
	// ("Mbit") and long ("megabit") prefix gluing, the same mechanism
	// "meter" uses to split "m" (short) from "metre" (long) across two
	// separate alias entries.
	bit := numbat.NewBaseUnit("bit", "bit")
	r.register("bit", bit, numbat.Aliases(numbat.Alias{Name: "bit", Accepts: numbat.AcceptsBoth}), numbat.MetricPrefixes(), numbat.BinaryPrefixes())
}

func (r *Registry) mustResolve(name string) numbat.Unit {
	u, err := r.Resolve(name)
	if err != nil {
		panic("numbat/registry: internal bootstrap lookup failed for " + name + ": " + err.Error())
	}
	return u
}

// registerDerivedUnits builds every SI derived unit's base-unit
// expression explicitly in terms of base units only (never in terms of
// another already-registered derived unit), since that is the
// invariant NewDerivedUnit enforces.
func (r *Registry) registerDerivedUnits() {
	meter := r.mustResolve("m")
	kg := numbat.WithPrefix(r.mustResolve("g"), numbat.Kilo())
	second := r.mustResolve("s")
	ampere := r.mustResolve("A")
	mole := r.mustResolve("mol")
	candela := r.mustResolve("cd")

	one := numbat.One()
	inv := func(u numbat.Unit) numbat.Unit { return numbat.Power(u, numbat.RationalFromInt(-1)) }
	sq := func(u numbat.Unit) numbat.Unit { return numbat.Power(u, numbat.RationalFromInt(2)) }

	perSecond := inv(second)
	r.registerDerived("hertz", "Hz", one, perSecond, numbat.Aliases(numbat.Alias{Name: "Hz", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())
	r.registerDerived("becquerel", "Bq", one, perSecond, numbat.Aliases(numbat.Alias{Name: "Bq", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	newtonBase := kg.Mul(meter).Mul(inv(sq(second)))
	r.registerDerived("newton", "N", one, newtonBase, numbat.Aliases(numbat.Alias{Name: "N", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	pascalBase := newtonBase.Mul(inv(sq(meter)))
	r.registerDerived("pascal", "Pa", one, pascalBase, numbat.Aliases(numbat.Alias{Name: "Pa", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	jouleBase := newtonBase.Mul(meter)
	r.registerDerived("joule", "J", one, jouleBase, numbat.Aliases(numbat.Alias{Name: "J", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	wattBase := jouleBase.Mul(inv(second))
	r.registerDerived("watt", "W", one, wattBase, numbat.Aliases(numbat.Alias{Name: "W", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	coulombBase := ampere.Mul(second)
	r.registerDerived("coulomb", "C", one, coulombBase, numbat.Aliases(numbat.Alias{Name: "C", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	voltBase := wattBase.Mul(inv(ampere))
	r.registerDerived("volt", "V", one, voltBase, numbat.Aliases(numbat.Alias{Name: "V", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	ohmBase := voltBase.Mul(inv(ampere))
	r.registerDerived("ohm", "Ω", one, ohmBase, numbat.Aliases(numbat.Alias{Name: "Ω", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	faradBase := coulombBase.Mul(inv(voltBase))
	r.registerDerived("farad", "F", one, faradBase, numbat.Aliases(numbat.Alias{Name: "F", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	weberBase := voltBase.Mul(second)
	r.registerDerived("weber", "Wb", one, weberBase, numbat.Aliases(numbat.Alias{Name: "Wb", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	teslaBase := weberBase.Mul(inv(sq(meter)))
	r.registerDerived("tesla", "T", one, teslaBase, numbat.Aliases(numbat.Alias{Name: "T", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	henryBase := weberBase.Mul(inv(ampere))
	r.registerDerived("henry", "H", one, henryBase, numbat.Aliases(numbat.Alias{Name: "H", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	siemensBase := inv(ohmBase)
	r.registerDerived("siemens", "S", one, siemensBase, numbat.Aliases(numbat.Alias{Name: "S", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	lumenBase := candela
	r.registerDerived("lumen", "lm", one, lumenBase, numbat.Aliases(numbat.Alias{Name: "lm", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	luxBase := lumenBase.Mul(inv(sq(meter)))
	r.registerDerived("lux", "lx", one, luxBase, numbat.Aliases(numbat.Alias{Name: "lx", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	grayBase := jouleBase.Mul(inv(kg))
	r.registerDerived("gray", "Gy", one, grayBase, numbat.Aliases(numbat.Alias{Name: "Gy", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())
	r.registerDerived("sievert", "Sv", one, grayBase, numbat.Aliases(numbat.Alias{Name: "Sv", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	katalBase := mole.Mul(inv(second))
	r.registerDerived("katal", "kat", one, katalBase, numbat.Aliases(numbat.Alias{Name: "kat", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())
}

// registerDerived is a thin wrapper over NewDerivedUnit + register,
// since every derived unit in this table takes the same three steps.
func (r *Registry) registerDerived(name, symbol string, factor numbat.Number, baseExpr numbat.Unit, decorators ...numbat.Decorator) {
	r.register(name, numbat.NewDerivedUnit(name, symbol, factor, baseExpr), decorators...)
}

// registerNonSIUnits registers common non-SI units directly in terms
// of base units, even where a more natural-looking derived unit (e.g.
// pascal) already exists in the table — NewDerivedUnit requires a
// base-only expression, so chaining through another derived unit is
// not an option.
func (r *Registry) registerNonSIUnits() {
	second := r.mustResolve("s")
	meter := r.mustResolve("m")
	gram := r.mustResolve("g")
	kg := numbat.WithPrefix(gram, numbat.Kilo())

	inv := func(u numbat.Unit) numbat.Unit { return numbat.Power(u, numbat.RationalFromInt(-1)) }
	sq := func(u numbat.Unit) numbat.Unit { return numbat.Power(u, numbat.RationalFromInt(2)) }
	pascalBase := kg.Mul(inv(meter)).Mul(inv(sq(second)))

	r.registerDerived("minute", "min", numbat.NumberFromInt(60), second, numbat.Aliases(numbat.Alias{Name: "min", Accepts: numbat.AcceptsShort}))
	r.registerDerived("hour", "h", numbat.NumberFromInt(3600), second, numbat.Aliases(numbat.Alias{Name: "h", Accepts: numbat.AcceptsShort}, numbat.Alias{Name: "hr", Accepts: numbat.AcceptsLong}))
	r.registerDerived("day", "d", numbat.NumberFromInt(86400), second, numbat.Aliases(numbat.Alias{Name: "d", Accepts: numbat.AcceptsShort}))
	r.registerDerived("week", "wk", numbat.NumberFromInt(7*86400), second, numbat.Aliases(numbat.Alias{Name: "wk", Accepts: numbat.AcceptsShort}))
	r.registerDerived("year", "yr", numbat.NumberFromFloat64(365.25*86400), second, numbat.Aliases(numbat.Alias{Name: "yr", Accepts: numbat.AcceptsShort}))

	const pi = 3.14159265358979323846
	r.registerDerived("degree", "°", numbat.NumberFromFloat64(pi/180), numbat.ScalarUnit(), numbat.Aliases(numbat.Alias{Name: "°", Accepts: numbat.AcceptsShort}, numbat.Alias{Name: "deg", Accepts: numbat.AcceptsLong}))
	r.registerDerived("arcminute", "arcmin", numbat.NumberFromFloat64(pi/180/60), numbat.ScalarUnit(), numbat.Aliases(numbat.Alias{Name: "arcmin", Accepts: numbat.AcceptsShort}))
	r.registerDerived("arcsecond", "arcsec", numbat.NumberFromFloat64(pi/180/3600), numbat.ScalarUnit(), numbat.Aliases(numbat.Alias{Name: "arcsec", Accepts: numbat.AcceptsShort}))

	r.registerDerived("liter", "L", numbat.NumberFromFloat64(0.001), sq(meter).Mul(meter), numbat.Aliases(numbat.Alias{Name: "L", Accepts: numbat.AcceptsShort}, numbat.Alias{Name: "litre", Accepts: numbat.AcceptsLong}), numbat.MetricPrefixes())
	r.registerDerived("tonne", "t", numbat.NumberFromInt(1000), kg, numbat.Aliases(numbat.Alias{Name: "t", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())

	r.registerDerived("mile", "mi", numbat.NumberFromFloat64(1609.344), meter, numbat.Aliases(numbat.Alias{Name: "mi", Accepts: numbat.AcceptsShort}))
	r.registerDerived("yard", "yd", numbat.NumberFromFloat64(0.9144), meter, numbat.Aliases(numbat.Alias{Name: "yd", Accepts: numbat.AcceptsShort}))
	r.registerDerived("foot", "ft", numbat.NumberFromFloat64(0.3048), meter, numbat.Aliases(numbat.Alias{Name: "ft", Accepts: numbat.AcceptsShort}))
	r.registerDerived("inch", "in", numbat.NumberFromFloat64(0.0254), meter, numbat.Aliases(numbat.Alias{Name: "in", Accepts: numbat.AcceptsShort}))
	r.registerDerived("nautical_mile", "nmi", numbat.NumberFromInt(1852), meter, numbat.Aliases(numbat.Alias{Name: "nmi", Accepts: numbat.AcceptsShort}))

	pound := numbat.NumberFromFloat64(0.45359237)
	r.registerDerived("pound", "lb", pound, kg, numbat.Aliases(numbat.Alias{Name: "lb", Accepts: numbat.AcceptsShort}))
	r.registerDerived("ounce", "oz", pound.Div(numbat.NumberFromInt(16)), kg, numbat.Aliases(numbat.Alias{Name: "oz", Accepts: numbat.AcceptsShort}))

	byteUnit := numbat.NewDerivedUnit("byte", "B", numbat.NumberFromInt(8), r.mustResolve("bit"))
	r.register("byte", byteUnit, numbat.Aliases(numbat.Alias{Name: "B", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes(), numbat.BinaryPrefixes())

	r.registerDerived("psi", "psi", numbat.NumberFromFloat64(6894.757293168361), pascalBase, numbat.Aliases(numbat.Alias{Name: "psi", Accepts: numbat.AcceptsShort}))
	r.registerDerived("bar", "bar", numbat.NumberFromInt(100000), pascalBase, numbat.Aliases(numbat.Alias{Name: "bar", Accepts: numbat.AcceptsShort}), numbat.MetricPrefixes())
	r.registerDerived("atmosphere", "atm", numbat.NumberFromFloat64(101325), pascalBase, numbat.Aliases(numbat.Alias{Name: "atm", Accepts: numbat.AcceptsShort}))

	// kilometer_per_hour is its own base-expressed unit (m/s, factor
	// 1/3.6) rather than a composition of "km" and "hour".
	kph := numbat.NumberFromFloat64(1.0 / 3.6)
	r.registerDerived("kilometer_per_hour", "kph", kph, meter.Mul(inv(second)), numbat.Aliases(numbat.Alias{Name: "kph", Accepts: numbat.AcceptsShort}))
}
