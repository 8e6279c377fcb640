package numbat

import (
	"fmt"
	"math"
	"sort"
)

type prefixKind int8

const (
	prefixKindNone prefixKind = iota
	prefixKindMetric
	prefixKindBinary
)

// Prefix is a fixed numeric scale attached to the leading factor of a
// unit: either a metric power of ten, a binary power of 1024, or none.
type Prefix struct {
	kind prefixKind
	exp  int8
}

// None is the empty prefix (scale factor 1).
func None() Prefix { return Prefix{} }

// Metric builds the decadic prefix 10^n.
func Metric(exp int8) Prefix { return Prefix{kind: prefixKindMetric, exp: exp} }

// Binary builds the binary prefix 2^(10n).
func Binary(exp int8) Prefix { return Prefix{kind: prefixKindBinary, exp: exp} }

// IsNone reports whether the prefix carries no scaling at all.
func (p Prefix) IsNone() bool { return p.kind == prefixKindNone }

// Factor returns the real-valued multiplier this prefix contributes.
func (p Prefix) Factor() Number {
	switch p.kind {
	case prefixKindMetric:
		return NumberFromFloat64(math.Pow(10, float64(p.exp)))
	case prefixKindBinary:
		return NumberFromFloat64(math.Pow(2, float64(p.exp)*10))
	default:
		return One()
	}
}

var metricSymbols = map[int8][2]string{
	24:  {"Y", "yotta"},
	21:  {"Z", "zetta"},
	18:  {"E", "exa"},
	15:  {"P", "peta"},
	12:  {"T", "tera"},
	9:   {"G", "giga"},
	6:   {"M", "mega"},
	3:   {"k", "kilo"},
	2:   {"h", "hecto"},
	1:   {"da", "deca"},
	0:   {"", ""},
	-1:  {"d", "deci"},
	-2:  {"c", "centi"},
	-3:  {"m", "milli"},
	-6:  {"µ", "micro"},
	-9:  {"n", "nano"},
	-12: {"p", "pico"},
	-15: {"f", "femto"},
	-18: {"a", "atto"},
	-21: {"z", "zepto"},
	-24: {"y", "yocto"},
}

var binarySymbols = map[int8][2]string{
	1: {"Ki", "kibi"},
	2: {"Mi", "mebi"},
	3: {"Gi", "gibi"},
	4: {"Ti", "tebi"},
	5: {"Pi", "pebi"},
	6: {"Ei", "exbi"},
	7: {"Zi", "zebi"},
	8: {"Yi", "yobi"},
}

// ShortSymbol returns the conventional short prefix symbol, e.g. "k" or
// "Ki". Exponents outside the standard table fall back to "e<N>" for
// metric (e.g. a hypothetical Metric(4) prints "e4") and "2^<10N>" for
// binary (Binary(9) prints "2^90"), so formatting never panics on an
// off-table prefix.
func (p Prefix) ShortSymbol() string {
	switch p.kind {
	case prefixKindMetric:
		if s, ok := metricSymbols[p.exp]; ok {
			return s[0]
		}
		return fmt.Sprintf("e%d", p.exp)
	case prefixKindBinary:
		if s, ok := binarySymbols[p.exp]; ok {
			return s[0]
		}
		return fmt.Sprintf("2^%d", int(p.exp)*10)
	default:
		return ""
	}
}

// LongSymbol returns the conventional long prefix name, e.g. "kilo" or
// "kibi".
func (p Prefix) LongSymbol() string {
	switch p.kind {
	case prefixKindMetric:
		if s, ok := metricSymbols[p.exp]; ok {
			return s[1]
		}
		return p.ShortSymbol()
	case prefixKindBinary:
		if s, ok := binarySymbols[p.exp]; ok {
			return s[1]
		}
		return p.ShortSymbol()
	default:
		return ""
	}
}

// String implements fmt.Stringer using the short symbol.
func (p Prefix) String() string { return p.ShortSymbol() }

// Equal reports structural equality.
func (p Prefix) Equal(other Prefix) bool {
	return p.kind == other.kind && p.exp == other.exp
}

// mergeKey is the opaque key used by Product canonicalization to tell
// whether two prefixes should be treated as identical.
func (p Prefix) mergeKey() string {
	return fmt.Sprintf("%d:%d", p.kind, p.exp)
}

// MetricPrefixSymbols lists every (short, long) spelling of a metric
// prefix together with the exponent it denotes, longest symbol first —
// the order a longest-match prefix scan should try them in.
func MetricPrefixSymbols() []PrefixSymbol {
	return prefixSymbolTable(metricSymbols, Metric)
}

// BinaryPrefixSymbols lists every (short, long) spelling of a binary
// prefix, longest symbol first.
func BinaryPrefixSymbols() []PrefixSymbol {
	return prefixSymbolTable(binarySymbols, Binary)
}

// PrefixSymbol is one recognized spelling of a prefix, for use by a
// registry scanning an identifier for a leading prefix.
type PrefixSymbol struct {
	Short  string
	Long   string
	Prefix Prefix
}

func prefixSymbolTable(table map[int8][2]string, build func(int8) Prefix) []PrefixSymbol {
	out := make([]PrefixSymbol, 0, len(table))
	for exp, names := range table {
		if exp == 0 {
			continue
		}
		out = append(out, PrefixSymbol{Short: names[0], Long: names[1], Prefix: build(exp)})
	}
	sort.Slice(out, func(i, j int) bool {
		return len(out[i].Long) > len(out[j].Long)
	})
	return out
}

// Named metric prefixes, matching the SI table.
func Yotta() Prefix { return Metric(24) }
func Zetta() Prefix { return Metric(21) }
func Exa() Prefix   { return Metric(18) }
func Peta() Prefix  { return Metric(15) }
func Tera() Prefix  { return Metric(12) }
func Giga() Prefix  { return Metric(9) }
func Mega() Prefix  { return Metric(6) }
func Kilo() Prefix  { return Metric(3) }
func Hecto() Prefix { return Metric(2) }
func Deca() Prefix  { return Metric(1) }
func Deci() Prefix  { return Metric(-1) }
func Centi() Prefix { return Metric(-2) }
func Milli() Prefix { return Metric(-3) }
func Micro() Prefix { return Metric(-6) }
func Nano() Prefix  { return Metric(-9) }
func Pico() Prefix  { return Metric(-12) }
func Femto() Prefix { return Metric(-15) }
func Atto() Prefix  { return Metric(-18) }
func Zepto() Prefix { return Metric(-21) }
func Yocto() Prefix { return Metric(-24) }

// Named binary prefixes, matching IEC 80000-13.
func Kibi() Prefix { return Binary(1) }
func Mebi() Prefix { return Binary(2) }
func Gibi() Prefix { return Binary(3) }
func Tebi() Prefix { return Binary(4) }
func Pebi() Prefix { return Binary(5) }
func Exbi() Prefix { return Binary(6) }
func Zebi() Prefix { return Binary(7) }
func Yobi() Prefix { return Binary(8) }
