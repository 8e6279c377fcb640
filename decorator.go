package numbat

// AcceptsPrefix describes which prefix forms a registry entry should
// accept when resolving a name: none, short symbols only, long names
// only, or both.
type AcceptsPrefix int8

const (
	AcceptsNone AcceptsPrefix = iota
	AcceptsShort
	AcceptsLong
	AcceptsBoth
)

// Alias is one alternate name a unit can be looked up by, together
// with whether that particular spelling accepts a prefix.
type Alias struct {
	Name    string
	Accepts AcceptsPrefix
}

// Decorator describes one way a registry entry's name set is expanded:
// the metric or binary prefix table, or an explicit list of aliases.
type Decorator struct {
	metricPrefixes bool
	binaryPrefixes bool
	aliases        []Alias
}

// MetricPrefixes marks that this unit accepts the full metric prefix
// table (k, M, m, µ, ...).
func MetricPrefixes() Decorator { return Decorator{metricPrefixes: true} }

// BinaryPrefixes marks that this unit accepts the binary prefix table
// (Ki, Mi, Gi, ...).
func BinaryPrefixes() Decorator { return Decorator{binaryPrefixes: true} }

// Aliases lists extra spellings for a unit, each with its own prefix
// policy.
func Aliases(aliases ...Alias) Decorator { return Decorator{aliases: aliases} }

// NamedEntry is one (name, prefix policy) pair a lookup table should
// index, as produced by NameAndAliases. AcceptsMetric/AcceptsBinary are
// independent: a unit like "bit" accepts both prefix tables at once.
type NamedEntry struct {
	Name          string
	Accepts       AcceptsPrefix
	AcceptsMetric bool
	AcceptsBinary bool
}

// NameAndAliases expands name and decorators into the full set of
// lookup entries for a unit: the given name (long-prefix only, unless
// it is itself repeated verbatim in the alias list, in which case the
// alias list's policy for it wins) followed by each alias (long-only
// by default).
func NameAndAliases(name string, decorators ...Decorator) []NamedEntry {
	var aliasEntries []NamedEntry
	nameRepeated := false

	for _, d := range decorators {
		for _, a := range d.aliases {
			if a.Name == name {
				nameRepeated = true
			}
			aliasEntries = append(aliasEntries, NamedEntry{Name: a.Name, Accepts: a.Accepts})
		}
	}

	entries := make([]NamedEntry, 0, len(aliasEntries)+1)
	if !nameRepeated {
		entries = append(entries, NamedEntry{Name: name, Accepts: AcceptsLong})
	}
	entries = append(entries, aliasEntries...)

	// MetricPrefixes/BinaryPrefixes only feed AcceptsMetric/AcceptsBinary
	// (which family of prefix a registry may attach to this entry's
	// spelling); they leave Accepts — the short/long spelling policy
	// each name or alias already declared for itself — untouched.
	for _, d := range decorators {
		if !d.metricPrefixes && !d.binaryPrefixes {
			continue
		}
		for i := range entries {
			entries[i].AcceptsMetric = entries[i].AcceptsMetric || d.metricPrefixes
			entries[i].AcceptsBinary = entries[i].AcceptsBinary || d.binaryPrefixes
		}
	}

	return entries
}

// GetCanonicalUnitName returns the first alias accepting short
// prefixes, since that is the spelling a short-prefixed value should
// render with (e.g. "m" over "metre"); failing that, name itself.
func GetCanonicalUnitName(name string, decorators ...Decorator) string {
	for _, entry := range NameAndAliases(name, decorators...) {
		if entry.Accepts == AcceptsShort || entry.Accepts == AcceptsBoth {
			return entry.Name
		}
	}
	return name
}
