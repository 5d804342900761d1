package names

import "strings"

// KeyedTable is any name-keyed table the canonicalizer can operate on:
// the name registry, or an answer bucket table keyed by person names.
type KeyedTable interface {
	Has(name string) bool
	Keys() []string
	Rename(old, new string)
}

// ResolveKey returns the registry key that should be updated with data
// about the given person name. This may be an existing key within the
// registry or the given name itself (a new key to insert).
//
// These are all the same person, respectively:
//
//	Dagur Bergþóruson Eggertsson  / Lilja Dögg Alfreðsdóttir
//	Dagur B. Eggertsson           / Lilja D. Alfreðsdóttir
//	Dagur B Eggertsson            / Lilja D Alfreðsdóttir
//	Dagur Eggertsson              / Lilja Alfreðsdóttir
//
// When the incoming name is more specific than an existing key (a longer
// set of middle names), the existing entry migrates to the new key and the
// old key is deleted.
func ResolveKey(reg KeyedTable, name string) string {
	if reg.Has(name) {
		// The exact same name is already there: update it as-is
		return name
	}
	nparts := strings.Fields(name)
	if len(nparts) == 0 {
		return name
	}
	mn := nparts[1 : len(nparts)-1] // Middle names

	// Check whether the same person is already in the registry under a
	// slightly different name
	for _, k := range reg.Keys() {
		parts := strings.Fields(k)
		if len(parts) == 0 {
			continue
		}
		if nparts[0] != parts[0] || nparts[len(nparts)-1] != parts[len(parts)-1] {
			// First or last names differ: not the same person.
			// No fuzzy matching here; Levenshtein distance could be
			// added but is deliberately out of scope.
			continue
		}

		// Same first and last names.
		// If the name to be added has no middle name, it is judged to be
		// already in the registry and the existing key is kept.
		if len(mn) == 0 {
			return k
		}
		mp := parts[1 : len(parts)-1]
		if len(mp) == 0 {
			// The new name has a middle name which the old one didn't:
			// assume the same person but migrate to the more specific key
			reg.Rename(k, name)
			return name
		}

		// Both have middle names
		cnp := allCorrespond(mn, mp)
		cpn := allCorrespond(mp, mn)
		if cnp || cpn {
			// For at least one direction a→b or b→a, every middle name
			// has a correspondence: same person
			if moreSpecific(mn, mp) {
				// The new name is more specific: it becomes the key
				reg.Rename(k, name)
				return name
			}
			return k
		}

		// A middle name without correspondence in either direction:
		// judged to be different people. Continue scanning.
	}

	// No identical or corresponding name found: the name is a new key
	return name
}

// moreSpecific reports whether the middle-name set mn is more specific
// than mp: more middle names, or equally many but spelled out at greater
// length ("Bergþóruson" beats "B."). Exact ties keep the existing key.
func moreSpecific(mn, mp []string) bool {
	if len(mn) != len(mp) {
		return len(mn) > len(mp)
	}
	return runeLen(mn) > runeLen(mp)
}

func runeLen(list []string) int {
	n := 0
	for _, s := range list {
		n += len([]rune(strings.TrimSuffix(s, ".")))
	}
	return n
}

// allCorrespond reports whether every middle name in ns has a
// correspondence in ms.
func allCorrespond(ns, ms []string) bool {
	for _, n := range ns {
		if !hasCorrespondence(n, ms) {
			return false
		}
	}
	return true
}

// hasCorrespondence reports whether the middle name or abbreviation n can
// correspond to any middle name or abbreviation in list. "Bergþóruson",
// "B." and "B" all correspond; comparison is by prefix in either direction
// after stripping a trailing period.
func hasCorrespondence(n string, list []string) bool {
	n = strings.TrimSuffix(n, ".")
	for _, m := range list {
		m = strings.TrimSuffix(m, ".")
		if n == m || strings.HasPrefix(n, m) || strings.HasPrefix(m, n) {
			return true
		}
	}
	return false
}
