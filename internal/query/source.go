package query

import "time"

// Lookup answers best-title and best-definition questions for the name
// registry builder, using the same ranking that serves Person and Entity
// queries. It implements names.Source.
type Lookup struct {
	ds  DataSource
	now func() time.Time
}

// NewLookup creates a Lookup over the given data layer
func NewLookup(ds DataSource) *Lookup {
	return &Lookup{ds: ds, now: time.Now}
}

// BestPersonTitle returns the top-ranked title for a person name, or ""
// when nothing is known about the name.
func (l *Lookup) BestPersonTitle(name string) (string, error) {
	rl, err := personTitles(l.ds, name, l.now())
	if err != nil {
		return "", err
	}
	if len(rl) == 0 {
		return "", nil
	}
	return rl[0].Answer, nil
}

// BestEntityDefinition returns the top-ranked definition for an entity
// name, or "" when nothing is known about the name.
func (l *Lookup) BestEntityDefinition(name string) (string, error) {
	rl, err := entityDefinitions(l.ds, name, l.now())
	if err != nil {
		return "", err
	}
	if len(rl) == 0 {
		return "", nil
	}
	return rl[0].Answer, nil
}
