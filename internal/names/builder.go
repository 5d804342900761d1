package names

import (
	"strings"

	"github.com/ornolfur/spyrja/internal/model"
)

// Source looks up the best known title for a person or definition for an
// entity. Lookups hit the article corpus; an empty string means nothing
// is known about the name.
type Source interface {
	BestPersonTitle(name string) (string, error)
	BestEntityDefinition(name string) (string, error)
}

// Build assembles a registry of the person and entity names occurring in
// the token list. When allNames is true, names are registered even if no
// title or definition was found for them.
func Build(tokens []model.Token, src Source, allNames bool) (*Registry, error) {
	reg := NewRegistry()
	for _, t := range tokens {
		switch t.Kind {
		case model.TokPerson:
			for _, pn := range t.Names {
				if err := addName(reg, pn.Name, src, allNames); err != nil {
					return nil, err
				}
			}
		case model.TokEntity:
			if err := addEntity(reg, t.Text, src, allNames); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// addName registers a person name with its best known title
func addName(reg *Registry, name string, src Source, allNames bool) error {
	if reg.Has(name) {
		// Already have a title for this exact name
		return nil
	}
	title, err := src.BestPersonTitle(name)
	if err != nil {
		return err
	}
	key := ResolveKey(reg, name)
	if title != "" {
		return reg.Set(key, Entry{Kind: KindName, Title: title})
	}
	if allNames {
		return reg.Set(key, Entry{Kind: KindName})
	}
	return nil
}

// addEntity registers an entity name with its best known definition.
// A single-token name that matches the trailing token of a longer
// registered key becomes a ref alias instead ('Clinton' referring back to
// 'Hillary Rodham Clinton'), including a possessive-'s' variant
// ('Clintons' referring to 'Clinton').
func addEntity(reg *Registry, name string, src Source, allNames bool) error {
	if reg.Has(name) {
		return nil
	}
	if !strings.Contains(name, " ") {
		if full, ok := trailingMatch(reg, name); ok {
			return reg.Set(name, Entry{Kind: KindRef, Fullname: full})
		}
		if strings.HasSuffix(name, "s") {
			if full, ok := trailingMatch(reg, name[:len(name)-1]); ok {
				return reg.Set(name, Entry{Kind: KindRef, Fullname: full})
			}
		}
	}
	definition, err := src.BestEntityDefinition(name)
	if err != nil {
		return err
	}
	if definition != "" {
		return reg.Set(name, Entry{Kind: KindEntity, Title: definition})
	}
	if allNames {
		return reg.Set(name, Entry{Kind: KindEntity})
	}
	return nil
}

// trailingMatch finds a multi-part registered key whose last token equals
// name. Ref entries are skipped so that aliases never chain.
func trailingMatch(reg *Registry, name string) (string, bool) {
	for _, k := range reg.Keys() {
		if e, ok := reg.Get(k); !ok || e.Kind == KindRef {
			continue
		}
		parts := strings.Fields(k)
		if len(parts) > 1 && parts[len(parts)-1] == name {
			return k, true
		}
	}
	return "", false
}
