// Package names resolves person and entity names against a request-scoped
// registry. It decides when two differently spelled names denote the same
// person ("Dagur B. Eggertsson" / "Dagur Bergþóruson Eggertsson") and
// builds a name → best title/definition table from a token stream.
package names

import "fmt"

// Kind tags a registry entry
type Kind int

const (
	// KindName is a resolved person name with an optional title
	KindName Kind = iota
	// KindEntity is a resolved entity name with an optional definition
	KindEntity
	// KindRef is an alias pointing at a fuller key in the same registry
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindEntity:
		return "entity"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Entry is a registry value: either a resolved title/definition
// (KindName/KindEntity, Title possibly empty when unresolved) or an alias
// to a fuller key (KindRef with Fullname set).
type Entry struct {
	Kind     Kind
	Title    string
	Fullname string
}

// Registry maps display names to entries. It preserves insertion order so
// that downstream iteration (and the linear scans of ResolveKey) are
// deterministic. A registry is request-scoped and not safe for concurrent
// mutation.
type Registry struct {
	entries map[string]Entry
	keys    []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Len returns the number of live keys
func (r *Registry) Len() int { return len(r.keys) }

// Has reports whether name is a live key
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Get returns the entry for name
func (r *Registry) Get(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Keys returns the live keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (r *Registry) Keys() []string { return r.keys }

// Set inserts or overwrites the entry for name. Ref entries must point
// directly at an existing non-ref key: alias chains of depth > 1 are a
// registry corruption and are rejected.
func (r *Registry) Set(name string, e Entry) error {
	if e.Kind == KindRef {
		target, ok := r.entries[e.Fullname]
		if !ok {
			return fmt.Errorf("ref %q points at missing key %q", name, e.Fullname)
		}
		if target.Kind == KindRef {
			return fmt.Errorf("ref %q points at ref %q", name, e.Fullname)
		}
	}
	if _, ok := r.entries[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.entries[name] = e
	return nil
}

// Rename moves the entry stored under old to the key new and deletes old.
// The new key is appended at the end of the iteration order.
func (r *Registry) Rename(old, new string) {
	e, ok := r.entries[old]
	if !ok || old == new {
		return
	}
	delete(r.entries, old)
	for i, k := range r.keys {
		if k == old {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	if _, ok := r.entries[new]; !ok {
		r.keys = append(r.keys, new)
	}
	r.entries[new] = e
}

// Resolve follows a ref entry to its target; non-ref entries are returned
// as-is. Refs are depth 1 by construction, so a single hop suffices.
func (r *Registry) Resolve(name string) (string, Entry, bool) {
	e, ok := r.entries[name]
	if !ok {
		return "", Entry{}, false
	}
	if e.Kind == KindRef {
		target, ok := r.entries[e.Fullname]
		if !ok {
			return "", Entry{}, false
		}
		return e.Fullname, target, true
	}
	return name, e, true
}
