package scoring

import "strings"

// ComboRegistry is a read-only index of known combo cards, built once per
// run from the corpus store and never mutated afterwards.
type ComboRegistry struct {
	known    map[string]struct{}
	infinite map[string]struct{}
}

// NewComboRegistry builds a registry from the known combo-card names and
// the subset that participate in infinite combos. Names are matched
// case-insensitively; infinite names are implicitly known.
func NewComboRegistry(known, infinite []string) *ComboRegistry {
	r := &ComboRegistry{
		known:    make(map[string]struct{}, len(known)+len(infinite)),
		infinite: make(map[string]struct{}, len(infinite)),
	}
	for _, name := range known {
		r.known[normalizeName(name)] = struct{}{}
	}
	for _, name := range infinite {
		key := normalizeName(name)
		r.known[key] = struct{}{}
		r.infinite[key] = struct{}{}
	}
	return r
}

// IsKnown reports whether name is a known combo card.
func (r *ComboRegistry) IsKnown(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.known[normalizeName(name)]
	return ok
}

// IsInfinite reports whether name is a known infinite-combo piece.
func (r *ComboRegistry) IsInfinite(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.infinite[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
