// internal/parser/presence.go
package parser

// Presence reports which keys of a section were found in the payload.
// A key counts as found when its `"key":` pattern occurs in the section,
// even if the value itself was dropped (empty or too long).
type Presence struct {
	section string
	keys    []string
	bits    uint64
}

// Section returns the section name the report belongs to.
func (p Presence) Section() string { return p.section }

// Has reports whether key was found.
func (p Presence) Has(key string) bool {
	for i, k := range p.keys {
		if k == key {
			return p.bits&(1<<uint(i)) != 0
		}
	}
	return false
}

// Found returns the found keys in declaration order.
func (p Presence) Found() []string { return p.filter(true) }

// Missing returns the known keys that were not found.
func (p Presence) Missing() []string { return p.filter(false) }

// Count returns the number of found keys.
func (p Presence) Count() int {
	n := 0
	for i := range p.keys {
		if p.bits&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}

// Complete reports whether every known key was found.
func (p Presence) Complete() bool { return len(p.keys) > 0 && p.Count() == len(p.keys) }

func (p Presence) filter(found bool) []string {
	var out []string
	for i, k := range p.keys {
		if (p.bits&(1<<uint(i)) != 0) == found {
			out = append(out, k)
		}
	}
	return out
}
