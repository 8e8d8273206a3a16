// Package vocab interns term strings to the small dense uint32 ids
// pkg/daat and internal/memindex operate on.
package vocab

// Vocabulary is a two-way string <-> term id mapping, built up as new
// terms are observed during corpus ingestion.
type Vocabulary struct {
	ids   map[string]uint32
	terms []string
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{ids: make(map[string]uint32)}
}

// Intern returns term's id, assigning the next free id on first sight.
func (v *Vocabulary) Intern(term string) uint32 {
	if id, ok := v.ids[term]; ok {
		return id
	}
	id := uint32(len(v.terms))
	v.ids[term] = id
	v.terms = append(v.terms, term)
	return id
}

// Lookup returns term's id without interning it, and whether it exists.
func (v *Vocabulary) Lookup(term string) (uint32, bool) {
	id, ok := v.ids[term]
	return id, ok
}

// Term returns the string a term id was interned from.
func (v *Vocabulary) Term(id uint32) (string, bool) {
	if int(id) >= len(v.terms) {
		return "", false
	}
	return v.terms[id], true
}

// Len returns the number of distinct terms interned.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}
