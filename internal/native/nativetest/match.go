package nativetest

import (
	"slices"

	"github.com/dynoinc/sdjournal/internal/recordio"
)

// matchTerm holds the values accepted per field. Values of the same field
// are alternatives, different fields must all match.
type matchTerm struct {
	fields []string
	values map[string][][]byte
}

func (t *matchTerm) add(field string, value []byte) {
	vs, ok := t.values[field]
	if !ok {
		t.fields = append(t.fields, field)
	}
	for _, v := range vs {
		if string(v) == string(value) {
			return
		}
	}
	t.values[field] = append(vs, slices.Clone(value))
}

func (t *matchTerm) match(e *Entry) bool {
	for _, f := range t.fields {
		ok := slices.ContainsFunc(t.values[f], func(v []byte) bool { return e.has(f, v) })
		if !ok {
			return false
		}
	}
	return true
}

// matches is the expression built by AddMatch, AddDisjunction and
// AddConjunction: an AND of OR groups, each an OR of terms.
type matches struct {
	groups    [][]*matchTerm
	groupOpen bool
	termOpen  bool
}

func (m *matches) add(data []byte) bool {
	r, err := recordio.Split(data)
	if err != nil || !recordio.ValidFieldName(r.Field) {
		return false
	}

	if !m.groupOpen {
		m.groups = append(m.groups, nil)
		m.groupOpen = true
		m.termOpen = false
	}
	g := len(m.groups) - 1
	if !m.termOpen {
		m.groups[g] = append(m.groups[g], &matchTerm{values: make(map[string][][]byte)})
		m.termOpen = true
	}
	terms := m.groups[g]
	terms[len(terms)-1].add(r.Field, r.Value)
	return true
}

// disjunction closes the current term. A following match opens a new
// alternative in the same group.
func (m *matches) disjunction() {
	if !m.groupOpen || !m.termOpen {
		return
	}
	m.termOpen = false
}

// conjunction closes the current group. A following match opens a new group
// that must match as well.
func (m *matches) conjunction() {
	if !m.groupOpen {
		return
	}
	m.groupOpen = false
	m.termOpen = false
}

func (m *matches) flush() {
	*m = matches{}
}

func (m *matches) match(e *Entry) bool {
	for _, group := range m.groups {
		if !slices.ContainsFunc(group, func(t *matchTerm) bool { return t.match(e) }) {
			return false
		}
	}
	return true
}
