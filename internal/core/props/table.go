// Package props implements the property table used to persist scenes and
// prefabs: an ordered bag of named scalar values and nested tables that
// serializable objects read from or write to, depending on its mode.
package props

import (
	"errors"
	"slices"
	"strings"
)

// Mode selects the direction of a serialize traversal.
type Mode uint8

const (
	Reading Mode = iota
	Writing
)

func (m Mode) String() string {
	if m == Writing {
		return "writing"
	}
	return "reading"
}

// Serializer is implemented by everything that persists itself through a
// Table. Serialize must be symmetric: feeding the table produced in Writing
// mode back in Reading mode restores the same observable state.
type Serializer interface {
	Serialize(t *Table)
}

type property struct {
	name  string
	value string
	table *Table
}

func (p property) isTable() bool { return p.table != nil }

// Table is an ordered set of uniquely named properties. Each property holds
// either a string-encoded scalar or a nested Table.
type Table struct {
	mode  Mode
	props []property
	index map[string]int
	errs  []error
}

// New returns an empty table in the given mode.
func New(mode Mode) *Table {
	return &Table{mode: mode, index: make(map[string]int)}
}

func (t *Table) Mode() Mode { return t.mode }

// SetMode changes the mode of t and of every nested table.
func (t *Table) SetMode(mode Mode) {
	t.mode = mode
	for _, p := range t.props {
		if p.isTable() {
			p.table.SetMode(mode)
		}
	}
}

func (t *Table) Reading() bool { return t.mode == Reading }
func (t *Table) Writing() bool { return t.mode == Writing }

// Len returns the number of top-level properties held.
func (t *Table) Len() int { return len(t.props) }

// Names returns the top-level property names in stored order.
func (t *Table) Names() []string {
	names := make([]string, len(t.props))
	for i, p := range t.props {
		names[i] = p.name
	}
	return names
}

// TableNames returns the names of the nested tables only, in stored order.
func (t *Table) TableNames() []string {
	var names []string
	for _, p := range t.props {
		if p.isTable() {
			names = append(names, p.name)
		}
	}
	return names
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) lookup(name string) (property, bool) {
	i, ok := t.index[name]
	if !ok {
		return property{}, false
	}
	return t.props[i], true
}

// Get returns the raw scalar stored under name.
func (t *Table) Get(name string) (string, bool) {
	p, ok := t.lookup(name)
	if !ok || p.isTable() {
		return "", false
	}
	return p.value, true
}

// Sub returns the nested table stored under name, or nil.
func (t *Table) Sub(name string) *Table {
	p, ok := t.lookup(name)
	if !ok {
		return nil
	}
	return p.table
}

// Set stores a raw scalar, replacing whatever was stored under name.
func (t *Table) Set(name, value string) {
	if err := checkName(name); err != nil {
		t.fail(err)
		return
	}
	t.put(property{name: name, value: value})
}

// SetTable stores sub under name, replacing whatever was stored there.
func (t *Table) SetTable(name string, sub *Table) {
	if err := checkName(name); err != nil {
		t.fail(err)
		return
	}
	t.put(property{name: name, table: sub})
}

func (t *Table) put(p property) {
	if i, ok := t.index[p.name]; ok {
		t.props[i] = p
		return
	}
	t.index[p.name] = len(t.props)
	t.props = append(t.props, p)
}

// Remove deletes the property stored under name and reports whether it existed.
func (t *Table) Remove(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.removeAt(i)
	return true
}

func (t *Table) removeAt(i int) {
	delete(t.index, t.props[i].name)
	t.props = slices.Delete(t.props, i, i+1)
	for j := i; j < len(t.props); j++ {
		t.index[t.props[j].name] = j
	}
}

// Clear drops every property and recorded error. The mode is kept.
func (t *Table) Clear() {
	t.props = nil
	t.index = make(map[string]int)
	t.errs = nil
}

// Err returns the decode and naming errors recorded during serialize
// traversals of t and its nested tables, or nil.
func (t *Table) Err() error {
	return errors.Join(t.errs...)
}

func (t *Table) fail(err error) {
	t.errs = append(t.errs, err)
}

// adopt moves the errors recorded on sub into t.
func (t *Table) adopt(sub *Table) {
	if len(sub.errs) > 0 {
		t.errs = append(t.errs, sub.errs...)
		sub.errs = nil
	}
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n={}\"#") || strings.HasPrefix(name, "//") {
		return &nameError{name}
	}
	return nil
}

type nameError struct{ name string }

func (e *nameError) Error() string { return "props: invalid property name " + quote(e.name) }
func (e *nameError) Unwrap() error { return ErrInvalidName }
