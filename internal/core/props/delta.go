package props

import "github.com/cespare/xxhash/v2"

// DeltaCompress removes from t every entry equal to the entry of the same
// name in base. Nested tables present on both sides are compressed
// recursively and dropped once nothing is left in them, so only the paths
// to values that differ from base remain.
func (t *Table) DeltaCompress(base *Table) {
	if base == nil {
		return
	}
	for i := 0; i < len(t.props); {
		p := t.props[i]
		bp, ok := base.lookup(p.name)
		if ok {
			switch {
			case !p.isTable() && !bp.isTable() && p.value == bp.value:
				t.removeAt(i)
				continue
			case p.isTable() && bp.isTable():
				p.table.DeltaCompress(bp.table)
				if p.table.Len() == 0 {
					t.removeAt(i)
					continue
				}
			}
		}
		i++
	}
}

// AddPropertyData merges the entries of other into t. Without overwrite
// only gaps are filled, recursing into nested tables present on both sides;
// entries already in t win. With overwrite, entries of other replace those
// of t outright. Merged-in tables are deep copies in t's mode.
func (t *Table) AddPropertyData(other *Table, overwrite bool) {
	if other == nil {
		return
	}
	for _, op := range other.props {
		p, ok := t.lookup(op.name)
		switch {
		case !ok || overwrite:
			t.put(op.cloneIn(t.mode))
		case p.isTable() && op.isTable():
			p.table.AddPropertyData(op.table, false)
		}
	}
}

func (p property) cloneIn(mode Mode) property {
	if p.isTable() {
		c := p.table.Clone()
		c.SetMode(mode)
		return property{name: p.name, table: c}
	}
	return p
}

// Clone returns a deep copy of t without its recorded errors.
func (t *Table) Clone() *Table {
	c := &Table{
		mode:  t.mode,
		props: make([]property, len(t.props)),
		index: make(map[string]int, len(t.props)),
	}
	for i, p := range t.props {
		c.props[i] = p.cloneIn(t.mode)
		c.index[p.name] = i
	}
	return c
}

// Equal reports whether t and o hold the same names with recursively equal
// values. Order and mode are ignored.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.props) != len(o.props) {
		return false
	}
	for _, p := range t.props {
		op, ok := o.lookup(p.name)
		if !ok || p.isTable() != op.isTable() {
			return false
		}
		if p.isTable() {
			if !p.table.Equal(op.table) {
				return false
			}
		} else if p.value != op.value {
			return false
		}
	}
	return true
}

// Hash fingerprints the text form of t. Tables with identical text hash
// identically; property order is significant.
func (t *Table) Hash() uint64 {
	return xxhash.Sum64String(t.String())
}
