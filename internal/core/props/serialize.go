package props

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/zeusync/scenekit/pkg/linear"
)

// Scalar lists the value types a Table can store directly.
type Scalar interface {
	string | bool | int | int32 | int64 | uint32 | uint64 | float32 | float64 |
		linear.Vec3 | linear.Quat | linear.Color
}

// Serialize moves a scalar between v and the property name.
//
// Writing: a value equal to def removes the property, anything else is
// stored in its text form. Reading: a present property is decoded into v,
// an absent one sets v to def and leaves the table untouched. A property
// that fails to decode also sets v to def; the failure is recorded and
// reported by Err.
func Serialize[T Scalar](t *Table, name string, v *T, def T) {
	if t.Writing() {
		if *v == def {
			t.Remove(name)
			return
		}
		t.Set(name, encodeScalar(*v))
		return
	}
	s, ok := t.Get(name)
	if !ok {
		*v = def
		return
	}
	if err := decodeScalar(s, v); err != nil {
		*v = def
		t.fail(fmt.Errorf("%w %q: %w", ErrDecode, name, err))
	}
}

// SerializeEnum stores an enum by name. names[i] is the name of value i.
func SerializeEnum[E ~int | ~uint8 | ~uint16 | ~uint32](t *Table, name string, v *E, def E, names []string) {
	if t.Writing() {
		if *v == def {
			t.Remove(name)
			return
		}
		i := int(*v)
		if i < 0 || i >= len(names) {
			t.fail(fmt.Errorf("%w %q: enum value %d out of range", ErrDecode, name, i))
			return
		}
		t.Set(name, names[i])
		return
	}
	s, ok := t.Get(name)
	if !ok {
		*v = def
		return
	}
	for i, n := range names {
		if strings.EqualFold(n, s) {
			*v = E(i)
			return
		}
	}
	*v = def
	t.fail(fmt.Errorf("%w %q: unknown enum value %q", ErrDecode, name, s))
}

// Object serializes obj through the nested table stored under name.
// In Writing mode a nested table left empty is removed again, so objects
// holding only default values leave no trace. In Reading mode an absent
// table is presented to obj as an empty one and is not added to t.
func (t *Table) Object(name string, obj Serializer) {
	sub := t.Sub(name)
	if t.Writing() {
		if sub == nil {
			sub = New(Writing)
			t.SetTable(name, sub)
		}
		obj.Serialize(sub)
		t.adopt(sub)
		if sub.Len() == 0 {
			t.Remove(name)
		}
		return
	}
	if sub == nil {
		sub = New(Reading)
	}
	obj.Serialize(sub)
	t.adopt(sub)
}

// SerializeList serializes an ordered list of objects under name.
//
// Writing: each element gets its own nested table keyed by its index, kept
// even when empty so the element count survives. An empty list removes the
// property.
//
// Reading: one element per nested table, in index order. Element i reuses
// (*list)[i] when present and calls create otherwise, so existing objects
// keep their identity. The result replaces *list; an absent property
// yields an empty list.
func SerializeList[T Serializer](t *Table, name string, list *[]T, create func() T) {
	if t.Writing() {
		if len(*list) == 0 {
			t.Remove(name)
			return
		}
		sub := New(Writing)
		for i, elem := range *list {
			et := New(Writing)
			elem.Serialize(et)
			sub.adopt(et)
			sub.SetTable(strconv.Itoa(i), et)
		}
		t.adopt(sub)
		t.SetTable(name, sub)
		return
	}
	old := *list
	var out []T
	sub := t.Sub(name)
	if sub != nil {
		for _, p := range listEntries(sub) {
			if !p.isTable() {
				t.fail(fmt.Errorf("%w %q: list entry %q is not a table", ErrDecode, name, p.name))
				continue
			}
			var elem T
			if n := len(out); n < len(old) {
				elem = old[n]
			} else {
				elem = create()
			}
			elem.Serialize(p.table)
			t.adopt(p.table)
			out = append(out, elem)
		}
	}
	*list = out
}

// listEntries returns the entries of a list table ordered by their index
// key. Merging a baseline into a delta appends the entries the delta had
// stripped, so stored order alone does not reflect list order. Keys that
// are not indexes follow in stored order.
func listEntries(sub *Table) []property {
	entries := slices.Clone(sub.props)
	slices.SortStableFunc(entries, func(a, b property) int {
		return cmp.Compare(listIndex(a.name), listIndex(b.name))
	})
	return entries
}

func listIndex(key string) int {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 {
		return math.MaxInt
	}
	return i
}

func encodeScalar[T Scalar](v T) string {
	switch x := any(v).(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case linear.Vec3:
		return x.String()
	case linear.Quat:
		return x.String()
	case linear.Color:
		return x.String()
	}
	panic(fmt.Sprintf("props: unsupported scalar %T", v))
}

func decodeScalar[T Scalar](s string, dst *T) (err error) {
	switch p := any(dst).(type) {
	case *string:
		*p = s
	case *bool:
		*p, err = parseBool(s)
	case *int:
		*p, err = strconv.Atoi(s)
	case *int32:
		var x int64
		x, err = strconv.ParseInt(s, 10, 32)
		*p = int32(x)
	case *int64:
		*p, err = strconv.ParseInt(s, 10, 64)
	case *uint32:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 32)
		*p = uint32(x)
	case *uint64:
		*p, err = strconv.ParseUint(s, 10, 64)
	case *float32:
		var x float64
		x, err = strconv.ParseFloat(s, 32)
		*p = float32(x)
	case *float64:
		*p, err = strconv.ParseFloat(s, 64)
	case *linear.Vec3:
		*p, err = linear.ParseVec3(s)
	case *linear.Quat:
		*p, err = linear.ParseQuat(s)
	case *linear.Color:
		*p, err = linear.ParseColor(s)
	default:
		panic(fmt.Sprintf("props: unsupported scalar %T", dst))
	}
	return err
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
