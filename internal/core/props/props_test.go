package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/pkg/linear"
)

type pose struct {
	position linear.Vec3
	scale    linear.Vec3
}

func (p *pose) Serialize(t *Table) {
	Serialize(t, "position", &p.position, linear.Zero3)
	Serialize(t, "scale", &p.scale, linear.One3)
}

type unit struct {
	name   string
	health int
	speed  float32
	alive  bool
	pose   pose
}

func (u *unit) Serialize(t *Table) {
	Serialize(t, "name", &u.name, "")
	Serialize(t, "health", &u.health, 50)
	Serialize(t, "speed", &u.speed, 1)
	Serialize(t, "alive", &u.alive, true)
	t.Object("pose", &u.pose)
}

func write(s Serializer) *Table {
	t := New(Writing)
	s.Serialize(t)
	return t
}

func TestDefaultsAreNotWritten(t *testing.T) {
	tbl := write(&unit{health: 50, speed: 1, alive: true, pose: pose{scale: linear.One3}})
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.String())
}

func TestWritingDefaultRemovesExistingEntry(t *testing.T) {
	tbl := New(Writing)
	hp := 30
	Serialize(tbl, "health", &hp, 50)
	require.True(t, tbl.Has("health"))

	hp = 50
	Serialize(tbl, "health", &hp, 50)
	assert.False(t, tbl.Has("health"))
}

func TestReadingMissingYieldsDefaultWithoutMutation(t *testing.T) {
	tbl := New(Reading)
	hp := 7
	Serialize(tbl, "health", &hp, 50)
	assert.Equal(t, 50, hp)
	assert.Zero(t, tbl.Len())
}

func TestTransformScenario(t *testing.T) {
	src := &pose{position: linear.Vec3{1, 2, 3}, scale: linear.One3}
	text := write(src).String()
	assert.Contains(t, text, "position = 1 2 3")
	assert.NotContains(t, text, "scale")

	parsed, err := ParseString(text)
	require.NoError(t, err)
	var got pose
	got.Serialize(parsed)
	require.NoError(t, parsed.Err())
	assert.Equal(t, linear.Vec3{1, 2, 3}, got.position)
	assert.Equal(t, linear.One3, got.scale)
}

func TestRoundTrip(t *testing.T) {
	src := &unit{
		name:   "heli 1",
		health: 30,
		speed:  2.5,
		alive:  false,
		pose:   pose{position: linear.Vec3{0, 10, 0}, scale: linear.Vec3{2, 2, 2}},
	}
	parsed, err := ParseString(write(src).String())
	require.NoError(t, err)

	var got unit
	got.Serialize(parsed)
	require.NoError(t, parsed.Err())
	assert.Equal(t, *src, got)
}

func TestObjectPrunesEmptySubTable(t *testing.T) {
	tbl := write(&unit{name: "x", health: 50, speed: 1, alive: true, pose: pose{scale: linear.One3}})
	assert.Equal(t, []string{"name"}, tbl.Names())
	assert.Nil(t, tbl.Sub("pose"))
}

func TestDecodeFailureFallsBackToDefault(t *testing.T) {
	tbl, err := ParseString("health = lots\nname = ok\n")
	require.NoError(t, err)
	var u unit
	u.Serialize(tbl)
	assert.Equal(t, 50, u.health)
	assert.Equal(t, "ok", u.name)
	assert.ErrorIs(t, tbl.Err(), ErrDecode)
}

type item struct{ id int }

func (i *item) Serialize(t *Table) { Serialize(t, "id", &i.id, 0) }

func TestSerializeListPreservesOrderAndIdentity(t *testing.T) {
	items := []*item{{id: 3}, {id: 0}, {id: 3}}
	tbl := New(Writing)
	SerializeList(tbl, "items", &items, nil)
	sub := tbl.Sub("items")
	require.NotNil(t, sub)
	assert.Equal(t, []string{"0", "1", "2"}, sub.Names())
	assert.Zero(t, sub.Sub("1").Len(), "all-default element is kept as an empty table")

	parsed, err := ParseString(tbl.String())
	require.NoError(t, err)

	first := &item{id: 99}
	got := []*item{first}
	created := 0
	SerializeList(parsed, "items", &got, func() *item { created++; return new(item) })
	require.Len(t, got, 3)
	assert.Same(t, first, got[0])
	assert.Equal(t, 2, created)
	assert.Equal(t, []int{3, 0, 3}, []int{got[0].id, got[1].id, got[2].id})
}

func TestSerializeListReadsInIndexOrderAfterMerge(t *testing.T) {
	list := func(ids ...int) *Table {
		items := make([]*item, len(ids))
		for i, id := range ids {
			items[i] = &item{id: id}
		}
		tbl := New(Writing)
		SerializeList(tbl, "items", &items, nil)
		return tbl
	}
	base := list(1, 2)
	delta := list(1, 2, 5)
	delta.DeltaCompress(base)
	assert.Equal(t, []string{"2"}, delta.Sub("items").Names())

	parsed, err := ParseString(delta.String())
	require.NoError(t, err)
	parsed.AddPropertyData(base, false)
	require.Equal(t, []string{"2", "0", "1"}, parsed.Sub("items").Names())

	a, b := &item{}, &item{}
	got := []*item{a, b}
	SerializeList(parsed, "items", &got, func() *item { return new(item) })
	require.Len(t, got, 3)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
	assert.Equal(t, []int{1, 2, 5}, []int{got[0].id, got[1].id, got[2].id})
}

func TestSerializeListOrdersIndexesNumerically(t *testing.T) {
	parsed, err := ParseString("items {\n    10 {\n        id = 10\n    }\n    2 {\n        id = 2\n    }\n}\n")
	require.NoError(t, err)
	var got []*item
	SerializeList(parsed, "items", &got, func() *item { return new(item) })
	require.Len(t, got, 2)
	assert.Equal(t, []int{2, 10}, []int{got[0].id, got[1].id})
}

func TestSerializeListEmpty(t *testing.T) {
	tbl := New(Writing)
	tbl.Set("items", "stale")
	var none []*item
	SerializeList(tbl, "items", &none, nil)
	assert.False(t, tbl.Has("items"))

	got := []*item{{id: 1}}
	SerializeList(New(Reading), "items", &got, func() *item { return new(item) })
	assert.Empty(t, got)
}

type mode int

const (
	modeOff mode = iota
	modeIdle
	modeAttack
)

var modeNames = []string{"off", "idle", "attack"}

func TestSerializeEnum(t *testing.T) {
	tbl := New(Writing)
	m := modeAttack
	SerializeEnum(tbl, "mode", &m, modeOff, modeNames)
	v, _ := tbl.Get("mode")
	assert.Equal(t, "attack", v)

	tbl.SetMode(Reading)
	m = modeOff
	SerializeEnum(tbl, "mode", &m, modeIdle, modeNames)
	assert.Equal(t, modeAttack, m)

	tbl.Set("mode", "sleep")
	SerializeEnum(tbl, "mode", &m, modeIdle, modeNames)
	assert.Equal(t, modeIdle, m)
	assert.ErrorIs(t, tbl.Err(), ErrDecode)
}

func TestInvalidNameIsRecorded(t *testing.T) {
	tbl := New(Writing)
	tbl.Set("bad name", "1")
	assert.False(t, tbl.Has("bad name"))
	assert.ErrorIs(t, tbl.Err(), ErrInvalidName)
}

func TestErrorsBubbleFromNestedObjects(t *testing.T) {
	tbl, err := ParseString("pose {\n    scale = wide\n}\n")
	require.NoError(t, err)
	var u unit
	u.Serialize(tbl)
	assert.Equal(t, linear.One3, u.pose.scale)
	assert.ErrorIs(t, tbl.Err(), ErrDecode)
}
