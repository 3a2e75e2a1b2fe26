package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/pkg/linear"
)

func TestFactory(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"Health", "Shield", TransformName}, f.ctx.Factory.Names())
	assert.True(t, f.ctx.Factory.Has("Health"))

	g := f.object(t, "g")
	assert.Nil(t, f.ctx.Factory.Create(g, "Nope"))
	assert.Len(t, g.Components(), 1)

	c := f.ctx.Factory.Create(g, "Health")
	require.NotNil(t, c)
	assert.Same(t, g, c.GameObject())
	assert.Equal(t, "Health", c.TypeName())
	assert.True(t, c.UpdateEnabled())
}

func TestAddRemoveComponent(t *testing.T) {
	f := newFixture(t)
	g := f.object(t, "g", "Health")

	_, err := g.AddComponent("Health")
	assert.ErrorIs(t, err, ErrDuplicateComponent)
	_, err = g.AddComponent("Nope")
	assert.ErrorIs(t, err, ErrUnknownComponent)

	assert.ErrorIs(t, g.RemoveComponent(g.Transform()), ErrTransformRequired)

	h := g.FindComponent("Health")
	require.NoError(t, g.RemoveComponent(h))
	assert.Nil(t, g.FindComponent("Health"))
	assert.True(t, h.(*health).Destroyed())
	assert.ErrorIs(t, g.RemoveComponent(h), ErrNotAttached)
}

func TestGameObjectRoundTrip(t *testing.T) {
	f := newFixture(t)
	root := f.object(t, "root", "Health")
	root.FindComponent("Health").(*health).hp = 30
	root.Transform().SetPosition(linear.Vec3{4, 5, 6})

	kid := f.object(t, "kid", "Shield")
	kid.FindComponent("Shield").(*shield).radius = 10
	require.NoError(t, kid.SetParent(root))
	grandkid := f.object(t, "grandkid")
	require.NoError(t, grandkid.SetParent(kid))

	in := reparse(t, written(root))

	back := newGameObject(f.ctx, "")
	back.Serialize(in)
	back.register()
	require.NoError(t, in.Err())

	assert.Equal(t, "root", back.Name())
	assert.Equal(t, 30, hpOf(t, back))
	assert.Equal(t, linear.Vec3{4, 5, 6}, back.Transform().Position())

	kids := back.Children()
	require.Len(t, kids, 1)
	assert.Equal(t, "kid", kids[0].Name())
	s, ok := GetComponent[*shield](kids[0])
	require.True(t, ok)
	assert.Equal(t, float32(10), s.radius)

	grand := kids[0].Children()
	require.Len(t, grand, 1)
	assert.Equal(t, "grandkid", grand[0].Name())
	assert.Len(t, grand[0].Components(), 1)

	// writing the rebuilt graph gives the same table
	assert.True(t, written(back).Equal(written(root)))
}

func TestComponentPresenceSync(t *testing.T) {
	f := newFixture(t)
	g := f.object(t, "g", "Health", "Shield")
	h := g.FindComponent("Health")
	s := g.FindComponent("Shield")

	in, err := props.ParseString("name = g\nHealth {\n    health = 20\n}\n")
	require.NoError(t, err)
	g.Serialize(in)

	assert.Same(t, h, g.FindComponent("Health"))
	assert.Equal(t, 20, hpOf(t, g))
	assert.Nil(t, g.FindComponent("Shield"))
	assert.True(t, s.(*shield).Destroyed())
	assert.NotNil(t, g.Transform())
}

func TestChildrenAreNotImplicitlyDestroyed(t *testing.T) {
	f := newFixture(t)
	g := f.object(t, "g")
	kid := f.object(t, "kid")
	require.NoError(t, kid.SetParent(g))

	g.Serialize(props.New(props.Reading))
	assert.Equal(t, []*GameObject{kid}, g.Children())
	assert.False(t, kid.Destroyed())
}

func TestReadReusesChildrenByPosition(t *testing.T) {
	f := newFixture(t)
	g := f.object(t, "g")
	kid := f.object(t, "old")
	require.NoError(t, kid.SetParent(g))

	in, err := props.ParseString("children {\n    0 {\n        name = first\n    }\n    1 {\n        name = second\n    }\n}\n")
	require.NoError(t, err)
	g.Serialize(in)

	kids := g.Children()
	require.Len(t, kids, 2)
	assert.Same(t, kid, kids[0])
	assert.Equal(t, "first", kids[0].Name())
	assert.Equal(t, "second", kids[1].Name())
	assert.Contains(t, f.ctx.Manager.GameObjects(), kids[1])
}

func TestChildThatCannotBeReparentedIsDestroyed(t *testing.T) {
	f := newFixture(t)
	k := newGameObject(f.ctx, "k")
	_, err := k.AddComponent("Health")
	require.NoError(t, err)
	h := k.FindComponent("Health").(*health)

	g := f.object(t, "g")
	require.NoError(t, g.SetParent(k))

	assert.False(t, g.adoptChild(k))
	assert.True(t, k.Destroyed())
	assert.True(t, h.Destroyed())
	assert.Empty(t, k.Components())
	assert.NotContains(t, f.ctx.Manager.GameObjects(), k)
}

func TestUnknownComponentIsDropped(t *testing.T) {
	f := newFixture(t)
	in, err := props.ParseString("name = g\nMystery {\n    x = 1\n}\nHealth {\n    health = 5\n}\n")
	require.NoError(t, err)

	g := newGameObject(f.ctx, "")
	g.Serialize(in)
	assert.Nil(t, g.FindComponent("Mystery"))
	assert.Equal(t, 5, hpOf(t, g))
}

func TestHiddenChildrenAreNotWritten(t *testing.T) {
	f := newFixture(t)
	g := f.object(t, "g")
	hidden := f.object(t, "hidden")
	hidden.AddFlags(NotShownOrSaved)
	require.NoError(t, hidden.SetParent(g))

	assert.False(t, written(g).Has(keyChildren))
}

func TestDestroy(t *testing.T) {
	f := newFixture(t)
	var deleted []string
	_, err := f.bus.Subscribe(bus.GameObjectDeleted, func(e bus.Event) error {
		deleted = append(deleted, e.Data.(bus.GameObjectInfo).Name)
		return nil
	})
	require.NoError(t, err)

	parent := f.object(t, "parent", "Health")
	child := f.object(t, "child", "Health")
	require.NoError(t, child.SetParent(parent))

	var order []string
	parent.FindComponent("Health").(*health).onDestroy = func() {
		order = append(order, "parent")
		assert.NotNil(t, parent.Transform())
	}
	child.FindComponent("Health").(*health).onDestroy = func() { order = append(order, "child") }

	parent.Destroy()
	assert.Equal(t, []string{"child", "parent"}, order)
	assert.Equal(t, []string{"child", "parent"}, deleted)
	assert.Empty(t, f.ctx.Manager.GameObjects())
	assert.True(t, child.Destroyed())
	assert.True(t, parent.Transform().Destroyed())
	assert.Empty(t, parent.Components())

	parent.Destroy()
	assert.Len(t, deleted, 2)
}

func TestFlags(t *testing.T) {
	var fl Flags
	fl |= NotSavedInScene | SurviveSceneChanges
	assert.True(t, fl.Has(NotSavedInScene))
	assert.True(t, fl.Has(NotSavedInScene|SurviveSceneChanges))
	assert.False(t, fl.Has(NotShownOrSaved))

	f := newFixture(t)
	g := f.object(t, "g")
	g.AddFlags(NotShownOrSaved)
	g.ClearFlags(NotShownOrSaved)
	assert.Zero(t, g.Flags())
}
