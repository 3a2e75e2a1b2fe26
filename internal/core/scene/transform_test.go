package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/pkg/linear"
)

func TestTransformDefaultsAreNotWritten(t *testing.T) {
	tr := newTransform()
	tr.SetPosition(linear.Vec3{1, 2, 3})

	tbl := props.New(props.Writing)
	tr.Serialize(tbl)
	text := tbl.String()
	assert.Contains(t, text, "position = 1 2 3")
	assert.NotContains(t, text, "scale")
	assert.NotContains(t, text, "rotation")

	in, err := props.ParseString(text)
	require.NoError(t, err)
	back := newTransform()
	back.SetScale(linear.Vec3{5, 5, 5})
	back.Serialize(in)
	assert.Equal(t, linear.Vec3{1, 2, 3}, back.Position())
	assert.Equal(t, linear.One3, back.Scale())
	assert.Equal(t, linear.Identity, back.Rotation())
}

func TestTransformHierarchy(t *testing.T) {
	root, mid, leaf := newTransform(), newTransform(), newTransform()
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, leaf.SetParent(mid))

	assert.Same(t, root, leaf.Root())
	assert.True(t, leaf.IsDescendantOf(root))
	assert.ErrorIs(t, root.SetParent(leaf), ErrCycle)
	assert.ErrorIs(t, root.SetParent(root), ErrCycle)

	other := newTransform()
	require.NoError(t, leaf.SetParent(other))
	assert.Empty(t, mid.Children())
	assert.Equal(t, []*Transform{leaf}, other.Children())

	require.NoError(t, leaf.SetParent(nil))
	assert.Nil(t, leaf.Parent())
	assert.Empty(t, other.Children())
}

func TestTransformWorldPosition(t *testing.T) {
	parent, child := newTransform(), newTransform()
	parent.SetPosition(linear.Vec3{1, 0, 0})
	child.SetPosition(linear.Vec3{0, 2, 0})
	require.NoError(t, child.SetParent(parent))

	p := child.WorldPosition()
	assert.InDelta(t, 1, p[0], 1e-6)
	assert.InDelta(t, 2, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)

	parent.SetScale(linear.Vec3{2, 2, 2})
	p = child.WorldPosition()
	assert.InDelta(t, 4, p[1], 1e-6)
}
