package scene

import (
	"slices"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/pkg/linear"
)

// Transform places a GameObject in space and in the parent/child tree.
// Every GameObject has exactly one.
type Transform struct {
	ComponentBase

	position linear.Vec3
	rotation linear.Quat
	scale    linear.Vec3

	parent   *Transform
	children []*Transform
}

var _ Component = (*Transform)(nil)

func newTransform() *Transform {
	return &Transform{rotation: linear.Identity, scale: linear.One3}
}

func (t *Transform) Serialize(tbl *props.Table) {
	props.Serialize(tbl, "position", &t.position, linear.Zero3)
	props.Serialize(tbl, "rotation", &t.rotation, linear.Identity)
	props.Serialize(tbl, "scale", &t.scale, linear.One3)
}

func (t *Transform) Position() linear.Vec3 { return t.position }
func (t *Transform) Rotation() linear.Quat { return t.rotation }
func (t *Transform) Scale() linear.Vec3    { return t.scale }

func (t *Transform) SetPosition(p linear.Vec3) { t.position = p }
func (t *Transform) SetRotation(q linear.Quat) { t.rotation = q.Norm() }
func (t *Transform) SetScale(s linear.Vec3)    { t.scale = s }

// Translate moves the transform by d in parent space.
func (t *Transform) Translate(d linear.Vec3) { t.position = t.position.Add(d) }

// Rotate applies q after the current rotation.
func (t *Transform) Rotate(q linear.Quat) { t.SetRotation(q.Mul(t.Rotation())) }

func (t *Transform) Parent() *Transform { return t.parent }

// Children returns a copy of the direct children, in attach order.
func (t *Transform) Children() []*Transform { return slices.Clone(t.children) }

// Root walks up to the topmost ancestor.
func (t *Transform) Root() *Transform {
	r := t
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsDescendantOf reports whether t is below other in the tree.
func (t *Transform) IsDescendantOf(other *Transform) bool {
	for p := t.parent; p != nil; p = p.parent {
		if p == other {
			return true
		}
	}
	return false
}

// SetParent moves t under parent, appending it to the parent's children.
// A nil parent makes t a root. Re-parenting to the current parent keeps the
// child order.
func (t *Transform) SetParent(parent *Transform) error {
	if parent == t.parent {
		return nil
	}
	if parent == t || (parent != nil && parent.IsDescendantOf(t)) {
		return ErrCycle
	}
	if t.parent != nil {
		t.parent.children = slices.DeleteFunc(t.parent.children, func(c *Transform) bool { return c == t })
	}
	t.parent = parent
	if parent != nil {
		parent.children = append(parent.children, t)
	}
	return nil
}

// LocalMatrix composes position, rotation and scale.
func (t *Transform) LocalMatrix() linear.M4 {
	return linear.TRS(t.position, t.rotation, t.scale)
}

// WorldMatrix composes the local matrices from the root down to t.
func (t *Transform) WorldMatrix() linear.M4 {
	m := t.LocalMatrix()
	for p := t.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

func (t *Transform) WorldPosition() linear.Vec3 {
	return t.WorldMatrix().Translation()
}
