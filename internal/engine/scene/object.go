// Package scene provides the scene graph drawn by the renderer: nodes with
// transforms, meshes, line segments, geometry buffers, and materials.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Node is anything that can live in the scene graph.
type Node interface {
	Base() *Object
}

// Object holds the transform and hierarchy shared by every node.
type Object struct {
	UUID uuid.UUID
	Name string

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3
	Visible  bool

	parent   *Object
	children []Node
}

func newObject() Object {
	return Object{
		UUID:    uuid.New(),
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// Base returns the object itself.
func (o *Object) Base() *Object {
	return o
}

// Add attaches children to this object. A child that already has a parent is
// detached from it first.
func (o *Object) Add(children ...Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		c := child.Base()
		if c == o {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(child)
		}
		c.parent = o
		o.children = append(o.children, child)
	}
}

// Remove detaches a direct child. Reports whether the child was found.
func (o *Object) Remove(child Node) bool {
	for i, c := range o.children {
		if c.Base() == child.Base() {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.Base().parent = nil
			return true
		}
	}
	return false
}

// Parent returns the parent object, or nil for roots.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the direct children. The slice must not be modified.
func (o *Object) Children() []Node {
	return o.children
}

// LocalMatrix returns translation * rotation * scale.
func (o *Object) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes local matrices up the parent chain.
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldVisible reports whether this object and all its ancestors are visible.
func (o *Object) WorldVisible() bool {
	for n := o; n != nil; n = n.parent {
		if !n.Visible {
			return false
		}
	}
	return true
}

// Traverse calls fn for n and every descendant, depth first.
func Traverse(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Base().children {
		Traverse(c, fn)
	}
}

// Group is an empty node used to parent other nodes.
type Group struct {
	Object
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{Object: newObject()}
}
