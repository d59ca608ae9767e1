// Package scene provides a disposable scene graph for offscreen baking:
// nodes with transforms, static model components, and a spatial index
// used for camera culling.
package scene

import (
	"github.com/MkFair/rbfx/internal/engine/material"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/pkg/math"
)

// DefaultCellSize is the spatial index cell size for new scenes.
const DefaultCellSize = 16.0

// Scene is an isolated scene graph. Baking builds one per chart and tears
// it down after rendering; scenes are never shared or reused.
type Scene struct {
	root   *Node
	index  *SpatialIndex
	models []*StaticModel
}

// New creates an empty scene with a spatial index.
func New() *Scene {
	s := &Scene{index: NewSpatialIndex(DefaultCellSize)}
	s.root = &Node{scene: s, scale: math.Vec3{X: 1, Y: 1, Z: 1}, rotation: math.QuatIdentity()}
	return s
}

// CreateChild creates a new child node of the scene root.
func (s *Scene) CreateChild() *Node {
	return s.root.CreateChild()
}

// Index returns the scene's spatial index.
func (s *Scene) Index() *SpatialIndex {
	return s.index
}

// StaticModels returns every static model component in the scene, in
// creation order.
func (s *Scene) StaticModels() []*StaticModel {
	return s.models
}

// Clear drops the scene graph and spatial index contents. A cleared scene
// must not be rendered again.
func (s *Scene) Clear() {
	s.root = &Node{scene: s, scale: math.Vec3{X: 1, Y: 1, Z: 1}, rotation: math.QuatIdentity()}
	s.models = nil
	s.index.Clear()
}

// Node is a scene graph node with a local transform.
type Node struct {
	scene    *Scene
	parent   *Node
	children []*Node

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3

	staticModel *StaticModel
}

// NewDetachedNode creates a node that belongs to no scene. Callers use
// detached nodes to describe placed instances before any baking scene
// exists.
func NewDetachedNode() *Node {
	return &Node{scale: math.Vec3{X: 1, Y: 1, Z: 1}, rotation: math.QuatIdentity()}
}

// CreateChild creates a child node.
func (n *Node) CreateChild() *Node {
	child := &Node{
		scene:    n.scene,
		parent:   n,
		scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		rotation: math.QuatIdentity(),
	}
	n.children = append(n.children, child)
	return child
}

// SetPosition sets the node's local position.
func (n *Node) SetPosition(position math.Vec3) {
	n.position = position
}

// SetRotation sets the node's local rotation.
func (n *Node) SetRotation(rotation math.Quat) {
	n.rotation = rotation
}

// SetScale sets the node's local scale.
func (n *Node) SetScale(scale math.Vec3) {
	n.scale = scale
}

// Position returns the node's local position.
func (n *Node) Position() math.Vec3 { return n.position }

// Rotation returns the node's local rotation.
func (n *Node) Rotation() math.Quat { return n.rotation }

// Scale returns the node's local scale.
func (n *Node) Scale() math.Vec3 { return n.scale }

// Transform returns the node's local transform matrix.
func (n *Node) Transform() math.Mat4 {
	return math.TRS(n.position, n.rotation, n.scale)
}

// WorldTransform returns the node's world transform matrix.
func (n *Node) WorldTransform() math.Mat4 {
	if n.parent == nil {
		return n.Transform()
	}
	return n.parent.WorldTransform().Mul(n.Transform())
}

// WorldPosition returns the node's world-space position.
func (n *Node) WorldPosition() math.Vec3 {
	if n.parent == nil {
		return n.position
	}
	return n.parent.WorldTransform().TransformVec3(n.position)
}

// WorldRotation returns the node's world-space rotation.
func (n *Node) WorldRotation() math.Quat {
	if n.parent == nil {
		return n.rotation
	}
	return n.parent.WorldRotation().Mul(n.rotation)
}

// WorldScale returns the node's world-space scale.
func (n *Node) WorldScale() math.Vec3 {
	if n.parent == nil {
		return n.scale
	}
	return n.parent.WorldScale().Mul(n.scale)
}

// CreateStaticModel attaches a static model component to the node.
func (n *Node) CreateStaticModel() *StaticModel {
	sm := &StaticModel{node: n}
	n.staticModel = sm
	if n.scene != nil {
		n.scene.models = append(n.scene.models, sm)
	}
	return sm
}

// StaticModel returns the node's static model component, if any.
func (n *Node) StaticModel() *StaticModel {
	return n.staticModel
}

// StaticModel is a component placing a model resource in the scene with a
// material.
type StaticModel struct {
	node     *Node
	model    *model.Model
	material *material.Material
}

// Node returns the owning node.
func (sm *StaticModel) Node() *Node {
	return sm.node
}

// SetModel sets the model resource and registers the component in the
// scene's spatial index.
func (sm *StaticModel) SetModel(m *model.Model) {
	sm.model = m
	if sm.node != nil && sm.node.scene != nil && m != nil {
		sm.node.scene.index.Insert(sm, sm.WorldBoundingBox())
	}
}

// Model returns the model resource.
func (sm *StaticModel) Model() *model.Model {
	return sm.model
}

// SetMaterial sets the material used to render the model.
func (sm *StaticModel) SetMaterial(m *material.Material) {
	sm.material = m
}

// Material returns the component's material.
func (sm *StaticModel) Material() *material.Material {
	return sm.material
}

// WorldBoundingBox returns the model's bounding box in world space.
func (sm *StaticModel) WorldBoundingBox() math.BoundingBox {
	if sm.model == nil {
		return math.BoundingBox{}
	}
	return model.BoundingBox(sm.model).Transformed(sm.node.WorldTransform())
}
