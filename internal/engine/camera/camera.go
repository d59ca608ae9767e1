// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/MkFair/rbfx/pkg/math"
)

// Camera is a positionable camera. Baking uses orthographic cameras so the
// render target's texel grid maps linearly to UV space.
type Camera struct {
	position  math.Vec3
	direction math.Vec3

	orthographic bool
	orthoSize    math.Vec2
	nearClip     float32
	farClip      float32
}

// New creates a camera looking along +Z.
func New() *Camera {
	return &Camera{
		direction: math.Vec3{Z: 1},
		orthoSize: math.Vec2{X: 1, Y: 1},
		nearClip:  0.1,
		farClip:   1000,
	}
}

// SetPosition places the camera in world space.
func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
}

// SetDirection sets the camera's forward direction.
func (c *Camera) SetDirection(direction math.Vec3) {
	c.direction = direction.Normalize()
}

// SetOrthographic switches between orthographic and perspective projection.
func (c *Camera) SetOrthographic(enabled bool) {
	c.orthographic = enabled
}

// SetOrthoSize sets the orthographic view width and height.
func (c *Camera) SetOrthoSize(size math.Vec2) {
	c.orthoSize = size
}

// SetNearClip sets the near clip distance.
func (c *Camera) SetNearClip(near float32) {
	c.nearClip = near
}

// SetFarClip sets the far clip distance.
func (c *Camera) SetFarClip(far float32) {
	c.farClip = far
}

// Position returns the camera position.
func (c *Camera) Position() math.Vec3 { return c.position }

// Direction returns the camera's forward direction.
func (c *Camera) Direction() math.Vec3 { return c.direction }

// Orthographic reports whether the camera uses orthographic projection.
func (c *Camera) Orthographic() bool { return c.orthographic }

// OrthoSize returns the orthographic view extents.
func (c *Camera) OrthoSize() math.Vec2 { return c.orthoSize }

// NearClip returns the near clip distance.
func (c *Camera) NearClip() float32 { return c.nearClip }

// FarClip returns the far clip distance.
func (c *Camera) FarClip() float32 { return c.farClip }

// ViewMatrix returns the camera's view matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	// Degenerate when looking straight along Y.
	if c.direction.Cross(up).LengthSquared() < math.Epsilon {
		up = math.Vec3{Z: 1}
	}
	return math.LookAt(c.position, c.position.Add(c.direction), up)
}

// ProjectionMatrix returns the camera's projection matrix. Baking cameras
// are always orthographic; perspective is left to interactive viewers.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	halfW := c.orthoSize.X / 2
	halfH := c.orthoSize.Y / 2
	if c.orthographic {
		return math.Ortho(-halfW, halfW, -halfH, halfH, c.nearClip, c.farClip)
	}
	aspect := c.orthoSize.X / c.orthoSize.Y
	return math.Perspective(0.785398, aspect, c.nearClip, c.farClip)
}

// WorldFrustumBox returns the world-space axis-aligned box containing the
// orthographic view volume. Scenes use it to cull against the spatial
// index.
func (c *Camera) WorldFrustumBox() math.BoundingBox {
	halfW := c.orthoSize.X / 2
	halfH := c.orthoSize.Y / 2

	invView := c.ViewMatrix().Inverse()

	var box math.BoundingBox
	for _, x := range [2]float32{-halfW, halfW} {
		for _, y := range [2]float32{-halfH, halfH} {
			// View space looks down -Z.
			for _, z := range [2]float32{-c.nearClip, -c.farClip} {
				box = box.MergePoint(invView.TransformVec3(math.Vec3{X: x, Y: y, Z: z}))
			}
		}
	}
	return box
}
