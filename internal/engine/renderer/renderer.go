// Package renderer draws baking scenes into offscreen geometry buffers.
//
// Two device backends exist: an OpenGL device rendering into a float
// framebuffer, and a software device used headless and in tests. Both
// project geometry through its lightmap UV coordinates rather than the
// camera, so every texel of the render target corresponds to one lightmap
// texel. The camera only decides which scene objects are visible.
package renderer

import (
	"github.com/MkFair/rbfx/internal/engine/material"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/pkg/math"
)

// Shader parameter names understood by the baking pass.
const (
	// ParamLMOffset is a vec4 scale-offset applied to lightmap UVs before
	// projection: uv' = uv*xy + zw.
	ParamLMOffset = "LMOffset"

	// ParamLightmapLayer is the depth an instance renders at. Lower values
	// win the depth test.
	ParamLightmapLayer = "LightmapLayer"

	// ParamLightmapGeometry is the numeric id written to the position
	// output's w component.
	ParamLightmapGeometry = "LightmapGeometry"
)

// LightmapUVChannel is the vertex UV channel holding lightmap coordinates.
const LightmapUVChannel = 1

// Target is an offscreen render target owned by a device.
//
// Output buffers are indexed row-major with row 0 at v=0: texel (x, y)
// corresponds to UV ((x+0.5)/w, (y+0.5)/h).
type Target interface {
	Width() int
	Height() int

	// Release returns the target to the device. The target must not be
	// used afterwards.
	Release()
}

// Batch is one model instance to draw.
type Batch struct {
	Model     *model.Model
	Material  *material.Material
	Transform math.Mat4
}

// Device renders batches into targets and reads the results back.
type Device interface {
	// BeginFrame prepares the device for rendering. It returns false when
	// the device lost its context and cannot render.
	BeginFrame() bool

	// EndFrame finishes the current frame.
	EndFrame()

	// ScreenBuffer returns a target of the given size.
	ScreenBuffer(width, height int) (Target, error)

	// Draw renders batches into the target using the render path. The
	// target's previous contents are discarded.
	Draw(target Target, path *renderpath.RenderPath, batches []Batch) error

	// ReadOutput reads the named output buffer of the target into dst,
	// growing it as needed, and returns the filled slice. Passing the
	// previous result reuses its storage across reads.
	ReadOutput(target Target, output string, dst []math.Vec4) ([]math.Vec4, error)

	// Close releases device resources.
	Close()
}
