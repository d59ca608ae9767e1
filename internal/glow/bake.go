package glow

import (
	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/engine/renderer"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/pkg/math"
)

// GeometryBuffer is the baked result of one chart: per-texel world
// positions and normals, plus the id of the geometry covering each texel
// (zero for uncovered texels).
type GeometryBuffer struct {
	Index  int
	Width  int
	Height int

	Positions       []math.Vec3
	SmoothPositions []math.Vec3
	FaceNormals     []math.Vec3
	SmoothNormals   []math.Vec3
	IDs             []uint32
}

// NewGeometryBuffer allocates a zeroed buffer of the given size.
func NewGeometryBuffer(index, width, height int) GeometryBuffer {
	size := width * height
	return GeometryBuffer{
		Index:           index,
		Width:           width,
		Height:          height,
		Positions:       make([]math.Vec3, size),
		SmoothPositions: make([]math.Vec3, size),
		FaceNormals:     make([]math.Vec3, size),
		SmoothNormals:   make([]math.Vec3, size),
		IDs:             make([]uint32, size),
	}
}

// Baker renders baking scenes into geometry buffers through a device.
// The readback scratch buffer is owned by the baker and reused across
// bake calls, so a baker must not be shared between goroutines.
type Baker struct {
	device  renderer.Device
	scratch []math.Vec4
}

// NewBaker creates a baker using the given render device.
func NewBaker(device renderer.Device) *Baker {
	return &Baker{device: device}
}

// Bake renders one baking scene and reads its geometry buffer back. Render
// failures degrade to an empty buffer; the scene is released either way.
func (b *Baker) Bake(bakingScene BakingScene) GeometryBuffer {
	defer bakingScene.Scene.Clear()

	if !b.device.BeginFrame() {
		logger.Error("failed to begin geometry buffer rendering",
			zap.Int("chart", bakingScene.Index),
		)
		return GeometryBuffer{}
	}
	defer b.device.EndFrame()

	target, err := b.device.ScreenBuffer(bakingScene.PhysicalWidth, bakingScene.PhysicalHeight)
	if err != nil {
		logger.Error("failed to acquire render target",
			zap.Int("chart", bakingScene.Index),
			zap.Error(err),
		)
		return GeometryBuffer{}
	}
	defer target.Release()

	view := renderer.NewView(b.device)
	view.Define(target, bakingScene.Scene, bakingScene.Camera, bakingScene.RenderPath)
	view.Update()
	if err := view.Render(); err != nil {
		logger.Error("failed to render baking scene",
			zap.Int("chart", bakingScene.Index),
			zap.Error(err),
		)
		return GeometryBuffer{}
	}

	geometryBuffer := NewGeometryBuffer(bakingScene.Index, bakingScene.Width, bakingScene.Height)

	read := func(output string, store func(index int, texel math.Vec4)) {
		texels, err := view.Output(output, b.scratch)
		if err != nil {
			logger.Error("failed to read geometry buffer output",
				zap.Int("chart", bakingScene.Index),
				zap.String("output", output),
				zap.Error(err),
			)
			return
		}
		b.scratch = texels
		// The target may be physically larger than the buffer.
		count := min(len(texels), bakingScene.Width*bakingScene.Height)
		for i := 0; i < count; i++ {
			store(i, texels[i])
		}
	}

	read("position", func(i int, texel math.Vec4) {
		geometryBuffer.Positions[i] = texel.XYZ()
		geometryBuffer.IDs[i] = uint32(texel[3])
	})
	read("smoothposition", func(i int, texel math.Vec4) {
		geometryBuffer.SmoothPositions[i] = texel.XYZ()
	})
	read("facenormal", func(i int, texel math.Vec4) {
		geometryBuffer.FaceNormals[i] = texel.XYZ()
	})
	read("smoothnormal", func(i int, texel math.Vec4) {
		geometryBuffer.SmoothNormals[i] = texel.XYZ()
	})

	return geometryBuffer
}

// BakeAll renders all baking scenes in order, strictly sequentially: the
// device and its targets are not safe for concurrent frames.
func (b *Baker) BakeAll(bakingScenes []BakingScene) []GeometryBuffer {
	geometryBuffers := make([]GeometryBuffer, 0, len(bakingScenes))
	for _, bakingScene := range bakingScenes {
		geometryBuffers = append(geometryBuffers, b.Bake(bakingScene))
	}
	return geometryBuffers
}
