package glow

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/engine/camera"
	"github.com/MkFair/rbfx/internal/engine/material"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderer"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/internal/engine/scene"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/internal/resource"
	"github.com/MkFair/rbfx/pkg/math"
)

// BakingScene is a chart prepared for rendering: a disposable scene with
// multi-tap instances, a fitted camera, and the chart-space seams.
type BakingScene struct {
	Index  int
	Width  int
	Height int

	// PhysicalWidth and PhysicalHeight size the offscreen render target;
	// the geometry buffer itself stays at the texel dimensions.
	PhysicalWidth  int
	PhysicalHeight int

	Scene      *scene.Scene
	Camera     *camera.Camera
	RenderPath *renderpath.RenderPath
	Seams      []Seam
}

// seamCache holds seams per mesh so shared meshes are analyzed once per
// batch even when they appear in many charts.
type seamCache struct {
	mu    sync.Mutex
	seams map[*model.Model][]Seam
}

func newSeamCache() *seamCache {
	return &seamCache{seams: make(map[*model.Model][]Seam)}
}

func (c *seamCache) has(m *model.Model) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seams[m]
	return ok
}

func (c *seamCache) put(m *model.Model, seams []Seam) {
	c.mu.Lock()
	c.seams[m] = seams
	c.mu.Unlock()
}

func (c *seamCache) get(m *model.Model) []Seam {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seams[m]
}

// fitCameraToBoundingBox places an orthographic camera so its view volume
// exactly contains the box, looking along +Z from just before its near face.
func fitCameraToBoundingBox(cam *camera.Camera, box math.BoundingBox) {
	const zNear = 1.0
	zFar := box.Size().Z + zNear

	position := box.Center()
	position.Z = box.Min.Z - zNear

	cam.SetPosition(position)
	cam.SetDirection(math.Vec3{Z: 1})
	cam.SetOrthographic(true)
	cam.SetOrthoSize(box.Size().XY())
	cam.SetNearClip(zNear)
	cam.SetFarClip(zFar)
}

// GenerateBakingScene builds the baking scene for a single chart.
func GenerateBakingScene(res *resource.Cache, chart Chart, settings Settings, renderPath *renderpath.RenderPath) (BakingScene, error) {
	bakingMaterial, err := res.Material(settings.Material)
	if err != nil {
		return BakingScene{}, fmt.Errorf("loading baking material: %w", err)
	}
	return generateBakingScene(chart, settings, bakingMaterial, renderPath, newSeamCache()), nil
}

func generateBakingScene(chart Chart, settings Settings, bakingMaterial *material.Material,
	renderPath *renderpath.RenderPath, seams *seamCache) BakingScene {

	// Union bounding box and the set of used meshes.
	var boundingBox math.BoundingBox
	usedModels := make(map[*model.Model]struct{})
	for _, element := range chart.Elements {
		if element.StaticModel == nil || element.StaticModel.Model() == nil {
			continue
		}
		boundingBox = boundingBox.Merge(element.StaticModel.WorldBoundingBox())
		usedModels[element.StaticModel.Model()] = struct{}{}
	}

	// Collect seams of meshes not seen before, one goroutine per mesh,
	// joined before assembly.
	var wg sync.WaitGroup
	for m := range usedModels {
		if seams.has(m) {
			continue
		}
		wg.Add(1)
		go func(m *model.Model) {
			defer wg.Done()
			seams.put(m, CollectModelSeams(m, settings.UVChannel))
		}(m)
	}
	wg.Wait()

	s := scene.New()
	cam := camera.New()
	fitCameraToBoundingBox(cam, boundingBox)

	// Replicate every element once per tap.
	geometryID := 1
	var chartSeams []Seam
	for _, element := range chart.Elements {
		if element.StaticModel == nil || element.StaticModel.Model() == nil {
			continue
		}
		m := element.StaticModel.Model()
		scaleOffset := element.Region.ScaleOffset()

		for _, seam := range seams.get(m) {
			chartSeams = append(chartSeams, seam.Transformed(element.Region.Scale, element.Region.Offset))
		}

		for tap := 0; tap < NumMultiTapSamples; tap++ {
			tapOffset := multiTapOffsets[tap].Mul(chart.TexelSize())
			tapDepth := 1 - float32(tap)/float32(NumMultiTapSamples-1)

			tapMaterial := bakingMaterial.Clone()
			tapMaterial.SetVec4(renderer.ParamLMOffset, scaleOffset.Add(math.Vec4{0, 0, tapOffset.X, tapOffset.Y}))
			tapMaterial.SetFloat(renderer.ParamLightmapLayer, tapDepth)
			tapMaterial.SetFloat(renderer.ParamLightmapGeometry, float32(geometryID))

			node := s.CreateChild()
			node.SetPosition(element.StaticModel.Node().WorldPosition())
			node.SetRotation(element.StaticModel.Node().WorldRotation())
			node.SetScale(element.StaticModel.Node().WorldScale())

			sm := node.CreateStaticModel()
			sm.SetMaterial(tapMaterial)
			sm.SetModel(m)
		}

		geometryID++
	}

	physicalWidth, physicalHeight := chart.PhysicalSize()
	return BakingScene{
		Index:          chart.Index,
		Width:          chart.Width,
		Height:         chart.Height,
		PhysicalWidth:  physicalWidth,
		PhysicalHeight: physicalHeight,
		Scene:          s,
		Camera:         cam,
		RenderPath:     renderPath,
		Seams:          chartSeams,
	}
}

// GenerateBakingScenes builds baking scenes for all charts. A missing
// render path or baking material aborts the whole batch with an empty
// result; the failure is logged once.
func GenerateBakingScenes(res *resource.Cache, charts []Chart, settings Settings) []BakingScene {
	renderPath, err := res.RenderPath(settings.RenderPath)
	if err != nil {
		logger.Error("failed to load render path",
			zap.String("renderpath", settings.RenderPath),
			zap.Error(err),
		)
		return nil
	}

	bakingMaterial, err := res.Material(settings.Material)
	if err != nil {
		logger.Error("failed to load baking material",
			zap.String("material", settings.Material),
			zap.Error(err),
		)
		return nil
	}

	seams := newSeamCache()
	result := make([]BakingScene, 0, len(charts))
	for _, chart := range charts {
		result = append(result, generateBakingScene(chart, settings, bakingMaterial, renderPath, seams))
	}
	return result
}
