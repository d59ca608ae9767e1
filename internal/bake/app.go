// Package bake wires configuration, resources, the render device and the
// glow pipeline into a runnable baking application.
package bake

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/config"
	"github.com/MkFair/rbfx/internal/engine/debug"
	"github.com/MkFair/rbfx/internal/engine/renderer"
	"github.com/MkFair/rbfx/internal/glow"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/internal/resource"
)

// Built-in fallback resources, used when the configured names resolve to
// nothing on the search paths.
const (
	defaultMaterial   = "parameters: {}\n"
	defaultRenderPath = "name: lightmap_gbuffer\n" +
		"pass: base\n" +
		"outputs: [position, smoothposition, facenormal, smoothnormal]\n"
)

// App is one configured bake run.
type App struct {
	cfg    *config.Config
	res    *resource.Cache
	device renderer.Device
	charts []glow.Chart
}

// New builds the application: resource cache, chart manifest and render
// device.
func New(cfg *config.Config) (*App, error) {
	res := resource.NewCache()
	for _, dir := range cfg.Resources.SearchPaths {
		res.AddSearchPath(dir)
	}

	// Fall back to built-in baking resources so a bare manifest bakes
	// without a data directory.
	if _, err := res.RenderPath(cfg.Bake.RenderPath); err != nil {
		res.AddFile(cfg.Bake.RenderPath, []byte(defaultRenderPath))
	}
	if _, err := res.Material(cfg.Bake.Material); err != nil {
		res.AddFile(cfg.Bake.Material, []byte(defaultMaterial))
	}

	charts, err := LoadManifest(cfg.Bake.Manifest, res)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	var device renderer.Device
	switch cfg.Bake.Backend {
	case "", "software":
		device = renderer.NewSoftwareDevice()
	case "opengl":
		device, err = renderer.NewGLDevice()
		if err != nil {
			return nil, fmt.Errorf("creating OpenGL device: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Bake.Backend)
	}

	logger.Info("bake initialized",
		zap.String("backend", cfg.Bake.Backend),
		zap.Int("charts", len(charts)),
	)

	return &App{cfg: cfg, res: res, device: device, charts: charts}, nil
}

// Run generates baking scenes for all charts, bakes them and optionally
// dumps debug images.
func (a *App) Run() error {
	settings := glow.Settings{
		Material:   a.cfg.Bake.Material,
		UVChannel:  a.cfg.Bake.UVChannel,
		RenderPath: a.cfg.Bake.RenderPath,
	}

	scenes := glow.GenerateBakingScenes(a.res, a.charts, settings)
	if len(scenes) == 0 && len(a.charts) > 0 {
		return fmt.Errorf("no baking scenes generated")
	}

	for _, bakingScene := range scenes {
		logger.Debug("baking scene generated",
			zap.Int("chart", bakingScene.Index),
			zap.Int("seams", len(bakingScene.Seams)),
		)
	}

	buffers := glow.NewBaker(a.device).BakeAll(scenes)

	var dumper *debug.BufferDumper
	if a.cfg.Output.DumpImages {
		dumper = debug.NewBufferDumper(a.cfg.Output.DumpDir)
	}

	for _, buffer := range buffers {
		covered := 0
		for _, id := range buffer.IDs {
			if id != 0 {
				covered++
			}
		}
		logger.Info("chart baked",
			zap.Int("chart", buffer.Index),
			zap.Int("width", buffer.Width),
			zap.Int("height", buffer.Height),
			zap.Int("covered", covered),
		)

		if dumper != nil {
			if name, err := dumper.DumpIDs(buffer); err != nil {
				logger.Warn("failed to dump ids", zap.Int("chart", buffer.Index), zap.Error(err))
			} else {
				logger.Info("dumped ids", zap.String("file", name))
			}
			if name, err := dumper.DumpNormals(buffer); err != nil {
				logger.Warn("failed to dump normals", zap.Int("chart", buffer.Index), zap.Error(err))
			} else {
				logger.Info("dumped normals", zap.String("file", name))
			}
		}
	}

	return nil
}

// Close releases the render device.
func (a *App) Close() {
	a.device.Close()
}
