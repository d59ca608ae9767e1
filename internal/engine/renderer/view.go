package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/engine/camera"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/internal/engine/scene"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/pkg/math"
)

// View renders one scene through one camera into one target. Views are
// short-lived: baking defines a fresh view per frame.
type View struct {
	device Device

	target Target
	scene  *scene.Scene
	camera *camera.Camera
	path   *renderpath.RenderPath

	batches []Batch
}

// NewView creates a view rendering through the given device.
func NewView(device Device) *View {
	return &View{device: device}
}

// Define binds the view to a target, scene, camera and render path.
func (v *View) Define(target Target, s *scene.Scene, cam *camera.Camera, path *renderpath.RenderPath) {
	v.target = target
	v.scene = s
	v.camera = cam
	v.path = path
	v.batches = v.batches[:0]
}

// Update collects the batches visible to the camera. Models without a
// material are skipped.
func (v *View) Update() {
	v.batches = v.batches[:0]

	frustum := v.camera.WorldFrustumBox()
	for _, sm := range v.scene.Index().Query(frustum) {
		if sm.Model() == nil {
			continue
		}
		if sm.Material() == nil {
			logger.Warn("skipping model without material",
				zap.String("model", sm.Model().Name()),
			)
			continue
		}
		v.batches = append(v.batches, Batch{
			Model:     sm.Model(),
			Material:  sm.Material(),
			Transform: sm.Node().WorldTransform(),
		})
	}
}

// Render draws the collected batches into the target.
func (v *View) Render() error {
	if v.target == nil || v.path == nil {
		return fmt.Errorf("view is not defined")
	}
	return v.device.Draw(v.target, v.path, v.batches)
}

// Output reads back a named output of the rendered target into dst,
// reusing its storage when large enough.
func (v *View) Output(name string, dst []math.Vec4) ([]math.Vec4, error) {
	return v.device.ReadOutput(v.target, name, dst)
}

// NumBatches returns the number of batches collected by Update.
func (v *View) NumBatches() int {
	return len(v.batches)
}
