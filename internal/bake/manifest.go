package bake

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MkFair/rbfx/internal/engine/scene"
	"github.com/MkFair/rbfx/internal/glow"
	"github.com/MkFair/rbfx/internal/resource"
	"github.com/MkFair/rbfx/pkg/math"
)

// manifest is the YAML description of a bake run: the meshes to place and
// the charts placing them.
type manifest struct {
	Models []modelDef `yaml:"models"`
	Charts []chartDef `yaml:"charts"`
}

type modelDef struct {
	Name      string    `yaml:"name"`
	Primitive string    `yaml:"primitive"`
	Size      []float32 `yaml:"size"`
}

type chartDef struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Elements []elementDef `yaml:"elements"`
}

type elementDef struct {
	Model    string    `yaml:"model"`
	Position []float32 `yaml:"position"`
	// Rotation is [axisX, axisY, axisZ, degrees].
	Rotation []float32 `yaml:"rotation"`
	Scale    []float32 `yaml:"scale"`
	Region   regionDef `yaml:"region"`
}

type regionDef struct {
	Scale  []float32 `yaml:"scale"`
	Offset []float32 `yaml:"offset"`
}

// LoadManifest reads a chart manifest, registers its models in the
// resource cache and returns the charts ready for scene generation.
func LoadManifest(path string, res *resource.Cache) ([]glow.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseManifest(data, res)
}

func parseManifest(data []byte, res *resource.Cache) ([]glow.Chart, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	for _, def := range m.Models {
		built, err := buildPrimitive(def)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", def.Name, err)
		}
		res.AddModel(built)
	}

	charts := make([]glow.Chart, 0, len(m.Charts))
	for i, def := range m.Charts {
		if def.Width < 1 || def.Height < 1 {
			return nil, fmt.Errorf("chart %d: invalid size %dx%d", i, def.Width, def.Height)
		}

		chart := glow.Chart{Index: i, Width: def.Width, Height: def.Height}
		for j, elementDef := range def.Elements {
			element, err := buildElement(elementDef, res)
			if err != nil {
				return nil, fmt.Errorf("chart %d element %d: %w", i, j, err)
			}
			chart.Elements = append(chart.Elements, element)
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

func buildElement(def elementDef, res *resource.Cache) (glow.ChartElement, error) {
	m, err := res.Model(def.Model)
	if err != nil {
		return glow.ChartElement{}, err
	}

	node := scene.NewDetachedNode()
	if p, err := vec3Field(def.Position, "position"); err != nil {
		return glow.ChartElement{}, err
	} else if p != nil {
		node.SetPosition(*p)
	}
	if s, err := vec3Field(def.Scale, "scale"); err != nil {
		return glow.ChartElement{}, err
	} else if s != nil {
		node.SetScale(*s)
	}
	if len(def.Rotation) != 0 {
		if len(def.Rotation) != 4 {
			return glow.ChartElement{}, fmt.Errorf("rotation needs 4 components, got %d", len(def.Rotation))
		}
		axis := math.Vec3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}
		node.SetRotation(math.QuatFromAxisAngle(axis, def.Rotation[3]*stdDegToRad))
	}

	sm := node.CreateStaticModel()
	sm.SetModel(m)

	region := glow.Region{Scale: math.Vec2{X: 1, Y: 1}}
	if s, err := vec2Field(def.Region.Scale, "region scale"); err != nil {
		return glow.ChartElement{}, err
	} else if s != nil {
		region.Scale = *s
	}
	if o, err := vec2Field(def.Region.Offset, "region offset"); err != nil {
		return glow.ChartElement{}, err
	} else if o != nil {
		region.Offset = *o
	}

	return glow.ChartElement{StaticModel: sm, Region: region}, nil
}

const stdDegToRad = 3.14159265358979323846 / 180

func vec3Field(values []float32, name string) (*math.Vec3, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 3:
		return &math.Vec3{X: values[0], Y: values[1], Z: values[2]}, nil
	default:
		return nil, fmt.Errorf("%s needs 3 components, got %d", name, len(values))
	}
}

func vec2Field(values []float32, name string) (*math.Vec2, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 2:
		return &math.Vec2{X: values[0], Y: values[1]}, nil
	default:
		return nil, fmt.Errorf("%s needs 2 components, got %d", name, len(values))
	}
}
