// Package material provides named materials with shader parameters.
package material

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MkFair/rbfx/pkg/math"
)

// Material is a named set of shader parameters. Baking clones a material
// per render instance and tags the clone with instance parameters.
type Material struct {
	name string

	vec4Params  map[string]math.Vec4
	floatParams map[string]float32
}

// New creates an empty material.
func New(name string) *Material {
	return &Material{
		name:        name,
		vec4Params:  make(map[string]math.Vec4),
		floatParams: make(map[string]float32),
	}
}

// Name returns the material's resource name.
func (m *Material) Name() string {
	return m.name
}

// SetVec4 sets a vector shader parameter.
func (m *Material) SetVec4(name string, value math.Vec4) {
	m.vec4Params[name] = value
}

// SetFloat sets a scalar shader parameter.
func (m *Material) SetFloat(name string, value float32) {
	m.floatParams[name] = value
}

// Vec4 returns a vector shader parameter, or a zero vector if unset.
func (m *Material) Vec4(name string) math.Vec4 {
	return m.vec4Params[name]
}

// Float returns a scalar shader parameter, or zero if unset.
func (m *Material) Float(name string) float32 {
	return m.floatParams[name]
}

// Clone returns a deep copy of the material. Parameter changes on the
// clone do not affect the original.
func (m *Material) Clone() *Material {
	clone := New(m.name)
	for name, value := range m.vec4Params {
		clone.vec4Params[name] = value
	}
	for name, value := range m.floatParams {
		clone.floatParams[name] = value
	}
	return clone
}

// definition is the YAML form of a material resource.
type definition struct {
	Shader     string               `yaml:"shader"`
	Parameters map[string][]float32 `yaml:"parameters"`
}

// Load parses a material resource from YAML bytes.
func Load(name string, data []byte) (*Material, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing material %s: %w", name, err)
	}

	m := New(name)
	for param, values := range def.Parameters {
		switch len(values) {
		case 1:
			m.SetFloat(param, values[0])
		case 4:
			m.SetVec4(param, math.Vec4{values[0], values[1], values[2], values[3]})
		default:
			return nil, fmt.Errorf("material %s: parameter %s has %d components", name, param, len(values))
		}
	}
	return m, nil
}
