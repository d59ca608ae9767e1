// Package renderpath provides named render path resources describing the
// output buffers a render pass produces.
package renderpath

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RenderPath describes how a view is rendered: the pass to execute and the
// named float outputs it writes.
type RenderPath struct {
	Name    string   `yaml:"name"`
	Pass    string   `yaml:"pass"`
	Outputs []string `yaml:"outputs"`

	// ClearDepth is the depth value targets are cleared to before the pass.
	ClearDepth float32 `yaml:"clear_depth"`
}

// Load parses a render path resource from YAML bytes.
func Load(name string, data []byte) (*RenderPath, error) {
	rp := &RenderPath{ClearDepth: 1}
	if err := yaml.Unmarshal(data, rp); err != nil {
		return nil, fmt.Errorf("parsing render path %s: %w", name, err)
	}
	if rp.Name == "" {
		rp.Name = name
	}
	if len(rp.Outputs) == 0 {
		return nil, fmt.Errorf("render path %s declares no outputs", name)
	}
	return rp, nil
}

// HasOutput reports whether the path declares the named output.
func (rp *RenderPath) HasOutput(name string) bool {
	for _, output := range rp.Outputs {
		if output == name {
			return true
		}
	}
	return false
}
