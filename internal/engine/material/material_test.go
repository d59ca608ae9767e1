package material

import (
	"testing"

	"github.com/MkFair/rbfx/pkg/math"
)

func TestCloneIsIndependent(t *testing.T) {
	m := New("materials/bake")
	m.SetVec4("LMOffset", math.Vec4{1, 2, 3, 4})
	m.SetFloat("LightmapLayer", 0.5)

	clone := m.Clone()
	clone.SetVec4("LMOffset", math.Vec4{9, 9, 9, 9})
	clone.SetFloat("LightmapLayer", 1.0)
	clone.SetFloat("LightmapGeometry", 3)

	if m.Vec4("LMOffset") != (math.Vec4{1, 2, 3, 4}) {
		t.Errorf("original LMOffset changed: %v", m.Vec4("LMOffset"))
	}
	if m.Float("LightmapLayer") != 0.5 {
		t.Errorf("original LightmapLayer changed: %v", m.Float("LightmapLayer"))
	}
	if m.Float("LightmapGeometry") != 0 {
		t.Error("original grew a parameter set on the clone")
	}
	if clone.Name() != m.Name() {
		t.Errorf("clone name = %q, want %q", clone.Name(), m.Name())
	}
}

func TestLoad(t *testing.T) {
	data := []byte(`
shader: lightmap_bake
parameters:
  LMOffset: [1, 1, 0, 0]
  LightmapLayer: [1]
`)

	m, err := Load("materials/bake", data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if m.Vec4("LMOffset") != (math.Vec4{1, 1, 0, 0}) {
		t.Errorf("LMOffset = %v", m.Vec4("LMOffset"))
	}
	if m.Float("LightmapLayer") != 1 {
		t.Errorf("LightmapLayer = %v", m.Float("LightmapLayer"))
	}
}

func TestLoadRejectsBadComponentCount(t *testing.T) {
	data := []byte(`
parameters:
  LMOffset: [1, 2]
`)

	if _, err := Load("materials/bad", data); err == nil {
		t.Error("expected error for 2-component parameter")
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	if _, err := Load("materials/bad", []byte("parameters: [not a map")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
