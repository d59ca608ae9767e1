// Package config handles bake tool configuration loading and management.
package config

// Config holds all bake tool settings.
type Config struct {
	Bake      BakeConfig      `yaml:"bake"`
	Resources ResourcesConfig `yaml:"resources"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BakeConfig holds lightmap geometry baking settings.
type BakeConfig struct {
	// Material is the name of the baking material resource.
	Material string `yaml:"material"`
	// UVChannel is the lightmap UV channel index.
	UVChannel int `yaml:"uv_channel"`
	// RenderPath is the name of the render path resource.
	RenderPath string `yaml:"render_path"`
	// Backend selects the render device: "software" or "opengl".
	Backend string `yaml:"backend"`
	// Manifest is the path to the YAML chart manifest to bake.
	Manifest string `yaml:"manifest"`
}

// ResourcesConfig holds resource lookup settings.
type ResourcesConfig struct {
	// SearchPaths are directories searched for named resources.
	// Later paths take priority.
	SearchPaths []string `yaml:"search_paths"`
}

// OutputConfig holds bake output settings.
type OutputConfig struct {
	// DumpDir is where debug PNG dumps of baked buffers are written.
	DumpDir string `yaml:"dump_dir"`
	// DumpImages enables PNG dumps of baked geometry buffers.
	DumpImages bool `yaml:"dump_images"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Bake: BakeConfig{
			Material:   "materials/lightmap_bake.yaml",
			UVChannel:  1,
			RenderPath: "renderpaths/lightmap_gbuffer.yaml",
			Backend:    "software",
			Manifest:   "bake.yaml",
		},
		Resources: ResourcesConfig{
			SearchPaths: []string{"data"},
		},
		Output: OutputConfig{
			DumpDir:    "bake-out",
			DumpImages: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
