package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagBackend  = flag.String("backend", "", "Render backend: software or opengl")
	flagManifest = flag.String("manifest", "", "Path to chart manifest")
	flagDump     = flag.Bool("dump", false, "Dump PNG debug images of baked buffers")
	flagDumpDir  = flag.String("dump-dir", "", "Directory for PNG debug dumps")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBackend != "" {
		cfg.Bake.Backend = *flagBackend
	}
	if *flagManifest != "" {
		cfg.Bake.Manifest = *flagManifest
	}
	if *flagDump {
		cfg.Output.DumpImages = true
	}
	if *flagDumpDir != "" {
		cfg.Output.DumpDir = *flagDumpDir
	}
}
