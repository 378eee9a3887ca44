package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	ConfigPath    string
	Debug         bool
	LogFile       string
	RepairNormals bool
	Summary       bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.BoolVar(&f.RepairNormals, "repair-normals", false, "Derive normals for STL facets with zero or invalid normals")
	fs.BoolVar(&f.Summary, "summary", false, "Print format, name and bounding box after the count")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.RepairNormals {
		cfg.Decode.RepairNormals = true
	}
	if f.Summary {
		cfg.Output.Summary = true
	}
}
