// Package config handles meshcount configuration loading.
package config

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Decode  DecodeConfig  `yaml:"decode"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DecodeConfig holds mesh decoding settings.
type DecodeConfig struct {
	// RepairNormals replaces zero or non-finite stored STL normals with
	// ones derived from the vertex winding.
	RepairNormals bool `yaml:"repair_normals"`
}

// OutputConfig holds result printing settings.
type OutputConfig struct {
	Summary bool `yaml:"summary"` // Print format, name and bounds after the count
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
		Decode: DecodeConfig{
			RepairNormals: false,
		},
		Output: OutputConfig{
			Summary: false,
		},
	}
}
