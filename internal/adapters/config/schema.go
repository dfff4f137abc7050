package config

// SupportedVersion is the only config schema version understood by the loader.
const SupportedVersion = "1"

// Projectfile represents the structure of the spvbuild.yaml configuration file.
type Projectfile struct {
	Version  string `yaml:"version"`
	Shaders  string `yaml:"shaders"`
	Output   string `yaml:"output"`
	Variant  string `yaml:"variant"`
	Compiler string `yaml:"compiler"`
	Flags    string `yaml:"flags"`
}
