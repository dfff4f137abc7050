package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "spvbuild.yaml"

	// DefaultShaderDirName is the shader source directory, relative to the project root.
	DefaultShaderDirName = "shaders"

	// DefaultOutputDirName is the compiled output directory, relative to the shader directory.
	DefaultOutputDirName = "bin"

	// SPIRVExtension is appended to a job name to form its output file name.
	SPIRVExtension = ".spv"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout locates shader sources and compiled outputs on disk.
type Layout struct {
	ShaderDir string
	OutputDir string
}

// NewLayout builds a Layout rooted at root.
// A relative shaderDir is resolved against root, a relative outputDir against the shader directory.
// Empty values select the defaults.
func NewLayout(root, shaderDir, outputDir string) Layout {
	if shaderDir == "" {
		shaderDir = DefaultShaderDirName
	}
	if outputDir == "" {
		outputDir = DefaultOutputDirName
	}
	if !filepath.IsAbs(shaderDir) {
		shaderDir = filepath.Join(root, shaderDir)
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(shaderDir, outputDir)
	}
	return Layout{
		ShaderDir: filepath.Clean(shaderDir),
		OutputDir: filepath.Clean(outputDir),
	}
}

// DefaultLayout returns the conventional layout: <root>/shaders and <root>/shaders/bin.
func DefaultLayout(root string) Layout {
	return NewLayout(root, "", "")
}
