package domain

import "path/filepath"

const (
	// ToolchainEnvVar names the environment variable holding the Vulkan SDK root.
	ToolchainEnvVar = "VULKAN_SDK"

	// ToolchainBinDirName is the SDK subdirectory containing the compiler executables.
	ToolchainBinDirName = "Bin"

	// DefaultCompiler is the executable invoked for every job.
	DefaultCompiler = "glslc"
)

// Toolchain is a located Vulkan SDK installation.
type Toolchain struct {
	Root string
}

// BinDir returns the directory holding the SDK executables.
func (t Toolchain) BinDir() string {
	return filepath.Join(t.Root, ToolchainBinDirName)
}
