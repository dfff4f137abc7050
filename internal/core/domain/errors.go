package domain

import "go.trai.ch/zerr"

var (
	// ErrToolchainNotConfigured is returned when the Vulkan SDK location is not available.
	ErrToolchainNotConfigured = zerr.New(
		"Vulkan is not installed, or the '" + ToolchainEnvVar + "' environment variable is not set",
	)

	// ErrInvalidShaderKind is returned when a shader kind is not one of the supported stages.
	ErrInvalidShaderKind = zerr.New("invalid shader kind, expected 'vert' or 'frag'")

	// ErrInvalidDimension is returned when a dimension is not one of the supported variants.
	ErrInvalidDimension = zerr.New("invalid dimension, expected '2D' or '3D'")

	// ErrInvalidVariant is returned when a job list variant is unknown.
	ErrInvalidVariant = zerr.New("invalid variant, expected 'full' or 'reduced'")

	// ErrJobNotFound is returned when a requested job is not part of the variant's job list.
	ErrJobNotFound = zerr.New("job not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrOutputDirCleanFailed is returned when the output directory cannot be removed.
	ErrOutputDirCleanFailed = zerr.New("failed to remove output directory")

	// ErrCompileFailed is returned when a compiler invocation fails.
	ErrCompileFailed = zerr.New("shader compilation failed")

	// ErrEmptyCommand is returned when an invocation has nothing to run.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrOutputMissing is returned when the compiler reported success but did not write its output.
	ErrOutputMissing = zerr.New("compiled output is missing")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")
)
